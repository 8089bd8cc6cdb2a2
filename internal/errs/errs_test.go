package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWalksWrapChain(t *testing.T) {
	err := fmt.Errorf("apply coupon: %w", Validation("Código de cupom inválido"))

	assert.Equal(t, KindValidation, KindOf(err))
	assert.True(t, Is(err, KindValidation))
	assert.Equal(t, "Código de cupom inválido", PublicMessage(err, "x"))
}

func TestCollaboratorKeepsClassifiedErrors(t *testing.T) {
	nf := NotFound("Cupom não encontrado")
	assert.Same(t, nf, Collaborator("coupon.validate", nf))

	raw := errors.New("connection refused")
	err := Collaborator("coupon.validate", raw)
	assert.Equal(t, KindCollaborator, KindOf(err))
	assert.ErrorIs(t, err, raw)
	assert.Equal(t, "coupon.validate: collaborator: connection refused", err.Error())

	assert.NoError(t, Collaborator("noop", nil))
}

func TestUnclassified(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, "fallback", PublicMessage(errors.New("boom"), "fallback"))
}
