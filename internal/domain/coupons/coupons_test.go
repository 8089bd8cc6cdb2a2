package coupons

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	limit := 5

	base := Coupon{ID: 1, Code: "BEMVINDO", DiscountCents: 10_00, IsActive: true, MinSubtotalCents: 50_00}

	t.Run("valid", func(t *testing.T) {
		c := base
		c.ExpiresAt = &future
		v := Check(&c, 80_00, now)
		assert.True(t, v.Valid)
		assert.Equal(t, &c, v.Coupon)
	})

	t.Run("inactive", func(t *testing.T) {
		c := base
		c.IsActive = false
		assert.Equal(t, Validation{Message: MsgInactive}, Check(&c, 80_00, now))
	})

	t.Run("expired", func(t *testing.T) {
		c := base
		c.ExpiresAt = &past
		assert.Equal(t, MsgExpired, Check(&c, 80_00, now).Message)
	})

	t.Run("used up", func(t *testing.T) {
		c := base
		c.UsageLimit = &limit
		c.UsedCount = 5
		assert.Equal(t, MsgUsedUp, Check(&c, 80_00, now).Message)
	})

	t.Run("below minimum", func(t *testing.T) {
		v := Check(&base, 49_99, now)
		assert.False(t, v.Valid)
		assert.Equal(t, "Valor mínimo para este cupom: R$ 50,00", v.Message)
	})
}

func TestCodeFormat(t *testing.T) {
	assert.Equal(t, "FRETE10", NormalizeCode("  frete10 "))
	assert.True(t, ValidCode("FRETE10"))
	assert.True(t, ValidCode("BLACK-FRIDAY_25"))
	assert.False(t, ValidCode("AB"))
	assert.False(t, ValidCode("COM ESPACO"))
	assert.False(t, ValidCode("DROP;TABLE"))
}
