package checkout

import (
	"testing"

	"storefront/internal/domain/orders"
	"storefront/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		FullName:      "Maria da Silva",
		CPF:           "123.456.789-09",
		Email:         "maria@example.com",
		Phone:         "(85) 99999-1234",
		Address:       "Rua das Flores, 100",
		Neighborhood:  "Aldeota",
		City:          "Fortaleza",
		ZipCode:       "60160-230",
		PaymentMethod: PayCredit,
		CardName:      "MARIA D SILVA",
		CardNumber:    "4111 1111 1111 1111",
		ExpiryDate:    "12/29",
		CVV:           "123",
	}
}

func TestFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *Form)
		want   string
	}{
		{"valid", func(f *Form) {}, ""},
		{"missing name", func(f *Form) { f.FullName = "   " }, MsgRequiredFields},
		{"missing city and bad cpf", func(f *Form) { f.City = ""; f.CPF = "123" }, MsgRequiredFields},
		{"short cpf", func(f *Form) { f.CPF = "1234567890" }, MsgInvalidCPF},
		{"short phone", func(f *Form) { f.Phone = "8599991" }, MsgInvalidPhone},
		{"long phone", func(f *Form) { f.Phone = "859999912345" }, MsgInvalidPhone},
		{"landline", func(f *Form) { f.Phone = "(85) 3222-1234" }, ""},
		{"short cep", func(f *Form) { f.ZipCode = "60160-23" }, MsgInvalidCEP},
		{"bad email", func(f *Form) { f.Email = "maria" }, MsgInvalidEmail},
		{"unknown payment", func(f *Form) { f.PaymentMethod = "pix" }, MsgInvalidPayment},
		{"no card name", func(f *Form) { f.CardName = "" }, MsgCardName},
		{"short card", func(f *Form) { f.CardNumber = "4111 1111 111" }, MsgCardNumber},
		{"expiry without slash", func(f *Form) { f.ExpiryDate = "1229" }, MsgCardExpiry},
		{"short cvv", func(f *Form) { f.CVV = "12" }, MsgCardCVV},
		{"boleto ignores card", func(f *Form) { f.PaymentMethod = PayBoleto; f.CardNumber = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			err := f.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.KindValidation))
			assert.Equal(t, tt.want, errs.PublicMessage(err, ""))
		})
	}
}

func TestFormPayment(t *testing.T) {
	f := validForm()
	method, n := f.Payment()
	assert.Equal(t, orders.PaymentCreditCard, method)
	assert.Equal(t, 10, n)

	f.PaymentMethod = PayBoleto
	method, n = f.Payment()
	assert.Equal(t, orders.PaymentBoleto, method)
	assert.Equal(t, 1, n)
}

func TestFormShipToKeepsDigitsOnly(t *testing.T) {
	f := validForm()
	addr := f.ShipTo(DefaultState)

	assert.Equal(t, "12345678909", addr.CPF)
	assert.Equal(t, "85999991234", addr.Phone)
	assert.Equal(t, "60160230", addr.ZipCode)
	assert.Equal(t, "CE", addr.State)
}
