package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOrderConfirmation(t *testing.T) {
	data := OrderConfirmation{
		Username:  "Ana",
		OrderCode: "PED-X7K2P",
		Items: []OrderLine{
			{Quantity: 2, Name: "Tênis Corrida", Total: "R$ 200,00"},
		},
		Subtotal: "R$ 200,00",
		Shipping: "R$ 0,00",
		Total:    "R$ 200,00",
		Payment:  "Boleto Bancário",
	}

	subject, body, err := Render(OrderConfirmationTemplate, data)
	require.NoError(t, err)

	assert.Equal(t, "Pedido PED-X7K2P confirmado", subject)
	assert.Contains(t, body, "Olá, Ana!")
	assert.Contains(t, body, "2x Tênis Corrida")
	assert.NotContains(t, body, "Desconto")
	assert.NotContains(t, body, "Prazo de entrega")
}

func TestNewSMTPClientRequiresHost(t *testing.T) {
	_, err := NewSMTPClient("", 587, "", "", "loja@example.com")
	assert.Error(t, err)

	_, err = NewSMTPClient("smtp.example.com", 587, "", "", "")
	assert.Error(t, err)
}
