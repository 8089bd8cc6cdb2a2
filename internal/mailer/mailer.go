package mailer

import "embed"

const (
	FromName                  = "Loja"
	maxRetries                = 3
	OrderConfirmationTemplate = "order_confirmation.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}

// OrderConfirmation is the data of OrderConfirmationTemplate. Amounts are
// already formatted for display.
type OrderConfirmation struct {
	Username     string
	OrderCode    string
	Items        []OrderLine
	Subtotal     string
	Discount     string
	Shipping     string
	Total        string
	Payment      string
	DeliveryTime string
}

type OrderLine struct {
	Quantity int
	Name     string
	Total    string
}
