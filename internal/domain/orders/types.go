package orders

import (
	"context"
	"time"
)

// Payment methods as recorded on the order.
const (
	PaymentCreditCard = "Cartão de Crédito"
	PaymentBoleto     = "Boleto Bancário"
)

const (
	StatusPending = "pending"
)

type Address struct {
	FullName     string `json:"full_name"`
	CPF          string `json:"cpf"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipcode"`
}

type DraftItem struct {
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name"`
	Color          string `json:"color,omitempty"`
	Size           string `json:"size,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Draft is an order ready to be persisted; totals are final.
type Draft struct {
	UserID        int64       `json:"user_id"`
	Items         []DraftItem `json:"items"`
	SubtotalCents int64       `json:"subtotal_cents"`
	DiscountCents int64       `json:"discount_cents"`
	ShippingCents int64       `json:"shipping_cents"`
	TotalCents    int64       `json:"total_cents"`
	PaymentMethod string      `json:"payment_method"`
	Installments  int         `json:"installments"`
	CouponID      *int64      `json:"coupon_id,omitempty"`
	ShipTo        Address     `json:"ship_to"`
	DeliveryTime  string      `json:"delivery_time,omitempty"`
}

type Order struct {
	ID            int64       `json:"id"`
	Code          string      `json:"code"`
	UserID        int64       `json:"user_id"`
	Status        string      `json:"status"`
	SubtotalCents int64       `json:"subtotal_cents"`
	DiscountCents int64       `json:"discount_cents"`
	ShippingCents int64       `json:"shipping_cents"`
	TotalCents    int64       `json:"total_cents"`
	PaymentMethod string      `json:"payment_method"`
	Installments  int         `json:"installments"`
	CouponID      *int64      `json:"coupon_id,omitempty"`
	ShipTo        Address     `json:"ship_to"`
	DeliveryTime  string      `json:"delivery_time,omitempty"`
	Items         []DraftItem `json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
}

type Store interface {
	Create(ctx context.Context, d Draft) (*Order, error)
}
