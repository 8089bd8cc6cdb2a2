// Package events publishes storefront domain events to Kafka.
package events

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced = "order.placed"
	TopicOrders      = "storefront.orders"
	Producer         = "storefront-api"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order code
	Payload       json.RawMessage `json:"payload"`
}

type OrderItem struct {
	ProductID      int64 `json:"product_id"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unit_price_cents"`
}

type OrderPlacedPayload struct {
	OrderID       int64       `json:"order_id"`
	OrderCode     string      `json:"order_code"`
	UserID        int64       `json:"user_id"`
	Items         []OrderItem `json:"items"`
	SubtotalCents int64       `json:"subtotal_cents"`
	DiscountCents int64       `json:"discount_cents"`
	ShippingCents int64       `json:"shipping_cents"`
	TotalCents    int64       `json:"total_cents"`
	CouponID      *int64      `json:"coupon_id,omitempty"`
	PaymentMethod string      `json:"payment_method"`
}

// UnwrapPayload decodes the payload of an envelope into T.
func UnwrapPayload[T any](env Envelope) (T, error) {
	var t T
	err := json.Unmarshal(env.Payload, &t)
	return t, err
}
