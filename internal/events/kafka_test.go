package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain/orders"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublishOrderPlaced(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w)
	p.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	couponID := int64(3)
	o := &orders.Order{
		ID:            42,
		Code:          "PED-ABC123",
		UserID:        7,
		SubtotalCents: 250_00,
		DiscountCents: 30_00,
		ShippingCents: 0,
		TotalCents:    220_00,
		CouponID:      &couponID,
		PaymentMethod: orders.PaymentBoleto,
		Items: []orders.DraftItem{
			{ProductID: 1, Quantity: 2, UnitPriceCents: 100_00},
			{ProductID: 2, Quantity: 1, UnitPriceCents: 50_00},
		},
	}

	require.NoError(t, p.PublishOrderPlaced(context.Background(), o))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, EventOrderPlaced, env.EventType)
	assert.Equal(t, 1, env.EventVersion)
	assert.Equal(t, "PED-ABC123", env.CorrelationID)
	assert.NotEmpty(t, env.EventID)

	payload, err := UnwrapPayload[OrderPlacedPayload](env)
	require.NoError(t, err)
	assert.Equal(t, int64(220_00), payload.TotalCents)
	assert.Len(t, payload.Items, 2)
	require.NotNil(t, payload.CouponID)
	assert.Equal(t, int64(3), *payload.CouponID)
}

func TestPublishOrderPlacedWriteError(t *testing.T) {
	p := NewKafkaPublisher(&recordingWriter{err: errors.New("broker down")})

	err := p.PublishOrderPlaced(context.Background(), &orders.Order{ID: 1, Code: "PED-1"})
	assert.ErrorContains(t, err, "broker down")
}
