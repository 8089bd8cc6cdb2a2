package orders

import (
	"errors"
	"fmt"
)

var ErrInvalidDraft = errors.New("invalid order draft")

// Validate checks that the draft is internally consistent. The database
// enforces the total equation again.
func (d Draft) Validate() error {
	if d.UserID <= 0 {
		return fmt.Errorf("%w: missing user", ErrInvalidDraft)
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidDraft)
	}

	var subtotal int64
	for i, it := range d.Items {
		if it.Quantity < 1 || it.UnitPriceCents < 0 {
			return fmt.Errorf("%w: item %d has quantity %d and price %d", ErrInvalidDraft, i, it.Quantity, it.UnitPriceCents)
		}
		subtotal += it.UnitPriceCents * int64(it.Quantity)
	}

	switch {
	case subtotal != d.SubtotalCents:
		return fmt.Errorf("%w: subtotal %d does not match items %d", ErrInvalidDraft, d.SubtotalCents, subtotal)
	case d.DiscountCents < 0 || d.DiscountCents > d.SubtotalCents:
		return fmt.Errorf("%w: discount %d out of range", ErrInvalidDraft, d.DiscountCents)
	case d.ShippingCents < 0:
		return fmt.Errorf("%w: negative shipping", ErrInvalidDraft)
	case d.TotalCents != d.SubtotalCents+d.ShippingCents-d.DiscountCents:
		return fmt.Errorf("%w: total %d does not add up", ErrInvalidDraft, d.TotalCents)
	case d.PaymentMethod != PaymentCreditCard && d.PaymentMethod != PaymentBoleto:
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidDraft, d.PaymentMethod)
	case d.Installments < 1:
		return fmt.Errorf("%w: installments must be at least 1", ErrInvalidDraft)
	}
	return nil
}
