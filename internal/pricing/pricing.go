// Package pricing computes cart and checkout totals. All amounts are integer
// cents in BRL.
package pricing

import "storefront/internal/errs"

// FreeShippingThresholdCents is the order value from which shipping is free
// regardless of coupon. Every caller compares against this constant.
const FreeShippingThresholdCents int64 = 200_00

type Line struct {
	ProductID      int64 `json:"product_id"`
	UnitPriceCents int64 `json:"unit_price_cents"`
	Quantity       int   `json:"quantity"`
}

type AppliedCoupon struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	DiscountCents int64  `json:"discount_cents"`
	FreeShipping  bool   `json:"free_shipping"`
}

type ShippingQuote struct {
	PostalCode   string `json:"postal_code"`
	CostCents    int64  `json:"cost_cents"`
	DeliveryTime string `json:"delivery_time"`
	IsFree       bool   `json:"is_free"`
	Description  string `json:"description,omitempty"`
}

type Totals struct {
	SubtotalCents int64          `json:"subtotal_cents"`
	DiscountCents int64          `json:"discount_cents"`
	ShippingCents int64          `json:"shipping_cents"`
	TotalCents    int64          `json:"total_cents"`
	Shipping      *ShippingQuote `json:"shipping,omitempty"`
}

// Subtotal sums unit price times quantity over lines.
func Subtotal(lines []Line) (int64, error) {
	var sum int64
	for i, l := range lines {
		if l.Quantity < 1 {
			return 0, errs.Invariant("line %d: quantity must be at least 1, got %d", i, l.Quantity)
		}
		if l.UnitPriceCents < 0 {
			return 0, errs.Invariant("line %d: negative unit price %d", i, l.UnitPriceCents)
		}
		sum += l.UnitPriceCents * int64(l.Quantity)
	}
	return sum, nil
}

// ComputeTotals derives the order totals from lines, an optional coupon and
// an optional raw shipping quote:
//
//	total = subtotal + shipping - discount
//
// The discount is clamped into [0, subtotal]. Shipping is zero when the
// coupon grants it or the subtotal reaches FreeShippingThresholdCents,
// otherwise it is the quoted cost, or zero when nothing has been quoted.
func ComputeTotals(lines []Line, coupon *AppliedCoupon, quote *ShippingQuote) (Totals, error) {
	subtotal, err := Subtotal(lines)
	if err != nil {
		return Totals{}, err
	}

	var discount int64
	if coupon != nil {
		discount = min(max(coupon.DiscountCents, 0), subtotal)
	}

	resolved := ResolveShipping(subtotal, coupon, quote)
	var shipping int64
	if resolved != nil {
		shipping = resolved.CostCents
	}

	return Totals{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		ShippingCents: shipping,
		TotalCents:    subtotal + shipping - discount,
		Shipping:      resolved,
	}, nil
}
