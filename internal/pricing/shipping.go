package pricing

import "fmt"

const DescFreeByCoupon = "Frete grátis por cupom"

// DescFreeByOrderValue is shown when the order value alone earns free shipping.
var DescFreeByOrderValue = fmt.Sprintf("Frete grátis (compra acima de %s)", FormatBRL(FreeShippingThresholdCents))

// FreeShippingGranted reports whether shipping is free for the given subtotal
// and coupon.
func FreeShippingGranted(subtotalCents int64, coupon *AppliedCoupon) bool {
	return (coupon != nil && coupon.FreeShipping) || subtotalCents >= FreeShippingThresholdCents
}

// FreeShippingRemaining is how much more the shopper has to add to reach free
// shipping by order value. It is zero once shipping is free for any reason.
func FreeShippingRemaining(subtotalCents int64, coupon *AppliedCoupon) int64 {
	if FreeShippingGranted(subtotalCents, coupon) {
		return 0
	}
	return FreeShippingThresholdCents - max(subtotalCents, 0)
}

// ResolveShipping reconciles a raw carrier quote with the free-shipping rules.
// When free shipping is granted and the raw cost is non-zero the returned
// quote costs nothing and names its reason, the coupon taking precedence over
// the order value. Otherwise raw is returned as is. A nil raw stays nil. The
// raw quote is never modified.
func ResolveShipping(subtotalCents int64, coupon *AppliedCoupon, raw *ShippingQuote) *ShippingQuote {
	if raw == nil {
		return nil
	}
	if !FreeShippingGranted(subtotalCents, coupon) || raw.CostCents == 0 {
		return raw
	}

	resolved := *raw
	resolved.CostCents = 0
	resolved.IsFree = true
	if coupon != nil && coupon.FreeShipping {
		resolved.Description = DescFreeByCoupon
	} else {
		resolved.Description = DescFreeByOrderValue
	}
	return &resolved
}
