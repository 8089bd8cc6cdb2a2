package coupons

import (
	"context"
	"regexp"
	"strings"
	"time"
)

type Coupon struct {
	ID               int64      `json:"id"`
	Code             string     `json:"code"`
	DiscountCents    int64      `json:"discount_cents"`
	FreeShipping     bool       `json:"free_shipping"`
	MinSubtotalCents int64      `json:"min_subtotal_cents"`
	UsageLimit       *int       `json:"usage_limit,omitempty"`
	UsedCount        int        `json:"used_count"`
	IsActive         bool       `json:"is_active"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

// Validation is the outcome of checking a code against a cart subtotal.
// Message explains a rejection to the shopper.
type Validation struct {
	Valid   bool    `json:"valid"`
	Coupon  *Coupon `json:"coupon,omitempty"`
	Message string  `json:"message,omitempty"`
}

type Store interface {
	Validate(ctx context.Context, code string, subtotalCents int64) (Validation, error)
	Apply(ctx context.Context, couponID int64) error
}

var codeFormat = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

// NormalizeCode upper-cases and trims a code as typed by a shopper.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether a normalized code is well formed.
func ValidCode(code string) bool {
	return codeFormat.MatchString(code)
}
