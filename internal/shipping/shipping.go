// Package shipping quotes delivery cost and time for a Brazilian postal code.
package shipping

import (
	"context"
	"strings"
	"unicode"

	"storefront/internal/errs"
	"storefront/internal/pricing"
)

// ErrInvalidPostalCode is returned for anything that is not an 8-digit CEP.
var ErrInvalidPostalCode error = &errs.Error{Kind: errs.KindValidation, Msg: "CEP inválido. Informe os 8 dígitos."}

// Quoter prices delivery to postalCode. freeHint asks the carrier to quote a
// free-shipping service when the order already qualifies for one.
type Quoter interface {
	Quote(ctx context.Context, postalCode string, subtotalCents int64, freeHint bool) (pricing.ShippingQuote, error)
}

// NormalizePostalCode strips punctuation from a CEP such as "60160-230" and
// checks that exactly 8 digits remain.
func NormalizePostalCode(raw string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		if r == '-' || r == '.' || unicode.IsSpace(r) {
			return -1
		}
		return 'x'
	}, raw)

	if len(digits) != 8 || strings.ContainsRune(digits, 'x') {
		return "", ErrInvalidPostalCode
	}
	return digits, nil
}
