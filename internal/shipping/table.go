package shipping

import (
	"context"

	"storefront/internal/pricing"
)

type rate struct {
	costCents    int64
	deliveryTime string
}

// TableQuoter prices by CEP region (the first digit), shipping from Ceará.
type TableQuoter struct {
	rates map[byte]rate
}

func NewTableQuoter() *TableQuoter {
	southeast := rate{22_90, "6 a 9 dias úteis"}
	northeast := rate{18_90, "5 a 8 dias úteis"}
	south := rate{27_90, "8 a 12 dias úteis"}

	return &TableQuoter{rates: map[byte]rate{
		'0': southeast,
		'1': southeast,
		'2': southeast,
		'3': southeast,
		'4': northeast,
		'5': northeast,
		'6': {12_90, "3 a 5 dias úteis"},
		'7': {24_90, "7 a 10 dias úteis"},
		'8': south,
		'9': south,
	}}
}

func (t *TableQuoter) Quote(ctx context.Context, postalCode string, _ int64, freeHint bool) (pricing.ShippingQuote, error) {
	if err := ctx.Err(); err != nil {
		return pricing.ShippingQuote{}, err
	}

	cep, err := NormalizePostalCode(postalCode)
	if err != nil {
		return pricing.ShippingQuote{}, err
	}

	r := t.rates[cep[0]]
	q := pricing.ShippingQuote{
		PostalCode:   cep,
		CostCents:    r.costCents,
		DeliveryTime: r.deliveryTime,
	}
	if freeHint {
		q.CostCents = 0
		q.IsFree = true
		q.Description = "Frete grátis"
	}
	return q, nil
}
