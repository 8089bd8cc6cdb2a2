package coupons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/infra/dbx"
	"storefront/internal/pricing"

	"github.com/jackc/pgx/v5"
)

var ErrCouponExhausted = errors.New("coupon usage limit reached")

const (
	MsgNotFound = "Cupom não encontrado"
	MsgInactive = "Cupom inativo"
	MsgExpired  = "Cupom expirado"
	MsgUsedUp   = "Cupom esgotado"
)

type Repository struct {
	db  dbx.Querier
	now func() time.Time
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q, now: time.Now}
}

func (r *Repository) Validate(ctx context.Context, code string, subtotalCents int64) (Validation, error) {
	var c Coupon
	err := r.db.QueryRow(ctx, `
SELECT id, code, discount_cents, free_shipping, min_subtotal_cents,
       usage_limit, used_count, is_active, expires_at
FROM coupons
WHERE code = $1
`, NormalizeCode(code)).Scan(
		&c.ID, &c.Code, &c.DiscountCents, &c.FreeShipping, &c.MinSubtotalCents,
		&c.UsageLimit, &c.UsedCount, &c.IsActive, &c.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Validation{Message: MsgNotFound}, nil
	}
	if err != nil {
		return Validation{}, fmt.Errorf("get coupon: %w", err)
	}

	return Check(&c, subtotalCents, r.now()), nil
}

// Check applies the eligibility rules of a coupon to a subtotal at a point
// in time.
func Check(c *Coupon, subtotalCents int64, now time.Time) Validation {
	switch {
	case !c.IsActive:
		return Validation{Message: MsgInactive}
	case c.ExpiresAt != nil && !c.ExpiresAt.After(now):
		return Validation{Message: MsgExpired}
	case c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit:
		return Validation{Message: MsgUsedUp}
	case subtotalCents < c.MinSubtotalCents:
		return Validation{Message: "Valor mínimo para este cupom: " + pricing.FormatBRL(c.MinSubtotalCents)}
	}
	return Validation{Valid: true, Coupon: c}
}

// Apply records one use of the coupon.
func (r *Repository) Apply(ctx context.Context, couponID int64) error {
	tag, err := r.db.Exec(ctx, `
UPDATE coupons
SET used_count = used_count + 1
WHERE id = $1
  AND (usage_limit IS NULL OR used_count < usage_limit)
`, couponID)
	if err != nil {
		return fmt.Errorf("apply coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCouponExhausted
	}
	return nil
}
