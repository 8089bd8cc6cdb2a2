package orders

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/errs"
	"storefront/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type DB interface {
	dbx.Querier
	dbx.TxBeginner
}

type Repository struct {
	db    DB
	codes *CodeGenerator
}

func NewRepository(db DB, codes *CodeGenerator) *Repository {
	if codes == nil {
		panic("orders: CodeGenerator is nil")
	}
	return &Repository{db: db, codes: codes}
}

// Create persists the draft with its items in one transaction and assigns
// the public order code.
func (r *Repository) Create(ctx context.Context, d Draft) (*Order, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		UserID:        d.UserID,
		Status:        StatusPending,
		SubtotalCents: d.SubtotalCents,
		DiscountCents: d.DiscountCents,
		ShippingCents: d.ShippingCents,
		TotalCents:    d.TotalCents,
		PaymentMethod: d.PaymentMethod,
		Installments:  d.Installments,
		CouponID:      d.CouponID,
		ShipTo:        d.ShipTo,
		DeliveryTime:  d.DeliveryTime,
		Items:         d.Items,
	}

	err := dbx.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		a := d.ShipTo
		err := tx.QueryRow(ctx, `
INSERT INTO orders (
  user_id, status, subtotal_cents, discount_cents, shipping_cents, total_cents,
  payment_method, installments, coupon_id,
  full_name, cpf, email, phone, address, complement, neighborhood, city, state, zipcode,
  delivery_time
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
RETURNING id, created_at
`,
			o.UserID, o.Status, o.SubtotalCents, o.DiscountCents, o.ShippingCents, o.TotalCents,
			o.PaymentMethod, o.Installments, o.CouponID,
			a.FullName, a.CPF, a.Email, a.Phone, a.Address, a.Complement, a.Neighborhood, a.City, a.State, a.ZipCode,
			o.DeliveryTime,
		).Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		batch := &pgx.Batch{}
		for _, it := range d.Items {
			batch.Queue(`
INSERT INTO order_items (order_id, product_id, product_name, color, size, quantity, unit_price_cents)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, o.ID, it.ProductID, it.ProductName, it.Color, it.Size, it.Quantity, it.UnitPriceCents)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}

		code, err := r.codes.Encode(o.ID)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE orders SET code = $2 WHERE id = $1`, o.ID, code); err != nil {
			return fmt.Errorf("set order code: %w", err)
		}
		o.Code = code
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// MsgOrderNotFound answers lookups of unknown, malformed or foreign codes
// alike.
const MsgOrderNotFound = "Pedido não encontrado."

// GetByCode loads the order behind a public code, provided it belongs to
// userID.
func (r *Repository) GetByCode(ctx context.Context, code string, userID int64) (*Order, error) {
	id, err := r.codes.Decode(code)
	if err != nil {
		return nil, errs.NotFound(MsgOrderNotFound)
	}

	o := &Order{}
	a := &o.ShipTo
	err = r.db.QueryRow(ctx, `
SELECT
  id, code, user_id, status, subtotal_cents, discount_cents, shipping_cents, total_cents,
  payment_method, installments, coupon_id,
  full_name, cpf, email, phone, address, complement, neighborhood, city, state, zipcode,
  delivery_time, created_at
FROM orders
WHERE id = $1 AND user_id = $2
`, id, userID).Scan(
		&o.ID, &o.Code, &o.UserID, &o.Status, &o.SubtotalCents, &o.DiscountCents, &o.ShippingCents, &o.TotalCents,
		&o.PaymentMethod, &o.Installments, &o.CouponID,
		&a.FullName, &a.CPF, &a.Email, &a.Phone, &a.Address, &a.Complement, &a.Neighborhood, &a.City, &a.State, &a.ZipCode,
		&o.DeliveryTime, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFound(MsgOrderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}

	rows, err := r.db.Query(ctx, `
SELECT product_id, product_name, color, size, quantity, unit_price_cents
FROM order_items
WHERE order_id = $1
ORDER BY id
`, o.ID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it DraftItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Color, &it.Size, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}
	return o, nil
}
