package carts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrItemNotFound       = errors.New("item not found")
	ErrProductUnavailable = errors.New("product not found or inactive")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidOwner       = errors.New("cart owner is missing")
)

type Repository struct {
	db  dbx.Querier
	ttl time.Duration
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q, ttl: 7 * 24 * time.Hour}
}

func NewRepositoryWithTTL(q dbx.Querier, ttl time.Duration) *Repository {
	return &Repository{db: q, ttl: ttl}
}

func (r *Repository) bumpTTL(ctx context.Context, cartID int64) {
	_, _ = r.db.Exec(ctx, `
UPDATE carts
SET expires_at = $2,
    updated_at = now()
WHERE id = $1
  AND status = 'active'
`, cartID, time.Now().Add(r.ttl))
}

// ownerColumn returns the carts column and value identifying owner.
func ownerColumn(owner Owner) (string, any) {
	if owner.Authenticated() {
		return "user_id", owner.UserID
	}
	return "guest_token", owner.GuestToken
}

// GetOrCreateCart returns the owner's active cart, creating one if needed.
//
// A partial unique index allows one active cart per owner, so concurrent
// first requests race on the insert. The loser selects the winning row. An
// expired active cart still blocks the index; it is abandoned and the insert
// retried once.
func (r *Repository) GetOrCreateCart(ctx context.Context, owner Owner) (int64, error) {
	if !owner.Valid() {
		return 0, ErrInvalidOwner
	}
	col, val := ownerColumn(owner)

	const maxAttempts = 2
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if id, ok, err := r.selectActive(ctx, col, val, false); err != nil {
			return 0, err
		} else if ok {
			return id, nil
		}

		var id int64
		err := r.db.QueryRow(ctx, `
INSERT INTO carts (`+col+`, status, expires_at)
VALUES ($1, 'active', $2)
RETURNING id
`, val, time.Now().Add(r.ttl)).Scan(&id)
		if err == nil {
			return id, nil
		}

		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
			return 0, fmt.Errorf("create cart: %w", err)
		}

		// Someone else holds the active row, possibly expired.
		blockID, ok, berr := r.selectActive(ctx, col, val, true)
		if berr != nil {
			return 0, berr
		}
		if !ok {
			continue
		}

		tag, uerr := r.db.Exec(ctx, `
UPDATE carts
SET status = 'abandoned', updated_at = now()
WHERE id = $1
  AND status = 'active'
  AND expires_at IS NOT NULL
  AND expires_at <= now()
`, blockID)
		if uerr != nil {
			return 0, fmt.Errorf("abandon expired cart: %w", uerr)
		}
		if tag.RowsAffected() == 0 {
			// Not expired: it is the concurrent winner.
			return blockID, nil
		}
	}

	return 0, fmt.Errorf("get or create cart: cart not found after conflict")
}

func (r *Repository) selectActive(ctx context.Context, col string, val any, includeExpired bool) (int64, bool, error) {
	q := `
SELECT id
FROM carts
WHERE ` + col + ` = $1
  AND status = 'active'`
	if !includeExpired {
		q += `
  AND (expires_at IS NULL OR expires_at > now())`
	}
	q += `
ORDER BY updated_at DESC
LIMIT 1`

	var id int64
	err := r.db.QueryRow(ctx, q, val).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("select active cart: %w", err)
}

// ListItems returns the cart lines with live product data, oldest first.
func (r *Repository) ListItems(ctx context.Context, cartID int64) ([]CartItem, error) {
	rows, err := r.db.Query(ctx, `
SELECT
  ci.id, ci.cart_id, ci.color, ci.size, ci.quantity,
  p.id, p.name, p.slug,
  COALESCE(p.sale_price_cents, p.price_cents),
  p.price_cents,
  COALESCE(
    (SELECT url FROM product_images pi WHERE pi.product_id = p.id AND pi.is_primary ORDER BY pi.id LIMIT 1),
    (SELECT url FROM product_images pi WHERE pi.product_id = p.id ORDER BY pi.sort_order, pi.id LIMIT 1),
    ''
  )
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.id ASC
`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []CartItem
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(
			&it.ID, &it.CartID, &it.Color, &it.Size, &it.Quantity,
			&it.Product.ID, &it.Product.Name, &it.Product.Slug,
			&it.Product.PriceCents, &it.Product.OriginalPriceCents,
			&it.Product.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cart items rows: %w", err)
	}
	return items, nil
}

// AddItem adds qty of a product variant to the cart, merging with an
// existing line for the same product, color and size.
func (r *Repository) AddItem(ctx context.Context, cartID int64, in AddItemInput) error {
	if in.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	tag, err := r.db.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, color, size, quantity)
SELECT $1, p.id, $3, $4, $5
FROM products p
WHERE p.id = $2 AND p.is_active = true
ON CONFLICT (cart_id, product_id, color, size)
DO UPDATE SET
  quantity   = cart_items.quantity + EXCLUDED.quantity,
  updated_at = now()
`, cartID, in.ProductID, in.Color, in.Size, in.Quantity)
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductUnavailable
	}

	r.bumpTTL(ctx, cartID)
	return nil
}

func (r *Repository) SetQuantity(ctx context.Context, cartID, itemID int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	tag, err := r.db.Exec(ctx, `
UPDATE cart_items
SET quantity = $3,
    updated_at = now()
WHERE id = $2
  AND cart_id = $1
`, cartID, itemID, qty)
	if err != nil {
		return fmt.Errorf("update qty: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	r.bumpTTL(ctx, cartID)
	return nil
}

func (r *Repository) RemoveItem(ctx context.Context, cartID, itemID int64) error {
	tag, err := r.db.Exec(ctx, `
DELETE FROM cart_items
WHERE id = $2
  AND cart_id = $1
`, cartID, itemID)
	if err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	r.bumpTTL(ctx, cartID)
	return nil
}

func (r *Repository) Clear(ctx context.Context, cartID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// MarkConverted closes the cart after its order was placed. The owner gets a
// fresh cart on the next access.
func (r *Repository) MarkConverted(ctx context.Context, cartID int64) error {
	_, err := r.db.Exec(ctx, `
UPDATE carts
SET status = 'converted', updated_at = now()
WHERE id = $1 AND status = 'active'
`, cartID)
	if err != nil {
		return fmt.Errorf("convert cart: %w", err)
	}
	return nil
}

// MarkExpiredAsAbandoned flips active carts past their TTL to abandoned so
// they stop blocking the one-active-cart index.
func (r *Repository) MarkExpiredAsAbandoned(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
UPDATE carts
SET status = 'abandoned', updated_at = now()
WHERE status = 'active'
  AND expires_at IS NOT NULL
  AND expires_at <= now()
`)
	if err != nil {
		return 0, fmt.Errorf("abandon expired carts: %w", err)
	}
	return tag.RowsAffected(), nil
}
