package checkout

import (
	"context"

	"storefront/internal/domain/carts"
	"storefront/internal/domain/coupons"
	"storefront/internal/domain/orders"
)

// CartService is the part of the cart store a session drives.
type CartService interface {
	GetOrCreateCart(ctx context.Context, owner carts.Owner) (int64, error)
	ListItems(ctx context.Context, cartID int64) ([]carts.CartItem, error)
	AddItem(ctx context.Context, cartID int64, in carts.AddItemInput) error
	SetQuantity(ctx context.Context, cartID, itemID int64, qty int) error
	RemoveItem(ctx context.Context, cartID, itemID int64) error
	Clear(ctx context.Context, cartID int64) error
	MarkConverted(ctx context.Context, cartID int64) error
}

type CouponService interface {
	Validate(ctx context.Context, code string, subtotalCents int64) (coupons.Validation, error)
	Apply(ctx context.Context, couponID int64) error
}

type OrderService interface {
	Create(ctx context.Context, d orders.Draft) (*orders.Order, error)
}

// OrderPublisher announces placed orders to downstream consumers.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, o *orders.Order) error
}
