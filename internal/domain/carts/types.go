package carts

import (
	"context"
	"strconv"
	"time"
)

type Cart struct {
	ID         int64      `json:"id"`
	UserID     *int64     `json:"user_id,omitempty"`
	GuestToken *string    `json:"guest_token,omitempty"`
	Status     string     `json:"status"` // active, converted, abandoned
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ProductSnapshot is the product data a cart line displays. Prices are read
// live from the catalog so a line always shows the current price.
type ProductSnapshot struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Slug               string `json:"slug"`
	PriceCents         int64  `json:"price_cents"`
	OriginalPriceCents int64  `json:"original_price_cents"`
	ImageURL           string `json:"image_url"`
}

type CartItem struct {
	ID       int64           `json:"id"`
	CartID   int64           `json:"cart_id"`
	Product  ProductSnapshot `json:"product"`
	Color    string          `json:"color,omitempty"`
	Size     string          `json:"size,omitempty"`
	Quantity int             `json:"quantity"`
}

func (i CartItem) LineTotalCents() int64 {
	return i.Product.PriceCents * int64(i.Quantity)
}

// Owner identifies who a cart belongs to: a signed-in user or an anonymous
// visitor holding a guest token.
type Owner struct {
	UserID     int64
	GuestToken string
}

func (o Owner) Authenticated() bool { return o.UserID > 0 }

// Key is a stable string form of the owner for maps and cache keys.
func (o Owner) Key() string {
	if o.Authenticated() {
		return "user:" + strconv.FormatInt(o.UserID, 10)
	}
	return "guest:" + o.GuestToken
}

func (o Owner) Valid() bool { return o.Authenticated() || o.GuestToken != "" }

type Store interface {
	GetOrCreateCart(ctx context.Context, owner Owner) (int64, error)
	ListItems(ctx context.Context, cartID int64) ([]CartItem, error)
	AddItem(ctx context.Context, cartID int64, in AddItemInput) error
	SetQuantity(ctx context.Context, cartID, itemID int64, qty int) error
	RemoveItem(ctx context.Context, cartID, itemID int64) error
	Clear(ctx context.Context, cartID int64) error
	MarkConverted(ctx context.Context, cartID int64) error

	// housekeeping
	MarkExpiredAsAbandoned(ctx context.Context) (int64, error)
}

type AddItemInput struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Color     string `json:"color" validate:"max=40"`
	Size      string `json:"size" validate:"max=20"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=99"`
}
