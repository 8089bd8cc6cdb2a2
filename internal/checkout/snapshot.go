package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/carts"
	"storefront/internal/errs"
	"storefront/internal/pricing"

	"github.com/redis/go-redis/v9"
)

const SnapshotTTL = 24 * time.Hour

var ErrNoSnapshot error = &errs.Error{Kind: errs.KindNotFound, Msg: "Nenhuma compra em andamento. Volte ao carrinho."}

// Snapshot is the cart as it was when the shopper left it for checkout. It
// is never modified after capture.
type Snapshot struct {
	CartID        int64                  `json:"cart_id"`
	UserID        int64                  `json:"user_id"`
	Items         []carts.CartItem       `json:"items"`
	SubtotalCents int64                  `json:"subtotal_cents"`
	DiscountCents int64                  `json:"discount_cents"`
	ShippingCents int64                  `json:"shipping_cents"`
	TotalCents    int64                  `json:"total_cents"`
	Coupon        *pricing.AppliedCoupon `json:"applied_coupon,omitempty"`
	Shipping      *pricing.ShippingQuote `json:"shipping_info,omitempty"`
	CapturedAt    time.Time              `json:"captured_at"`
}

type SnapshotStore interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context, userID int64) (Snapshot, error)
	Delete(ctx context.Context, userID int64) error
}

type RedisSnapshotStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSnapshotStore(rdb *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{rdb: rdb, ttl: SnapshotTTL}
}

func snapshotKey(userID int64) string {
	return fmt.Sprintf("checkout:snapshot:%d", userID)
}

func (s *RedisSnapshotStore) Save(ctx context.Context, snap Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.rdb.Set(ctx, snapshotKey(snap.UserID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore) Load(ctx context.Context, userID int64) (Snapshot, error) {
	b, err := s.rdb.Get(ctx, snapshotKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func (s *RedisSnapshotStore) Delete(ctx context.Context, userID int64) error {
	if err := s.rdb.Del(ctx, snapshotKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
