package checkout

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/carts"
	"storefront/internal/errs"
	"storefront/internal/shipping"
)

const MsgMissingOwner = "Carrinho não identificado"

// Registry owns the live sessions, one per cart owner. A session is opened
// on first access and lives until End or until it sits idle past Sweep.
type Registry struct {
	carts   CartService
	coupons CouponService
	quoter  shipping.Quoter
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(cs CartService, cp CouponService, q shipping.Quoter) *Registry {
	return &Registry{
		carts:    cs,
		coupons:  cp,
		quoter:   q,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Session returns the live session for owner, opening it when needed.
func (r *Registry) Session(ctx context.Context, owner carts.Owner) (*Session, error) {
	if !owner.Valid() {
		return nil, errs.Validation(MsgMissingOwner)
	}
	key := owner.Key()

	r.mu.Lock()
	s, ok := r.sessions[key]
	r.mu.Unlock()
	if ok {
		return s, nil
	}

	opened, err := openSession(ctx, owner, r.carts, r.coupons, r.quoter, r.now)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[key]; ok {
		return s, nil
	}
	r.sessions[key] = opened
	return opened, nil
}

// End tears down the session of owner, if any.
func (r *Registry) End(owner carts.Owner) {
	r.mu.Lock()
	delete(r.sessions, owner.Key())
	r.mu.Unlock()
}

// Sweep ends sessions idle for longer than maxIdle and reports how many went.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for key, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			delete(r.sessions, key)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
