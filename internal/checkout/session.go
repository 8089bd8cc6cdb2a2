// Package checkout holds the per-shopper cart session and turns a captured
// cart into an order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"storefront/internal/domain/carts"
	"storefront/internal/domain/coupons"
	"storefront/internal/errs"
	"storefront/internal/pricing"
	"storefront/internal/shipping"

	"github.com/google/uuid"
)

const confirmationTTL = 5 * time.Minute

// Shopper-facing messages.
const (
	MsgItemBusy          = "Aguarde, este item já está sendo atualizado"
	MsgCouponBusy        = "Aguarde, o cupom já está sendo processado"
	MsgShippingBusy      = "Aguarde, o frete já está sendo calculado"
	MsgClearBusy         = "Aguarde, o carrinho já está sendo esvaziado"
	MsgItemNotFound      = "Item não encontrado no carrinho"
	MsgProductGone       = "Produto indisponível"
	MsgInvalidQuantity   = "A quantidade deve ser pelo menos 1"
	MsgEmptyCouponCode   = "Digite um código de cupom"
	MsgInvalidCouponCode = "Código de cupom inválido"
	MsgConfirmRemoval    = "Tem certeza que deseja remover este item do carrinho?"
	MsgConfirmClear      = "Tem certeza que deseja esvaziar o carrinho?"
	MsgNoConfirmation    = "Confirmação expirada ou inexistente"
	MsgEmptyCart         = "Seu carrinho está vazio"
	MsgLoginRequired     = "Faça login para finalizar a compra"
	NoticeRequoteFailed  = "Não foi possível recalcular o frete. Informe o CEP novamente."

	// HintFreeShippingRemaining takes the formatted missing amount.
	HintFreeShippingRemaining = "Faltam %s para frete grátis!"
)

type Action string

const (
	ActionRemoveItem Action = "remove_item"
	ActionClearCart  Action = "clear_cart"
)

// Confirmation is handed out for destructive actions. Nothing is mutated
// until the token is passed back to Confirm.
type Confirmation struct {
	Token     string    `json:"token"`
	Action    Action    `json:"action"`
	ItemID    int64     `json:"item_id,omitempty"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

type pendingAction struct {
	action  Action
	itemID  int64
	expires time.Time
}

// View is what the cart page renders.
type View struct {
	Items      []carts.CartItem       `json:"items"`
	Totals     pricing.Totals         `json:"totals"`
	Coupon     *pricing.AppliedCoupon `json:"coupon,omitempty"`
	PostalCode string                 `json:"postal_code,omitempty"`
	Notice     string                 `json:"notice,omitempty"`

	FreeShippingRemainingCents int64  `json:"free_shipping_remaining_cents,omitempty"`
	FreeShippingHint           string `json:"free_shipping_hint,omitempty"`
}

// Session is the cart state of one shopper. Collaborator calls run without
// holding mu, and local state only changes once a call has succeeded.
type Session struct {
	owner   carts.Owner
	cartID  int64
	carts   CartService
	coupons CouponService
	quoter  shipping.Quoter
	now     func() time.Time

	items *inflight[int64]
	ops   *inflight[string]

	mu         sync.Mutex
	lines      []carts.CartItem
	coupon     *pricing.AppliedCoupon
	postalCode string
	// rawQuote is the carrier's answer before free-shipping rules.
	rawQuote *pricing.ShippingQuote
	// quotedFree records that rawQuote was requested with the free hint and
	// may carry a zero cost that no longer applies.
	quotedFree bool
	pending    map[string]pendingAction
	lastSeen   time.Time
}

func openSession(ctx context.Context, owner carts.Owner, cs CartService, cp CouponService, q shipping.Quoter, now func() time.Time) (*Session, error) {
	cartID, err := cs.GetOrCreateCart(ctx, owner)
	if err != nil {
		return nil, errs.Collaborator("get cart", err)
	}
	items, err := cs.ListItems(ctx, cartID)
	if err != nil {
		return nil, errs.Collaborator("list cart items", err)
	}

	return &Session{
		owner:    owner,
		cartID:   cartID,
		carts:    cs,
		coupons:  cp,
		quoter:   q,
		now:      now,
		items:    newInflight[int64](),
		ops:      newInflight[string](),
		lines:    items,
		pending:  make(map[string]pendingAction),
		lastSeen: now(),
	}, nil
}

func (s *Session) Owner() carts.Owner { return s.owner }

func (s *Session) CartID() int64 { return s.cartID }

// Items returns a copy of the cart lines.
func (s *Session) Items() []carts.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

func (s *Session) View() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() (View, error) {
	s.lastSeen = s.now()

	quote := s.rawQuote
	if s.staleFreeQuoteLocked() {
		quote = nil
	}
	totals, err := pricing.ComputeTotals(toLines(s.lines), s.coupon, quote)
	if err != nil {
		return View{}, err
	}
	v := View{
		Items:      slices.Clone(s.lines),
		Totals:     totals,
		PostalCode: s.postalCode,
	}
	if len(s.lines) > 0 {
		v.FreeShippingRemainingCents = pricing.FreeShippingRemaining(totals.SubtotalCents, s.coupon)
	}
	if v.FreeShippingRemainingCents > 0 {
		v.FreeShippingHint = fmt.Sprintf(HintFreeShippingRemaining, pricing.FormatBRL(v.FreeShippingRemainingCents))
	}
	if s.coupon != nil {
		c := *s.coupon
		v.Coupon = &c
	}
	return v, nil
}

// Refresh reloads the cart lines from the cart service.
func (s *Session) Refresh(ctx context.Context) (View, error) {
	items, err := s.carts.ListItems(ctx, s.cartID)
	if err != nil {
		return View{}, errs.Collaborator("list cart items", err)
	}

	s.mu.Lock()
	s.lines = items
	s.mu.Unlock()

	return s.settle(ctx)
}

func (s *Session) AddItem(ctx context.Context, in carts.AddItemInput) (View, error) {
	release, ok := s.ops.acquire("add:" + strconv.FormatInt(in.ProductID, 10))
	if !ok {
		return View{}, errs.Conflict(MsgItemBusy)
	}
	defer release()

	if err := s.carts.AddItem(ctx, s.cartID, in); err != nil {
		return View{}, cartError("add cart item", err)
	}
	return s.Refresh(ctx)
}

// ChangeQuantity sets the quantity of one line. A second change for the same
// line while the first is still running fails with a conflict.
func (s *Session) ChangeQuantity(ctx context.Context, itemID int64, qty int) (View, error) {
	if qty < 1 {
		return View{}, errs.Validation(MsgInvalidQuantity)
	}

	release, ok := s.items.acquire(itemID)
	if !ok {
		return View{}, errs.Conflict(MsgItemBusy)
	}
	defer release()

	if !s.hasItem(itemID) {
		return View{}, errs.NotFound(MsgItemNotFound)
	}

	if err := s.carts.SetQuantity(ctx, s.cartID, itemID, qty); err != nil {
		return View{}, cartError("set item quantity", err)
	}

	s.mu.Lock()
	s.lines = slices.Clone(s.lines)
	for i := range s.lines {
		if s.lines[i].ID == itemID {
			s.lines[i].Quantity = qty
		}
	}
	s.mu.Unlock()

	return s.settle(ctx)
}

func (s *Session) RequestRemoval(itemID int64) (*Confirmation, error) {
	if !s.hasItem(itemID) {
		return nil, errs.NotFound(MsgItemNotFound)
	}
	return s.request(pendingAction{action: ActionRemoveItem, itemID: itemID}, MsgConfirmRemoval), nil
}

// RequestClear asks for confirmation before emptying the cart. An empty cart
// needs none and yields a nil confirmation.
func (s *Session) RequestClear() (*Confirmation, error) {
	s.mu.Lock()
	empty := len(s.lines) == 0
	s.mu.Unlock()
	if empty {
		return nil, nil
	}
	return s.request(pendingAction{action: ActionClearCart}, MsgConfirmClear), nil
}

func (s *Session) request(p pendingAction, msg string) *Confirmation {
	p.expires = s.now().Add(confirmationTTL)
	token := uuid.NewString()

	s.mu.Lock()
	for t, old := range s.pending {
		if !old.expires.After(s.now()) {
			delete(s.pending, t)
		}
	}
	s.pending[token] = p
	s.mu.Unlock()

	return &Confirmation{
		Token:     token,
		Action:    p.action,
		ItemID:    p.itemID,
		Message:   msg,
		ExpiresAt: p.expires,
	}
}

// Confirm carries out a pending destructive action. The token stays valid
// when the cart service fails so the shopper can retry.
func (s *Session) Confirm(ctx context.Context, token string) (View, error) {
	s.mu.Lock()
	p, ok := s.pending[token]
	if ok {
		delete(s.pending, token)
	}
	s.mu.Unlock()

	if !ok || !p.expires.After(s.now()) {
		return View{}, errs.NotFound(MsgNoConfirmation)
	}

	var err error
	switch p.action {
	case ActionRemoveItem:
		err = s.removeItem(ctx, p.itemID)
	case ActionClearCart:
		err = s.clear(ctx)
	default:
		err = errs.Invariant("unknown action %q", p.action)
	}
	if err != nil {
		if errs.Is(err, errs.KindCollaborator) || errs.Is(err, errs.KindConflict) {
			s.mu.Lock()
			s.pending[token] = p
			s.mu.Unlock()
		}
		return View{}, err
	}

	return s.settle(ctx)
}

func (s *Session) removeItem(ctx context.Context, itemID int64) error {
	release, ok := s.items.acquire(itemID)
	if !ok {
		return errs.Conflict(MsgItemBusy)
	}
	defer release()

	if err := s.carts.RemoveItem(ctx, s.cartID, itemID); err != nil {
		return cartError("remove cart item", err)
	}

	s.mu.Lock()
	s.lines = slices.DeleteFunc(slices.Clone(s.lines), func(it carts.CartItem) bool { return it.ID == itemID })
	s.mu.Unlock()
	return nil
}

func (s *Session) clear(ctx context.Context) error {
	release, ok := s.ops.acquire("clear")
	if !ok {
		return errs.Conflict(MsgClearBusy)
	}
	defer release()

	if err := s.carts.Clear(ctx, s.cartID); err != nil {
		return cartError("clear cart", err)
	}
	s.reset()
	return nil
}

// reset drops everything derived from the cart contents.
func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.coupon = nil
	s.postalCode = ""
	s.rawQuote = nil
	s.quotedFree = false
	clear(s.pending)
}

// ApplyCoupon validates code against the current subtotal and applies it.
// Applying the code that is already applied changes nothing.
func (s *Session) ApplyCoupon(ctx context.Context, code string) (View, error) {
	code = coupons.NormalizeCode(code)
	if code == "" {
		return View{}, errs.Validation(MsgEmptyCouponCode)
	}
	if !coupons.ValidCode(code) {
		return View{}, errs.Validation(MsgInvalidCouponCode)
	}

	release, ok := s.ops.acquire("coupon")
	if !ok {
		return View{}, errs.Conflict(MsgCouponBusy)
	}
	defer release()

	s.mu.Lock()
	if s.coupon != nil && s.coupon.Code == code {
		v, err := s.viewLocked()
		s.mu.Unlock()
		return v, err
	}
	subtotal, err := pricing.Subtotal(toLines(s.lines))
	s.mu.Unlock()
	if err != nil {
		return View{}, err
	}

	res, err := s.coupons.Validate(ctx, code, subtotal)
	if err != nil {
		return View{}, errs.Collaborator("validate coupon", err)
	}
	if !res.Valid || res.Coupon == nil {
		if res.Message == coupons.MsgNotFound {
			return View{}, errs.NotFound(res.Message)
		}
		msg := res.Message
		if msg == "" {
			msg = MsgInvalidCouponCode
		}
		return View{}, errs.Validation(msg)
	}

	s.mu.Lock()
	s.coupon = &pricing.AppliedCoupon{
		ID:            res.Coupon.ID,
		Code:          res.Coupon.Code,
		DiscountCents: res.Coupon.DiscountCents,
		FreeShipping:  res.Coupon.FreeShipping,
	}
	s.mu.Unlock()

	return s.settle(ctx)
}

// RemoveCoupon drops the applied coupon. When that coupon was what made
// shipping free and the subtotal is below the threshold, paid shipping is
// quoted again for the known postal code, or left unset when there is none.
func (s *Session) RemoveCoupon(ctx context.Context) (View, error) {
	release, ok := s.ops.acquire("coupon")
	if !ok {
		return View{}, errs.Conflict(MsgCouponBusy)
	}
	defer release()

	s.mu.Lock()
	removed := s.coupon
	s.coupon = nil
	subtotal, err := pricing.Subtotal(toLines(s.lines))
	if err != nil {
		s.coupon = removed
		s.mu.Unlock()
		return View{}, err
	}
	requote := removed != nil && removed.FreeShipping && subtotal < pricing.FreeShippingThresholdCents
	if requote && s.postalCode == "" {
		s.rawQuote = nil
		s.quotedFree = false
		requote = false
	}
	s.mu.Unlock()

	if requote {
		return s.requote(ctx)
	}
	return s.settle(ctx)
}

// CalculateShipping quotes delivery to rawPostalCode and keeps the answer for
// every later totals computation.
func (s *Session) CalculateShipping(ctx context.Context, rawPostalCode string) (View, error) {
	cep, err := shipping.NormalizePostalCode(rawPostalCode)
	if err != nil {
		return View{}, err
	}

	release, ok := s.ops.acquire("shipping")
	if !ok {
		return View{}, errs.Conflict(MsgShippingBusy)
	}
	defer release()

	s.mu.Lock()
	subtotal, err := pricing.Subtotal(toLines(s.lines))
	hint := pricing.FreeShippingGranted(subtotal, s.coupon)
	s.mu.Unlock()
	if err != nil {
		return View{}, err
	}

	q, err := s.quoter.Quote(ctx, cep, subtotal, hint)
	if err != nil {
		if errs.Is(err, errs.KindValidation) {
			return View{}, err
		}
		return View{}, errs.Collaborator("quote shipping", err)
	}

	s.mu.Lock()
	s.postalCode = cep
	s.rawQuote = &q
	s.quotedFree = hint
	if !s.staleFreeQuoteLocked() {
		defer s.mu.Unlock()
		return s.viewLocked()
	}
	subtotal, err = pricing.Subtotal(toLines(s.lines))
	s.mu.Unlock()
	if err != nil {
		return View{}, err
	}

	// The cart stopped qualifying for free shipping while the quote was in
	// flight.
	return s.quotePaid(ctx, cep, subtotal)
}

// staleFreeQuoteLocked reports whether the stored quote was requested as a
// free one that the cart no longer qualifies for. Such a quote counts as no
// quote at all.
func (s *Session) staleFreeQuoteLocked() bool {
	if s.rawQuote == nil || !s.quotedFree {
		return false
	}
	subtotal, err := pricing.Subtotal(toLines(s.lines))
	return err == nil && !pricing.FreeShippingGranted(subtotal, s.coupon)
}

// settle re-quotes shipping when the stored quote was a free one that the
// cart no longer qualifies for, then returns the view.
func (s *Session) settle(ctx context.Context) (View, error) {
	s.mu.Lock()
	if s.staleFreeQuoteLocked() {
		s.mu.Unlock()
		return s.requote(ctx)
	}
	defer s.mu.Unlock()
	return s.viewLocked()
}

// requote asks for a paid quote for the known postal code. When another
// quote is already in flight it is left to settle the state, and until then a
// stale free quote shows as unset shipping.
func (s *Session) requote(ctx context.Context) (View, error) {
	release, ok := s.ops.acquire("shipping")
	if !ok {
		return s.View()
	}
	defer release()

	s.mu.Lock()
	cep := s.postalCode
	subtotal, err := pricing.Subtotal(toLines(s.lines))
	s.mu.Unlock()
	if err != nil {
		return View{}, err
	}

	return s.quotePaid(ctx, cep, subtotal)
}

// quotePaid stores a paid quote for cep. The caller holds the shipping guard.
// A failure leaves shipping unset and is reported as a notice on the view:
// the action that led here has already been committed.
func (s *Session) quotePaid(ctx context.Context, cep string, subtotal int64) (View, error) {
	q, qerr := s.quoter.Quote(ctx, cep, subtotal, false)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.postalCode != cep {
		return s.viewLocked()
	}
	if qerr != nil {
		s.rawQuote = nil
		s.quotedFree = false
		v, err := s.viewLocked()
		v.Notice = NoticeRequoteFailed
		return v, err
	}
	s.rawQuote = &q
	s.quotedFree = false
	return s.viewLocked()
}

// Snapshot captures the cart for checkout. It requires a signed-in owner and
// at least one item.
func (s *Session) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return Snapshot{}, errs.Validation(MsgEmptyCart)
	}
	if !s.owner.Authenticated() {
		return Snapshot{}, errs.Unauthorized(MsgLoginRequired)
	}

	v, err := s.viewLocked()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		CartID:        s.cartID,
		UserID:        s.owner.UserID,
		Items:         v.Items,
		SubtotalCents: v.Totals.SubtotalCents,
		DiscountCents: v.Totals.DiscountCents,
		ShippingCents: v.Totals.ShippingCents,
		TotalCents:    v.Totals.TotalCents,
		Coupon:        v.Coupon,
		Shipping:      v.Totals.Shipping,
		CapturedAt:    s.now().UTC(),
	}, nil
}

func (s *Session) hasItem(itemID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.lines, func(it carts.CartItem) bool { return it.ID == itemID })
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func toLines(items []carts.CartItem) []pricing.Line {
	lines := make([]pricing.Line, len(items))
	for i, it := range items {
		lines[i] = pricing.Line{
			ProductID:      it.Product.ID,
			UnitPriceCents: it.Product.PriceCents,
			Quantity:       it.Quantity,
		}
	}
	return lines
}

func cartError(op string, err error) error {
	switch {
	case errors.Is(err, carts.ErrItemNotFound):
		return errs.NotFound(MsgItemNotFound)
	case errors.Is(err, carts.ErrProductUnavailable):
		return errs.NotFound(MsgProductGone)
	case errors.Is(err, carts.ErrInvalidQuantity):
		return errs.Validation(MsgInvalidQuantity)
	default:
		return errs.Collaborator(op, err)
	}
}
