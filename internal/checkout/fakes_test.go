package checkout

import (
	"context"
	"errors"
	"slices"
	"sync"

	"storefront/internal/domain/carts"
	"storefront/internal/domain/coupons"
	"storefront/internal/domain/orders"
	"storefront/internal/pricing"
)

var errBackend = errors.New("backend unavailable")

type fakeCarts struct {
	mu    sync.Mutex
	items []carts.CartItem
	calls map[string]int

	failNext error
	// gate, when set, blocks SetQuantity until it receives a value; started
	// is signalled once the call is waiting.
	gate    chan struct{}
	started chan struct{}
}

func newFakeCarts(items ...carts.CartItem) *fakeCarts {
	return &fakeCarts{items: items, calls: make(map[string]int)}
}

func (f *fakeCarts) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeCarts) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeCarts) fail(err error) {
	f.mu.Lock()
	f.failNext = err
	f.mu.Unlock()
}

func (f *fakeCarts) GetOrCreateCart(_ context.Context, _ carts.Owner) (int64, error) {
	if err := f.record("get"); err != nil {
		return 0, err
	}
	return 1, nil
}

func (f *fakeCarts) ListItems(_ context.Context, _ int64) ([]carts.CartItem, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items), nil
}

func (f *fakeCarts) AddItem(_ context.Context, cartID int64, in carts.AddItemInput) error {
	if err := f.record("add"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, carts.CartItem{
		ID:       int64(len(f.items) + 100),
		CartID:   cartID,
		Product:  carts.ProductSnapshot{ID: in.ProductID, Name: "Novo", PriceCents: 10_00},
		Quantity: in.Quantity,
	})
	return nil
}

func (f *fakeCarts) SetQuantity(_ context.Context, _, itemID int64, qty int) error {
	if f.gate != nil {
		f.started <- struct{}{}
		<-f.gate
	}
	if err := f.record("set"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].Quantity = qty
			return nil
		}
	}
	return carts.ErrItemNotFound
}

func (f *fakeCarts) RemoveItem(_ context.Context, _, itemID int64) error {
	if err := f.record("remove"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = slices.DeleteFunc(f.items, func(it carts.CartItem) bool { return it.ID == itemID })
	return nil
}

func (f *fakeCarts) Clear(_ context.Context, _ int64) error {
	if err := f.record("clear"); err != nil {
		return err
	}
	f.mu.Lock()
	f.items = nil
	f.mu.Unlock()
	return nil
}

func (f *fakeCarts) MarkConverted(_ context.Context, _ int64) error {
	return f.record("converted")
}

type fakeCoupons struct {
	mu        sync.Mutex
	byCode    map[string]coupons.Coupon
	validates int
	applied   []int64
	err       error
}

func newFakeCoupons(cs ...coupons.Coupon) *fakeCoupons {
	f := &fakeCoupons{byCode: make(map[string]coupons.Coupon)}
	for _, c := range cs {
		f.byCode[c.Code] = c
	}
	return f
}

func (f *fakeCoupons) Validate(_ context.Context, code string, subtotalCents int64) (coupons.Validation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validates++
	if f.err != nil {
		return coupons.Validation{}, f.err
	}
	c, ok := f.byCode[code]
	if !ok {
		return coupons.Validation{Message: coupons.MsgNotFound}, nil
	}
	if subtotalCents < c.MinSubtotalCents {
		return coupons.Validation{Message: "Valor mínimo para este cupom: " + pricing.FormatBRL(c.MinSubtotalCents)}, nil
	}
	return coupons.Validation{Valid: true, Coupon: &c}, nil
}

func (f *fakeCoupons) Apply(_ context.Context, couponID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, couponID)
	return nil
}

type quoteCall struct {
	postalCode string
	subtotal   int64
	freeHint   bool
}

// fakeQuoter charges costCents, or nothing when asked for a free service.
type fakeQuoter struct {
	mu        sync.Mutex
	costCents int64
	calls     []quoteCall
	err       error

	// gate, when set, blocks the next Quote call only; started is signalled
	// once that call is waiting.
	gate    chan struct{}
	started chan struct{}
}

func (f *fakeQuoter) Quote(_ context.Context, postalCode string, subtotalCents int64, freeHint bool) (pricing.ShippingQuote, error) {
	f.mu.Lock()
	gate := f.gate
	f.gate = nil
	f.mu.Unlock()
	if gate != nil {
		f.started <- struct{}{}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, quoteCall{postalCode, subtotalCents, freeHint})
	if f.err != nil {
		return pricing.ShippingQuote{}, f.err
	}
	if freeHint {
		return pricing.ShippingQuote{PostalCode: postalCode, DeliveryTime: "5 a 8 dias úteis", IsFree: true, Description: "Frete grátis"}, nil
	}
	return pricing.ShippingQuote{PostalCode: postalCode, CostCents: f.costCents, DeliveryTime: "5 a 8 dias úteis"}, nil
}

func (f *fakeQuoter) lastCall() quoteCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeQuoter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeOrders struct {
	drafts []orders.Draft
	err    error
}

func (f *fakeOrders) Create(_ context.Context, d orders.Draft) (*orders.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.drafts = append(f.drafts, d)
	return &orders.Order{
		ID:            int64(len(f.drafts)),
		Code:          "PED-TEST1",
		UserID:        d.UserID,
		Status:        orders.StatusPending,
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
	}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	orders []string
}

func (f *fakePublisher) PublishOrderPlaced(_ context.Context, o *orders.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, o.Code)
	return nil
}

type sentMail struct {
	template, username, email string
	data                      any
}

type fakeMailer struct {
	sent chan sentMail
}

func (f *fakeMailer) Send(templateFile, username, email string, data any) (int, error) {
	f.sent <- sentMail{templateFile, username, email, data}
	return 250, nil
}

func item(id, productID, priceCents int64, qty int) carts.CartItem {
	return carts.CartItem{
		ID:     id,
		CartID: 1,
		Product: carts.ProductSnapshot{
			ID:                 productID,
			Name:               "Produto",
			PriceCents:         priceCents,
			OriginalPriceCents: priceCents,
		},
		Quantity: qty,
	}
}
