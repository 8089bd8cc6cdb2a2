package checkout

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/carts"
	"storefront/internal/domain/coupons"
	"storefront/internal/errs"
	"storefront/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shopper = carts.Owner{UserID: 7}
	guest   = carts.Owner{GuestToken: "5f0c2b8e-1d7a-4a51-9a3e-2f1f0f7d9c11"}
)

func freeShip() coupons.Coupon {
	return coupons.Coupon{ID: 1, Code: "FRETEGRATIS", FreeShipping: true, IsActive: true}
}

func tenOff() coupons.Coupon {
	return coupons.Coupon{ID: 2, Code: "DEZ", DiscountCents: 10_00, IsActive: true, MinSubtotalCents: 100_00}
}

type harness struct {
	carts   *fakeCarts
	coupons *fakeCoupons
	quoter  *fakeQuoter
	reg     *Registry
}

func newHarness(items ...carts.CartItem) *harness {
	h := &harness{
		carts:   newFakeCarts(items...),
		coupons: newFakeCoupons(freeShip(), tenOff()),
		quoter:  &fakeQuoter{costCents: 25_00},
	}
	h.reg = NewRegistry(h.carts, h.coupons, h.quoter)
	return h
}

func (h *harness) session(t *testing.T, owner carts.Owner) *Session {
	t.Helper()
	s, err := h.reg.Session(context.Background(), owner)
	require.NoError(t, err)
	return s
}

func TestViewComputesTotals(t *testing.T) {
	h := newHarness(item(1, 10, 100_00, 2), item(2, 11, 50_00, 1))
	s := h.session(t, shopper)

	v, err := s.View()
	require.NoError(t, err)
	assert.Len(t, v.Items, 2)
	assert.Equal(t, int64(250_00), v.Totals.SubtotalCents)
	assert.Equal(t, int64(250_00), v.Totals.TotalCents)
	assert.Nil(t, v.Totals.Shipping)
}

func TestChangeQuantity(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1))
	s := h.session(t, shopper)

	v, err := s.ChangeQuantity(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Items[0].Quantity)
	assert.Equal(t, int64(120_00), v.Totals.SubtotalCents)
}

func TestChangeQuantityRejectsBelowOne(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1))
	s := h.session(t, shopper)

	_, err := s.ChangeQuantity(context.Background(), 1, 0)
	assert.True(t, errs.Is(err, errs.KindValidation))
	assert.Zero(t, h.carts.count("set"))
}

func TestChangeQuantityUnknownItem(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1))
	s := h.session(t, shopper)

	_, err := s.ChangeQuantity(context.Background(), 99, 2)
	assert.True(t, errs.Is(err, errs.KindNotFound))
	assert.Zero(t, h.carts.count("set"))
}

func TestChangeQuantityRejectsDuplicateInFlight(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1))
	h.carts.gate = make(chan struct{})
	h.carts.started = make(chan struct{}, 1)
	s := h.session(t, shopper)

	done := make(chan error, 1)
	go func() {
		_, err := s.ChangeQuantity(context.Background(), 1, 2)
		done <- err
	}()
	<-h.carts.started

	_, err := s.ChangeQuantity(context.Background(), 1, 5)
	assert.True(t, errs.Is(err, errs.KindConflict))

	h.carts.gate <- struct{}{}
	require.NoError(t, <-done)

	assert.Equal(t, 1, h.carts.count("set"))
	assert.Equal(t, 2, s.Items()[0].Quantity)
}

func TestChangeQuantityAcceptedAgainAfterFailure(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1))
	s := h.session(t, shopper)

	h.carts.fail(errBackend)
	_, err := s.ChangeQuantity(context.Background(), 1, 2)
	assert.True(t, errs.Is(err, errs.KindCollaborator))
	assert.Equal(t, 1, s.Items()[0].Quantity, "failed call must not change local state")

	v, err := s.ChangeQuantity(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Items[0].Quantity)
}

func TestChangeQuantityOnOtherItemsRunsConcurrently(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1), item(2, 11, 10_00, 1))
	h.carts.gate = make(chan struct{})
	h.carts.started = make(chan struct{}, 2)
	s := h.session(t, shopper)

	done := make(chan error, 2)
	for _, id := range []int64{1, 2} {
		go func() {
			_, err := s.ChangeQuantity(context.Background(), id, 3)
			done <- err
		}()
	}
	<-h.carts.started
	<-h.carts.started
	h.carts.gate <- struct{}{}
	h.carts.gate <- struct{}{}

	require.NoError(t, <-done)
	require.NoError(t, <-done)
	assert.Equal(t, 2, h.carts.count("set"))
}

func TestRequestClearOnEmptyCartIsNoop(t *testing.T) {
	h := newHarness()
	s := h.session(t, guest)

	conf, err := s.RequestClear()
	require.NoError(t, err)
	assert.Nil(t, conf)
	assert.Zero(t, h.carts.count("clear"))
}

func TestClearNeedsConfirmationAndResetsSession(t *testing.T) {
	h := newHarness(item(1, 10, 150_00, 1))
	s := h.session(t, shopper)
	ctx := context.Background()

	_, err := s.ApplyCoupon(ctx, "dez")
	require.NoError(t, err)
	_, err = s.CalculateShipping(ctx, "60160-230")
	require.NoError(t, err)

	conf, err := s.RequestClear()
	require.NoError(t, err)
	require.NotNil(t, conf)
	assert.Equal(t, ActionClearCart, conf.Action)
	assert.Zero(t, h.carts.count("clear"))

	v, err := s.Confirm(ctx, conf.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, h.carts.count("clear"))
	assert.Empty(t, v.Items)
	assert.Nil(t, v.Coupon)
	assert.Empty(t, v.PostalCode)
	assert.Equal(t, pricing.Totals{}, v.Totals)
}

func TestRemovalFlow(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1), item(2, 11, 10_00, 2))
	s := h.session(t, shopper)
	ctx := context.Background()

	conf, err := s.RequestRemoval(1)
	require.NoError(t, err)
	assert.Equal(t, MsgConfirmRemoval, conf.Message)
	assert.Equal(t, int64(1), conf.ItemID)
	assert.Zero(t, h.carts.count("remove"))

	v, err := s.Confirm(ctx, conf.Token)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.Equal(t, int64(2), v.Items[0].ID)
	assert.Equal(t, int64(20_00), v.Totals.SubtotalCents)

	_, err = s.Confirm(ctx, conf.Token)
	assert.True(t, errs.Is(err, errs.KindNotFound), "a token is single use")
}

func TestRequestRemovalUnknownItem(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1))
	s := h.session(t, shopper)

	_, err := s.RequestRemoval(5)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestConfirmKeepsTokenWhenCartServiceFails(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1))
	s := h.session(t, shopper)
	ctx := context.Background()

	conf, err := s.RequestRemoval(1)
	require.NoError(t, err)

	h.carts.fail(errBackend)
	_, err = s.Confirm(ctx, conf.Token)
	assert.True(t, errs.Is(err, errs.KindCollaborator))
	assert.Len(t, s.Items(), 1)

	v, err := s.Confirm(ctx, conf.Token)
	require.NoError(t, err)
	assert.Empty(t, v.Items)
}

func TestConfirmExpired(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1))
	s := h.session(t, shopper)
	now := time.Now()
	s.now = func() time.Time { return now }

	conf, err := s.RequestRemoval(1)
	require.NoError(t, err)

	now = now.Add(confirmationTTL + time.Second)
	_, err = s.Confirm(context.Background(), conf.Token)
	assert.True(t, errs.Is(err, errs.KindNotFound))
	assert.Zero(t, h.carts.count("remove"))
}

func TestApplyCoupon(t *testing.T) {
	h := newHarness(item(1, 10, 150_00, 1))
	s := h.session(t, shopper)
	ctx := context.Background()

	v, err := s.ApplyCoupon(ctx, "  dez ")
	require.NoError(t, err)
	require.NotNil(t, v.Coupon)
	assert.Equal(t, "DEZ", v.Coupon.Code)
	assert.Equal(t, int64(10_00), v.Totals.DiscountCents)
	assert.Equal(t, int64(140_00), v.Totals.TotalCents)

	v, err = s.ApplyCoupon(ctx, "DEZ")
	require.NoError(t, err)
	assert.Equal(t, int64(140_00), v.Totals.TotalCents)
	assert.Equal(t, 1, h.coupons.validates, "reapplying the same code is idempotent")
}

func TestApplyCouponErrors(t *testing.T) {
	h := newHarness(item(1, 10, 50_00, 1))
	s := h.session(t, shopper)
	ctx := context.Background()

	_, err := s.ApplyCoupon(ctx, "   ")
	assert.True(t, errs.Is(err, errs.KindValidation))

	_, err = s.ApplyCoupon(ctx, "a!")
	assert.True(t, errs.Is(err, errs.KindValidation))
	assert.Zero(t, h.coupons.validates, "malformed codes never reach the coupon service")

	_, err = s.ApplyCoupon(ctx, "NAOEXISTE")
	assert.True(t, errs.Is(err, errs.KindNotFound))
	assert.Equal(t, coupons.MsgNotFound, errs.PublicMessage(err, ""))

	_, err = s.ApplyCoupon(ctx, "DEZ")
	assert.True(t, errs.Is(err, errs.KindValidation))
	assert.Equal(t, "Valor mínimo para este cupom: R$ 100,00", errs.PublicMessage(err, ""))

	h.coupons.err = errBackend
	_, err = s.ApplyCoupon(ctx, "FRETEGRATIS")
	assert.True(t, errs.Is(err, errs.KindCollaborator))

	v, err := s.View()
	require.NoError(t, err)
	assert.Nil(t, v.Coupon)
}

func TestFreeShippingThreshold(t *testing.T) {
	ctx := context.Background()

	h := newHarness(item(1, 10, 200_00, 1))
	s := h.session(t, shopper)
	v, err := s.CalculateShipping(ctx, "60160230")
	require.NoError(t, err)
	assert.True(t, h.quoter.lastCall().freeHint)
	assert.Zero(t, v.Totals.ShippingCents)
	assert.Equal(t, int64(200_00), v.Totals.TotalCents)

	h = newHarness(item(1, 10, 199_99, 1))
	s = h.session(t, shopper)
	v, err = s.CalculateShipping(ctx, "60160230")
	require.NoError(t, err)
	assert.False(t, h.quoter.lastCall().freeHint)
	assert.Equal(t, int64(25_00), v.Totals.ShippingCents)
	assert.Equal(t, int64(224_99), v.Totals.TotalCents)
}

func TestCalculateShippingInvalidPostalCode(t *testing.T) {
	h := newHarness(item(1, 10, 50_00, 1))
	s := h.session(t, shopper)

	_, err := s.CalculateShipping(context.Background(), "6016")
	assert.True(t, errs.Is(err, errs.KindValidation))
	assert.Zero(t, h.quoter.callCount())
}

func TestCalculateShippingCollaboratorFailure(t *testing.T) {
	h := newHarness(item(1, 10, 50_00, 1))
	s := h.session(t, shopper)
	h.quoter.err = errBackend

	_, err := s.CalculateShipping(context.Background(), "60160230")
	assert.True(t, errs.Is(err, errs.KindCollaborator))

	v, err := s.View()
	require.NoError(t, err)
	assert.Empty(t, v.PostalCode)
	assert.Nil(t, v.Totals.Shipping)
}

func TestRemovingFreeShippingCouponRequotesPaidShipping(t *testing.T) {
	h := newHarness(item(1, 10, 150_00, 1))
	s := h.session(t, shopper)
	ctx := context.Background()

	_, err := s.ApplyCoupon(ctx, "FRETEGRATIS")
	require.NoError(t, err)
	v, err := s.CalculateShipping(ctx, "60160-230")
	require.NoError(t, err)
	require.NotNil(t, v.Totals.Shipping)
	assert.Zero(t, v.Totals.ShippingCents)
	assert.Equal(t, 1, h.quoter.callCount())

	v, err = s.RemoveCoupon(ctx)
	require.NoError(t, err)

	require.Equal(t, 2, h.quoter.callCount())
	last := h.quoter.lastCall()
	assert.Equal(t, "60160230", last.postalCode)
	assert.False(t, last.freeHint)
	assert.Nil(t, v.Coupon)
	assert.Equal(t, int64(25_00), v.Totals.ShippingCents)
	assert.Equal(t, int64(175_00), v.Totals.TotalCents)
}

func TestRemovingFreeShippingCouponWithoutPostalCode(t *testing.T) {
	h := newHarness(item(1, 10, 150_00, 1))
	s := h.session(t, shopper)
	ctx := context.Background()

	_, err := s.ApplyCoupon(ctx, "FRETEGRATIS")
	require.NoError(t, err)

	v, err := s.RemoveCoupon(ctx)
	require.NoError(t, err)
	assert.Zero(t, h.quoter.callCount())
	assert.Nil(t, v.Totals.Shipping)
	assert.Zero(t, v.Totals.ShippingCents)
}

func TestRemovingCouponAboveThresholdKeepsShippingFree(t *testing.T) {
	h := newHarness(item(1, 10, 250_00, 1))
	s := h.session(t, shopper)
	ctx := context.Background()

	_, err := s.ApplyCoupon(ctx, "FRETEGRATIS")
	require.NoError(t, err)
	_, err = s.CalculateShipping(ctx, "60160230")
	require.NoError(t, err)

	v, err := s.RemoveCoupon(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, h.quoter.callCount())
	assert.Zero(t, v.Totals.ShippingCents)
}

func TestRequoteFailureLeavesShippingUnset(t *testing.T) {
	h := newHarness(item(1, 10, 150_00, 1))
	s := h.session(t, shopper)
	ctx := context.Background()

	_, err := s.ApplyCoupon(ctx, "FRETEGRATIS")
	require.NoError(t, err)
	_, err = s.CalculateShipping(ctx, "60160230")
	require.NoError(t, err)

	h.quoter.err = errBackend
	v, err := s.RemoveCoupon(ctx)
	require.NoError(t, err)
	assert.Equal(t, NoticeRequoteFailed, v.Notice)
	assert.Nil(t, v.Coupon)
	assert.Nil(t, v.Totals.Shipping)
}

func TestDroppingBelowThresholdRequotes(t *testing.T) {
	h := newHarness(item(1, 10, 100_00, 2))
	s := h.session(t, shopper)
	ctx := context.Background()

	v, err := s.CalculateShipping(ctx, "60160230")
	require.NoError(t, err)
	assert.Zero(t, v.Totals.ShippingCents)

	v, err = s.ChangeQuantity(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, h.quoter.callCount())
	assert.False(t, h.quoter.lastCall().freeHint)
	assert.Equal(t, int64(25_00), v.Totals.ShippingCents)
	assert.Equal(t, int64(125_00), v.Totals.TotalCents)
}

func TestFreeQuoteArrivingAfterDropBelowThresholdIsReplaced(t *testing.T) {
	h := newHarness(item(1, 10, 100_00, 2))
	h.quoter.gate = make(chan struct{})
	h.quoter.started = make(chan struct{}, 1)
	s := h.session(t, shopper)
	ctx := context.Background()

	type result struct {
		v   View
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := s.CalculateShipping(ctx, "60160230")
		done <- result{v, err}
	}()
	<-h.quoter.started

	v, err := s.ChangeQuantity(ctx, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, v.Totals.Shipping)

	close(h.quoter.gate)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, int64(25_00), res.v.Totals.ShippingCents)
	assert.Equal(t, int64(125_00), res.v.Totals.TotalCents)
	assert.Equal(t, 2, h.quoter.callCount())
	assert.False(t, h.quoter.lastCall().freeHint)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, int64(25_00), snap.ShippingCents)
	assert.Equal(t, int64(125_00), snap.TotalCents)
}

func TestStaleFreeQuoteCountsAsUnsetWhileQuoteInFlight(t *testing.T) {
	h := newHarness(item(1, 10, 100_00, 2))
	s := h.session(t, shopper)
	ctx := context.Background()

	_, err := s.CalculateShipping(ctx, "60160230")
	require.NoError(t, err)

	h.quoter.gate = make(chan struct{})
	h.quoter.started = make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		_, err := s.CalculateShipping(ctx, "60160230")
		done <- err
	}()
	<-h.quoter.started

	v, err := s.ChangeQuantity(ctx, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, v.Totals.Shipping, "a free quote the cart no longer earns is not shown as free")
	assert.Equal(t, int64(100_00), v.Totals.TotalCents)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Nil(t, snap.Shipping)

	close(h.quoter.gate)
	require.NoError(t, <-done)

	v, err = s.View()
	require.NoError(t, err)
	assert.Equal(t, int64(25_00), v.Totals.ShippingCents)
}

func TestFreeShippingRemaining(t *testing.T) {
	h := newHarness(item(1, 10, 150_00, 1))
	s := h.session(t, shopper)

	v, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, int64(50_00), v.FreeShippingRemainingCents)
	assert.Equal(t, "Faltam R$ 50,00 para frete grátis!", v.FreeShippingHint)

	v, err = s.ApplyCoupon(context.Background(), "FRETEGRATIS")
	require.NoError(t, err)
	assert.Zero(t, v.FreeShippingRemainingCents)
	assert.Empty(t, v.FreeShippingHint)

	v, err = newHarness().session(t, shopper).View()
	require.NoError(t, err)
	assert.Zero(t, v.FreeShippingRemainingCents, "an empty cart shows no hint")
}

func TestAddItemRefreshesLines(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1))
	s := h.session(t, guest)

	v, err := s.AddItem(context.Background(), carts.AddItemInput{ProductID: 12, Quantity: 2})
	require.NoError(t, err)
	assert.Len(t, v.Items, 2)
	assert.Equal(t, int64(60_00), v.Totals.SubtotalCents)
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()

	h := newHarness()
	_, err := h.session(t, shopper).Snapshot()
	assert.True(t, errs.Is(err, errs.KindValidation))

	h = newHarness(item(1, 10, 40_00, 1))
	_, err = h.session(t, guest).Snapshot()
	assert.True(t, errs.Is(err, errs.KindUnauthorized))

	h = newHarness(item(1, 10, 100_00, 2), item(2, 11, 50_00, 1))
	s := h.session(t, shopper)
	_, err = s.ApplyCoupon(ctx, "DEZ")
	require.NoError(t, err)
	_, err = s.CalculateShipping(ctx, "60160230")
	require.NoError(t, err)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, int64(7), snap.UserID)
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, int64(250_00), snap.SubtotalCents)
	assert.Equal(t, int64(10_00), snap.DiscountCents)
	assert.Zero(t, snap.ShippingCents)
	assert.Equal(t, int64(240_00), snap.TotalCents)
	require.NotNil(t, snap.Shipping)
	require.NotNil(t, snap.Coupon)

	snap.Items[0].Quantity = 99
	assert.Equal(t, 2, s.Items()[0].Quantity, "snapshot must not alias session state")
}

func TestRegistry(t *testing.T) {
	h := newHarness(item(1, 10, 40_00, 1))
	ctx := context.Background()

	a := h.session(t, shopper)
	b := h.session(t, shopper)
	assert.Same(t, a, b)
	assert.Equal(t, 1, h.carts.count("get"))

	h.session(t, guest)
	assert.Equal(t, 2, h.reg.Len())

	h.reg.End(shopper)
	assert.Equal(t, 1, h.reg.Len())
	c := h.session(t, shopper)
	assert.NotSame(t, a, c)

	_, err := h.reg.Session(ctx, carts.Owner{})
	assert.True(t, errs.Is(err, errs.KindValidation))

	h.carts.fail(errBackend)
	_, err = h.reg.Session(ctx, carts.Owner{UserID: 99})
	assert.True(t, errs.Is(err, errs.KindCollaborator))
}

func TestRegistrySweep(t *testing.T) {
	h := newHarness()
	now := time.Now()
	h.reg.now = func() time.Time { return now }

	h.session(t, shopper)
	now = now.Add(2 * time.Hour)
	h.session(t, guest)

	assert.Equal(t, 1, h.reg.Sweep(time.Hour))
	assert.Equal(t, 1, h.reg.Len())
}
