package checkout

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/carts"
	"storefront/internal/domain/orders"
	"storefront/internal/errs"
	"storefront/internal/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serviceHarness struct {
	*harness
	snapshots *RedisSnapshotStore
	orders    *fakeOrders
	events    *fakePublisher
	mail      *fakeMailer
	svc       *Service
}

func newServiceHarness(t *testing.T, items ...carts.CartItem) *serviceHarness {
	t.Helper()
	h := newHarness(items...)
	store, _ := newSnapshotStore(t)

	sh := &serviceHarness{
		harness:   h,
		snapshots: store,
		orders:    &fakeOrders{},
		events:    &fakePublisher{},
		mail:      &fakeMailer{sent: make(chan sentMail, 1)},
	}
	sh.svc = NewService(ServiceDeps{
		Registry:  h.reg,
		Snapshots: store,
		Carts:     h.carts,
		Coupons:   h.coupons,
		Orders:    sh.orders,
		Events:    sh.events,
		Mailer:    sh.mail,
		Logger:    zap.NewNop().Sugar(),
	})
	return sh
}

func (sh *serviceHarness) capture(t *testing.T, coupon string) Snapshot {
	t.Helper()
	ctx := context.Background()
	s := sh.session(t, shopper)
	if coupon != "" {
		_, err := s.ApplyCoupon(ctx, coupon)
		require.NoError(t, err)
	}
	_, err := s.CalculateShipping(ctx, "60160-230")
	require.NoError(t, err)

	snap, err := sh.svc.Capture(ctx, shopper)
	require.NoError(t, err)
	return snap
}

func TestCaptureAndRestore(t *testing.T) {
	sh := newServiceHarness(t, item(1, 10, 100_00, 2), item(2, 11, 50_00, 1))
	snap := sh.capture(t, "DEZ")

	got, err := sh.svc.Restore(context.Background(), shopper.UserID)
	require.NoError(t, err)
	assert.Equal(t, snap.TotalCents, got.TotalCents)
	assert.Equal(t, int64(240_00), got.TotalCents)
	assert.Len(t, got.Items, 2)
}

func TestCaptureRequiresLogin(t *testing.T) {
	sh := newServiceHarness(t, item(1, 10, 100_00, 1))

	_, err := sh.svc.Capture(context.Background(), guest)
	assert.True(t, errs.Is(err, errs.KindUnauthorized))
}

func TestRestoreWithoutSnapshot(t *testing.T) {
	sh := newServiceHarness(t)

	_, err := sh.svc.Restore(context.Background(), 42)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestPlaceOrder(t *testing.T) {
	sh := newServiceHarness(t, item(1, 10, 100_00, 2), item(2, 11, 50_00, 1))
	sh.capture(t, "DEZ")
	ctx := context.Background()

	order, err := sh.svc.PlaceOrder(ctx, shopper.UserID, validForm())
	require.NoError(t, err)
	assert.Equal(t, "PED-TEST1", order.Code)

	require.Len(t, sh.orders.drafts, 1)
	d := sh.orders.drafts[0]
	assert.Equal(t, int64(250_00), d.SubtotalCents)
	assert.Equal(t, int64(10_00), d.DiscountCents)
	assert.Zero(t, d.ShippingCents)
	assert.Equal(t, int64(240_00), d.TotalCents)
	assert.Equal(t, orders.PaymentCreditCard, d.PaymentMethod)
	assert.Equal(t, 10, d.Installments)
	assert.Equal(t, "CE", d.ShipTo.State)
	require.NotNil(t, d.CouponID)
	assert.Equal(t, int64(2), *d.CouponID)
	assert.Len(t, d.Items, 2)

	assert.Equal(t, []int64{2}, sh.coupons.applied)
	assert.Equal(t, 1, sh.carts.count("converted"))
	assert.Equal(t, []string{"PED-TEST1"}, sh.events.orders)
	assert.Zero(t, sh.reg.Len(), "placing an order ends the session")

	_, err = sh.svc.Restore(ctx, shopper.UserID)
	assert.True(t, errs.Is(err, errs.KindNotFound), "snapshot is removed after the order")

	select {
	case m := <-sh.mail.sent:
		assert.Equal(t, mailer.OrderConfirmationTemplate, m.template)
		assert.Equal(t, "maria@example.com", m.email)
		data, ok := m.data.(mailer.OrderConfirmation)
		require.True(t, ok)
		assert.Equal(t, "R$ 240,00", data.Total)
		assert.Equal(t, "Cartão de Crédito em 10x", data.Payment)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation mail not sent")
	}
}

func TestPlaceOrderBoleto(t *testing.T) {
	sh := newServiceHarness(t, item(1, 10, 80_00, 1))
	sh.capture(t, "")

	f := validForm()
	f.PaymentMethod = PayBoleto
	_, err := sh.svc.PlaceOrder(context.Background(), shopper.UserID, f)
	require.NoError(t, err)

	d := sh.orders.drafts[0]
	assert.Equal(t, orders.PaymentBoleto, d.PaymentMethod)
	assert.Equal(t, 1, d.Installments)
	assert.Equal(t, int64(25_00), d.ShippingCents)
	assert.Equal(t, int64(105_00), d.TotalCents)
	assert.Nil(t, d.CouponID)
	assert.Empty(t, sh.coupons.applied)
}

func TestPlaceOrderRequiresShipping(t *testing.T) {
	sh := newServiceHarness(t, item(1, 10, 80_00, 1))
	ctx := context.Background()
	sh.session(t, shopper)
	_, err := sh.svc.Capture(ctx, shopper)
	require.NoError(t, err)

	_, err = sh.svc.PlaceOrder(ctx, shopper.UserID, validForm())
	assert.True(t, errs.Is(err, errs.KindValidation))
	assert.Equal(t, MsgShippingMissing, errs.PublicMessage(err, ""))
	assert.Empty(t, sh.orders.drafts)
}

func TestPlaceOrderRejectsInvalidForm(t *testing.T) {
	sh := newServiceHarness(t, item(1, 10, 80_00, 1))
	sh.capture(t, "")

	f := validForm()
	f.CPF = "123"
	_, err := sh.svc.PlaceOrder(context.Background(), shopper.UserID, f)
	assert.Equal(t, MsgInvalidCPF, errs.PublicMessage(err, ""))
	assert.Empty(t, sh.orders.drafts)
}

func TestPlaceOrderRechecksCoupon(t *testing.T) {
	sh := newServiceHarness(t, item(1, 10, 150_00, 1))
	sh.capture(t, "DEZ")
	delete(sh.coupons.byCode, "DEZ")

	_, err := sh.svc.PlaceOrder(context.Background(), shopper.UserID, validForm())
	assert.True(t, errs.Is(err, errs.KindValidation))
	assert.Empty(t, sh.orders.drafts)
}

func TestPlaceOrderRejectsFreeShippingNoLongerGranted(t *testing.T) {
	sh := newServiceHarness(t, item(1, 10, 80_00, 1))
	snap := sh.capture(t, "FRETEGRATIS")
	require.True(t, snap.Shipping.IsFree)

	c := sh.coupons.byCode["FRETEGRATIS"]
	c.FreeShipping = false
	sh.coupons.byCode["FRETEGRATIS"] = c

	_, err := sh.svc.PlaceOrder(context.Background(), shopper.UserID, validForm())
	assert.True(t, errs.Is(err, errs.KindValidation))
	assert.Equal(t, MsgShippingChanged, errs.PublicMessage(err, ""))
	assert.Empty(t, sh.orders.drafts)
}

func TestPlaceOrderCollaboratorFailureKeepsSnapshot(t *testing.T) {
	sh := newServiceHarness(t, item(1, 10, 80_00, 1))
	sh.capture(t, "")
	sh.orders.err = errBackend
	ctx := context.Background()

	_, err := sh.svc.PlaceOrder(ctx, shopper.UserID, validForm())
	assert.True(t, errs.Is(err, errs.KindCollaborator))

	_, err = sh.svc.Restore(ctx, shopper.UserID)
	assert.NoError(t, err)
	assert.Zero(t, sh.carts.count("converted"))
	assert.Equal(t, 1, sh.reg.Len())
}

func TestPlaceOrderRequiresUser(t *testing.T) {
	sh := newServiceHarness(t)

	_, err := sh.svc.PlaceOrder(context.Background(), 0, validForm())
	assert.True(t, errs.Is(err, errs.KindUnauthorized))
}
