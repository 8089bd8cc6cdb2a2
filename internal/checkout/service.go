package checkout

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain/carts"
	"storefront/internal/domain/coupons"
	"storefront/internal/domain/orders"
	"storefront/internal/errs"
	"storefront/internal/mailer"
	"storefront/internal/pricing"

	"go.uber.org/zap"
)

// DefaultState is recorded on every order address; the store ships from and
// to a single state.
const DefaultState = "CE"

const followUpTimeout = 10 * time.Second

type ServiceDeps struct {
	Registry  *Registry
	Snapshots SnapshotStore
	Carts     CartService
	Coupons   CouponService
	Orders    OrderService
	Events    OrderPublisher
	Mailer    mailer.Client
	Logger    *zap.SugaredLogger
}

// Service moves a cart through checkout: it captures the cart, restores it
// on the checkout page and places the order.
type Service struct {
	registry  *Registry
	snapshots SnapshotStore
	carts     CartService
	coupons   CouponService
	orders    OrderService
	events    OrderPublisher
	mailer    mailer.Client
	logger    *zap.SugaredLogger
}

func NewService(d ServiceDeps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		registry:  d.Registry,
		snapshots: d.Snapshots,
		carts:     d.Carts,
		coupons:   d.Coupons,
		orders:    d.Orders,
		events:    d.Events,
		mailer:    d.Mailer,
		logger:    logger,
	}
}

// Capture stores the current cart of owner for the checkout page.
func (s *Service) Capture(ctx context.Context, owner carts.Owner) (Snapshot, error) {
	sess, err := s.registry.Session(ctx, owner)
	if err != nil {
		return Snapshot{}, err
	}
	snap, err := sess.Snapshot()
	if err != nil {
		return Snapshot{}, err
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return Snapshot{}, errs.Collaborator("save snapshot", err)
	}
	return snap, nil
}

func (s *Service) Restore(ctx context.Context, userID int64) (Snapshot, error) {
	snap, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return Snapshot{}, err
		}
		return Snapshot{}, errs.Collaborator("load snapshot", err)
	}
	return snap, nil
}

// PlaceOrder turns the captured cart of userID into an order. Totals are
// computed again from the captured items, and a captured coupon is checked
// again against the current coupon rules.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, form Form) (*orders.Order, error) {
	if userID <= 0 {
		return nil, errs.Unauthorized(MsgLoginRequired)
	}

	snap, err := s.Restore(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(snap.Items) == 0 {
		return nil, errs.Validation(MsgEmptyCart)
	}

	if err := form.Validate(); err != nil {
		return nil, err
	}
	if snap.Shipping == nil {
		return nil, errs.Validation(MsgShippingMissing)
	}

	lines := toLines(snap.Items)
	coupon, err := s.recheckCoupon(ctx, lines, snap.Coupon)
	if err != nil {
		return nil, err
	}
	totals, err := pricing.ComputeTotals(lines, coupon, snap.Shipping)
	if err != nil {
		return nil, err
	}
	// A free quote carries no paid cost to fall back on.
	if snap.Shipping.IsFree && !pricing.FreeShippingGranted(totals.SubtotalCents, coupon) {
		return nil, errs.Validation(MsgShippingChanged)
	}

	method, installments := form.Payment()
	draft := orders.Draft{
		UserID:        userID,
		Items:         draftItems(snap.Items),
		SubtotalCents: totals.SubtotalCents,
		DiscountCents: totals.DiscountCents,
		ShippingCents: totals.ShippingCents,
		TotalCents:    totals.TotalCents,
		PaymentMethod: method,
		Installments:  installments,
		ShipTo:        form.ShipTo(DefaultState),
		DeliveryTime:  snap.Shipping.DeliveryTime,
	}
	if coupon != nil {
		id := coupon.ID
		draft.CouponID = &id
	}
	if err := draft.Validate(); err != nil {
		return nil, errs.Invariant("%v", err)
	}

	order, err := s.orders.Create(ctx, draft)
	if err != nil {
		return nil, errs.Collaborator("create order", err)
	}

	s.followUp(context.WithoutCancel(ctx), snap, order)
	return order, nil
}

func (s *Service) recheckCoupon(ctx context.Context, lines []pricing.Line, applied *pricing.AppliedCoupon) (*pricing.AppliedCoupon, error) {
	if applied == nil {
		return nil, nil
	}
	subtotal, err := pricing.Subtotal(lines)
	if err != nil {
		return nil, err
	}

	res, err := s.coupons.Validate(ctx, applied.Code, subtotal)
	if err != nil {
		return nil, errs.Collaborator("validate coupon", err)
	}
	if !res.Valid || res.Coupon == nil {
		msg := res.Message
		if msg == "" || msg == coupons.MsgNotFound {
			msg = MsgInvalidCouponCode
		}
		return nil, errs.Validation(msg)
	}
	return &pricing.AppliedCoupon{
		ID:            res.Coupon.ID,
		Code:          res.Coupon.Code,
		DiscountCents: res.Coupon.DiscountCents,
		FreeShipping:  res.Coupon.FreeShipping,
	}, nil
}

// followUp runs the steps after an order exists. None of them can undo the
// order, so failures are logged and dropped.
func (s *Service) followUp(ctx context.Context, snap Snapshot, order *orders.Order) {
	ctx, cancel := context.WithTimeout(ctx, followUpTimeout)
	defer cancel()

	if order.CouponID != nil {
		if err := s.coupons.Apply(ctx, *order.CouponID); err != nil {
			s.logger.Warnw("coupon usage not recorded", "order", order.Code, "coupon_id", *order.CouponID, "error", err)
		}
	}

	if err := s.snapshots.Delete(ctx, snap.UserID); err != nil {
		s.logger.Warnw("checkout snapshot not deleted", "order", order.Code, "error", err)
	}

	if err := s.carts.MarkConverted(ctx, snap.CartID); err != nil {
		s.logger.Warnw("cart not marked converted", "order", order.Code, "cart_id", snap.CartID, "error", err)
	}
	s.registry.End(carts.Owner{UserID: snap.UserID})

	if s.events != nil {
		if err := s.events.PublishOrderPlaced(ctx, order); err != nil {
			s.logger.Errorw("order.placed not published", "order", order.Code, "error", err)
		}
	}

	if s.mailer != nil {
		data := confirmationData(order, snap)
		go func() {
			status, err := s.mailer.Send(mailer.OrderConfirmationTemplate, order.ShipTo.FullName, order.ShipTo.Email, data)
			if err != nil {
				s.logger.Errorw("error sending order confirmation", "order", order.Code, "error", err)
				return
			}
			s.logger.Infow("Email sent", "order", order.Code, "status code", status)
		}()
	}

	s.logger.Infow("order placed", "order", order.Code, "user_id", order.UserID, "total_cents", order.TotalCents)
}

func draftItems(items []carts.CartItem) []orders.DraftItem {
	out := make([]orders.DraftItem, len(items))
	for i, it := range items {
		out[i] = orders.DraftItem{
			ProductID:      it.Product.ID,
			ProductName:    it.Product.Name,
			Color:          it.Color,
			Size:           it.Size,
			Quantity:       it.Quantity,
			UnitPriceCents: it.Product.PriceCents,
		}
	}
	return out
}

func confirmationData(o *orders.Order, snap Snapshot) mailer.OrderConfirmation {
	data := mailer.OrderConfirmation{
		Username:     o.ShipTo.FullName,
		OrderCode:    o.Code,
		Subtotal:     pricing.FormatBRL(o.SubtotalCents),
		Shipping:     pricing.FormatBRL(o.ShippingCents),
		Total:        pricing.FormatBRL(o.TotalCents),
		Payment:      paymentLabel(o),
		DeliveryTime: o.DeliveryTime,
	}
	if o.DiscountCents > 0 {
		data.Discount = pricing.FormatBRL(o.DiscountCents)
	}
	for _, it := range snap.Items {
		data.Items = append(data.Items, mailer.OrderLine{
			Quantity: it.Quantity,
			Name:     it.Product.Name,
			Total:    pricing.FormatBRL(it.LineTotalCents()),
		})
	}
	return data
}

func paymentLabel(o *orders.Order) string {
	if o.Installments > 1 {
		return fmt.Sprintf("%s em %dx", o.PaymentMethod, o.Installments)
	}
	return o.PaymentMethod
}
