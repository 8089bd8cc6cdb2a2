package main

import (
	"net/http"
	"strconv"

	"storefront/internal/checkout"
	"storefront/internal/domain/carts"

	"github.com/go-chi/chi/v5"
)

// session resolves the checkout session of the cart owner set by
// CartOwnerMiddleware, writing the error response itself on failure.
func (app *application) session(w http.ResponseWriter, r *http.Request) (*checkout.Session, bool) {
	s, err := app.sessions.Session(r.Context(), getOwnerFromContext(r))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return nil, false
	}
	return s, true
}

func (app *application) writeView(w http.ResponseWriter, r *http.Request, view checkout.View, err error) {
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

func itemIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
}

// GetCart godoc
//
//	@Summary		Get cart
//	@Description	Reloads the cart lines and returns the cart view. Without a bearer token the X-Cart-Token guest cart is used, or a new one is issued.
//	@Tags			cart
//	@Produce		json
//	@Param			X-Cart-Token	header	string	false	"Guest cart token"
//	@Success		200	{object}	envelope{data=checkout.View}
//	@Failure		401	{object}	error
//	@Failure		502	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/cart [get]
func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := app.session(w, r)
	if !ok {
		return
	}

	view, err := s.Refresh(r.Context())
	app.writeView(w, r, view, err)
}

// AddCartItem godoc
//
//	@Summary		Add item
//	@Description	Adds a product to the cart, merging with an existing line of the same color and size.
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Cart-Token	header	string				false	"Guest cart token"
//	@Param			payload			body	carts.AddItemInput	true	"Item"
//	@Success		200	{object}	envelope{data=checkout.View}
//	@Failure		400	{object}	error
//	@Failure		409	{object}	error	"Same product being added already"
//	@Security		ApiKeyAuth
//	@Router			/cart/items [post]
func (app *application) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var payload carts.AddItemInput
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	s, ok := app.session(w, r)
	if !ok {
		return
	}

	view, err := s.AddItem(r.Context(), payload)
	app.writeView(w, r, view, err)
}

type updateQuantityPayload struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem godoc
//
//	@Summary		Change quantity
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			itemID			path	int						true	"Cart item ID"
//	@Param			X-Cart-Token	header	string					false	"Guest cart token"
//	@Param			payload			body	updateQuantityPayload	true	"New quantity"
//	@Success		200	{object}	envelope{data=checkout.View}
//	@Failure		400	{object}	error
//	@Failure		404	{object}	error
//	@Failure		409	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/cart/items/{itemID} [patch]
func (app *application) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload updateQuantityPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	s, ok := app.session(w, r)
	if !ok {
		return
	}

	view, err := s.ChangeQuantity(r.Context(), itemID, payload.Quantity)
	app.writeView(w, r, view, err)
}

// RemoveCartItem godoc
//
//	@Summary		Request item removal
//	@Description	Returns a confirmation to be posted to /cart/confirmations/{token}.
//	@Tags			cart
//	@Produce		json
//	@Param			itemID			path	int		true	"Cart item ID"
//	@Param			X-Cart-Token	header	string	false	"Guest cart token"
//	@Success		202	{object}	envelope{data=checkout.Confirmation}
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/cart/items/{itemID} [delete]
func (app *application) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	s, ok := app.session(w, r)
	if !ok {
		return
	}

	c, err := s.RequestRemoval(itemID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusAccepted, c); err != nil {
		app.internalServerError(w, r, err)
	}
}

// ClearCart godoc
//
//	@Summary		Request clearing the cart
//	@Description	Returns a confirmation, or the view as is when the cart is already empty.
//	@Tags			cart
//	@Produce		json
//	@Param			X-Cart-Token	header	string	false	"Guest cart token"
//	@Success		200	{object}	envelope{data=checkout.View}
//	@Success		202	{object}	envelope{data=checkout.Confirmation}
//	@Security		ApiKeyAuth
//	@Router			/cart [delete]
func (app *application) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := app.session(w, r)
	if !ok {
		return
	}

	c, err := s.RequestClear()
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}
	if c == nil {
		view, err := s.View()
		app.writeView(w, r, view, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusAccepted, c); err != nil {
		app.internalServerError(w, r, err)
	}
}

// ConfirmCartAction godoc
//
//	@Summary		Confirm removal or clearing
//	@Tags			cart
//	@Produce		json
//	@Param			token			path	string	true	"Confirmation token"
//	@Param			X-Cart-Token	header	string	false	"Guest cart token"
//	@Success		200	{object}	envelope{data=checkout.View}
//	@Failure		404	{object}	error	"Unknown or expired confirmation"
//	@Security		ApiKeyAuth
//	@Router			/cart/confirmations/{token} [post]
func (app *application) confirmCartActionHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := app.session(w, r)
	if !ok {
		return
	}

	view, err := s.Confirm(r.Context(), chi.URLParam(r, "token"))
	app.writeView(w, r, view, err)
}

type couponPayload struct {
	Code string `json:"code"`
}

// ApplyCoupon godoc
//
//	@Summary		Apply coupon
//	@Description	Validates the code against the current subtotal and applies it. Free-shipping coupons re-quote shipping.
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Cart-Token	header	string			false	"Guest cart token"
//	@Param			payload			body	couponPayload	true	"Coupon code"
//	@Success		200	{object}	envelope{data=checkout.View}
//	@Failure		400	{object}	error
//	@Failure		404	{object}	error	"Coupon not found"
//	@Security		ApiKeyAuth
//	@Router			/cart/coupon [post]
func (app *application) applyCouponHandler(w http.ResponseWriter, r *http.Request) {
	var payload couponPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	s, ok := app.session(w, r)
	if !ok {
		return
	}

	view, err := s.ApplyCoupon(r.Context(), payload.Code)
	app.writeView(w, r, view, err)
}

// RemoveCoupon godoc
//
//	@Summary		Remove coupon
//	@Tags			cart
//	@Produce		json
//	@Param			X-Cart-Token	header	string	false	"Guest cart token"
//	@Success		200	{object}	envelope{data=checkout.View}
//	@Security		ApiKeyAuth
//	@Router			/cart/coupon [delete]
func (app *application) removeCouponHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := app.session(w, r)
	if !ok {
		return
	}

	view, err := s.RemoveCoupon(r.Context())
	app.writeView(w, r, view, err)
}

type shippingPayload struct {
	PostalCode string `json:"postal_code" validate:"required"`
}

// CalculateShipping godoc
//
//	@Summary		Calculate shipping
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Cart-Token	header	string			false	"Guest cart token"
//	@Param			payload			body	shippingPayload	true	"Destination CEP"
//	@Success		200	{object}	envelope{data=checkout.View}
//	@Failure		400	{object}	error	"Invalid CEP"
//	@Failure		502	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/cart/shipping [post]
func (app *application) calculateShippingHandler(w http.ResponseWriter, r *http.Request) {
	var payload shippingPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	s, ok := app.session(w, r)
	if !ok {
		return
	}

	view, err := s.CalculateShipping(r.Context(), payload.PostalCode)
	app.writeView(w, r, view, err)
}

// endSessionHandler drops the in-memory session of the owner, as on logout.
// The persisted cart is kept.
//
//	@Summary		End cart session
//	@Tags			cart
//	@Param			X-Cart-Token	header	string	false	"Guest cart token"
//	@Success		204
//	@Security		ApiKeyAuth
//	@Router			/session [delete]
func (app *application) endSessionHandler(w http.ResponseWriter, r *http.Request) {
	app.sessions.End(getOwnerFromContext(r))
	w.WriteHeader(http.StatusNoContent)
}
