package main

import (
	"net/http"

	"storefront/internal/checkout"
	"storefront/internal/domain/carts"

	"github.com/go-chi/chi/v5"
)

// CaptureCheckout godoc
//
//	@Summary		Start checkout
//	@Description	Freezes the signed-in user's cart into a checkout snapshot.
//	@Tags			checkout
//	@Produce		json
//	@Success		201	{object}	envelope{data=checkout.Snapshot}
//	@Failure		400	{object}	error	"Empty cart"
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/checkout [post]
func (app *application) captureCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	owner := carts.Owner{UserID: userIDFromContext(r)}

	snap, err := app.checkout.Capture(r.Context(), owner)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, snap); err != nil {
		app.internalServerError(w, r, err)
	}
}

// GetCheckout godoc
//
//	@Summary		Get checkout snapshot
//	@Tags			checkout
//	@Produce		json
//	@Success		200	{object}	envelope{data=checkout.Snapshot}
//	@Failure		401	{object}	error
//	@Failure		404	{object}	error	"No checkout in progress"
//	@Security		ApiKeyAuth
//	@Router			/checkout [get]
func (app *application) getCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := app.checkout.Restore(r.Context(), userIDFromContext(r))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, snap); err != nil {
		app.internalServerError(w, r, err)
	}
}

type orderPlacedResponse struct {
	Code         string `json:"code"`
	TotalCents   int64  `json:"total_cents"`
	DeliveryTime string `json:"delivery_time,omitempty"`
	Message      string `json:"message"`
}

// PlaceOrder godoc
//
//	@Summary		Place order
//	@Description	Rechecks the snapshot and coupon, persists the order and clears the cart.
//	@Tags			checkout
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		checkout.Form	true	"Delivery and payment details"
//	@Success		201		{object}	envelope{data=orderPlacedResponse}
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		404		{object}	error	"No checkout in progress"
//	@Failure		502		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/checkout/orders [post]
func (app *application) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	var form checkout.Form
	if err := readJSON(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.checkout.PlaceOrder(r.Context(), userIDFromContext(r), form)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, orderPlacedResponse{
		Code:         order.Code,
		TotalCents:   order.TotalCents,
		DeliveryTime: order.DeliveryTime,
		Message:      "Pedido realizado com sucesso!",
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// GetOrder godoc
//
//	@Summary		Get order
//	@Description	Looks up one of the signed-in user's orders by its public code.
//	@Tags			checkout
//	@Produce		json
//	@Param			code	path		string	true	"Order code, e.g. PED-7KQ2M9XA"
//	@Success		200		{object}	envelope{data=orders.Order}
//	@Failure		401		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/checkout/orders/{code} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	order, err := app.orders.GetByCode(r.Context(), chi.URLParam(r, "code"), userIDFromContext(r))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}
