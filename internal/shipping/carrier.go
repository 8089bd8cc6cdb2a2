package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/pricing"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// ErrCarrierUnavailable is returned while the circuit to the carrier is open.
var ErrCarrierUnavailable = errors.New("shipping carrier unavailable")

// CarrierClient asks an external rate API for quotes. Calls go through a
// circuit breaker so a failing carrier is not hammered on every cart change.
type CarrierClient struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[pricing.ShippingQuote]
}

type quoteRequest struct {
	PostalCode    string `json:"postal_code"`
	SubtotalCents int64  `json:"subtotal_cents"`
	FreeShipping  bool   `json:"free_shipping"`
}

type quoteResponse struct {
	CostCents    int64  `json:"cost_cents"`
	DeliveryTime string `json:"delivery_time"`
	IsFree       bool   `json:"is_free"`
	Description  string `json:"description"`
}

func NewCarrierClient(baseURL string, logger *zap.SugaredLogger) *CarrierClient {
	st := gobreaker.Settings{
		Name:        "shipping-carrier",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		// A bad CEP is the shopper's fault, not the carrier's.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrInvalidPostalCode)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnw("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &CarrierClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		cb:      gobreaker.NewCircuitBreaker[pricing.ShippingQuote](st),
	}
}

func (c *CarrierClient) Quote(ctx context.Context, postalCode string, subtotalCents int64, freeHint bool) (pricing.ShippingQuote, error) {
	cep, err := NormalizePostalCode(postalCode)
	if err != nil {
		return pricing.ShippingQuote{}, err
	}

	q, err := c.cb.Execute(func() (pricing.ShippingQuote, error) {
		return c.fetch(ctx, cep, subtotalCents, freeHint)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return pricing.ShippingQuote{}, fmt.Errorf("%w: %v", ErrCarrierUnavailable, err)
	}
	return q, err
}

func (c *CarrierClient) fetch(ctx context.Context, cep string, subtotalCents int64, freeHint bool) (pricing.ShippingQuote, error) {
	body, err := json.Marshal(quoteRequest{PostalCode: cep, SubtotalCents: subtotalCents, FreeShipping: freeHint})
	if err != nil {
		return pricing.ShippingQuote{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/quotes", bytes.NewReader(body))
	if err != nil {
		return pricing.ShippingQuote{}, fmt.Errorf("build quote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return pricing.ShippingQuote{}, fmt.Errorf("quote request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest:
		return pricing.ShippingQuote{}, ErrInvalidPostalCode
	case resp.StatusCode != http.StatusOK:
		return pricing.ShippingQuote{}, fmt.Errorf("quote request: unexpected status %d", resp.StatusCode)
	}

	var out quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return pricing.ShippingQuote{}, fmt.Errorf("decode quote: %w", err)
	}

	return pricing.ShippingQuote{
		PostalCode:   cep,
		CostCents:    out.CostCents,
		DeliveryTime: out.DeliveryTime,
		IsFree:       out.IsFree,
		Description:  out.Description,
	}, nil
}
