package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/docs" // registers the swagger spec
	"storefront/internal/auth"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/domain/carts"
	"storefront/internal/domain/orders"
	"storefront/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type listingLoader interface {
	Load(ctx context.Context, key string, f catalog.ActiveFilterSet) (catalog.Result, error)
}

type facetProvider interface {
	Get(ctx context.Context) (catalog.Facets, error)
	Invalidate(ctx context.Context) error
}

type orderFinder interface {
	GetByCode(ctx context.Context, code string, userID int64) (*orders.Order, error)
}

type sessionRegistry interface {
	Session(ctx context.Context, owner carts.Owner) (*checkout.Session, error)
	End(owner carts.Owner)
	Sweep(maxIdle time.Duration) int
}

type checkoutService interface {
	Capture(ctx context.Context, owner carts.Owner) (checkout.Snapshot, error)
	Restore(ctx context.Context, userID int64) (checkout.Snapshot, error)
	PlaceOrder(ctx context.Context, userID int64, form checkout.Form) (*orders.Order, error)
}

type cartHousekeeper interface {
	MarkExpiredAsAbandoned(ctx context.Context) (int64, error)
}

type application struct {
	config        config
	logger        *zap.SugaredLogger
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	listing       listingLoader
	facets        facetProvider
	sessions      sessionRegistry
	checkout      checkoutService
	orders        orderFinder
	carts         cartHousekeeper
}

type config struct {
	addr        string
	apiURL      string
	env         string
	db          dbConfig
	redis       redisConfig
	kafka       kafkaConfig
	mail        mailConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
	shipping    shippingConfig
	checkout    checkoutConfig
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type dbConfig struct {
	addr          string
	maxConns      int
	maxIdleTime   string
	autoMigrate   bool
	migrationsDir string
}

type redisConfig struct {
	addr string
}

type kafkaConfig struct {
	brokers     []string
	ordersTopic string
}

type mailConfig struct {
	host      string
	port      int
	user      string
	pass      string
	fromEmail string
}

type shippingConfig struct {
	provider   string // table | carrier
	carrierURL string
}

type checkoutConfig struct {
	orderCodeSalt  string
	sessionMaxIdle time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", cartTokenHeader},
		ExposedHeaders:   []string{cartTokenHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(app.RateLimiterMiddleware)

	// signals through ctx.Done() once the request has run too long
	r.Use(middleware.Timeout(60 * time.Second))

	r.NotFound(app.routeNotFoundHandler)

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("//%s/v1/swagger/doc.json", app.config.apiURL)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
		r.With(app.BasicAuthMiddleware()).Delete("/admin/cache/facets", app.invalidateFacetsHandler)

		r.Route("/products", func(r chi.Router) {
			r.With(app.CartOwnerMiddleware).Get("/", app.listProductsHandler)
			r.Get("/facets", app.productFacetsHandler)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(app.CartOwnerMiddleware)

			r.Get("/", app.getCartHandler)
			r.Delete("/", app.clearCartHandler)

			r.Post("/items", app.addCartItemHandler)
			r.Patch("/items/{itemID}", app.updateCartItemHandler)
			r.Delete("/items/{itemID}", app.removeCartItemHandler)

			r.Post("/confirmations/{token}", app.confirmCartActionHandler)

			r.Post("/coupon", app.applyCouponHandler)
			r.Delete("/coupon", app.removeCouponHandler)
			r.Post("/shipping", app.calculateShippingHandler)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Post("/", app.captureCheckoutHandler)
			r.Get("/", app.getCheckoutHandler)
			r.Post("/orders", app.placeOrderHandler)
			r.Get("/orders/{code}", app.getOrderHandler)
		})

		r.With(app.CartOwnerMiddleware).Delete("/session", app.endSessionHandler)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
