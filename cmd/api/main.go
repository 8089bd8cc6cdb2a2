package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"time"

	"storefront/internal/auth"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/db"
	"storefront/internal/domain/carts"
	"storefront/internal/domain/coupons"
	"storefront/internal/domain/orders"
	"storefront/internal/events"
	"storefront/internal/mailer"
	"storefront/internal/ratelimiter"
	"storefront/internal/shipping"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

var version = "0.1.0"

func newQuoter(cfg shippingConfig, logger *zap.SugaredLogger) (shipping.Quoter, error) {
	switch cfg.provider {
	case "table":
		return shipping.NewTableQuoter(), nil
	case "carrier":
		if cfg.carrierURL == "" {
			return nil, errors.New("SHIPPING_CARRIER_URL is required for the carrier provider")
		}
		return shipping.NewCarrierClient(cfg.carrierURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown shipping provider %q", cfg.provider)
	}
}

//	@title			Storefront API
//	@description	Catalog listing, cart and checkout for the storefront.

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer access token

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded:", err)
	}

	cfg := loadConfig()

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if cfg.auth.token.secret == "" {
		logger.Fatal("AUTH_TOKEN_SECRET is required")
	}
	if cfg.checkout.orderCodeSalt == "" {
		logger.Fatal("ORDER_CODE_SALT is required")
	}

	// Database
	if cfg.db.autoMigrate {
		if err := db.Migrate(cfg.db.addr, cfg.db.migrationsDir); err != nil {
			logger.Fatal(err)
		}
		logger.Infow("database migrations applied", "dir", cfg.db.migrationsDir)
	}

	pool, err := db.New(cfg.db.addr, int32(cfg.db.maxConns), cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.redis.addr})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = rdb.Ping(pingCtx).Err()
	cancel()
	if err != nil {
		logger.Fatalw("redis ping failed", "addr", cfg.redis.addr, "error", err)
	}
	defer rdb.Close()

	// Kafka
	publisher := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.kafka.brokers, cfg.kafka.ordersTopic))
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Errorw("closing kafka writer", "error", err)
		}
	}()

	smtp, err := mailer.NewSMTPClient(cfg.mail.host, cfg.mail.port, cfg.mail.user, cfg.mail.pass, cfg.mail.fromEmail)
	if err != nil {
		logger.Fatal(err)
	}

	quoter, err := newQuoter(cfg.shipping, logger)
	if err != nil {
		logger.Fatal(err)
	}

	codes, err := orders.NewCodeGenerator(cfg.checkout.orderCodeSalt)
	if err != nil {
		logger.Fatal(err)
	}

	// Catalog
	catalogRepo := catalog.NewRepository(pool)
	facets := catalog.NewCachedFacets(catalogRepo, rdb, logger)
	listing := catalog.NewListing(catalogRepo, facets, catalog.NewBuilder(catalogRepo))

	// Cart and checkout
	cartRepo := carts.NewRepository(pool)
	couponRepo := coupons.NewRepository(pool)
	orderRepo := orders.NewRepository(pool, codes)
	registry := checkout.NewRegistry(cartRepo, couponRepo, quoter)

	svc := checkout.NewService(checkout.ServiceDeps{
		Registry:  registry,
		Snapshots: checkout.NewRedisSnapshotStore(rdb),
		Carts:     cartRepo,
		Coupons:   couponRepo,
		Orders:    orderRepo,
		Events:    publisher,
		Mailer:    smtp,
		Logger:    logger,
	})

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	app := &application{
		config:        cfg,
		logger:        logger,
		authenticator: auth.NewJWTAuthenticator(cfg.auth.token.secret, cfg.auth.token.iss),
		rateLimiter:   rateLimiter,
		listing:       catalog.NewLoader(listing),
		facets:        facets,
		sessions:      registry,
		checkout:      svc,
		orders:        orderRepo,
		carts:         cartRepo,
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		s := pool.Stat()
		return map[string]any{
			"max_conns":      s.MaxConns(),
			"total_conns":    s.TotalConns(),
			"idle_conns":     s.IdleConns(),
			"acquired_conns": s.AcquiredConns(),
			"acquire_count":  s.AcquireCount(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("cart_sessions", expvar.Func(func() any {
		return registry.Len()
	}))

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	app.runHousekeepingEvery30Mins(bgCtx)

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Errorw("server stopped with error", "error", err)
	}
}
