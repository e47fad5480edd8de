package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/raynerd/attire/internal"
	"github.com/raynerd/attire/internal/auth"
	"github.com/raynerd/attire/internal/bootstrap"
	"github.com/raynerd/attire/internal/handler/api"
	"github.com/raynerd/attire/internal/middleware"
	"github.com/raynerd/attire/internal/payment"
	"github.com/raynerd/attire/internal/postgres"
	"github.com/raynerd/attire/internal/router"
	"github.com/raynerd/attire/internal/routes"
	"github.com/raynerd/attire/internal/service"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize stores
	userStore := postgres.NewUserStore(pool)
	productStore := postgres.NewProductStore(pool)
	cartStore := postgres.NewCartStore(pool)

	// Initialize services
	userService := service.NewUserService(userStore)
	productService := service.NewProductService(productStore, cfg.Catalog.Rules())
	cartService := service.NewCartService(cartStore, productStore)

	// Initialize token manager
	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token manager: %w", err)
	}

	// Initialize payment provider
	logger.Info("Initializing payment provider...")
	provider, err := payment.NewFlutterwaveClient(cfg.Payment.SecretKey, cfg.Payment.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize payment provider: %w", err)
	}
	logger.Info("Payment provider initialized")

	// Ensure the initial admin account exists
	if err := bootstrap.EnsureSuperAdmin(ctx, userStore, &bootstrap.AdminConfig{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
	}, logger); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	metrics := middleware.NewMetrics("attire")

	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	authRateLimiter := middleware.NewRateLimiter(middleware.StrictRateLimiterConfig())
	defer defaultRateLimiter.Stop()
	defer authRateLimiter.Stop()

	// ==========================================================================
	// Build handlers and register routes
	// ==========================================================================

	authHandler := api.NewAuthHandler(userService, tokens, logger)
	authHandler.SecureCookies = cfg.Env == "prod"

	deps := routes.Deps{
		Auth:           authHandler,
		Product:        api.NewProductHandler(productService, logger),
		Cart:           api.NewCartHandler(cartService, logger),
		Payment:        api.NewPaymentHandler(provider, cfg.Payment.RedirectURL, logger),
		StrictLimiter:  authRateLimiter.Middleware,
		MetricsHandler: metrics.Handler(),
	}

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithClientIP(),
		metrics.Middleware,
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		defaultRateLimiter.Middleware,
		middleware.WithIdentity(tokens),
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
		router.CORS([]string{"*"}),
	)

	routes.Register(r, deps)

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
