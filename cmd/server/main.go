package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/stockdash/backend/internal/application/identity"
	inventoryapp "github.com/stockdash/backend/internal/application/inventory"
	"github.com/stockdash/backend/internal/domain/inventory"
	"github.com/stockdash/backend/internal/infrastructure/auth"
	"github.com/stockdash/backend/internal/infrastructure/config"
	"github.com/stockdash/backend/internal/infrastructure/logger"
	"github.com/stockdash/backend/internal/infrastructure/persistence"
	"github.com/stockdash/backend/internal/infrastructure/telemetry"
	"github.com/stockdash/backend/internal/interfaces/http/handler"
	"github.com/stockdash/backend/internal/interfaces/http/middleware"
	"github.com/stockdash/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const slowQueryThreshold = 200 * time.Millisecond

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting inventory dashboard",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("storage", cfg.Storage.Driver),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	// Initialize storage
	var (
		items  inventory.ItemRepository
		pinger handler.Pinger
		db     *persistence.Database
	)
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		items = persistence.NewMemoryItemRepository()
	default:
		db, err = persistence.NewDatabase(&cfg.Storage,
			logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), slowQueryThreshold))
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		dbSystem := "sqlite"
		if cfg.Storage.Driver == config.DriverPostgres {
			dbSystem = "postgresql"
		}
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			Enabled:         cfg.Telemetry.Enabled,
			DBSystem:        dbSystem,
			LogFullSQL:      cfg.IsDevelopment(),
			SlowQueryThresh: slowQueryThreshold,
		}, log); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
		items = persistence.NewGormItemRepository(db.DB)
		pinger = db
		log.Info("Database connected successfully", zap.String("driver", cfg.Storage.Driver))
	}

	if cfg.Storage.Seed {
		if err := persistence.Seed(context.Background(), items); err != nil {
			log.Fatal("Failed to seed inventory", zap.Error(err))
		}
		log.Info("Demo inventory seeded")
	}

	// Initialize services
	directory := persistence.NewStaticPrincipalDirectory(persistence.DemoAccounts())
	codec := auth.NewTokenCodec()
	catalog := persistence.NewStaticCatalog(persistence.DemoCategories(), persistence.DemoSuppliers())

	authService := identityapp.NewAuthService(directory, codec)
	inventoryService := inventoryapp.NewInventoryService(items, catalog)

	// Set Gin mode based on environment
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	gateway := middleware.NewGateway(middleware.NewRouteTable(cfg.Gateway), codec, directory)

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.Use(middleware.GatewayMiddleware(middleware.GatewayMiddlewareConfig{
		Gateway:    gateway,
		CookieName: cfg.Gateway.CookieName,
		SkipPaths:  []string{"/health"},
		Logger:     log,
	}))
	engine.Use(middleware.TracingAttributeInjector())

	var loginMiddleware []gin.HandlerFunc
	var loginLimiter *middleware.RateLimiter
	if cfg.HTTP.LoginRateLimitEnabled {
		loginLimiter = middleware.NewRateLimiter(cfg.HTTP.LoginRateLimitRequests, cfg.HTTP.LoginRateLimitWindow)
		loginMiddleware = append(loginMiddleware, middleware.LoginRateLimit(loginLimiter))
		log.Info("Login rate limiting enabled",
			zap.Int("requests", cfg.HTTP.LoginRateLimitRequests),
			zap.Duration("window", cfg.HTTP.LoginRateLimitWindow),
		)
	}

	var apiMiddleware []gin.HandlerFunc
	var apiLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		apiLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(apiLimiter))
		log.Info("API rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	routes := router.RegisterDashboard(engine, router.Handlers{
		Auth: handler.NewAuthHandler(authService, handler.SessionCookieConfig{
			Name:   cfg.Gateway.CookieName,
			Secure: cfg.Gateway.CookieSecure,
		}),
		Inventory: handler.NewInventoryHandler(inventoryService),
		System:    handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, cfg.Storage.Driver, pinger),
		Pages:     handler.NewPageHandler(cfg.App.Name),
	}, router.DashboardOptions{
		HomePath:        cfg.Gateway.HomePath,
		LoginMiddleware: loginMiddleware,
		APIMiddleware:   apiMiddleware,
	})
	table := gateway.Routes()
	log.Info("Routes registered",
		zap.Int("api_routes", len(routes)),
		zap.Strings("public_paths", table.PublicPaths),
		zap.Strings("public_api_paths", table.PublicAPIPaths),
		zap.Strings("admin_paths", table.AdminPaths),
		zap.String("login_path", table.LoginPath),
		zap.String("home_path", table.HomePath),
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if loginLimiter != nil {
		loginLimiter.Stop()
	}
	if apiLimiter != nil {
		apiLimiter.Stop()
	}
	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
