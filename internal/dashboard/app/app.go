package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/trigger/internal/dashboard/http"
	"github.com/aussiebroadwan/trigger/internal/dashboard/service"
	"github.com/aussiebroadwan/trigger/internal/dashboard/store"
	redisstore "github.com/aussiebroadwan/trigger/internal/dashboard/store/drivers/redis"
	"github.com/aussiebroadwan/trigger/internal/dashboard/store/drivers/sqlite"
	"github.com/aussiebroadwan/trigger/pkg/cryptox"
	"github.com/aussiebroadwan/trigger/pkg/slogx"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the dashboard service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	client *triggersdk.Client

	// Services
	remediationService  *service.RemediationService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "trigger-dashboard",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	if err := app.initClient(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("dashboard starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
		"demo_mode", app.client.GetConfig().DemoMode,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down dashboard...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("dashboard stopped")
	return nil
}

// initStore opens the configured store, applies migrations and, when a
// master key is configured, seals stored settings.
func (app *Application) initStore() error {
	var db store.Store

	switch app.cfg.StoreDriver {
	case StoreDriverSQLite, "":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		sq, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db = sq
	case StoreDriverRedis:
		rs := redisstore.Open(&redis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		db = rs
	default:
		return fmt.Errorf("unknown store driver %q", app.cfg.StoreDriver)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	attrs := []any{"driver", app.cfg.StoreDriver}
	if sq, ok := db.(*sqlite.Store); ok {
		if version, err := sq.SchemaVersion(); err == nil {
			attrs = append(attrs, "schema_version", version)
		}
	}
	app.logger.Info("store ready", attrs...)

	if app.cfg.MasterKeyPath != "" {
		sealer, err := cryptox.NewSealerFromFile(app.cfg.MasterKeyPath)
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to load master key: %w", err)
		}
		db = store.Sealed(db, sealer)
		app.logger.Info("stored settings are encrypted")
	}

	app.db = db
	return nil
}

// initClient restores the trigger API client from the store, seeding it on
// first start.
func (app *Application) initClient(ctx context.Context) error {
	seed, err := LoadSeedConfig(app.cfg.SeedConfigFile)
	if err != nil {
		return err
	}

	client, err := triggersdk.New(ctx, store.NewConfigProvider(app.db),
		triggersdk.WithHTTPClient(&http.Client{Timeout: app.cfg.HTTPClientTimeout}),
		triggersdk.WithExpiryMargin(app.cfg.TokenExpiryMargin),
		triggersdk.WithMaxUploadBytes(app.cfg.MaxUploadBytes),
		triggersdk.WithLogger(app.logger),
		triggersdk.WithDefaultConfig(seed),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize trigger client: %w", err)
	}
	app.client = client

	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.remediationService = &service.RemediationService{
		Client: app.client,
		Store:  app.db,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.SubmissionRetention,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.db, app.logger, httpapi.RouterOptions{
		BuildVersion:   BuildVersion,
		AccessToken:    app.cfg.AccessToken,
		MaxUploadBytes: app.cfg.MaxUploadBytes,
		StrictLimit:    app.cfg.StrictLimit,
		LenientLimit:   app.cfg.LenientLimit,
		TrustProxy:     app.cfg.TrustProxy,
	})

	router.Client = app.client
	router.RemediationService = app.remediationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
