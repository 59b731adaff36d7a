package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/stampcard/loyalty/internal/loyalty/http"
	"github.com/stampcard/loyalty/internal/loyalty/service"
	"github.com/stampcard/loyalty/internal/loyalty/store"
	"github.com/stampcard/loyalty/internal/loyalty/store/drivers/sqlite"
	"github.com/stampcard/loyalty/pkg/cryptox"
	"github.com/stampcard/loyalty/pkg/jwtx"
	"github.com/stampcard/loyalty/pkg/scantoken"
	"github.com/stampcard/loyalty/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the loyalty service together: config, database, codec,
// services, router, and lifecycle.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	codec  *scantoken.Codec
	signer *jwtx.Signer

	registrationService *service.RegistrationService
	sessionService      *service.SessionService
	userService         *service.UserService
	vendorService       *service.VendorService
	promotionService    *service.PromotionService
	apiKeyService       *service.APIKeyService
	scannerService      *service.ScannerService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates the Application with all dependencies initialized. Missing
// required secrets fail here, before anything listens.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "loyalty-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// The scanner secret has no default. A service that silently fell back
	// to a built-in key would mint tokens anyone could forge.
	if cfg.ScannerSecret == "" {
		return nil, errors.New("SCANNER_SECRET is required")
	}
	cipher, err := scantoken.NewCipher(cfg.ScannerAlgorithm, cfg.ScannerSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scanner cipher: %w", err)
	}
	app.codec = scantoken.NewCodec(cipher, cfg.TokenMaxAge)

	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}
	app.signer, err = jwtx.NewSigner(cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}

	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("loyalty service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"cipher", app.codec.Algorithm(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
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

// Shutdown gracefully stops the server, the housekeeping worker, and the
// database, in that order.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down loyalty service...")

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
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("loyalty service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.registrationService = &service.RegistrationService{Store: app.db, Codec: app.codec}
	app.sessionService = &service.SessionService{Store: app.db, Signer: app.signer}
	app.userService = &service.UserService{Store: app.db}
	app.vendorService = &service.VendorService{Store: app.db}
	app.promotionService = &service.PromotionService{Store: app.db}
	app.apiKeyService = &service.APIKeyService{Store: app.db}
	app.scannerService = &service.ScannerService{Store: app.db, Codec: app.codec}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.codec,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.RegistrationService = app.registrationService
	router.SessionService = app.sessionService
	router.UserService = app.userService
	router.VendorService = app.vendorService
	router.PromotionService = app.promotionService
	router.APIKeyService = app.apiKeyService
	router.ScannerService = app.scannerService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
