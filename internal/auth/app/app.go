// Package app assembles the auth service: configuration, storage,
// services, and the HTTP server, with graceful shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/lunamart/lunamart/internal/auth/http"
	"github.com/lunamart/lunamart/internal/auth/mail"
	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/internal/auth/store"
	"github.com/lunamart/lunamart/internal/auth/store/drivers/sqlite"
	"github.com/lunamart/lunamart/pkg/cryptox"
	"github.com/lunamart/lunamart/pkg/jwtx"
	"github.com/lunamart/lunamart/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	sessionService      *service.SessionService
	resetService        *service.ResetService
	userService         *service.UserService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
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

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
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

// initServices initializes all business logic services.
func (app *Application) initServices() error {
	access, err := jwtx.NewHS256([]byte(app.cfg.AccessSecret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("access token authority: %w", err)
	}
	refresh, err := jwtx.NewHS256([]byte(app.cfg.RefreshSecret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("refresh token authority: %w", err)
	}

	app.sessionService = &service.SessionService{
		Store:             app.db,
		Access:            access,
		Refresh:           refresh,
		Issuer:            app.cfg.Issuer,
		AccessTTL:         app.cfg.AccessTTL,
		RefreshTTL:        app.cfg.RefreshTTL,
		LenientRevocation: app.cfg.LenientRevocation,
	}

	app.resetService = &service.ResetService{
		Store:       app.db,
		Mailer:      app.newMailer(),
		OtpTTL:      app.cfg.OtpTTL,
		ResetWindow: app.cfg.ResetWindow,
	}

	app.userService = &service.UserService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.RefreshTTL,
	)

	return nil
}

func (app *Application) newMailer() mail.Mailer {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("no SMTP host configured, reset codes will be logged")
		return &mail.LogMailer{Logger: app.logger}
	}

	addr := fmt.Sprintf("%s:%d", app.cfg.SMTPHost, app.cfg.SMTPPort)
	return mail.NewSMTPMailer(addr, app.cfg.MailFrom, app.cfg.SMTPUser, app.cfg.SMTPPass)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)
	router.SessionService = app.sessionService
	router.ResetService = app.resetService
	router.UserService = app.userService
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
