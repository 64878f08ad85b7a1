package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/clausehq/comply/internal/comply/evidence"
	httpapi "github.com/clausehq/comply/internal/comply/http"
	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/internal/comply/store"
	"github.com/clausehq/comply/internal/comply/store/drivers/sqlite"
	"github.com/clausehq/comply/pkg/slogx"
	"github.com/clausehq/comply/pkg/tokenx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application wires the whole service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	evidence *evidence.Store
	signer   *tokenx.Signer

	invitationService   *service.InvitationService
	authService         *service.AuthService
	bootstrapService    *service.BootstrapService
	memberService       *service.MemberService
	organisationService *service.OrganisationService
	standardService     *service.StandardService
	recordService       *service.RecordService
	notificationService *service.NotificationService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "comply",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ev, err := evidence.NewStore(cfg.EvidenceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize evidence store: %w", err)
	}
	app.evidence = ev

	app.signer = tokenx.NewSigner([]byte(cfg.SessionSecret), cfg.Issuer, cfg.SessionTTL)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("comply service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully stops the server, housekeeping and database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down comply service...")

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

	app.logger.Info("comply service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (app *Application) initServices() {
	app.invitationService = &service.InvitationService{
		Store: app.db,
		TTL:   app.cfg.InviteTTL,
	}
	app.authService = &service.AuthService{
		Store:  app.db,
		Signer: app.signer,
	}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Token: app.cfg.BootstrapToken,
	}
	app.memberService = &service.MemberService{Store: app.db}
	app.organisationService = &service.OrganisationService{Store: app.db}
	app.standardService = &service.StandardService{Store: app.db}
	app.recordService = &service.RecordService{
		Store:    app.db,
		Evidence: app.evidence,
	}
	app.notificationService = &service.NotificationService{Store: app.db}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.NotificationRetention,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.cfg.AppOrigin,
		BuildVersion,
		app.cfg.AllowedOrigins,
		app.db,
		app.logger,
	)
	router.AuthService = app.authService
	router.BootstrapService = app.bootstrapService
	router.InvitationService = app.invitationService
	router.MemberService = app.memberService
	router.OrganisationService = app.organisationService
	router.StandardService = app.standardService
	router.RecordService = app.recordService
	router.NotificationService = app.notificationService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
