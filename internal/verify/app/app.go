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

	httpapi "github.com/aussiebroadwan/hireproof/internal/verify/http"
	"github.com/aussiebroadwan/hireproof/internal/verify/metrics"
	"github.com/aussiebroadwan/hireproof/internal/verify/service"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	redisdriver "github.com/aussiebroadwan/hireproof/internal/verify/store/drivers/redis"
	"github.com/aussiebroadwan/hireproof/internal/verify/store/drivers/sqlite"
	"github.com/aussiebroadwan/hireproof/pkg/cryptox"
	"github.com/aussiebroadwan/hireproof/pkg/jwtx"
	"github.com/aussiebroadwan/hireproof/pkg/mailx"
	"github.com/aussiebroadwan/hireproof/pkg/objstore"
	"github.com/aussiebroadwan/hireproof/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// BuildVersion is overridden at build time with -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application owns the verifyd process: stores, background workers and
// the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	redis      *redisdriver.ChallengeStore // nil unless MFA_CHALLENGE_STORE=redis
	challenges store.MFAChallenges
	storage    *objstore.Store
	keyManager *jwtx.KeyManager
	notifier   service.Notifier

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	userService         *service.UserService
	sessionService      *service.SessionService
	mfaService          *service.MFAService
	uploadService       *service.UploadService
	verificationService *service.VerificationService
	reviewService       *service.ReviewService
	auditService        *service.AuditService
	dispatcher          *service.Dispatcher
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "verifyd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initChallengeStore(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	steps := []func(context.Context) error{
		app.initKeys,
		app.initStorage,
		app.initNotifier,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			app.closeStores()
			return nil, err
		}
	}

	app.initMetrics()
	app.initServices()

	if err := app.userService.EnsureBootstrapAdmin(ctx, app.logger, cfg.Bootstrap.Email, cfg.Bootstrap.Password); err != nil {
		app.closeStores()
		return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	app.initHTTP()
	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.dispatcher.Start()
	app.housekeepingService.Start()

	app.logger.Info("verifyd starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.stopWorkers()
			app.closeStores()
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

// Shutdown drains HTTP, then the workers, then closes the stores.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down verifyd...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.stopWorkers()
	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("verifyd stopped")
	return nil
}

func (app *Application) stopWorkers() {
	app.dispatcher.Stop()
	app.housekeepingService.Stop()
}

func (app *Application) closeStores() error {
	var errs []error
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initChallengeStore(ctx context.Context) error {
	if app.cfg.MFA.ChallengeStore != "redis" {
		app.challenges = app.db.MFAChallenges()
		return nil
	}

	rs, err := redisdriver.Open(ctx, app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = rs
	app.challenges = rs
	app.logger.Info("mfa challenges stored in redis")
	return nil
}

func (app *Application) initKeys(context.Context) error {
	km, err := InitSessionKeys(app.cfg.Session, app.logger)
	if err != nil {
		return err
	}
	app.keyManager = km
	return nil
}

func (app *Application) initStorage(ctx context.Context) error {
	s, err := objstore.New(ctx, objstore.Config{
		Bucket:          app.cfg.Storage.Bucket,
		Region:          app.cfg.Storage.Region,
		Endpoint:        app.cfg.Storage.Endpoint,
		AccessKeyID:     app.cfg.Storage.AccessKeyID,
		SecretAccessKey: app.cfg.Storage.SecretAccessKey,
		UsePathStyle:    app.cfg.Storage.UsePathStyle,
		PublicBaseURL:   app.cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	app.storage = s
	return nil
}

func (app *Application) initNotifier(context.Context) error {
	if app.cfg.SMTP.Host == "" {
		app.logger.Warn("SMTP_HOST not set, notifications will be logged instead of emailed")
		app.notifier = &service.LogNotifier{Logger: app.logger}
		return nil
	}

	m, err := mailx.New(mailx.Config{
		Host:     app.cfg.SMTP.Host,
		Port:     app.cfg.SMTP.Port,
		Username: app.cfg.SMTP.Username,
		Password: app.cfg.SMTP.Password,
		From:     app.cfg.SMTP.From,
	})
	if err != nil {
		return fmt.Errorf("failed to configure SMTP: %w", err)
	}
	app.notifier = &service.EmailNotifier{Mailer: m}
	return nil
}

func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.registry)
}

func (app *Application) initServices() {
	app.userService = &service.UserService{Store: app.db}
	app.sessionService = &service.SessionService{
		Signer:   app.keyManager,
		Issuer:   app.cfg.Session.Issuer,
		Audience: app.cfg.Session.Audience,
		TTL:      app.cfg.Session.TTL,
	}
	app.mfaService = &service.MFAService{
		Challenges:     app.challenges,
		Notifier:       app.notifier,
		Metrics:        app.metrics,
		TTL:            app.cfg.MFA.ChallengeTTL,
		ResendCooldown: app.cfg.MFA.ResendCooldown,
		MaxAttempts:    app.cfg.MFA.MaxAttempts,
		SendTimeout:    app.cfg.MFA.SendTimeout,
	}
	app.uploadService = &service.UploadService{
		Store:   app.db,
		Storage: app.storage,
		Metrics: app.metrics,
		SlotTTL: app.cfg.UploadSlotTTL,
	}
	app.verificationService = &service.VerificationService{
		Store:   app.db,
		Storage: app.storage,
		Metrics: app.metrics,
	}

	app.dispatcher = service.NewDispatcher(app.db, app.notifier, app.logger, app.cfg.Dispatch.Interval)
	app.dispatcher.Metrics = app.metrics
	if app.cfg.Dispatch.BatchSize > 0 {
		app.dispatcher.BatchSize = app.cfg.Dispatch.BatchSize
	}
	if app.cfg.Dispatch.MaxAttempts > 0 {
		app.dispatcher.MaxAttempts = app.cfg.Dispatch.MaxAttempts
	}
	if app.cfg.Dispatch.BaseBackoff > 0 {
		app.dispatcher.BaseBackoff = app.cfg.Dispatch.BaseBackoff
	}

	app.reviewService = &service.ReviewService{
		Store:      app.db,
		Dispatcher: app.dispatcher,
		Metrics:    app.metrics,
	}
	app.auditService = &service.AuditService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.challenges,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.metrics,
		app.registry,
		app.logger,
	)

	router.UserService = app.userService
	router.SessionService = app.sessionService
	router.MFAService = app.mfaService
	router.UploadService = app.uploadService
	router.VerificationService = app.verificationService
	router.ReviewService = app.reviewService
	router.AuditService = app.auditService
	if app.redis != nil {
		router.Challenges = app.redis
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
