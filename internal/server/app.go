// Package server wires the auth service together: configuration, storage,
// token keys, notifier, metrics, and the HTTP and gRPC health servers. It
// also handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/arshan09/AuthenticationApp/internal/logging"
	"github.com/arshan09/AuthenticationApp/internal/server/auth"
	"github.com/arshan09/AuthenticationApp/internal/server/config"
	"github.com/arshan09/AuthenticationApp/internal/server/httpapi"
	"github.com/arshan09/AuthenticationApp/internal/server/metrics"
	"github.com/arshan09/AuthenticationApp/internal/server/notify"
	"github.com/arshan09/AuthenticationApp/internal/server/repositories/repomanager"
	"github.com/arshan09/AuthenticationApp/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sethvargo/go-retry"

	gs "github.com/arshan09/AuthenticationApp/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
	health *gs.HealthServer
}

// dbBackoff bounds how long startup waits for PostgreSQL.
var dbBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(6, retry.WithCappedDuration(5*time.Second, retry.NewExponential(250*time.Millisecond)))
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	keys, err := auth.NewKeyRegistry([]byte(c.AccessTokenSecret), []byte(c.RefreshTokenSecret), []byte(c.ResetTokenSecret))
	if err != nil {
		return nil, fmt.Errorf("token keys: %w", err)
	}
	tokens := auth.NewTokenService(keys, auth.TTLs{
		Access:  c.AccessTokenValidityDuration,
		Refresh: c.RefreshTokenValidityDuration,
		Reset:   c.ResetTokenValidityDuration,
	})

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := waitForDB(ctx, db, dbBackoff(), logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	notifier, err := newNotifier(ctx, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	us := services.NewUserService(db, rm, tokens, notifier, c).
		WithMetrics(m).
		WithLogger(logger)

	app := &App{
		config: c,
		logger: logger,
		db:     db,
		http: httpapi.NewServer(c.HTTPAddr(), logger, us, tokens, httpapi.Options{
			Metrics:            m,
			Gatherer:           reg,
			RequireAccessToken: c.RequireAccessToken,
		}),
	}
	if c.GRPCHealthAddr != "" {
		app.health = gs.NewHealthServer(c.GRPCHealthAddr, logger)
	}
	return app, nil
}

// waitForDB pings until the database answers or the backoff gives up.
func waitForDB(ctx context.Context, db *sql.DB, b retry.Backoff, l logging.Logger) error {
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			l.Warn(ctx, "database not ready", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

// newNotifier picks SES when a credential pair is configured and falls back
// to logging the emails otherwise.
func newNotifier(ctx context.Context, c *config.Config, l logging.Logger) (notify.Notifier, error) {
	if c.EmailUser == "" {
		l.Warn(ctx, "EMAIL_USER is not set, emails will only be logged")
		return notify.NewLogNotifier(l), nil
	}
	n, err := notify.NewSESNotifier(ctx, notify.SESConfig{
		User:     c.EmailUser,
		Pass:     c.EmailPass,
		From:     c.EmailFrom,
		Region:   c.EmailRegion,
		Endpoint: c.EmailEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("notifier: %w", err)
	}
	return n, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
		cancelFunc()
	}
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	app.health.SetServing(true)
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc health server stopped", "error", err)
		cancelFunc()
	}
}

// Run blocks until a signal arrives, ctx is cancelled or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.health != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHealthServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
