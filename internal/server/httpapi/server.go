// Package httpapi serves the auth REST API over fiber.
package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/arshan09/AuthenticationApp/internal/logging"
	"github.com/arshan09/AuthenticationApp/internal/server/auth"
	"github.com/arshan09/AuthenticationApp/internal/server/metrics"
	"github.com/arshan09/AuthenticationApp/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

// Options configures optional collaborators of the HTTP server.
type Options struct {
	Metrics            *metrics.Metrics
	Gatherer           prometheus.Gatherer
	RequireAccessToken bool
}

type Server struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	tokens  *auth.TokenService
	metrics *metrics.Metrics
	app     *fiber.App
}

func NewServer(a string, l logging.Logger, us *services.UserService, ts *auth.TokenService, opts Options) *Server {
	s := &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		tokens:  ts,
		metrics: opts.Metrics,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "auth",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.routes(opts)
	return s
}

// App exposes the fiber application, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.app.Listen(s.address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// errorHandler renders errors that escaped the handlers. fiber errors keep
// their status; anything else is a 500.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(errorBody{Error: fe.Message})
	}
	s.logger.Error(c.UserContext(), "unhandled error", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Error: msgInternal})
}

func (s *Server) observe(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}
	s.metrics.HTTPRequest(c.Method(), c.Route().Path, status, time.Since(start))
	return err
}
