package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes(opts Options) {
	if s.metrics != nil {
		s.app.Use(s.observe)
	}

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if opts.Gatherer != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	g := s.app.Group("/auth")
	g.Post("/register", s.register)
	g.Post("/verifyOTPAndLogin", s.verifyOTPAndLogin)
	g.Post("/refreshToken", RefreshGate(s.tokens, s.logger), s.refreshToken)
	g.Get("/users", AccessGate(s.tokens, s.logger, s.metrics, opts.RequireAccessToken), s.listUsers)
	g.Post("/forgotPassword", s.forgotPassword)
	g.Post("/resetPassword", s.resetPassword)
}
