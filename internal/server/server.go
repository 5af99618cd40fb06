// Package server exposes the parsed bulletin over HTTP.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fukayatti/api.fukayatti0.dev/internal/config"
	"github.com/fukayatti/api.fukayatti0.dev/internal/logger"
	"github.com/fukayatti/api.fukayatti0.dev/internal/scraper"
)

// Server wires the HTTP API around a scraper.
type Server struct {
	app *fiber.App
	cfg *config.Config
}

// New builds a server with a scraper configured from cfg.
func New(cfg *config.Config) *Server {
	sc := scraper.New(scraper.Options{
		URL:            cfg.Upstream.URL,
		UserAgent:      cfg.Upstream.UserAgent,
		Timeout:        cfg.Upstream.Timeout,
		MaxBodyBytes:   cfg.Upstream.MaxBodyBytes,
		RequestsPerSec: cfg.Upstream.RequestsPerSec,
	})
	return NewWithScraper(cfg, sc)
}

// NewWithScraper builds a server around an existing scraper. Tests use
// this to point the server at a local upstream.
func NewWithScraper(cfg *config.Config, sc *scraper.Scraper) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "kyuko-api",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,HEAD,OPTIONS",
	}))
	app.Use(requestLogger())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "kyuko-api",
			"source":  sc.URL(),
			"endpoints": []string{
				"/v1/kyuko",
				"/v1/kyuko/calendar",
				"/healthz",
				"/metrics",
			},
		})
	})

	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.JSON(logger.GetMetricsSnapshot())
	})

	api := &BulletinAPI{
		Router:       app.Group("/v1"),
		Scraper:      sc,
		FetchTimeout: cfg.Server.FetchTimeout,
	}
	api.Register()

	return &Server{app: app, cfg: cfg}
}

// Listen serves the API on the configured address until Shutdown.
func (s *Server) Listen() error {
	logger.Info("http server listening", logger.Fields{"addr": s.cfg.Server.Addr})
	return s.app.Listen(s.cfg.Server.Addr)
}

// Shutdown stops the server, waiting for in-flight requests until ctx
// expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.IncrCounter("http.requests")
		logger.Info("request", logger.Fields{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return err
	}
}
