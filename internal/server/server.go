package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carecrew/server/internal/agent/graph"
	logx "github.com/carecrew/server/pkg/logger"
)

type Config struct {
	Port               string `envconfig:"PORT" default:"5000"`
	CorsAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	// RequestTimeout bounds a whole chat request; "0s" disables it.
	RequestTimeout string `envconfig:"REQUEST_TIMEOUT" default:"0s"`
}

type Server struct {
	app *fiber.App
	cfg Config
}

// New wires middleware and routes. Every route is served at the root and
// under /api. gatherer backs /metrics and may be nil.
func New(cfg Config, runner graph.Runner, gatherer prometheus.Gatherer) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "carecrew",
		DisableStartupMessage: true,
		BodyLimit:             1 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(requestLogger())
	if cfg.RequestTimeout != "" {
		if d, err := time.ParseDuration(cfg.RequestTimeout); err != nil {
			logx.Warn().Err(err).Str("value", cfg.RequestTimeout).Msg("Ignoring invalid REQUEST_TIMEOUT")
		} else if d > 0 {
			app.Use(requestDeadline(d))
		}
	}

	h := newChatHandler(runner)
	h.RegisterRoutes(app)
	h.RegisterRoutes(app.Group("/api"))

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return &Server{app: app, cfg: cfg}
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	logx.Info().Str("port", s.cfg.Port).Msg("Server is running")
	return s.app.Listen(":" + s.cfg.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		ev := logx.Info()
		if status >= fiber.StatusInternalServerError {
			ev = logx.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("HTTP request")
		return err
	}
}

func requestDeadline(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
