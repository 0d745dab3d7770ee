package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/trattoria-labs/restaurant-service/internal/observability"
)

// ServerConfig bundles everything needed to build the Fiber application.
type ServerConfig struct {
	Name         string
	Timeout      time.Duration
	AllowOrigins string
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Routes       RouteConfig
}

// NewServer builds the Fiber app with the global middleware chain and routes.
func NewServer(cfg ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		ErrorHandler:          ErrorHandler(cfg.Logger),
		UnescapePath:          true,
		DisableStartupMessage: true,
	})

	RegisterMiddlewares(app, MiddlewareConfig{
		Logger:       cfg.Logger,
		Metrics:      cfg.Metrics,
		Timeout:      cfg.Timeout,
		AllowOrigins: cfg.AllowOrigins,
	})
	RegisterRoutes(app, cfg.Routes)
	return app
}
