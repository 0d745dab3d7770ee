package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/trattoria-labs/restaurant-service/internal/observability"
	apperrors "github.com/trattoria-labs/restaurant-service/pkg/util"
)

// MiddlewareConfig carries the knobs for the global middleware chain.
type MiddlewareConfig struct {
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Timeout      time.Duration
	AllowOrigins string
}

// RegisterMiddlewares attaches global middlewares. The access logger runs
// outermost so it sees the status written by the error middleware.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowOrigins}))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	app.Use(errorHandlingMiddleware(cfg.Logger, cfg.Metrics))
}

// NotFound answers every request that matched no route.
func NotFound(c *fiber.Ctx) error {
	return apperrors.NewNotFound("Route not found")
}

// ErrorHandler is the fiber.Config error handler for errors raised outside
// the middleware chain, such as body-limit or routing failures.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return writeError(c, logger, nil, err)
	}
}

// requestTimeoutMiddleware bounds the context handed to services and
// repositories. A store call cut short by it renders as 503 through
// ToDomainError.
func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				err = writeError(c, logger, metrics, err)
			}
		}()
		return c.Next()
	}
}

func writeError(c *fiber.Ctx, logger *zap.Logger, metrics *observability.Metrics, err error) error {
	domainErr := apperrors.ToDomainError(err)
	metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)

	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
	}

	response := fiber.Map{"message": domainErr.Message}
	if len(domainErr.Details) > 0 {
		response["errors"] = domainErr.Details
	}
	return c.Status(domainErr.HTTPStatus).JSON(response)
}
