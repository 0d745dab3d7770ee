package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trattoria-labs/restaurant-service/internal/api/http/handlers"
	"github.com/trattoria-labs/restaurant-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    *RateLimiter
}

// RegisterRoutes wires HTTP routes. Every route that needs the role gate
// mounts the token verifier in front of it.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)
	app.Get("/metrics/prometheus", cfg.Health.Prometheus)

	authenticate := cfg.AuthMiddleware.Handle
	employeeOnly := auth.RequireEmployee()

	users := app.Group("/users")
	users.Post("/signup", cfg.RateLimiter.Handle, cfg.Users.SignUp)
	users.Post("/signin", cfg.RateLimiter.Handle, cfg.Users.SignIn)
	users.Get("", authenticate, employeeOnly, cfg.Users.List)
	users.Get("/user/name/:name", authenticate, employeeOnly, cfg.Users.SearchByName)
	users.Get("/user/:id", authenticate, cfg.Users.Get)
	users.Put("/edit/:id", authenticate, employeeOnly, cfg.Users.Update)
	users.Delete("/delete/:id", authenticate, employeeOnly, cfg.Users.Delete)

	products := app.Group("/products")
	products.Get("", authenticate, cfg.Products.List)
	products.Get("/product/id/:id", authenticate, cfg.Products.Get)
	products.Get("/product/:name", cfg.Products.SearchByName)
	products.Post("/create", authenticate, cfg.Products.Create)
	products.Put("/edit/:id", authenticate, cfg.Products.Update)
	products.Delete("/delete/:id", authenticate, cfg.Products.Delete)

	app.Use(NotFound)
}
