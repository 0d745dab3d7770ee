package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trattoria-labs/restaurant-service/internal/domain"
	apperrors "github.com/trattoria-labs/restaurant-service/pkg/util"
)

// RequireEmployee lets only employees through. It must be mounted after
// AuthMiddleware.Handle.
func RequireEmployee() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFrom(c.UserContext())
		if !ok || identity.Role != domain.RoleEmployee {
			return apperrors.NewInsufficientRole()
		}
		return c.Next()
	}
}
