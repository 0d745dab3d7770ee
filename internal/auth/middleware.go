package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/trattoria-labs/restaurant-service/internal/domain"
	apperrors "github.com/trattoria-labs/restaurant-service/pkg/util"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom retrieves the authenticated identity, if any.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	return identity, ok
}

// AuthMiddleware validates bearer tokens and attaches the decoded identity.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Claims come from the
// token alone; the user directory is not consulted.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apperrors.NewMissingCredential()
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewExpiredCredential()
		}
		return apperrors.NewInvalidCredential()
	}

	c.SetUserContext(WithIdentity(c.UserContext(), claims.Identity()))
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
