package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/trattoria-labs/restaurant-service/internal/auth"
	"github.com/trattoria-labs/restaurant-service/internal/config"
	"github.com/trattoria-labs/restaurant-service/internal/domain"
	"github.com/trattoria-labs/restaurant-service/internal/events"
	"github.com/trattoria-labs/restaurant-service/internal/repository"
	apperrors "github.com/trattoria-labs/restaurant-service/pkg/util"
)

// SignInResult is what a successful sign-in hands back to the caller.
type SignInResult struct {
	Token     string
	ExpiresIn int
	UserID    string
}

// AuthService coordinates sign-up and sign-in flows.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
	hasher   *auth.PasswordHasher
	events   events.Dispatcher
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.UserRepo,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret),
		hasher:   auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		events:   deps.Dispatcher,
	}
}

// SignUp creates a new user. An empty role defaults to client.
func (s *AuthService) SignUp(ctx context.Context, name, username, password, rawRole string) (*domain.User, error) {
	in := signUpInput{
		Name:     strings.TrimSpace(name),
		Username: normalizeUsername(username),
		Password: password,
		Role:     signUpRole(rawRole),
	}
	if err := check(in, userMessages); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, apperrors.NewConflict("Username already exists.")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         in.Name,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         domain.Role(in.Role),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("Username already exists.")
		}
		return nil, err
	}

	publish(ctx, s.events, events.EventUserCreated, user.ID)
	return user, nil
}

// SignIn checks credentials and issues an access token. The two credential
// failures keep distinct messages; every other failure is a generic 401.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*SignInResult, error) {
	user, err := s.users.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewIdentityNotFound()
		}
		return nil, apperrors.NewAuthenticationFailed(err)
	}

	ok, err := s.hasher.Matches(user.PasswordHash, password)
	if err != nil {
		return nil, apperrors.NewAuthenticationFailed(err)
	}
	if !ok {
		return nil, apperrors.NewCredentialMismatch()
	}

	token, _, err := s.tokenMgr.GenerateToken(domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, apperrors.NewAuthenticationFailed(err)
	}

	return &SignInResult{
		Token:     token,
		ExpiresIn: int(s.tokenMgr.TTL().Seconds()),
		UserID:    user.ID,
	}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Hasher exposes the password hasher so other services share one bcrypt cost.
func (s *AuthService) Hasher() *auth.PasswordHasher {
	return s.hasher
}
