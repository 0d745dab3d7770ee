package service

import (
	"context"

	"github.com/trattoria-labs/restaurant-service/internal/auth"
	"github.com/trattoria-labs/restaurant-service/internal/domain"
	"github.com/trattoria-labs/restaurant-service/internal/events"
	"github.com/trattoria-labs/restaurant-service/internal/repository"
	apperrors "github.com/trattoria-labs/restaurant-service/pkg/util"
)

const msgUserNotFound = "User not found."

// UserChanges is a partial user update. Nil fields are left untouched.
type UserChanges struct {
	Name     *string
	Username *string
	Password *string
	Role     *string
}

// UserService manages the user directory.
type UserService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	events events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, hasher: hasher, events: dispatcher}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// Get returns a single user by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgUserNotFound)
	}
	return user, nil
}

// SearchByName matches name case-insensitively anywhere in the user's name.
func (s *UserService) SearchByName(ctx context.Context, name string) ([]domain.User, error) {
	users, err := s.users.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFound("No users found")
	}
	return users, nil
}

// Update applies changes and returns the updated user. A new password is
// re-hashed before it is stored.
func (s *UserService) Update(ctx context.Context, id string, changes UserChanges) (*domain.User, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	in := userUpdateInput{
		Name:     trimmed(changes.Name),
		Username: trimmed(changes.Username),
		Password: changes.Password,
	}
	if changes.Role != nil {
		role := normalizeRole(*changes.Role)
		in.Role = &role
	}
	if err := check(in, userMessages); err != nil {
		return nil, err
	}

	var (
		patch   domain.UserPatch
		changed []string
	)
	if in.Name != nil {
		patch.Name = in.Name
		changed = append(changed, "name")
	}
	if in.Username != nil {
		patch.Username = in.Username
		changed = append(changed, "username")
	}
	if in.Role != nil {
		role := domain.Role(*in.Role)
		patch.Role = &role
		changed = append(changed, "role")
	}

	if changes.Password != nil {
		hash, err := s.hasher.Hash(*changes.Password)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		patch.PasswordHash = &hash
		changed = append(changed, "password")
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("Username already exists.")
		}
		return nil, notFoundOr(err, msgUserNotFound)
	}

	publish(ctx, s.events, events.EventUserUpdated, user.ID, changed...)
	return user, nil
}

// Delete removes a user and returns the removed document.
func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgUserNotFound)
	}

	publish(ctx, s.events, events.EventUserDeleted, user.ID)
	return user, nil
}
