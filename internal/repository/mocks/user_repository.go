package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/trattoria-labs/restaurant-service/internal/domain"
)

// UserRepository is a testify mock of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func (m *UserRepository) FindByName(ctx context.Context, fragment string) ([]domain.User, error) {
	args := m.Called(ctx, fragment)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}
