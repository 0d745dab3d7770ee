package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/trattoria-labs/restaurant-service/internal/domain"
)

// ProductRepository is a testify mock of repository.ProductRepository.
type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *ProductRepository) FindByName(ctx context.Context, fragment string) ([]domain.Product, error) {
	args := m.Called(ctx, fragment)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *ProductRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	args := m.Called(ctx, id, patch)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *ProductRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}
