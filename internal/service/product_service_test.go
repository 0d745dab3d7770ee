package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trattoria-labs/restaurant-service/internal/domain"
	"github.com/trattoria-labs/restaurant-service/internal/events"
	"github.com/trattoria-labs/restaurant-service/internal/repository/mocks"
)

const productID = "0d6c1c5e-9b1e-4f3a-a0c2-7e5d4b3a2f10"

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool         { return &b }

func TestProductServiceCreateDefaults(t *testing.T) {
	products := new(mocks.ProductRepository)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewProductService(products, events.NewInMemoryDispatcher(nil))
	svc.now = func() time.Time { return fixed }

	products.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Product).ID = productID }).
		Return(nil)

	created, err := svc.Create(context.Background(), domain.ProductPatch{
		Name:       strPtr(" Margherita "),
		Price:      floatPtr(9.5),
		Category:   strPtr("Pizza"),
		Vegetarian: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, productID, created.ID)
	assert.Equal(t, "Margherita", created.Name)
	assert.Equal(t, fixed, created.DateAdded)
	assert.Equal(t, []string{}, created.Ingredients)
	products.AssertExpectations(t)
}

func TestProductServiceCreateKeepsGivenDate(t *testing.T) {
	products := new(mocks.ProductRepository)
	products.On("Create", mock.Anything, mock.Anything).Return(nil)
	added := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	ingredients := []string{"Cheese", "Tomato"}

	created, err := NewProductService(products, nil).Create(context.Background(), domain.ProductPatch{
		Name:        strPtr("Margherita"),
		Price:       floatPtr(9.5),
		Category:    strPtr("Pizza"),
		Vegetarian:  boolPtr(true),
		Ingredients: &ingredients,
		DateAdded:   &added,
	})
	require.NoError(t, err)
	assert.Equal(t, added, created.DateAdded)
	assert.Equal(t, ingredients, created.Ingredients)
}

func TestProductServiceCreateValidation(t *testing.T) {
	products := new(mocks.ProductRepository)

	_, err := NewProductService(products, nil).Create(context.Background(), domain.ProductPatch{
		Name:  strPtr("  "),
		Price: floatPtr(-1),
	})
	assertDomainError(t, err, http.StatusUnprocessableEntity, "Validation failed.")
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductServiceSearchByName(t *testing.T) {
	products := new(mocks.ProductRepository)
	products.On("FindByName", mock.Anything, "pizza").Return([]domain.Product{{ID: productID}}, nil)
	products.On("FindByName", mock.Anything, "sushi").Return(nil, nil)
	svc := NewProductService(products, nil)

	found, err := svc.SearchByName(context.Background(), "pizza")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = svc.SearchByName(context.Background(), "sushi")
	assertDomainError(t, err, http.StatusNotFound, "No products found")
}

func TestProductServiceUpdate(t *testing.T) {
	products := new(mocks.ProductRepository)
	dispatcher := events.NewInMemoryDispatcher(nil)
	var changed []string
	dispatcher.Subscribe(events.EventProductUpdated, func(_ context.Context, e events.Event) error {
		changed = e.Changed
		return nil
	})
	patch := domain.ProductPatch{Price: floatPtr(11), Vegetarian: boolPtr(false)}
	products.On("Update", mock.Anything, productID, patch).Return(&domain.Product{ID: productID, Price: 11}, nil).Once()
	products.On("Update", mock.Anything, productID, patch).Return(nil, pgx.ErrNoRows).Once()
	svc := NewProductService(products, dispatcher)

	updated, err := svc.Update(context.Background(), productID, patch)
	require.NoError(t, err)
	assert.Equal(t, 11.0, updated.Price)
	assert.Equal(t, []string{"price", "vegetarian"}, changed)

	_, err = svc.Update(context.Background(), productID, patch)
	assertDomainError(t, err, http.StatusNotFound, "Product not found")

	_, err = svc.Update(context.Background(), "42", patch)
	assertDomainError(t, err, http.StatusBadRequest, "Invalid id.")
}

func TestProductServiceGetAndDelete(t *testing.T) {
	products := new(mocks.ProductRepository)
	products.On("GetByID", mock.Anything, productID).Return(&domain.Product{ID: productID}, nil)
	products.On("Delete", mock.Anything, productID).Return(nil, pgx.ErrNoRows)
	svc := NewProductService(products, nil)

	p, err := svc.Get(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, productID, p.ID)

	_, err = svc.Delete(context.Background(), productID)
	assertDomainError(t, err, http.StatusNotFound, "Product not found")
}

func TestProductServiceListPropagatesErrors(t *testing.T) {
	products := new(mocks.ProductRepository)
	boom := errors.New("boom")
	products.On("List", mock.Anything).Return(nil, boom)

	_, err := NewProductService(products, nil).List(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestProductServiceValidationMessages(t *testing.T) {
	products := new(mocks.ProductRepository)
	svc := NewProductService(products, nil)

	_, err := svc.Create(context.Background(), domain.ProductPatch{Name: strPtr("  "), Price: floatPtr(-1)})
	assert.Equal(t, map[string]string{
		"name":       "Name is required.",
		"price":      "Price must not be negative.",
		"category":   "Category is required.",
		"vegetarian": "Vegetarian is required.",
	}, fieldDetails(t, err))

	products.On("Create", mock.Anything, mock.Anything).Return(nil)
	free, err := svc.Create(context.Background(), domain.ProductPatch{Name: strPtr("Water"), Price: floatPtr(0), Category: strPtr("Drinks"), Vegetarian: boolPtr(false)})
	require.NoError(t, err)
	assert.Zero(t, free.Price)

	_, err = svc.Update(context.Background(), productID, domain.ProductPatch{Category: strPtr(" "), Price: floatPtr(-0.5)})
	assert.Equal(t, map[string]string{
		"price":    "Price must not be negative.",
		"category": "Category is required.",
	}, fieldDetails(t, err))
}
