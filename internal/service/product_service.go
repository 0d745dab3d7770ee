package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/trattoria-labs/restaurant-service/internal/domain"
	"github.com/trattoria-labs/restaurant-service/internal/events"
	"github.com/trattoria-labs/restaurant-service/internal/repository"
	apperrors "github.com/trattoria-labs/restaurant-service/pkg/util"
)

const msgProductNotFound = "Product not found"

// ProductService manages the product catalog.
type ProductService struct {
	products repository.ProductRepository
	events   events.Dispatcher
	now      func() time.Time
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, dispatcher events.Dispatcher) *ProductService {
	return &ProductService{products: products, events: dispatcher, now: time.Now}
}

// List returns the whole catalog.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Get returns a single product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgProductNotFound)
	}
	return product, nil
}

// SearchByName matches name case-insensitively anywhere in the product name.
func (s *ProductService) SearchByName(ctx context.Context, name string) ([]domain.Product, error) {
	products, err := s.products.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.NewNotFound("No products found")
	}
	return products, nil
}

// Create adds a product. name, price, category and vegetarian are required;
// dateAdded defaults to now.
func (s *ProductService) Create(ctx context.Context, in domain.ProductPatch) (*domain.Product, error) {
	if err := check(productCreateInput{
		Name:       deref(trimmed(in.Name)),
		Price:      in.Price,
		Category:   deref(trimmed(in.Category)),
		Vegetarian: in.Vegetarian,
	}, productMessages); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(*in.Name),
		Price:       *in.Price,
		Description: deref(in.Description),
		Category:    strings.TrimSpace(*in.Category),
		Ingredients: []string{},
		Image:       deref(in.Image),
		Video:       deref(in.Video),
		Vegetarian:  *in.Vegetarian,
		DateAdded:   s.now().UTC(),
	}
	if in.Ingredients != nil && *in.Ingredients != nil {
		product.Ingredients = *in.Ingredients
	}
	if in.DateAdded != nil && !in.DateAdded.IsZero() {
		product.DateAdded = in.DateAdded.UTC()
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	publish(ctx, s.events, events.EventProductCreated, product.ID)
	return product, nil
}

// Update applies a partial update and returns the updated product.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	patch.Name = trimmed(patch.Name)
	patch.Category = trimmed(patch.Category)
	if err := check(productUpdateInput{
		Name:     patch.Name,
		Price:    patch.Price,
		Category: patch.Category,
	}, productMessages); err != nil {
		return nil, err
	}

	product, err := s.products.Update(ctx, id, patch)
	if err != nil {
		return nil, notFoundOr(err, msgProductNotFound)
	}

	publish(ctx, s.events, events.EventProductUpdated, product.ID, changedProductFields(patch)...)
	return product, nil
}

// Delete removes a product and returns the removed document.
func (s *ProductService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	product, err := s.products.Delete(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgProductNotFound)
	}

	publish(ctx, s.events, events.EventProductDeleted, product.ID)
	return product, nil
}

func changedProductFields(p domain.ProductPatch) []string {
	var changed []string
	for field, set := range map[string]bool{
		"name":        p.Name != nil,
		"price":       p.Price != nil,
		"description": p.Description != nil,
		"category":    p.Category != nil,
		"ingredients": p.Ingredients != nil,
		"image":       p.Image != nil,
		"video":       p.Video != nil,
		"vegetarian":  p.Vegetarian != nil,
		"dateAdded":   p.DateAdded != nil,
	} {
		if set {
			changed = append(changed, field)
		}
	}
	sort.Strings(changed)
	return changed
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
