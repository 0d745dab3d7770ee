package repository

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trattoria-labs/restaurant-service/internal/domain"
)

// ProductRepository manages catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	FindByName(ctx context.Context, fragment string) ([]domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository builds the repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id::text AS id, name, price, description, category, ingredients, image, video, vegetarian, date_added`

func (r *productRepository) one(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	var p domain.Product
	if err := pgxscan.Get(ctx, r.pool, &p, query, args...); err != nil {
		return nil, err
	}
	normalizeProduct(&p)
	return &p, nil
}

func (r *productRepository) many(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := pgxscan.Select(ctx, r.pool, &products, query, args...); err != nil {
		return nil, err
	}
	for i := range products {
		normalizeProduct(&products[i])
	}
	return products, nil
}

func normalizeProduct(p *domain.Product) {
	if p.Ingredients == nil {
		p.Ingredients = []string{}
	}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
        INSERT INTO products (name, price, description, category, ingredients, image, video, vegetarian, date_added)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + productColumns

	normalizeProduct(product)
	if err := pgxscan.Get(ctx, r.pool, product, query,
		product.Name,
		product.Price,
		product.Description,
		product.Category,
		product.Ingredients,
		product.Image,
		product.Video,
		product.Vegetarian,
		product.DateAdded,
	); err != nil {
		return err
	}
	normalizeProduct(product)
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.one(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.many(ctx, `SELECT `+productColumns+` FROM products ORDER BY date_added, name`)
}

func (r *productRepository) FindByName(ctx context.Context, fragment string) ([]domain.Product, error) {
	return r.many(ctx, `SELECT `+productColumns+` FROM products WHERE name ILIKE $1 ORDER BY name`, containsPattern(fragment))
}

func (r *productRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	query := `
        UPDATE products SET
            name = COALESCE($2, name),
            price = COALESCE($3, price),
            description = COALESCE($4, description),
            category = COALESCE($5, category),
            ingredients = COALESCE($6::text[], ingredients),
            image = COALESCE($7, image),
            video = COALESCE($8, video),
            vegetarian = COALESCE($9, vegetarian),
            date_added = COALESCE($10, date_added)
        WHERE id=$1
        RETURNING ` + productColumns

	return r.one(ctx, query,
		id,
		patch.Name,
		patch.Price,
		patch.Description,
		patch.Category,
		patch.Ingredients,
		patch.Image,
		patch.Video,
		patch.Vegetarian,
		patch.DateAdded,
	)
}

func (r *productRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	return r.one(ctx, `DELETE FROM products WHERE id=$1 RETURNING `+productColumns, id)
}
