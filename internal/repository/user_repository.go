package repository

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trattoria-labs/restaurant-service/internal/domain"
)

// UserRepository defines persistence access for the user directory.
// Lookups of a missing row return pgx.ErrNoRows.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	FindByName(ctx context.Context, fragment string) ([]domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id::text AS id, name, username, password_hash, role, created_at`

func (r *userRepository) one(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	if err := pgxscan.Get(ctx, r.pool, &user, query, args...); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) many(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	users := []domain.User{}
	if err := pgxscan.Select(ctx, r.pool, &users, query, args...); err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts the user and fills in the generated id and timestamp.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
        INSERT INTO users (name, username, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + userColumns

	return pgxscan.Get(ctx, r.pool, user, query,
		user.Name,
		user.Username,
		user.PasswordHash,
		user.Role,
	)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.many(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
}

// FindByName matches a case-insensitive substring of the display name.
func (r *userRepository) FindByName(ctx context.Context, fragment string) ([]domain.User, error) {
	return r.many(ctx, `SELECT `+userColumns+` FROM users WHERE name ILIKE $1 ORDER BY name`, containsPattern(fragment))
}

func (r *userRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	query := `
        UPDATE users SET
            name = COALESCE($2, name),
            username = COALESCE($3, username),
            password_hash = COALESCE($4, password_hash),
            role = COALESCE($5, role)
        WHERE id=$1
        RETURNING ` + userColumns

	return r.one(ctx, query, id, patch.Name, patch.Username, patch.PasswordHash, patch.Role)
}

func (r *userRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	return r.one(ctx, `DELETE FROM users WHERE id=$1 RETURNING `+userColumns, id)
}
