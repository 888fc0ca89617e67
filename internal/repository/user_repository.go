package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pinktech/kounty-api/internal/domain"
)

// UserRepository defines persistence access for user records. Missing rows
// surface as pgx.ErrNoRows; callers decide how absence maps to the boundary.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (country_code, email, first_name, last_name, phone)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.CountryCode,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Phone,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, country_code, email, first_name, last_name, phone, created_at, updated_at
        FROM users WHERE email=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.CountryCode,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrPhone returns the first record matching either value; used by
// sign-up to report which of the two unique fields is already taken.
func (r *userRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	const query = `
        SELECT id, country_code, email, first_name, last_name, phone, created_at, updated_at
        FROM users WHERE email=$1 OR phone=$2
        LIMIT 1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, email, phone).Scan(
		&user.ID,
		&user.CountryCode,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
