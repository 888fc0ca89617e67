package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pinktech/kounty-api/internal/domain"
)

// CredentialRepository persists datasource authentication credentials.
// Every read and mutation is scoped to the owning user.
type CredentialRepository interface {
	Create(ctx context.Context, credential *domain.AuthenticationCredential) error
	GetByID(ctx context.Context, id, userID string) (*domain.AuthenticationCredential, error)
	ListByDatasource(ctx context.Context, datasourceID, userID string) ([]domain.AuthenticationCredential, error)
	Update(ctx context.Context, credential *domain.AuthenticationCredential) error
	Delete(ctx context.Context, id, userID string) error
}

type credentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(pool *pgxpool.Pool) CredentialRepository {
	return &credentialRepository{pool: pool}
}

func (r *credentialRepository) Create(ctx context.Context, credential *domain.AuthenticationCredential) error {
	const query = `
        INSERT INTO authentication_credentials (name, username, access_token, status, user_id, datasource_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		credential.Name,
		credential.Username,
		credential.AccessToken,
		credential.Status,
		credential.UserID,
		credential.DatasourceID,
	).Scan(&credential.ID, &credential.CreatedAt, &credential.UpdatedAt)
}

func (r *credentialRepository) GetByID(ctx context.Context, id, userID string) (*domain.AuthenticationCredential, error) {
	const query = `
        SELECT id, name, username, access_token, status, user_id, datasource_id, created_at, updated_at
        FROM authentication_credentials WHERE id=$1 AND user_id=$2`

	var credential domain.AuthenticationCredential
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&credential.ID,
		&credential.Name,
		&credential.Username,
		&credential.AccessToken,
		&credential.Status,
		&credential.UserID,
		&credential.DatasourceID,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *credentialRepository) ListByDatasource(ctx context.Context, datasourceID, userID string) ([]domain.AuthenticationCredential, error) {
	const query = `
        SELECT id, name, username, access_token, status, user_id, datasource_id, created_at, updated_at
        FROM authentication_credentials
        WHERE datasource_id=$1 AND user_id=$2
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, datasourceID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credentials []domain.AuthenticationCredential
	for rows.Next() {
		var credential domain.AuthenticationCredential
		if err := rows.Scan(
			&credential.ID,
			&credential.Name,
			&credential.Username,
			&credential.AccessToken,
			&credential.Status,
			&credential.UserID,
			&credential.DatasourceID,
			&credential.CreatedAt,
			&credential.UpdatedAt,
		); err != nil {
			return nil, err
		}
		credentials = append(credentials, credential)
	}
	return credentials, rows.Err()
}

func (r *credentialRepository) Update(ctx context.Context, credential *domain.AuthenticationCredential) error {
	const query = `
        UPDATE authentication_credentials SET name=$1, status=$2, updated_at=NOW()
        WHERE id=$3 AND user_id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		credential.Name,
		credential.Status,
		credential.ID,
		credential.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *credentialRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM authentication_credentials WHERE id=$1 AND user_id=$2`

	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
