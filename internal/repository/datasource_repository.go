package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pinktech/kounty-api/internal/domain"
)

// DatasourceRepository exposes the datasource catalog.
type DatasourceRepository interface {
	Retrieve(ctx context.Context) ([]domain.Datasource, error)
	GetByID(ctx context.Context, id string) (*domain.Datasource, error)
}

type datasourceRepository struct {
	pool *pgxpool.Pool
}

// NewDatasourceRepository returns a Postgres-backed implementation.
func NewDatasourceRepository(pool *pgxpool.Pool) DatasourceRepository {
	return &datasourceRepository{pool: pool}
}

func (r *datasourceRepository) Retrieve(ctx context.Context) ([]domain.Datasource, error) {
	const query = `
        SELECT id, authentication_type, logo_url, name, url, created_at, updated_at
        FROM datasources
        ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasources []domain.Datasource
	for rows.Next() {
		ds, err := scanDatasource(rows)
		if err != nil {
			return nil, err
		}
		datasources = append(datasources, *ds)
	}
	return datasources, rows.Err()
}

func (r *datasourceRepository) GetByID(ctx context.Context, id string) (*domain.Datasource, error) {
	const query = `
        SELECT id, authentication_type, logo_url, name, url, created_at, updated_at
        FROM datasources WHERE id=$1`

	return scanDatasource(r.pool.QueryRow(ctx, query, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDatasource(row rowScanner) (*domain.Datasource, error) {
	var ds domain.Datasource
	var authType string
	if err := row.Scan(
		&ds.ID,
		&authType,
		&ds.LogoURL,
		&ds.Name,
		&ds.URL,
		&ds.CreatedAt,
		&ds.UpdatedAt,
	); err != nil {
		return nil, err
	}
	ds.AuthenticationType = domain.ParseAuthenticationType(authType)
	return &ds, nil
}
