package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ptairone/logistica-flash-sub000/internal/apperrors"
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portsrepo "github.com/ptairone/logistica-flash-sub000/internal/core/ports/repositories"
	"github.com/ptairone/logistica-flash-sub000/internal/models"
	"github.com/ptairone/logistica-flash-sub000/internal/utils/mapping"
)

type PgxDriverRepository struct {
	db *pgxpool.Pool
}

func newPgxDriverRepository(db *pgxpool.Pool) portsrepo.DriverRepositoryFacade {
	return &PgxDriverRepository{db: db}
}

// Ensure PgxDriverRepository implements portsrepo.DriverRepositoryFacade
var _ portsrepo.DriverRepositoryFacade = (*PgxDriverRepository)(nil)

const driverColumns = `driver_id, name, commission_percent, is_active, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanDriver(row pgx.Row) (models.Driver, error) {
	var m models.Driver
	err := row.Scan(
		&m.DriverID,
		&m.Name,
		&m.CommissionPercent,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxDriverRepository) FindDriverByID(ctx context.Context, driverID string) (*domain.Driver, error) {
	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE driver_id = $1 AND deleted_at IS NULL;
	`
	m, err := scanDriver(r.db.QueryRow(ctx, query, driverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find driver by ID %s: %w", driverID, err)
	}

	domainDriver := mapping.ToDomainDriver(m)
	return &domainDriver, nil
}

func (r *PgxDriverRepository) ListActiveDrivers(ctx context.Context) ([]domain.Driver, error) {
	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE is_active = TRUE AND deleted_at IS NULL
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active drivers: %w", err)
	}
	defer rows.Close()

	modelDrivers := []models.Driver{}
	for rows.Next() {
		m, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver row: %w", err)
		}
		modelDrivers = append(modelDrivers, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating driver rows: %w", rows.Err())
	}

	return mapping.ToDomainDriverSlice(modelDrivers), nil
}
