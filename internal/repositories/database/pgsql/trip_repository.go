package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ptairone/logistica-flash-sub000/internal/apperrors"
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portsrepo "github.com/ptairone/logistica-flash-sub000/internal/core/ports/repositories"
	"github.com/ptairone/logistica-flash-sub000/internal/models"
	"github.com/ptairone/logistica-flash-sub000/internal/utils/mapping"
)

type PgxTripRepository struct {
	db *pgxpool.Pool
}

func newPgxTripRepository(db *pgxpool.Pool) portsrepo.TripRepositoryFacade {
	return &PgxTripRepository{db: db}
}

// Ensure PgxTripRepository implements portsrepo.TripRepositoryFacade
var _ portsrepo.TripRepositoryFacade = (*PgxTripRepository)(nil)

const tripColumns = `trip_id, code, driver_id, status, departure_date, arrival_date, freight_revenue, km_driven, settlement_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTrip(row pgx.Row) (models.Trip, error) {
	var m models.Trip
	err := row.Scan(
		&m.TripID,
		&m.Code,
		&m.DriverID,
		&m.Status,
		&m.DepartureDate,
		&m.ArrivalDate,
		&m.FreightRevenue,
		&m.KmDriven,
		&m.SettlementID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEligibleTripsByDriver returns the driver's completed, unlinked trips with
// their expenses attached, ordered by departure date.
func (r *PgxTripRepository) FindEligibleTripsByDriver(ctx context.Context, driverID string) ([]domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE driver_id = $1 AND status = $2 AND settlement_id IS NULL
		ORDER BY departure_date;
	`
	return r.queryTripsWithExpenses(ctx, query, driverID, models.TripCompleted)
}

// FindTripsBySettlementID returns the trips linked to a settlement with their
// expenses attached.
func (r *PgxTripRepository) FindTripsBySettlementID(ctx context.Context, settlementID string) ([]domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE settlement_id = $1
		ORDER BY departure_date;
	`
	return r.queryTripsWithExpenses(ctx, query, settlementID)
}

func (r *PgxTripRepository) queryTripsWithExpenses(ctx context.Context, query string, args ...any) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	tripIDs := []string{}
	for rows.Next() {
		m, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip row: %w", err)
		}
		trips = append(trips, mapping.ToDomainTrip(m))
		tripIDs = append(tripIDs, m.TripID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating trip rows: %w", rows.Err())
	}
	if len(trips) == 0 {
		return trips, nil
	}

	expensesByTrip, err := r.findExpensesByTripIDs(ctx, tripIDs)
	if err != nil {
		return nil, err
	}
	for i := range trips {
		trips[i].Expenses = expensesByTrip[trips[i].TripID]
	}
	return trips, nil
}

func (r *PgxTripRepository) findExpensesByTripIDs(ctx context.Context, tripIDs []string) (map[string][]domain.Expense, error) {
	query := `
		SELECT expense_id, trip_id, expense_type, description, amount, reimbursable, created_at, created_by, last_updated_at, last_updated_by
		FROM trip_expenses
		WHERE trip_id = ANY($1)
		ORDER BY created_at;
	`
	rows, err := r.db.Query(ctx, query, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip expenses: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.Expense, len(tripIDs))
	for rows.Next() {
		var m models.Expense
		err := rows.Scan(
			&m.ExpenseID,
			&m.TripID,
			&m.ExpenseType,
			&m.Description,
			&m.Amount,
			&m.Reimbursable,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		result[m.TripID] = append(result[m.TripID], mapping.ToDomainExpense(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}
	return result, nil
}

// LinkTripsToSettlementInTx links the trips to a settlement inside the caller's
// transaction. The settlement_id IS NULL guard makes linking an already-linked
// trip fail, surfacing concurrent settlements of the same trips.
func (r *PgxTripRepository) LinkTripsToSettlementInTx(ctx context.Context, tx pgx.Tx, tripIDs []string, settlementID string, userID string, now time.Time) error {
	query := `
		UPDATE trips
		SET settlement_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE trip_id = ANY($4) AND settlement_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, settlementID, now, userID, tripIDs)
	if err != nil {
		return fmt.Errorf("failed to link trips to settlement %s: %w", settlementID, err)
	}
	if cmdTag.RowsAffected() != int64(len(tripIDs)) {
		return fmt.Errorf("%w: %d of %d trips already settled or missing",
			apperrors.ErrConflict, int64(len(tripIDs))-cmdTag.RowsAffected(), len(tripIDs))
	}
	return nil
}
