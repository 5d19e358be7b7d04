package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ptairone/logistica-flash-sub000/internal/apperrors"
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portsrepo "github.com/ptairone/logistica-flash-sub000/internal/core/ports/repositories"
	"github.com/ptairone/logistica-flash-sub000/internal/models"
	"github.com/ptairone/logistica-flash-sub000/internal/utils/mapping"
)

type PgxSettlementRepository struct {
	BaseRepository
	tripRepo portsrepo.TripRepositoryFacade
	debtRepo portsrepo.DebtRepositoryFacade
}

// newPgxSettlementRepository creates the repository for settlement data. The
// trip and debt repositories take part in the finalize transaction.
func newPgxSettlementRepository(pool *pgxpool.Pool, tripRepo portsrepo.TripRepositoryFacade, debtRepo portsrepo.DebtRepositoryFacade) portsrepo.SettlementRepositoryWithTx {
	return &PgxSettlementRepository{
		BaseRepository: BaseRepository{Pool: pool},
		tripRepo:       tripRepo,
		debtRepo:       debtRepo,
	}
}

// Ensure PgxSettlementRepository implements portsrepo.SettlementRepositoryWithTx
var _ portsrepo.SettlementRepositoryWithTx = (*PgxSettlementRepository)(nil)

const settlementColumns = `settlement_id, code, driver_id, status, period_start, period_end,
	commission_percent, commission_base, commission_value,
	total_revenue, total_reimbursements, total_bonuses, total_penalties,
	total_debts_deducted, total_rejected, total_advances, total_discounts, total_payable,
	observations, created_at, created_by, last_updated_at, last_updated_by`

// SaveSettlement persists the settlement and every finalize side effect as one
// database transaction: the settlement row, the trip links, the adjustment
// rows, the expense review rows and the debt deductions. A code collision
// surfaces as apperrors.ErrDuplicate with nothing written.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement, adjustments []domain.Adjustment, reviews []domain.ExpenseReview, deductions []domain.DebtDeduction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := settlement.CreatedAt
	userID := settlement.CreatedBy

	// 1. Insert the settlement row
	modelSettlement := mapping.ToModelSettlement(settlement)
	settlementQuery := `
		INSERT INTO settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = tx.Exec(ctx, settlementQuery,
		modelSettlement.SettlementID,
		modelSettlement.Code,
		modelSettlement.DriverID,
		modelSettlement.Status,
		modelSettlement.PeriodStart,
		modelSettlement.PeriodEnd,
		modelSettlement.CommissionPercent,
		modelSettlement.CommissionBase,
		modelSettlement.CommissionValue,
		modelSettlement.TotalRevenue,
		modelSettlement.TotalReimbursements,
		modelSettlement.TotalBonuses,
		modelSettlement.TotalPenalties,
		modelSettlement.TotalDebtsDeducted,
		modelSettlement.TotalRejected,
		modelSettlement.TotalAdvances,
		modelSettlement.TotalDiscounts,
		modelSettlement.TotalPayable,
		modelSettlement.Observations,
		modelSettlement.CreatedAt,
		modelSettlement.CreatedBy,
		modelSettlement.LastUpdatedAt,
		modelSettlement.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on code
			return fmt.Errorf("settlement code %s already exists: %w", modelSettlement.Code, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert settlement %s: %w", modelSettlement.SettlementID, err)
	}

	// 2. Link the trips, making them ineligible for future drafts
	if err := r.tripRepo.LinkTripsToSettlementInTx(ctx, tx, settlement.TripIDs, settlement.SettlementID, userID, now); err != nil {
		return err
	}

	// 3. Insert adjustment and review rows in one batch
	batch := &pgx.Batch{}
	adjustmentQuery := `
		INSERT INTO settlement_adjustments (adjustment_id, settlement_id, type, category, description, amount, justification, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, adj := range adjustments {
		modelAdj := mapping.ToModelAdjustment(adj)
		batch.Queue(adjustmentQuery,
			modelAdj.AdjustmentID,
			modelAdj.SettlementID,
			modelAdj.Type,
			modelAdj.Category,
			modelAdj.Description,
			modelAdj.Amount,
			modelAdj.Justification,
			now,
			userID,
			now,
			userID,
		)
	}

	reviewQuery := `
		INSERT INTO settlement_expense_reviews (settlement_id, expense_id, status, approved_amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, review := range reviews {
		batch.Queue(reviewQuery,
			settlement.SettlementID,
			review.ExpenseID,
			string(review.Status),
			review.ApprovedAmount,
			now,
			userID,
			now,
			userID,
		)
	}

	deductionQuery := `
		INSERT INTO settlement_debt_deductions (settlement_id, debt_id, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, deduction := range deductions {
		batch.Queue(deductionQuery,
			settlement.SettlementID,
			deduction.DebtID,
			deduction.Amount,
			now,
			userID,
			now,
			userID,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute batch for settlement %s: %w", settlement.SettlementID, err)
	}

	// 4. Apply the deductions to the debts themselves
	for _, deduction := range deductions {
		if err := r.debtRepo.ApplyDeductionInTx(ctx, tx, deduction.DebtID, deduction.Amount, userID, now); err != nil {
			return err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	return nil
}

func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE settlement_id = $1;
	`
	m, err := scanSettlement(r.Pool.QueryRow(ctx, query, settlementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settlement by ID %s: %w", settlementID, err)
	}

	settlement := mapping.ToDomainSettlement(m)
	settlement.TripIDs, err = r.findTripIDs(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	return &settlement, nil
}

func (r *PgxSettlementRepository) findTripIDs(ctx context.Context, settlementID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT trip_id FROM trips WHERE settlement_id = $1 ORDER BY departure_date;`, settlementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlement trip IDs: %w", err)
	}
	defer rows.Close()

	tripIDs := []string{}
	for rows.Next() {
		var tripID string
		if err := rows.Scan(&tripID); err != nil {
			return nil, fmt.Errorf("failed to scan trip ID: %w", err)
		}
		tripIDs = append(tripIDs, tripID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating trip ID rows: %w", rows.Err())
	}
	return tripIDs, nil
}

func (r *PgxSettlementRepository) ListSettlements(ctx context.Context, driverID string, limit int, offset int) ([]domain.Settlement, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE ($1 = '' OR driver_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, driverID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	settlements := []domain.Settlement{}
	for rows.Next() {
		m, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		settlements = append(settlements, mapping.ToDomainSettlement(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", rows.Err())
	}
	return settlements, nil
}

func (r *PgxSettlementRepository) UpdateSettlementStatus(ctx context.Context, settlementID string, status domain.SettlementStatus, userID string, updatedAt time.Time) error {
	query := `
		UPDATE settlements
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE settlement_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, models.SettlementStatus(status), updatedAt, userID, settlementID)
	if err != nil {
		return fmt.Errorf("failed to update settlement status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("settlement %s not found: %w", settlementID, apperrors.ErrNotFound)
	}
	return nil
}

func scanSettlement(row pgx.Row) (models.Settlement, error) {
	var m models.Settlement
	err := row.Scan(
		&m.SettlementID,
		&m.Code,
		&m.DriverID,
		&m.Status,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.CommissionPercent,
		&m.CommissionBase,
		&m.CommissionValue,
		&m.TotalRevenue,
		&m.TotalReimbursements,
		&m.TotalBonuses,
		&m.TotalPenalties,
		&m.TotalDebtsDeducted,
		&m.TotalRejected,
		&m.TotalAdvances,
		&m.TotalDiscounts,
		&m.TotalPayable,
		&m.Observations,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
