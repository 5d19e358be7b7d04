package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ptairone/logistica-flash-sub000/internal/apperrors"
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portsrepo "github.com/ptairone/logistica-flash-sub000/internal/core/ports/repositories"
	"github.com/ptairone/logistica-flash-sub000/internal/models"
	"github.com/ptairone/logistica-flash-sub000/internal/utils/mapping"
)

type PgxDebtRepository struct {
	db *pgxpool.Pool
}

func newPgxDebtRepository(db *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{db: db}
}

// Ensure PgxDebtRepository implements portsrepo.DebtRepositoryFacade
var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const debtColumns = `debt_id, driver_id, description, original_amount, amount_paid, due_date, created_at, created_by, last_updated_at, last_updated_by`

func scanDebt(row pgx.Row) (models.Debt, error) {
	var m models.Debt
	err := row.Scan(
		&m.DebtID,
		&m.DriverID,
		&m.Description,
		&m.OriginalAmount,
		&m.AmountPaid,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxDebtRepository) FindOpenDebtsByDriver(ctx context.Context, driverID string) ([]domain.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM driver_debts
		WHERE driver_id = $1 AND original_amount > amount_paid
		ORDER BY due_date NULLS LAST, created_at;
	`
	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open debts: %w", err)
	}
	defer rows.Close()

	modelDebts := []models.Debt{}
	for rows.Next() {
		m, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt row: %w", err)
		}
		modelDebts = append(modelDebts, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating debt rows: %w", rows.Err())
	}

	return mapping.ToDomainDebtSlice(modelDebts), nil
}

func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM driver_debts
		WHERE debt_id = $1;
	`
	m, err := scanDebt(r.db.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find debt by ID %s: %w", debtID, err)
	}

	domainDebt := mapping.ToDomainDebt(m)
	return &domainDebt, nil
}

// ApplyDeductionInTx increases the debt's paid amount inside the caller's
// transaction. The balance guard in the WHERE clause rejects deductions that
// would overdraw the debt, even if the balance changed since the draft read it.
func (r *PgxDebtRepository) ApplyDeductionInTx(ctx context.Context, tx pgx.Tx, debtID string, amount decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE driver_debts
		SET amount_paid = amount_paid + $1, last_updated_at = $2, last_updated_by = $3
		WHERE debt_id = $4 AND amount_paid + $1 <= original_amount;
	`
	cmdTag, err := tx.Exec(ctx, query, amount, now, userID, debtID)
	if err != nil {
		return fmt.Errorf("failed to apply deduction to debt %s: %w", debtID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: deduction of %s exceeds balance of debt %s", apperrors.ErrConflict, amount, debtID)
	}
	return nil
}
