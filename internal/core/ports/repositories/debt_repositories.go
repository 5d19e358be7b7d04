package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DebtReader defines read operations for driver debt data
type DebtReader interface {
	// FindOpenDebtsByDriver retrieves the driver's debts with a positive balance.
	FindOpenDebtsByDriver(ctx context.Context, driverID string) ([]domain.Debt, error)

	// FindDebtByID retrieves a specific debt.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)
}

// DebtWriter defines write operations for driver debt data
type DebtWriter interface {
	// ApplyDeductionInTx increases the debt's paid amount by the given value
	// inside the caller's database transaction. It fails if the deduction
	// would exceed the outstanding balance.
	ApplyDeductionInTx(ctx context.Context, tx pgx.Tx, debtID string, amount decimal.Decimal, userID string, now time.Time) error
}

// DebtRepositoryFacade combines all debt-related repository interfaces
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}
