package repositories

import (
	"context"
	"time"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
)

// SettlementReader defines read operations for settlement data
type SettlementReader interface {
	// FindSettlementByID retrieves a settlement with its linked trip IDs.
	FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)

	// ListSettlements retrieves settlements ordered by creation, newest first.
	// driverID filters by driver when non-empty.
	ListSettlements(ctx context.Context, driverID string, limit int, offset int) ([]domain.Settlement, error)
}

// SettlementWriter defines write operations for settlement data
type SettlementWriter interface {
	// SaveSettlement persists the settlement and all its finalize effects as a
	// single database transaction: the settlement row, the trip links, the
	// adjustment entries, the debt deductions and the expense review outcomes.
	// On any failure nothing is written.
	SaveSettlement(ctx context.Context, settlement domain.Settlement, adjustments []domain.Adjustment, reviews []domain.ExpenseReview, deductions []domain.DebtDeduction) error

	// UpdateSettlementStatus transitions a settlement's status.
	UpdateSettlementStatus(ctx context.Context, settlementID string, status domain.SettlementStatus, userID string, updatedAt time.Time) error
}

// SettlementRepositoryFacade combines all settlement-related repository interfaces
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}

// SettlementRepositoryWithTx extends SettlementRepositoryFacade with transaction capabilities
type SettlementRepositoryWithTx interface {
	SettlementRepositoryFacade
	TransactionManager
}
