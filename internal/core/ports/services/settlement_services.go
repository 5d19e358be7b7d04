package services

import (
	"context"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
)

// SettlementFinalizerSvc commits a wizard draft as a persisted settlement.
type SettlementFinalizerSvc interface {
	// FinalizeDraft persists the draft as a settlement: the settlement record
	// with all computed totals, the trip links, the adjustment entries, the
	// debt deductions and the expense review outcomes, all as one transaction.
	FinalizeDraft(ctx context.Context, draft *domain.SettlementDraft, creatorUserID string) (*domain.Settlement, error)
}

// SettlementReaderSvc defines read operations for persisted settlements
type SettlementReaderSvc interface {
	// GetSettlementByID retrieves a settlement by ID.
	GetSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)

	// ListSettlements retrieves settlements, optionally filtered by driver.
	ListSettlements(ctx context.Context, driverID string, limit int, offset int) ([]domain.Settlement, error)
}

// SettlementLifecycleSvc transitions a persisted settlement's status.
// Status moves OPEN -> CLOSED -> PAID; no other transition is allowed.
type SettlementLifecycleSvc interface {
	// CloseSettlement transitions an OPEN settlement to CLOSED.
	CloseSettlement(ctx context.Context, settlementID string, userID string) (*domain.Settlement, error)

	// MarkSettlementPaid transitions a CLOSED settlement to PAID.
	MarkSettlementPaid(ctx context.Context, settlementID string, userID string) (*domain.Settlement, error)
}

// SettlementSvcFacade combines all settlement-related service interfaces
type SettlementSvcFacade interface {
	SettlementFinalizerSvc
	SettlementReaderSvc
	SettlementLifecycleSvc
}
