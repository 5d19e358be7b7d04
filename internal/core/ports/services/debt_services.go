package services

import (
	"context"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
)

// DebtReaderSvc defines read operations for driver debts
type DebtReaderSvc interface {
	// ListOpenDebts retrieves the driver's debts with a positive outstanding balance.
	ListOpenDebts(ctx context.Context, driverID string) ([]domain.Debt, error)
}

// DebtSvcFacade combines all debt-related service interfaces
type DebtSvcFacade interface {
	DebtReaderSvc
}
