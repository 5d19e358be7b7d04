package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portsrepo "github.com/ptairone/logistica-flash-sub000/internal/core/ports/repositories"
	portssvc "github.com/ptairone/logistica-flash-sub000/internal/core/ports/services"
	"github.com/ptairone/logistica-flash-sub000/internal/middleware"
)

// debtService exposes a driver's outstanding debts to the settlement flow.
type debtService struct {
	debtRepo portsrepo.DebtRepositoryFacade
}

// NewDebtService creates a new DebtService.
func NewDebtService(debtRepo portsrepo.DebtRepositoryFacade) portssvc.DebtSvcFacade {
	return &debtService{debtRepo: debtRepo}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// ListOpenDebts retrieves the driver's debts with a positive outstanding balance.
func (s *debtService) ListOpenDebts(ctx context.Context, driverID string) ([]domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debts, err := s.debtRepo.FindOpenDebtsByDriver(ctx, driverID)
	if err != nil {
		logger.Error("Failed to list open debts", slog.String("driver_id", driverID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list open debts for driver %s: %w", driverID, err)
	}
	return debts, nil
}
