package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ptairone/logistica-flash-sub000/internal/apperrors"
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portsrepo "github.com/ptairone/logistica-flash-sub000/internal/core/ports/repositories"
	portssvc "github.com/ptairone/logistica-flash-sub000/internal/core/ports/services"
	"github.com/ptairone/logistica-flash-sub000/internal/middleware"
	"github.com/ptairone/logistica-flash-sub000/internal/utils"
	"github.com/ptairone/logistica-flash-sub000/internal/utils/settlementcode"
)

var (
	// ErrDraftNoDriver indicates a finalize attempt on a draft with no driver bound.
	ErrDraftNoDriver = errors.New("draft has no driver selected")

	// ErrDraftNoTrips indicates a finalize attempt on a draft with no trips selected.
	ErrDraftNoTrips = errors.New("draft has no trips selected")

	// ErrDraftBadCommission indicates a finalize attempt with a negative commission percent.
	ErrDraftBadCommission = errors.New("draft commission percent must not be negative")

	// ErrInvalidStatusTransition indicates a settlement status change outside
	// the OPEN -> CLOSED -> PAID order.
	ErrInvalidStatusTransition = errors.New("invalid settlement status transition")
)

type settlementService struct {
	settlementRepo portsrepo.SettlementRepositoryWithTx
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(settlementRepo portsrepo.SettlementRepositoryWithTx) portssvc.SettlementSvcFacade {
	return &settlementService{settlementRepo: settlementRepo}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// FinalizeDraft validates the draft, recomputes its totals from scratch and
// persists the settlement with all its side records in one transaction. On a
// settlement code collision the code is regenerated once with a random suffix.
func (s *settlementService) FinalizeDraft(ctx context.Context, draft *domain.SettlementDraft, creatorUserID string) (*domain.Settlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if draft.DriverID == "" {
		return nil, ErrDraftNoDriver
	}
	selectedTrips := draft.SelectedTrips()
	if len(selectedTrips) == 0 {
		return nil, ErrDraftNoTrips
	}
	if draft.CommissionPercent.IsNegative() {
		return nil, ErrDraftBadCommission
	}

	// Never trust cached totals at the persistence boundary.
	draft.Recompute()
	totals := draft.Totals

	periodStart, periodEnd, ok := draft.Period()
	if !ok {
		return nil, ErrDraftNoTrips
	}

	now := time.Now().UTC()
	settlementID := uuid.NewString()
	tripIDs := make([]string, 0, len(selectedTrips))
	for _, t := range selectedTrips {
		tripIDs = append(tripIDs, t.TripID)
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	settlement := domain.Settlement{
		SettlementID:        settlementID,
		Code:                settlementcode.Generate(draft.DriverName, periodEnd, len(selectedTrips)),
		DriverID:            draft.DriverID,
		Status:              domain.SettlementOpen,
		PeriodStart:         periodStart,
		PeriodEnd:           periodEnd,
		CommissionPercent:   draft.CommissionPercent,
		CommissionBase:      totals.CommissionBase,
		CommissionValue:     totals.CommissionValue,
		TotalRevenue:        totals.RevenueTotal,
		TotalReimbursements: totals.ReimbursementTotal,
		TotalBonuses:        totals.BonusTotal,
		TotalPenalties:      totals.PenaltyTotal,
		TotalDebtsDeducted:  totals.DebtDeductedTotal,
		TotalRejected:       totals.RejectedTotal,
		TotalAdvances:       totals.Advances,
		TotalDiscounts:      totals.Discounts,
		TotalPayable:        totals.TotalPayable,
		Observations:        draft.Observations,
		TripIDs:             tripIDs,
		AuditFields:         audit,
	}

	adjustments := make([]domain.Adjustment, 0, len(draft.Adjustments.Entries()))
	for _, entry := range draft.Adjustments.Entries() {
		entry.SettlementID = settlementID
		entry.AuditFields = audit
		adjustments = append(adjustments, entry)
	}

	reviews := make([]domain.ExpenseReview, 0, len(draft.Reviews))
	for _, trip := range selectedTrips {
		for _, exp := range trip.Expenses {
			reviews = append(reviews, draft.Reviews.Get(exp.ExpenseID))
		}
	}

	deductions := draft.DebtSelection.Deductions(draft.OpenDebts)
	nonZero := make([]domain.DebtDeduction, 0, len(deductions))
	for _, d := range deductions {
		if d.Amount.GreaterThan(decimal.Zero) {
			nonZero = append(nonZero, d)
		}
	}
	deductions = nonZero

	err := s.settlementRepo.SaveSettlement(ctx, settlement, adjustments, reviews, deductions)
	if errors.Is(err, apperrors.ErrDuplicate) {
		// Same driver, same period end, same trip count: disambiguate once.
		suffix, randErr := utils.GenerateSecureRandomString(2)
		if randErr != nil {
			return nil, fmt.Errorf("failed to regenerate settlement code: %w", randErr)
		}
		settlement.Code = settlementcode.GenerateWithSuffix(draft.DriverName, periodEnd, len(selectedTrips), suffix)
		logger.Warn("Settlement code collision, retrying with suffix", slog.String("code", settlement.Code))
		err = s.settlementRepo.SaveSettlement(ctx, settlement, adjustments, reviews, deductions)
	}
	if err != nil {
		logger.Error("Failed to finalize settlement",
			slog.String("driver_id", draft.DriverID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to finalize settlement: %w", err)
	}

	logger.Info("Settlement finalized",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("code", settlement.Code),
		slog.String("driver_id", settlement.DriverID),
		slog.Int("trip_count", len(tripIDs)),
		slog.String("total_payable", settlement.TotalPayable.String()))

	return &settlement, nil
}

func (s *settlementService) GetSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement %s: %w", settlementID, err)
	}
	return settlement, nil
}

func (s *settlementService) ListSettlements(ctx context.Context, driverID string, limit int, offset int) ([]domain.Settlement, error) {
	settlements, err := s.settlementRepo.ListSettlements(ctx, driverID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	return settlements, nil
}

// CloseSettlement transitions an OPEN settlement to CLOSED.
func (s *settlementService) CloseSettlement(ctx context.Context, settlementID string, userID string) (*domain.Settlement, error) {
	return s.transition(ctx, settlementID, userID, domain.SettlementOpen, domain.SettlementClosed)
}

// MarkSettlementPaid transitions a CLOSED settlement to PAID.
func (s *settlementService) MarkSettlementPaid(ctx context.Context, settlementID string, userID string) (*domain.Settlement, error) {
	return s.transition(ctx, settlementID, userID, domain.SettlementClosed, domain.SettlementPaid)
}

func (s *settlementService) transition(ctx context.Context, settlementID, userID string, from, to domain.SettlementStatus) (*domain.Settlement, error) {
	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement %s: %w", settlementID, err)
	}
	if settlement.Status != from {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, settlement.Status, to)
	}

	now := time.Now().UTC()
	if err := s.settlementRepo.UpdateSettlementStatus(ctx, settlementID, to, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update settlement status: %w", err)
	}

	settlement.Status = to
	settlement.LastUpdatedAt = now
	settlement.LastUpdatedBy = userID
	return settlement, nil
}
