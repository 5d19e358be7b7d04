package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portssvc "github.com/ptairone/logistica-flash-sub000/internal/core/ports/services"
	"github.com/ptairone/logistica-flash-sub000/internal/dto"
	"github.com/ptairone/logistica-flash-sub000/internal/middleware"
)

var (
	// ErrSessionNotFound indicates the wizard session does not exist or was abandoned.
	ErrSessionNotFound = errors.New("wizard session not found")

	// ErrStageGuard indicates the current stage's requirements are not met.
	ErrStageGuard = errors.New("current stage requirements not met")

	// ErrUnknownTrip indicates the trip is not in the session's eligible set.
	ErrUnknownTrip = errors.New("trip not eligible for this session")

	// ErrUnknownExpense indicates the expense does not belong to a selected trip.
	ErrUnknownExpense = errors.New("expense not found on selected trips")

	// ErrUnknownDebt indicates the debt is not in the session's open-debt list.
	ErrUnknownDebt = errors.New("debt not found for this session")

	// ErrUnknownAdjustment indicates the adjustment entry does not exist.
	ErrUnknownAdjustment = errors.New("adjustment entry not found")

	// ErrNegativeAmount indicates a negative amount where only zero or positive is allowed.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrAdjustmentAmountNotPositive indicates an adjustment entry with a zero or negative amount.
	ErrAdjustmentAmountNotPositive = errors.New("adjustment amount must be positive")

	// ErrNotAtPreview indicates a submit attempt from a stage other than preview.
	ErrNotAtPreview = errors.New("submit is only permitted from the preview stage")

	// ErrSubmitInFlight indicates a submit is already running for this session.
	ErrSubmitInFlight = errors.New("a submit is already in flight for this session")
)

// wizardSession pairs a draft with the concurrency state the service needs:
// a per-session lock, a fetch epoch to discard ledger data fetched for a
// previous driver, and a flag blocking re-entrant submits.
type wizardSession struct {
	mu         sync.Mutex
	draft      *domain.SettlementDraft
	fetchEpoch uint64
	submitting bool
	lastAccess time.Time
}

// wizardService orchestrates settlement wizard sessions. Sessions live in
// memory only; restarting the process discards open drafts, which is safe
// because nothing in a draft is persisted before finalize.
type wizardService struct {
	mu       sync.Mutex
	sessions map[string]*wizardSession

	driverSvc     portssvc.DriverSvcFacade
	tripSvc       portssvc.TripSvcFacade
	debtSvc       portssvc.DebtSvcFacade
	settlementSvc portssvc.SettlementFinalizerSvc
}

// NewWizardService creates a new WizardService.
func NewWizardService(
	driverSvc portssvc.DriverSvcFacade,
	tripSvc portssvc.TripSvcFacade,
	debtSvc portssvc.DebtSvcFacade,
	settlementSvc portssvc.SettlementFinalizerSvc,
) portssvc.WizardSvcFacade {
	return &wizardService{
		sessions:      make(map[string]*wizardSession),
		driverSvc:     driverSvc,
		tripSvc:       tripSvc,
		debtSvc:       debtSvc,
		settlementSvc: settlementSvc,
	}
}

var _ portssvc.WizardSvcFacade = (*wizardService)(nil)

func (s *wizardService) session(sessionID string) (*wizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	sess.lastAccess = time.Now()
	return sess, nil
}

// snapshot returns an independent copy of the draft so callers never observe
// later mutations, including mutations from concurrent calls on the same
// session.
func snapshot(d *domain.SettlementDraft) *domain.SettlementDraft {
	return d.Clone()
}

// StartSession opens a fresh wizard session bound to the driver, with the
// driver's eligible trips and open debts already fetched.
func (s *wizardService) StartSession(ctx context.Context, driverID string, userID string) (*domain.SettlementDraft, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sessionID := uuid.NewString()
	sess := &wizardSession{
		draft:      domain.NewSettlementDraft(sessionID),
		lastAccess: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	draft, err := s.bindDriver(ctx, sess, driverID)
	if err != nil {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, err
	}

	logger.Info("Wizard session started",
		slog.String("session_id", sessionID),
		slog.String("driver_id", driverID),
		slog.String("user_id", userID))
	return draft, nil
}

func (s *wizardService) GetSession(ctx context.Context, sessionID string) (*domain.SettlementDraft, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshot(sess.draft), nil
}

// ChangeDriver rebinds the session to a new driver. All ledgers reset and the
// fetch epoch advances, so trip or debt data still in flight for the previous
// driver can never land in the new draft.
func (s *wizardService) ChangeDriver(ctx context.Context, sessionID string, driverID string) (*domain.SettlementDraft, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.bindDriver(ctx, sess, driverID)
}

func (s *wizardService) bindDriver(ctx context.Context, sess *wizardSession, driverID string) (*domain.SettlementDraft, error) {
	driver, err := s.driverSvc.GetDriverByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to bind driver %s: %w", driverID, err)
	}

	sess.mu.Lock()
	sess.fetchEpoch++
	epoch := sess.fetchEpoch
	sess.draft.ResetForDriver(*driver)
	sess.mu.Unlock()

	trips, err := s.tripSvc.FetchEligibleTrips(ctx, driverID)
	if err != nil {
		return nil, err
	}
	debts, err := s.debtSvc.ListOpenDebts(ctx, driverID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.fetchEpoch != epoch {
		// The session moved to another driver while we were fetching.
		return snapshot(sess.draft), nil
	}
	sess.draft.EligibleTrips = trips
	sess.draft.OpenDebts = debts
	sess.draft.Recompute()
	return snapshot(sess.draft), nil
}

func (s *wizardService) AbandonSession(ctx context.Context, sessionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	delete(s.sessions, sessionID)

	logger.Info("Wizard session abandoned", slog.String("session_id", sessionID))
	return nil
}

// Advance moves the session to the next stage after checking the current
// stage's guard.
func (s *wizardService) Advance(ctx context.Context, sessionID string) (*domain.SettlementDraft, error) {
	return s.withDraft(sessionID, func(d *domain.SettlementDraft) error {
		if !d.CanAdvance() {
			return fmt.Errorf("%w: select a driver and at least one trip", ErrStageGuard)
		}
		next, ok := domain.NextStage(d.Stage)
		if !ok {
			return fmt.Errorf("%w: already at the last stage", ErrStageGuard)
		}
		d.Stage = next
		return nil
	})
}

// Back moves the session to the previous stage. Always permitted; ledger data
// is never discarded by navigation.
func (s *wizardService) Back(ctx context.Context, sessionID string) (*domain.SettlementDraft, error) {
	return s.withDraft(sessionID, func(d *domain.SettlementDraft) error {
		if prev, ok := domain.PrevStage(d.Stage); ok {
			d.Stage = prev
		}
		return nil
	})
}

func (s *wizardService) ToggleTrip(ctx context.Context, sessionID string, tripID string, selected bool) (*domain.SettlementDraft, error) {
	return s.withDraft(sessionID, func(d *domain.SettlementDraft) error {
		var ok bool
		if selected {
			ok = d.SelectTrip(tripID)
		} else {
			ok = d.DeselectTrip(tripID)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTrip, tripID)
		}
		return nil
	})
}

func (s *wizardService) ApproveExpense(ctx context.Context, sessionID string, expenseID string) (*domain.SettlementDraft, error) {
	return s.withDraft(sessionID, func(d *domain.SettlementDraft) error {
		if _, ok := d.FindExpense(expenseID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownExpense, expenseID)
		}
		d.Reviews.Approve(expenseID)
		return nil
	})
}

func (s *wizardService) RejectExpense(ctx context.Context, sessionID string, expenseID string) (*domain.SettlementDraft, error) {
	return s.withDraft(sessionID, func(d *domain.SettlementDraft) error {
		if _, ok := d.FindExpense(expenseID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownExpense, expenseID)
		}
		d.Reviews.Reject(expenseID)
		return nil
	})
}

func (s *wizardService) AdjustExpense(ctx context.Context, sessionID string, expenseID string, amount decimal.Decimal) (*domain.SettlementDraft, error) {
	return s.withDraft(sessionID, func(d *domain.SettlementDraft) error {
		if amount.IsNegative() {
			return fmt.Errorf("%w: adjusted expense amount %s", ErrNegativeAmount, amount)
		}
		if _, ok := d.FindExpense(expenseID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownExpense, expenseID)
		}
		d.Reviews.SetAdjustedAmount(expenseID, amount)
		return nil
	})
}

func (s *wizardService) AddAdjustment(ctx context.Context, sessionID string, req dto.AddAdjustmentRequest) (*domain.SettlementDraft, error) {
	return s.withDraft(sessionID, func(d *domain.SettlementDraft) error {
		if !req.Amount.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: got %s", ErrAdjustmentAmountNotPositive, req.Amount)
		}
		d.Adjustments.Add(domain.Adjustment{
			AdjustmentID:  uuid.NewString(),
			Type:          req.Type,
			Category:      req.Category,
			Description:   req.Description,
			Amount:        req.Amount,
			Justification: req.Justification,
		})
		return nil
	})
}

func (s *wizardService) RemoveAdjustment(ctx context.Context, sessionID string, adjustmentID string) (*domain.SettlementDraft, error) {
	return s.withDraft(sessionID, func(d *domain.SettlementDraft) error {
		if !d.Adjustments.Remove(adjustmentID) {
			return fmt.Errorf("%w: %s", ErrUnknownAdjustment, adjustmentID)
		}
		return nil
	})
}

func (s *wizardService) ToggleDebt(ctx context.Context, sessionID string, debtID string, selected bool) (*domain.SettlementDraft, error) {
	return s.withDraft(sessionID, func(d *domain.SettlementDraft) error {
		debt, ok := d.FindDebt(debtID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownDebt, debtID)
		}
		d.DebtSelection.Toggle(debt, selected)
		return nil
	})
}

func (s *wizardService) SetDebtAmount(ctx context.Context, sessionID string, debtID string, amount decimal.Decimal) (*domain.SettlementDraft, error) {
	return s.withDraft(sessionID, func(d *domain.SettlementDraft) error {
		debt, ok := d.FindDebt(debtID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownDebt, debtID)
		}
		d.DebtSelection.SetAmount(debt, amount)
		return nil
	})
}

func (s *wizardService) SetCalculationInputs(ctx context.Context, sessionID string, req dto.CalculationInputsRequest) (*domain.SettlementDraft, error) {
	return s.withDraft(sessionID, func(d *domain.SettlementDraft) error {
		if req.CommissionPercent != nil {
			if req.CommissionPercent.IsNegative() {
				return fmt.Errorf("%w: commission percent %s", ErrNegativeAmount, req.CommissionPercent)
			}
			d.CommissionPercent = *req.CommissionPercent
		}
		if req.Advances != nil {
			if req.Advances.IsNegative() {
				return fmt.Errorf("%w: advances %s", ErrNegativeAmount, req.Advances)
			}
			d.Advances = *req.Advances
		}
		if req.Discounts != nil {
			if req.Discounts.IsNegative() {
				return fmt.Errorf("%w: discounts %s", ErrNegativeAmount, req.Discounts)
			}
			d.Discounts = *req.Discounts
		}
		if req.Observations != nil {
			d.Observations = *req.Observations
		}
		return nil
	})
}

// Submit commits the draft through the settlement finalizer. Only permitted at
// the preview stage. The in-flight flag rejects concurrent submits for the same
// session; on failure the flag clears and the draft stays intact for a retry.
func (s *wizardService) Submit(ctx context.Context, sessionID string, userID string) (*domain.Settlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.draft.Stage != domain.StagePreview {
		sess.mu.Unlock()
		return nil, fmt.Errorf("%w: current stage is %s", ErrNotAtPreview, sess.draft.Stage)
	}
	if sess.submitting {
		sess.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrSubmitInFlight, sessionID)
	}
	sess.submitting = true
	draft := snapshot(sess.draft)
	sess.mu.Unlock()

	settlement, err := s.settlementSvc.FinalizeDraft(ctx, draft, userID)

	sess.mu.Lock()
	sess.submitting = false
	sess.mu.Unlock()

	if err != nil {
		logger.Error("Wizard submit failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	logger.Info("Wizard session submitted",
		slog.String("session_id", sessionID),
		slog.String("settlement_id", settlement.SettlementID))
	return settlement, nil
}

// withDraft runs fn under the session lock and recomputes the totals when fn
// succeeds, so every mutation returns an up-to-date draft.
func (s *wizardService) withDraft(sessionID string, fn func(*domain.SettlementDraft) error) (*domain.SettlementDraft, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.submitting {
		return nil, fmt.Errorf("%w: %s", ErrSubmitInFlight, sessionID)
	}
	if err := fn(sess.draft); err != nil {
		return nil, err
	}
	sess.draft.Recompute()
	return snapshot(sess.draft), nil
}
