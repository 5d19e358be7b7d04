package services

import (
	"context"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/ptairone/logistica-flash-sub000/internal/dto"
	"github.com/shopspring/decimal"
)

// WizardSessionSvc manages the lifecycle of settlement wizard sessions.
// Each session owns one draft exclusively; abandoning it persists nothing.
type WizardSessionSvc interface {
	// StartSession opens a fresh wizard session for the driver, fetching the
	// driver's eligible trips and open debts.
	StartSession(ctx context.Context, driverID string, userID string) (*domain.SettlementDraft, error)

	// GetSession returns the current draft of the session.
	GetSession(ctx context.Context, sessionID string) (*domain.SettlementDraft, error)

	// ChangeDriver rebinds the session to a different driver, discarding all
	// stage-local state from the previous driver.
	ChangeDriver(ctx context.Context, sessionID string, driverID string) (*domain.SettlementDraft, error)

	// AbandonSession discards the session and its draft.
	AbandonSession(ctx context.Context, sessionID string) error
}

// WizardNavigationSvc moves a session between wizard stages.
type WizardNavigationSvc interface {
	// Advance moves to the next stage after checking the current stage's guard.
	Advance(ctx context.Context, sessionID string) (*domain.SettlementDraft, error)

	// Back moves to the previous stage; always permitted, never discards data.
	Back(ctx context.Context, sessionID string) (*domain.SettlementDraft, error)
}

// WizardLedgerSvc mutates the draft's ledgers. Every mutation recomputes the
// draft totals before returning.
type WizardLedgerSvc interface {
	// ToggleTrip selects or deselects an eligible trip.
	ToggleTrip(ctx context.Context, sessionID string, tripID string, selected bool) (*domain.SettlementDraft, error)

	// ApproveExpense marks an expense approved at its original amount.
	ApproveExpense(ctx context.Context, sessionID string, expenseID string) (*domain.SettlementDraft, error)

	// RejectExpense marks an expense rejected.
	RejectExpense(ctx context.Context, sessionID string, expenseID string) (*domain.SettlementDraft, error)

	// AdjustExpense overrides an expense with a reviewer-set amount.
	AdjustExpense(ctx context.Context, sessionID string, expenseID string, amount decimal.Decimal) (*domain.SettlementDraft, error)

	// AddAdjustment appends a manual adjustment entry to the draft.
	AddAdjustment(ctx context.Context, sessionID string, req dto.AddAdjustmentRequest) (*domain.SettlementDraft, error)

	// RemoveAdjustment deletes an adjustment entry.
	RemoveAdjustment(ctx context.Context, sessionID string, adjustmentID string) (*domain.SettlementDraft, error)

	// ToggleDebt selects or deselects a debt; selecting defaults the deduction
	// to the full balance.
	ToggleDebt(ctx context.Context, sessionID string, debtID string, selected bool) (*domain.SettlementDraft, error)

	// SetDebtAmount stores a deduction amount clamped to [0, debt balance].
	SetDebtAmount(ctx context.Context, sessionID string, debtID string, amount decimal.Decimal) (*domain.SettlementDraft, error)

	// SetCalculationInputs updates commission percent, advances, discounts and
	// observations.
	SetCalculationInputs(ctx context.Context, sessionID string, req dto.CalculationInputsRequest) (*domain.SettlementDraft, error)
}

// WizardSubmitSvc finalizes a session from the preview stage.
type WizardSubmitSvc interface {
	// Submit commits the draft through the settlement finalizer. Only permitted
	// at the preview stage; re-entrant submission for the same session is
	// rejected while a submit is in flight. On failure the draft remains intact
	// so the caller can retry.
	Submit(ctx context.Context, sessionID string, userID string) (*domain.Settlement, error)
}

// WizardSvcFacade combines all wizard-related service interfaces
type WizardSvcFacade interface {
	WizardSessionSvc
	WizardNavigationSvc
	WizardLedgerSvc
	WizardSubmitSvc
}
