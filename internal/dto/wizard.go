package dto

import (
	"time"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/ptairone/logistica-flash-sub000/internal/utils"
	"github.com/shopspring/decimal"
)

// StartSessionRequest opens a wizard session for a driver.
type StartSessionRequest struct {
	DriverID string `json:"driverID" binding:"required"`
}

// ChangeDriverRequest rebinds an existing session to another driver.
type ChangeDriverRequest struct {
	DriverID string `json:"driverID" binding:"required"`
}

// ToggleTripRequest selects or deselects an eligible trip.
type ToggleTripRequest struct {
	TripID   string `json:"tripID" binding:"required"`
	Selected *bool  `json:"selected" binding:"required"` // Pointer so false is distinguishable from omitted
}

// ReviewExpenseRequest applies a review action to an expense.
type ReviewExpenseRequest struct {
	ExpenseID string           `json:"expenseID" binding:"required"`
	Action    string           `json:"action" binding:"required,oneof=APPROVE REJECT ADJUST"`
	Amount    *decimal.Decimal `json:"amount"` // Required for ADJUST
}

// AddAdjustmentRequest appends a manual adjustment entry to the draft.
type AddAdjustmentRequest struct {
	Type          domain.AdjustmentType `json:"type" binding:"required,oneof=BONUS PENALTY CORRECTION OTHER"`
	Category      string                `json:"category" binding:"required,notblank"`
	Description   string                `json:"description" binding:"required,notblank"`
	Amount        decimal.Decimal       `json:"amount" binding:"required"`
	Justification string                `json:"justification"`
}

// ToggleDebtRequest selects or deselects a debt for deduction.
type ToggleDebtRequest struct {
	DebtID   string `json:"debtID" binding:"required"`
	Selected *bool  `json:"selected" binding:"required"`
}

// SetDebtAmountRequest sets the deduction amount for a selected debt.
type SetDebtAmountRequest struct {
	DebtID string          `json:"debtID" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// CalculationInputsRequest updates the calculation-stage inputs.
// Pointers distinguish omitted fields from zero values.
type CalculationInputsRequest struct {
	CommissionPercent *decimal.Decimal `json:"commissionPercent"`
	Advances          *decimal.Decimal `json:"advances"`
	Discounts         *decimal.Decimal `json:"discounts"`
	Observations      *string          `json:"observations"`
}

// WizardStateResponse is the draft state returned after every wizard call.
type WizardStateResponse struct {
	SessionID           string                  `json:"sessionID"`
	Stage               domain.WizardStage      `json:"stage"`
	DriverID            string                  `json:"driverID"`
	DriverName          string                  `json:"driverName"`
	CommissionPercent   decimal.Decimal         `json:"commissionPercent"`
	Advances            decimal.Decimal         `json:"advances"`
	Discounts           decimal.Decimal         `json:"discounts"`
	Observations        string                  `json:"observations"`
	EligibleTrips       []TripResponse          `json:"eligibleTrips"`
	SelectedTripIDs     []string                `json:"selectedTripIDs"`
	Reviews             []ExpenseReviewResponse `json:"reviews"`
	Adjustments         []AdjustmentResponse    `json:"adjustments"`
	OpenDebts           []DebtResponse          `json:"openDebts"`
	DebtSelection       []DebtSelectionResponse `json:"debtSelection"`
	PeriodStart         *time.Time              `json:"periodStart,omitempty"`
	PeriodEnd           *time.Time              `json:"periodEnd,omitempty"`
	Totals              domain.SettlementTotals `json:"totals"`
	TotalPayableDisplay string                  `json:"totalPayableDisplay"` // BRL presentation of Totals.TotalPayable
}

// ExpenseReviewResponse is one per-expense review outcome.
type ExpenseReviewResponse struct {
	ExpenseID       string              `json:"expenseID"`
	Status          domain.ReviewStatus `json:"status"`
	ApprovedAmount  *decimal.Decimal    `json:"approvedAmount,omitempty"`
	EffectiveAmount decimal.Decimal     `json:"effectiveAmount"`
}

// DebtSelectionResponse is one selected debt deduction.
type DebtSelectionResponse struct {
	DebtID string          `json:"debtID"`
	Amount decimal.Decimal `json:"amount"`
}

// ToWizardStateResponse converts a draft to its API representation.
func ToWizardStateResponse(d *domain.SettlementDraft) WizardStateResponse {
	resp := WizardStateResponse{
		SessionID:           d.SessionID,
		Stage:               d.Stage,
		DriverID:            d.DriverID,
		DriverName:          d.DriverName,
		CommissionPercent:   d.CommissionPercent,
		Advances:            d.Advances,
		Discounts:           d.Discounts,
		Observations:        d.Observations,
		EligibleTrips:       ToTripResponses(d.EligibleTrips),
		SelectedTripIDs:     make([]string, 0, len(d.SelectedTripIDs)),
		Reviews:             make([]ExpenseReviewResponse, 0, len(d.Reviews)),
		Adjustments:         ToAdjustmentResponses(d.Adjustments.Entries()),
		OpenDebts:           ToDebtResponses(d.OpenDebts),
		DebtSelection:       make([]DebtSelectionResponse, 0, len(d.DebtSelection)),
		Totals:              d.Totals,
		TotalPayableDisplay: utils.FormatBRL(d.Totals.TotalPayable),
	}

	for _, trip := range d.SelectedTrips() {
		resp.SelectedTripIDs = append(resp.SelectedTripIDs, trip.TripID)
		for _, exp := range trip.Expenses {
			review := d.Reviews.Get(exp.ExpenseID)
			resp.Reviews = append(resp.Reviews, ExpenseReviewResponse{
				ExpenseID:       exp.ExpenseID,
				Status:          review.Status,
				ApprovedAmount:  review.ApprovedAmount,
				EffectiveAmount: review.EffectiveAmount(exp.Amount),
			})
		}
	}

	for _, deduction := range d.DebtSelection.Deductions(d.OpenDebts) {
		resp.DebtSelection = append(resp.DebtSelection, DebtSelectionResponse{
			DebtID: deduction.DebtID,
			Amount: deduction.Amount,
		})
	}

	if start, end, ok := d.Period(); ok {
		resp.PeriodStart = &start
		resp.PeriodEnd = &end
	}

	return resp
}
