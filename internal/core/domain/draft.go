package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WizardStage is one step of the settlement wizard.
type WizardStage string

const (
	StageTrips       WizardStage = "TRIPS"
	StageExpenses    WizardStage = "EXPENSES"
	StageAdjustments WizardStage = "ADJUSTMENTS"
	StageDebts       WizardStage = "DEBTS"
	StageCalculation WizardStage = "CALCULATION"
	StagePreview     WizardStage = "PREVIEW"
)

// wizardStages is the fixed forward order of the wizard.
var wizardStages = []WizardStage{
	StageTrips,
	StageExpenses,
	StageAdjustments,
	StageDebts,
	StageCalculation,
	StagePreview,
}

func stageIndex(s WizardStage) int {
	for i, stage := range wizardStages {
		if stage == s {
			return i
		}
	}
	return -1
}

// NextStage returns the stage after s. ok is false at the last stage.
func NextStage(s WizardStage) (WizardStage, bool) {
	i := stageIndex(s)
	if i < 0 || i+1 >= len(wizardStages) {
		return s, false
	}
	return wizardStages[i+1], true
}

// PrevStage returns the stage before s. ok is false at the first stage.
func PrevStage(s WizardStage) (WizardStage, bool) {
	i := stageIndex(s)
	if i <= 0 {
		return s, false
	}
	return wizardStages[i-1], true
}

// SettlementDraft holds the full in-memory state of one wizard session: the
// current stage, the selected driver and trips, and the three stage-local
// ledgers. Nothing in a draft is persisted until finalize; abandoning the
// session discards it with zero side effects.
type SettlementDraft struct {
	SessionID         string              `json:"sessionID"`
	Stage             WizardStage         `json:"stage"`
	DriverID          string              `json:"driverID"`
	DriverName        string              `json:"driverName"`
	CommissionPercent decimal.Decimal     `json:"commissionPercent"`
	Advances          decimal.Decimal     `json:"advances"`
	Discounts         decimal.Decimal     `json:"discounts"`
	Observations      string              `json:"observations"`
	EligibleTrips     []Trip              `json:"eligibleTrips"`
	OpenDebts         []Debt              `json:"openDebts"`
	SelectedTripIDs   map[string]bool     `json:"selectedTripIDs"`
	Reviews           ExpenseReviewLedger `json:"reviews"`
	Adjustments       AdjustmentLedger    `json:"-"`
	DebtSelection     DebtSelection       `json:"debtSelection"`
	Totals            SettlementTotals    `json:"totals"`
}

// NewSettlementDraft creates an empty draft at the trips stage.
func NewSettlementDraft(sessionID string) *SettlementDraft {
	return &SettlementDraft{
		SessionID:       sessionID,
		Stage:           StageTrips,
		SelectedTripIDs: make(map[string]bool),
		Reviews:         make(ExpenseReviewLedger),
		DebtSelection:   make(DebtSelection),
	}
}

// ResetForDriver clears all stage-local state and binds the draft to a new
// driver. Partial state from a previous driver must never leak into a new draft.
func (d *SettlementDraft) ResetForDriver(driver Driver) {
	d.Stage = StageTrips
	d.DriverID = driver.DriverID
	d.DriverName = driver.Name
	d.CommissionPercent = driver.CommissionPercent
	d.Advances = decimal.Zero
	d.Discounts = decimal.Zero
	d.Observations = ""
	d.EligibleTrips = nil
	d.OpenDebts = nil
	d.SelectedTripIDs = make(map[string]bool)
	d.Reviews = make(ExpenseReviewLedger)
	d.Adjustments = AdjustmentLedger{}
	d.DebtSelection = make(DebtSelection)
	d.Totals = ComputeSettlement(SettlementInput{})
}

// Clone returns an independent copy of the draft. The ledger maps and the
// adjustment entries get their own backing storage, so mutating either copy is
// never observable through the other. Trip and debt records are treated as
// immutable once fetched; only their outer slices are copied.
func (d *SettlementDraft) Clone() *SettlementDraft {
	copied := *d
	copied.EligibleTrips = append([]Trip(nil), d.EligibleTrips...)
	copied.OpenDebts = append([]Debt(nil), d.OpenDebts...)
	copied.SelectedTripIDs = make(map[string]bool, len(d.SelectedTripIDs))
	for id, selected := range d.SelectedTripIDs {
		copied.SelectedTripIDs[id] = selected
	}
	copied.Reviews = make(ExpenseReviewLedger, len(d.Reviews))
	for id, review := range d.Reviews {
		copied.Reviews[id] = review
	}
	copied.DebtSelection = make(DebtSelection, len(d.DebtSelection))
	for id, amount := range d.DebtSelection {
		copied.DebtSelection[id] = amount
	}
	copied.Adjustments = d.Adjustments.Clone()
	return &copied
}

// SelectTrip adds a trip to the selection and registers pending reviews for its
// expenses. It reports whether the trip ID belongs to the eligible set.
func (d *SettlementDraft) SelectTrip(tripID string) bool {
	trip, ok := d.findEligibleTrip(tripID)
	if !ok {
		return false
	}
	d.SelectedTripIDs[tripID] = true
	d.Reviews.AddTripExpenses(trip)
	return true
}

// DeselectTrip removes a trip from the selection along with the reviews of its
// expenses.
func (d *SettlementDraft) DeselectTrip(tripID string) bool {
	trip, ok := d.findEligibleTrip(tripID)
	if !ok {
		return false
	}
	delete(d.SelectedTripIDs, tripID)
	d.Reviews.RemoveTripExpenses(trip)
	return true
}

func (d *SettlementDraft) findEligibleTrip(tripID string) (Trip, bool) {
	for _, t := range d.EligibleTrips {
		if t.TripID == tripID {
			return t, true
		}
	}
	return Trip{}, false
}

// SelectedTrips returns the selected subset in eligible-trip order.
func (d *SettlementDraft) SelectedTrips() []Trip {
	selected := make([]Trip, 0, len(d.SelectedTripIDs))
	for _, t := range d.EligibleTrips {
		if d.SelectedTripIDs[t.TripID] {
			selected = append(selected, t)
		}
	}
	return selected
}

// FindExpense looks up an expense on the selected trips.
func (d *SettlementDraft) FindExpense(expenseID string) (Expense, bool) {
	for _, trip := range d.SelectedTrips() {
		for _, exp := range trip.Expenses {
			if exp.ExpenseID == expenseID {
				return exp, true
			}
		}
	}
	return Expense{}, false
}

// FindDebt looks up a debt in the fetched open-debt list.
func (d *SettlementDraft) FindDebt(debtID string) (Debt, bool) {
	for _, debt := range d.OpenDebts {
		if debt.DebtID == debtID {
			return debt, true
		}
	}
	return Debt{}, false
}

// Period returns the settlement period derived from the selected trips.
// ok is false when no trips are selected.
func (d *SettlementDraft) Period() (start, end time.Time, ok bool) {
	return TripPeriod(d.SelectedTrips())
}

// CanAdvance reports whether the current stage's guard holds. Only the trips
// stage blocks: it requires a driver, at least one selected trip and a
// non-negative commission percent. Later stages may be advanced with empty
// ledgers.
func (d *SettlementDraft) CanAdvance() bool {
	if d.Stage != StageTrips {
		return true
	}
	return d.DriverID != "" && len(d.SelectedTripIDs) > 0 && !d.CommissionPercent.IsNegative()
}

// Recompute refreshes the draft's totals from its current ledgers. Invoked by
// the wizard controller after every mutation; never debounced.
func (d *SettlementDraft) Recompute() {
	d.Totals = ComputeSettlement(SettlementInput{
		Trips:             d.SelectedTrips(),
		Reviews:           d.Reviews,
		CommissionPercent: d.CommissionPercent,
		Advances:          d.Advances,
		Discounts:         d.Discounts,
		Adjustments:       &d.Adjustments,
		Debts:             d.OpenDebts,
		DebtSelection:     d.DebtSelection,
	})
}
