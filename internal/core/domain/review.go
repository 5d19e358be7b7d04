package domain

import "github.com/shopspring/decimal"

// ReviewStatus indicates the review outcome attached to an expense within a draft.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
	ReviewAdjusted ReviewStatus = "ADJUSTED"
)

// ExpenseReview is the per-expense review outcome held by a settlement draft.
// ApprovedAmount is set if and only if Status is REJECTED or ADJUSTED
// (REJECTED implies an approved amount of zero). The constructors below are the
// only way reviews are produced, so that invariant holds by construction.
type ExpenseReview struct {
	ExpenseID      string           `json:"expenseID"`
	Status         ReviewStatus     `json:"status"`
	ApprovedAmount *decimal.Decimal `json:"approvedAmount,omitempty"`
}

// PendingReview returns the default review every expense starts with.
func PendingReview(expenseID string) ExpenseReview {
	return ExpenseReview{ExpenseID: expenseID, Status: ReviewPending}
}

// ApprovedReview marks the expense approved at its original amount.
func ApprovedReview(expenseID string) ExpenseReview {
	return ExpenseReview{ExpenseID: expenseID, Status: ReviewApproved}
}

// RejectedReview marks the expense rejected; its effective amount becomes zero.
func RejectedReview(expenseID string) ExpenseReview {
	zero := decimal.Zero
	return ExpenseReview{ExpenseID: expenseID, Status: ReviewRejected, ApprovedAmount: &zero}
}

// AdjustedReview overrides the expense with a reviewer-set amount.
func AdjustedReview(expenseID string, amount decimal.Decimal) ExpenseReview {
	return ExpenseReview{ExpenseID: expenseID, Status: ReviewAdjusted, ApprovedAmount: &amount}
}

// EffectiveAmount returns the amount the calculator uses for this expense:
// the approved amount when the review overrides it, the original amount otherwise.
func (r ExpenseReview) EffectiveAmount(original decimal.Decimal) decimal.Decimal {
	if (r.Status == ReviewRejected || r.Status == ReviewAdjusted) && r.ApprovedAmount != nil {
		return *r.ApprovedAmount
	}
	return original
}

// ExpenseReviewLedger tracks one review per expense on the selected trips.
type ExpenseReviewLedger map[string]ExpenseReview

// NewExpenseReviewLedger creates a ledger with a pending review for every
// expense on every given trip.
func NewExpenseReviewLedger(trips []Trip) ExpenseReviewLedger {
	ledger := make(ExpenseReviewLedger)
	for _, trip := range trips {
		ledger.AddTripExpenses(trip)
	}
	return ledger
}

// AddTripExpenses registers pending reviews for the trip's expenses,
// preserving any review that already exists.
func (l ExpenseReviewLedger) AddTripExpenses(trip Trip) {
	for _, exp := range trip.Expenses {
		if _, exists := l[exp.ExpenseID]; !exists {
			l[exp.ExpenseID] = PendingReview(exp.ExpenseID)
		}
	}
}

// RemoveTripExpenses discards the reviews for the trip's expenses.
func (l ExpenseReviewLedger) RemoveTripExpenses(trip Trip) {
	for _, exp := range trip.Expenses {
		delete(l, exp.ExpenseID)
	}
}

// Approve sets the expense review to approved; the effective amount reverts to
// the original expense amount.
func (l ExpenseReviewLedger) Approve(expenseID string) {
	l[expenseID] = ApprovedReview(expenseID)
}

// Reject sets the expense review to rejected with an approved amount of zero.
func (l ExpenseReviewLedger) Reject(expenseID string) {
	l[expenseID] = RejectedReview(expenseID)
}

// SetAdjustedAmount overrides the expense with the given amount.
// Callers must validate amount >= 0 before calling.
func (l ExpenseReviewLedger) SetAdjustedAmount(expenseID string, amount decimal.Decimal) {
	l[expenseID] = AdjustedReview(expenseID, amount)
}

// Get returns the review for the expense, defaulting to pending when the
// expense was never registered.
func (l ExpenseReviewLedger) Get(expenseID string) ExpenseReview {
	if r, ok := l[expenseID]; ok {
		return r
	}
	return PendingReview(expenseID)
}
