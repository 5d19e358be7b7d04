package domain_test

import (
	"testing"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExpenseReview_EffectiveAmount(t *testing.T) {
	original := dec("120.50")

	tests := []struct {
		name   string
		review domain.ExpenseReview
		want   decimal.Decimal
	}{
		{
			name:   "pending uses original amount",
			review: domain.PendingReview("e1"),
			want:   original,
		},
		{
			name:   "approved uses original amount",
			review: domain.ApprovedReview("e1"),
			want:   original,
		},
		{
			name:   "rejected is zero",
			review: domain.RejectedReview("e1"),
			want:   decimal.Zero,
		},
		{
			name:   "adjusted uses override",
			review: domain.AdjustedReview("e1", dec("99.99")),
			want:   dec("99.99"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.review.EffectiveAmount(original)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestExpenseReview_ApprovedAmountInvariant(t *testing.T) {
	assert.Nil(t, domain.PendingReview("e1").ApprovedAmount)
	assert.Nil(t, domain.ApprovedReview("e1").ApprovedAmount)

	rejected := domain.RejectedReview("e1")
	if assert.NotNil(t, rejected.ApprovedAmount) {
		assert.True(t, rejected.ApprovedAmount.IsZero())
	}

	adjusted := domain.AdjustedReview("e1", dec("42"))
	if assert.NotNil(t, adjusted.ApprovedAmount) {
		assert.True(t, adjusted.ApprovedAmount.Equal(dec("42")))
	}
}

func TestExpenseReviewLedger_DefaultsPendingPerExpense(t *testing.T) {
	trip := tripWithExpenses("t1", "100",
		domain.Expense{ExpenseID: "e1", TripID: "t1", Amount: dec("10"), Reimbursable: true},
		domain.Expense{ExpenseID: "e2", TripID: "t1", Amount: dec("20"), Reimbursable: false},
	)

	ledger := domain.NewExpenseReviewLedger([]domain.Trip{trip})

	assert.Len(t, ledger, 2)
	assert.Equal(t, domain.ReviewPending, ledger.Get("e1").Status)
	assert.Equal(t, domain.ReviewPending, ledger.Get("e2").Status)
}

func TestExpenseReviewLedger_ApproveClearsOverride(t *testing.T) {
	trip := tripWithExpenses("t1", "100",
		domain.Expense{ExpenseID: "e1", TripID: "t1", Amount: dec("10"), Reimbursable: true},
	)
	ledger := domain.NewExpenseReviewLedger([]domain.Trip{trip})

	ledger.SetAdjustedAmount("e1", dec("5"))
	assert.Equal(t, domain.ReviewAdjusted, ledger.Get("e1").Status)

	ledger.Approve("e1")
	review := ledger.Get("e1")
	assert.Equal(t, domain.ReviewApproved, review.Status)
	assert.Nil(t, review.ApprovedAmount, "approving must clear any override")
	assert.True(t, review.EffectiveAmount(dec("10")).Equal(dec("10")))
}

func TestExpenseReviewLedger_AddPreservesExistingReviews(t *testing.T) {
	trip := tripWithExpenses("t1", "100",
		domain.Expense{ExpenseID: "e1", TripID: "t1", Amount: dec("10"), Reimbursable: true},
	)
	ledger := domain.NewExpenseReviewLedger([]domain.Trip{trip})
	ledger.Reject("e1")

	ledger.AddTripExpenses(trip)

	assert.Equal(t, domain.ReviewRejected, ledger.Get("e1").Status)
}
