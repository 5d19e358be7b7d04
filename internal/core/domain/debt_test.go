package domain_test

import (
	"testing"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClampDeduction(t *testing.T) {
	balance := dec("300")

	tests := []struct {
		name      string
		requested decimal.Decimal
		want      decimal.Decimal
	}{
		{name: "within bounds", requested: dec("150"), want: dec("150")},
		{name: "above balance clamps to balance", requested: dec("500"), want: dec("300")},
		{name: "negative clamps to zero", requested: dec("-10"), want: decimal.Zero},
		{name: "exactly balance", requested: dec("300"), want: dec("300")},
		{name: "zero stays zero", requested: decimal.Zero, want: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ClampDeduction(tt.requested, balance)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestDebtSelection_ToggleDefaultsToFullBalance(t *testing.T) {
	debt := domain.Debt{DebtID: "d1", OriginalAmount: dec("500"), AmountPaid: dec("120")}
	selection := make(domain.DebtSelection)

	selection.Toggle(debt, true)
	assert.True(t, selection["d1"].Equal(dec("380")))

	selection.Toggle(debt, false)
	_, exists := selection["d1"]
	assert.False(t, exists)
}

func TestDebtSelection_SetAmountClamps(t *testing.T) {
	debt := domain.Debt{DebtID: "d1", OriginalAmount: dec("300"), AmountPaid: decimal.Zero}
	selection := make(domain.DebtSelection)

	selection.SetAmount(debt, dec("500"))
	assert.True(t, selection["d1"].Equal(dec("300")), "requested 500 against balance 300 stores 300")

	selection.SetAmount(debt, dec("-1"))
	assert.True(t, selection["d1"].IsZero())
}

func TestDebtSelection_TotalSelectedDeduction(t *testing.T) {
	d1 := domain.Debt{DebtID: "d1", OriginalAmount: dec("100"), AmountPaid: decimal.Zero}
	d2 := domain.Debt{DebtID: "d2", OriginalAmount: dec("250"), AmountPaid: dec("50")}
	selection := make(domain.DebtSelection)
	selection.Toggle(d1, true)
	selection.SetAmount(d2, dec("75"))

	assert.True(t, selection.TotalSelectedDeduction().Equal(dec("175")))
}

func TestDebtSelection_DeductionsFollowDebtOrder(t *testing.T) {
	debts := []domain.Debt{
		{DebtID: "d1", OriginalAmount: dec("100"), AmountPaid: decimal.Zero},
		{DebtID: "d2", OriginalAmount: dec("200"), AmountPaid: decimal.Zero},
		{DebtID: "d3", OriginalAmount: dec("300"), AmountPaid: decimal.Zero},
	}
	selection := make(domain.DebtSelection)
	selection.Toggle(debts[2], true)
	selection.Toggle(debts[0], true)

	deductions := selection.Deductions(debts)

	if assert.Len(t, deductions, 2) {
		assert.Equal(t, "d1", deductions[0].DebtID)
		assert.Equal(t, "d3", deductions[1].DebtID)
	}
}
