package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is an outstanding driver balance (advance, damage, fine, etc.) that may
// be partially or fully deducted from a settlement. Owned externally.
type Debt struct {
	DebtID         string          `json:"debtID"`   // Primary Key (e.g., UUID)
	DriverID       string          `json:"driverID"` // FK -> drivers.driver_id
	Description    string          `json:"description"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	AuditFields
}

// Balance returns the outstanding balance (original minus paid).
func (d Debt) Balance() decimal.Decimal {
	return d.OriginalAmount.Sub(d.AmountPaid)
}

// DebtDeduction is the amount to collect from one debt within a settlement.
type DebtDeduction struct {
	DebtID string          `json:"debtID"`
	Amount decimal.Decimal `json:"amount"` // Always within [0, debt balance]
}

// ClampDeduction bounds a requested deduction amount to [0, balance].
func ClampDeduction(requested, balance decimal.Decimal) decimal.Decimal {
	if requested.IsNegative() {
		return decimal.Zero
	}
	if requested.GreaterThan(balance) {
		return balance
	}
	return requested
}

// DebtSelection tracks which debts are selected for collection and how much of
// each balance to deduct. Amounts are clamped on entry and clamped again by the
// calculator so the displayed and computed values can never diverge.
type DebtSelection map[string]decimal.Decimal

// Toggle selects or deselects a debt. Selecting defaults the deduction to the
// full outstanding balance; deselecting removes it.
func (s DebtSelection) Toggle(debt Debt, selected bool) {
	if selected {
		s[debt.DebtID] = debt.Balance()
		return
	}
	delete(s, debt.DebtID)
}

// SetAmount stores the requested deduction for a selected debt, clamped to
// [0, debt balance]. Setting an amount on an unselected debt selects it.
func (s DebtSelection) SetAmount(debt Debt, amount decimal.Decimal) {
	s[debt.DebtID] = ClampDeduction(amount, debt.Balance())
}

// TotalSelectedDeduction returns the sum of all selected deduction amounts.
func (s DebtSelection) TotalSelectedDeduction() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range s {
		total = total.Add(amount)
	}
	return total
}

// Deductions materializes the selection against the given debts, in the debts'
// order, re-clamping each amount against the current balance. Debts not present
// in the selection are skipped.
func (s DebtSelection) Deductions(debts []Debt) []DebtDeduction {
	result := make([]DebtDeduction, 0, len(s))
	for _, debt := range debts {
		amount, ok := s[debt.DebtID]
		if !ok {
			continue
		}
		result = append(result, DebtDeduction{
			DebtID: debt.DebtID,
			Amount: ClampDeduction(amount, debt.Balance()),
		})
	}
	return result
}
