package domain

import "github.com/shopspring/decimal"

// SettlementInput carries everything the settlement calculation depends on.
// Trips must be the selected subset, each with its expenses attached.
type SettlementInput struct {
	Trips             []Trip
	Reviews           ExpenseReviewLedger
	CommissionPercent decimal.Decimal
	Advances          decimal.Decimal
	Discounts         decimal.Decimal
	Adjustments       *AdjustmentLedger
	Debts             []Debt
	DebtSelection     DebtSelection
}

// SettlementTotals is the result of a settlement computation.
// All values are exact decimals; rounding happens only at presentation.
type SettlementTotals struct {
	RevenueTotal         decimal.Decimal `json:"revenueTotal"`
	ReimbursementTotal   decimal.Decimal `json:"reimbursementTotal"`
	NonReimbursableTotal decimal.Decimal `json:"nonReimbursableTotal"`
	RejectedTotal        decimal.Decimal `json:"rejectedTotal"`
	CommissionBase       decimal.Decimal `json:"commissionBase"`
	CommissionValue      decimal.Decimal `json:"commissionValue"`
	BonusTotal           decimal.Decimal `json:"bonusTotal"`
	PenaltyTotal         decimal.Decimal `json:"penaltyTotal"`
	CorrectionTotal      decimal.Decimal `json:"correctionTotal"` // Informational; not folded into receivable or deductions
	OtherTotal           decimal.Decimal `json:"otherTotal"`      // Informational; not folded into receivable or deductions
	DebtDeductedTotal    decimal.Decimal `json:"debtDeductedTotal"`
	Advances             decimal.Decimal `json:"advances"`
	Discounts            decimal.Decimal `json:"discounts"`
	TotalReceivable      decimal.Decimal `json:"totalReceivable"`
	TotalDeductions      decimal.Decimal `json:"totalDeductions"`
	TotalPayable         decimal.Decimal `json:"totalPayable"` // Sign preserved; negative means the driver owes the company
}

// ComputeSettlement combines the selected trips, expense reviews, adjustments
// and debt deductions into the settlement totals. It is a pure function: no
// side effects, no hidden state, safe to invoke on every draft mutation.
// Empty input yields all-zero totals.
func ComputeSettlement(in SettlementInput) SettlementTotals {
	totals := SettlementTotals{
		RevenueTotal:         decimal.Zero,
		ReimbursementTotal:   decimal.Zero,
		NonReimbursableTotal: decimal.Zero,
		RejectedTotal:        decimal.Zero,
		Advances:             in.Advances,
		Discounts:            in.Discounts,
	}

	for _, trip := range in.Trips {
		totals.RevenueTotal = totals.RevenueTotal.Add(trip.FreightRevenue)

		for _, exp := range trip.Expenses {
			review := in.Reviews.Get(exp.ExpenseID)
			if review.Status == ReviewRejected {
				// Rejected expenses contribute their full original amount as a
				// deduction and nothing to reimbursement or commission base.
				totals.RejectedTotal = totals.RejectedTotal.Add(exp.Amount)
				continue
			}
			effective := review.EffectiveAmount(exp.Amount)
			if exp.Reimbursable {
				totals.ReimbursementTotal = totals.ReimbursementTotal.Add(effective)
			} else {
				totals.NonReimbursableTotal = totals.NonReimbursableTotal.Add(effective)
			}
		}
	}

	totals.CommissionBase = totals.RevenueTotal.Sub(totals.NonReimbursableTotal)
	totals.CommissionValue = totals.CommissionBase.Mul(in.CommissionPercent).Div(decimal.NewFromInt(100))

	if in.Adjustments != nil {
		totals.BonusTotal = in.Adjustments.SumByType(AdjustmentBonus)
		totals.PenaltyTotal = in.Adjustments.SumByType(AdjustmentPenalty)
		totals.CorrectionTotal = in.Adjustments.SumByType(AdjustmentCorrection)
		totals.OtherTotal = in.Adjustments.SumByType(AdjustmentOther)
	} else {
		totals.BonusTotal = decimal.Zero
		totals.PenaltyTotal = decimal.Zero
		totals.CorrectionTotal = decimal.Zero
		totals.OtherTotal = decimal.Zero
	}

	totals.DebtDeductedTotal = decimal.Zero
	for _, d := range in.DebtSelection.Deductions(in.Debts) {
		totals.DebtDeductedTotal = totals.DebtDeductedTotal.Add(d.Amount)
	}

	totals.TotalReceivable = totals.CommissionValue.
		Add(totals.ReimbursementTotal).
		Add(totals.BonusTotal)
	totals.TotalDeductions = totals.Advances.
		Add(totals.Discounts).
		Add(totals.PenaltyTotal).
		Add(totals.DebtDeductedTotal).
		Add(totals.RejectedTotal)
	totals.TotalPayable = totals.TotalReceivable.Sub(totals.TotalDeductions)

	return totals
}
