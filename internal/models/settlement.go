package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementStatus mirrors the status column of the settlements table.
type SettlementStatus string

const (
	SettlementOpen   SettlementStatus = "OPEN"
	SettlementClosed SettlementStatus = "CLOSED"
	SettlementPaid   SettlementStatus = "PAID"
)

// Settlement represents a row of the settlements table. All totals are stored
// as computed at finalize; they are never recalculated from the linked rows.
type Settlement struct {
	SettlementID        string           `db:"settlement_id"`
	Code                string           `db:"code"` // Unique
	DriverID            string           `db:"driver_id"`
	Status              SettlementStatus `db:"status"`
	PeriodStart         time.Time        `db:"period_start"`
	PeriodEnd           time.Time        `db:"period_end"`
	CommissionPercent   decimal.Decimal  `db:"commission_percent"`
	CommissionBase      decimal.Decimal  `db:"commission_base"`
	CommissionValue     decimal.Decimal  `db:"commission_value"`
	TotalRevenue        decimal.Decimal  `db:"total_revenue"`
	TotalReimbursements decimal.Decimal  `db:"total_reimbursements"`
	TotalBonuses        decimal.Decimal  `db:"total_bonuses"`
	TotalPenalties      decimal.Decimal  `db:"total_penalties"`
	TotalDebtsDeducted  decimal.Decimal  `db:"total_debts_deducted"`
	TotalRejected       decimal.Decimal  `db:"total_rejected"`
	TotalAdvances       decimal.Decimal  `db:"total_advances"`
	TotalDiscounts      decimal.Decimal  `db:"total_discounts"`
	TotalPayable        decimal.Decimal  `db:"total_payable"`
	Observations        string           `db:"observations"`
	AuditFields
}

// AdjustmentType mirrors the type column of the settlement_adjustments table.
type AdjustmentType string

const (
	AdjustmentBonus      AdjustmentType = "BONUS"
	AdjustmentPenalty    AdjustmentType = "PENALTY"
	AdjustmentCorrection AdjustmentType = "CORRECTION"
	AdjustmentOther      AdjustmentType = "OTHER"
)

// Adjustment represents a row of the settlement_adjustments table.
type Adjustment struct {
	AdjustmentID  string          `db:"adjustment_id"`
	SettlementID  string          `db:"settlement_id"`
	Type          AdjustmentType  `db:"type"`
	Category      string          `db:"category"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Justification string          `db:"justification"`
	AuditFields
}

// ExpenseReview represents a row of the settlement_expense_reviews table: the
// review outcome for one expense, frozen at finalize.
type ExpenseReview struct {
	SettlementID   string           `db:"settlement_id"`
	ExpenseID      string           `db:"expense_id"`
	Status         string           `db:"status"`
	ApprovedAmount *decimal.Decimal `db:"approved_amount"`
	AuditFields
}

// DebtDeduction represents a row of the settlement_debt_deductions table: how
// much of one debt was collected by a settlement.
type DebtDeduction struct {
	SettlementID string          `db:"settlement_id"`
	DebtID       string          `db:"debt_id"`
	Amount       decimal.Decimal `db:"amount"`
	AuditFields
}
