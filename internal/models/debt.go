package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt represents a row of the driver_debts table. The settlement finalizer
// increases AmountPaid when a deduction is applied; the row itself is owned by
// external processes.
type Debt struct {
	DebtID         string          `db:"debt_id"`
	DriverID       string          `db:"driver_id"`
	Description    string          `db:"description"`
	OriginalAmount decimal.Decimal `db:"original_amount"`
	AmountPaid     decimal.Decimal `db:"amount_paid"`
	DueDate        *time.Time      `db:"due_date"`
	AuditFields
}
