package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementStatus indicates the state of a persisted settlement.
type SettlementStatus string

const (
	SettlementOpen   SettlementStatus = "OPEN"
	SettlementClosed SettlementStatus = "CLOSED"
	SettlementPaid   SettlementStatus = "PAID"
)

// Settlement is the periodic financial closing computed for one driver from a
// set of trips, expenses, adjustments and debts. Created once, at finalize;
// status transitions OPEN -> CLOSED -> PAID happen afterwards.
type Settlement struct {
	SettlementID        string           `json:"settlementID"` // Primary Key (e.g., UUID)
	Code                string           `json:"code"`         // Unique human-readable code
	DriverID            string           `json:"driverID"`     // FK -> drivers.driver_id
	Status              SettlementStatus `json:"status"`
	PeriodStart         time.Time        `json:"periodStart"` // Min departure date of linked trips
	PeriodEnd           time.Time        `json:"periodEnd"`   // Max departure date of linked trips
	CommissionPercent   decimal.Decimal  `json:"commissionPercent"`
	CommissionBase      decimal.Decimal  `json:"commissionBase"`
	CommissionValue     decimal.Decimal  `json:"commissionValue"`
	TotalRevenue        decimal.Decimal  `json:"totalRevenue"`
	TotalReimbursements decimal.Decimal  `json:"totalReimbursements"`
	TotalBonuses        decimal.Decimal  `json:"totalBonuses"`
	TotalPenalties      decimal.Decimal  `json:"totalPenalties"`
	TotalDebtsDeducted  decimal.Decimal  `json:"totalDebtsDeducted"`
	TotalRejected       decimal.Decimal  `json:"totalRejected"`
	TotalAdvances       decimal.Decimal  `json:"totalAdvances"`
	TotalDiscounts      decimal.Decimal  `json:"totalDiscounts"`
	TotalPayable        decimal.Decimal  `json:"totalPayable"` // May be negative: the driver owes the company
	Observations        string           `json:"observations,omitempty"`
	TripIDs             []string         `json:"tripIDs"`
	AuditFields
}
