package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripStatus mirrors the lifecycle state stored in the trips table.
type TripStatus string

const (
	TripInProgress TripStatus = "IN_PROGRESS"
	TripCompleted  TripStatus = "COMPLETED"
)

// Trip represents a row of the trips table.
// SettlementID is set exactly once, by the settlement finalizer.
type Trip struct {
	TripID         string          `db:"trip_id"`
	Code           string          `db:"code"`
	DriverID       string          `db:"driver_id"`
	Status         TripStatus      `db:"status"`
	DepartureDate  time.Time       `db:"departure_date"`
	ArrivalDate    time.Time       `db:"arrival_date"`
	FreightRevenue decimal.Decimal `db:"freight_revenue"`
	KmDriven       decimal.Decimal `db:"km_driven"`
	SettlementID   *string         `db:"settlement_id"`
	AuditFields
}

// ExpenseType mirrors the expense category stored in the trip_expenses table.
type ExpenseType string

const (
	ExpenseFuel        ExpenseType = "FUEL"
	ExpenseToll        ExpenseType = "TOLL"
	ExpenseMeal        ExpenseType = "MEAL"
	ExpenseMaintenance ExpenseType = "MAINTENANCE"
	ExpenseOther       ExpenseType = "OTHER"
)

// Expense represents a row of the trip_expenses table.
type Expense struct {
	ExpenseID    string          `db:"expense_id"`
	TripID       string          `db:"trip_id"`
	ExpenseType  ExpenseType     `db:"expense_type"`
	Description  string          `db:"description"`
	Amount       decimal.Decimal `db:"amount"`
	Reimbursable bool            `db:"reimbursable"`
	AuditFields
}
