package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripStatus indicates the lifecycle state of a trip.
// Trips are created and transitioned by external processes; only COMPLETED,
// unlinked trips are eligible for a settlement.
type TripStatus string

const (
	TripInProgress TripStatus = "IN_PROGRESS"
	TripCompleted  TripStatus = "COMPLETED"
)

// ExpenseType categorizes a trip expense.
type ExpenseType string

const (
	ExpenseFuel        ExpenseType = "FUEL"
	ExpenseToll        ExpenseType = "TOLL"
	ExpenseMeal        ExpenseType = "MEAL"
	ExpenseMaintenance ExpenseType = "MAINTENANCE"
	ExpenseOther       ExpenseType = "OTHER"
)

// Trip represents a completed haul with its freight revenue and expenses.
// Read-only to the settlement core during a draft.
type Trip struct {
	TripID         string          `json:"tripID"`         // Primary Key (e.g., UUID)
	Code           string          `json:"code"`           // Human-readable trip code
	DriverID       string          `json:"driverID"`       // FK -> drivers.driver_id
	Status         TripStatus      `json:"status"`
	DepartureDate  time.Time       `json:"departureDate"`
	ArrivalDate    time.Time       `json:"arrivalDate"`
	FreightRevenue decimal.Decimal `json:"freightRevenue"` // Gross freight value for the trip
	KmDriven       decimal.Decimal `json:"kmDriven"`
	SettlementID   *string         `json:"settlementID,omitempty"` // Set once the trip is linked to a settlement
	Expenses       []Expense       `json:"expenses"`
	AuditFields
}

// Expense represents a single itemized cost recorded against a trip.
// Owned externally; a settlement draft attaches a review outcome without
// mutating the original record.
type Expense struct {
	ExpenseID    string          `json:"expenseID"` // Primary Key (e.g., UUID)
	TripID       string          `json:"tripID"`    // FK -> trips.trip_id
	ExpenseType  ExpenseType     `json:"expenseType"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`       // Original recorded amount
	Reimbursable bool            `json:"reimbursable"` // Paid back to the driver on top of commission
	AuditFields
}

// TripPeriod returns the [min, max] departure dates over the given trips.
// ok is false when the slice is empty; callers must not substitute a default date.
func TripPeriod(trips []Trip) (start, end time.Time, ok bool) {
	if len(trips) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start = trips[0].DepartureDate
	end = trips[0].DepartureDate
	for _, t := range trips[1:] {
		if t.DepartureDate.Before(start) {
			start = t.DepartureDate
		}
		if t.DepartureDate.After(end) {
			end = t.DepartureDate
		}
	}
	return start, end, true
}
