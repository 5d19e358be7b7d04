package dto

import (
	"time"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseResponse defines the data returned for a trip expense.
type ExpenseResponse struct {
	ExpenseID    string             `json:"expenseID"`
	TripID       string             `json:"tripID"`
	ExpenseType  domain.ExpenseType `json:"expenseType"`
	Description  string             `json:"description"`
	Amount       decimal.Decimal    `json:"amount"`
	Reimbursable bool               `json:"reimbursable"`
}

// TripResponse defines the data returned for a trip.
type TripResponse struct {
	TripID         string            `json:"tripID"`
	Code           string            `json:"code"`
	DriverID       string            `json:"driverID"`
	DepartureDate  time.Time         `json:"departureDate"`
	ArrivalDate    time.Time         `json:"arrivalDate"`
	FreightRevenue decimal.Decimal   `json:"freightRevenue"`
	KmDriven       decimal.Decimal   `json:"kmDriven"`
	Expenses       []ExpenseResponse `json:"expenses"`
}

// ToTripResponse converts a domain.Trip to TripResponse DTO.
func ToTripResponse(t *domain.Trip) TripResponse {
	expenses := make([]ExpenseResponse, len(t.Expenses))
	for i, e := range t.Expenses {
		expenses[i] = ExpenseResponse{
			ExpenseID:    e.ExpenseID,
			TripID:       e.TripID,
			ExpenseType:  e.ExpenseType,
			Description:  e.Description,
			Amount:       e.Amount,
			Reimbursable: e.Reimbursable,
		}
	}
	return TripResponse{
		TripID:         t.TripID,
		Code:           t.Code,
		DriverID:       t.DriverID,
		DepartureDate:  t.DepartureDate,
		ArrivalDate:    t.ArrivalDate,
		FreightRevenue: t.FreightRevenue,
		KmDriven:       t.KmDriven,
		Expenses:       expenses,
	}
}

// ToTripResponses converts a slice of domain.Trip to []TripResponse.
func ToTripResponses(trips []domain.Trip) []TripResponse {
	responses := make([]TripResponse, len(trips))
	for i, t := range trips {
		responses[i] = ToTripResponse(&t)
	}
	return responses
}
