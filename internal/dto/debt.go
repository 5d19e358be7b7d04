package dto

import (
	"time"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DebtResponse defines the data returned for a driver debt.
type DebtResponse struct {
	DebtID         string          `json:"debtID"`
	DriverID       string          `json:"driverID"`
	Description    string          `json:"description"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	Balance        decimal.Decimal `json:"balance"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
}

// ToDebtResponse converts a domain.Debt to DebtResponse DTO.
func ToDebtResponse(d *domain.Debt) DebtResponse {
	return DebtResponse{
		DebtID:         d.DebtID,
		DriverID:       d.DriverID,
		Description:    d.Description,
		OriginalAmount: d.OriginalAmount,
		AmountPaid:     d.AmountPaid,
		Balance:        d.Balance(),
		DueDate:        d.DueDate,
	}
}

// ToDebtResponses converts a slice of domain.Debt to []DebtResponse.
func ToDebtResponses(debts []domain.Debt) []DebtResponse {
	responses := make([]DebtResponse, len(debts))
	for i, d := range debts {
		responses[i] = ToDebtResponse(&d)
	}
	return responses
}
