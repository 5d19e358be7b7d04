package dto

import (
	"time"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/ptairone/logistica-flash-sub000/internal/utils"
	"github.com/shopspring/decimal"
)

// AdjustmentResponse defines the data returned for a settlement adjustment.
type AdjustmentResponse struct {
	AdjustmentID  string                `json:"adjustmentID"`
	Type          domain.AdjustmentType `json:"type"`
	Category      string                `json:"category"`
	Description   string                `json:"description"`
	Amount        decimal.Decimal       `json:"amount"`
	Justification string                `json:"justification,omitempty"`
}

// ToAdjustmentResponses converts a slice of domain.Adjustment to []AdjustmentResponse.
func ToAdjustmentResponses(adjustments []domain.Adjustment) []AdjustmentResponse {
	responses := make([]AdjustmentResponse, len(adjustments))
	for i, a := range adjustments {
		responses[i] = AdjustmentResponse{
			AdjustmentID:  a.AdjustmentID,
			Type:          a.Type,
			Category:      a.Category,
			Description:   a.Description,
			Amount:        a.Amount,
			Justification: a.Justification,
		}
	}
	return responses
}

// SettlementResponse defines the data returned for a persisted settlement.
type SettlementResponse struct {
	SettlementID        string                  `json:"settlementID"`
	Code                string                  `json:"code"`
	DriverID            string                  `json:"driverID"`
	Status              domain.SettlementStatus `json:"status"`
	PeriodStart         time.Time               `json:"periodStart"`
	PeriodEnd           time.Time               `json:"periodEnd"`
	CommissionPercent   decimal.Decimal         `json:"commissionPercent"`
	CommissionBase      decimal.Decimal         `json:"commissionBase"`
	CommissionValue     decimal.Decimal         `json:"commissionValue"`
	TotalRevenue        decimal.Decimal         `json:"totalRevenue"`
	TotalReimbursements decimal.Decimal         `json:"totalReimbursements"`
	TotalBonuses        decimal.Decimal         `json:"totalBonuses"`
	TotalPenalties      decimal.Decimal         `json:"totalPenalties"`
	TotalDebtsDeducted  decimal.Decimal         `json:"totalDebtsDeducted"`
	TotalRejected       decimal.Decimal         `json:"totalRejected"`
	TotalAdvances       decimal.Decimal         `json:"totalAdvances"`
	TotalDiscounts      decimal.Decimal         `json:"totalDiscounts"`
	TotalPayable        decimal.Decimal         `json:"totalPayable"`
	TotalPayableDisplay string                  `json:"totalPayableDisplay"` // BRL presentation, e.g. "R$ 1.234,56"
	Observations        string                  `json:"observations,omitempty"`
	TripIDs             []string                `json:"tripIDs"`
	CreatedAt           time.Time               `json:"createdAt"`
	CreatedBy           string                  `json:"createdBy"`
}

// ToSettlementResponse converts a domain.Settlement to SettlementResponse DTO.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		SettlementID:        s.SettlementID,
		Code:                s.Code,
		DriverID:            s.DriverID,
		Status:              s.Status,
		PeriodStart:         s.PeriodStart,
		PeriodEnd:           s.PeriodEnd,
		CommissionPercent:   s.CommissionPercent,
		CommissionBase:      s.CommissionBase,
		CommissionValue:     s.CommissionValue,
		TotalRevenue:        s.TotalRevenue,
		TotalReimbursements: s.TotalReimbursements,
		TotalBonuses:        s.TotalBonuses,
		TotalPenalties:      s.TotalPenalties,
		TotalDebtsDeducted:  s.TotalDebtsDeducted,
		TotalRejected:       s.TotalRejected,
		TotalAdvances:       s.TotalAdvances,
		TotalDiscounts:      s.TotalDiscounts,
		TotalPayable:        s.TotalPayable,
		TotalPayableDisplay: utils.FormatBRL(s.TotalPayable),
		Observations:        s.Observations,
		TripIDs:             s.TripIDs,
		CreatedAt:           s.CreatedAt,
		CreatedBy:           s.CreatedBy,
	}
}

// ListSettlementsParams defines query parameters for listing settlements.
type ListSettlementsParams struct {
	DriverID string `form:"driverID"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset,default=0"`
}

// ListSettlementsResponse wraps the list of settlements.
type ListSettlementsResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
}

// ToListSettlementsResponse converts a slice of domain.Settlement to ListSettlementsResponse DTO.
func ToListSettlementsResponse(settlements []domain.Settlement) ListSettlementsResponse {
	responses := make([]SettlementResponse, len(settlements))
	for i, s := range settlements {
		responses[i] = ToSettlementResponse(&s)
	}
	return ListSettlementsResponse{Settlements: responses}
}
