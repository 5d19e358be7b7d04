package mapping

import (
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/ptairone/logistica-flash-sub000/internal/models"
)

// ToModelSettlement converts a domain Settlement to a model Settlement.
// TripIDs are persisted on the trips table, not here.
func ToModelSettlement(d domain.Settlement) models.Settlement {
	return models.Settlement{
		SettlementID:        d.SettlementID,
		Code:                d.Code,
		DriverID:            d.DriverID,
		Status:              models.SettlementStatus(d.Status),
		PeriodStart:         d.PeriodStart,
		PeriodEnd:           d.PeriodEnd,
		CommissionPercent:   d.CommissionPercent,
		CommissionBase:      d.CommissionBase,
		CommissionValue:     d.CommissionValue,
		TotalRevenue:        d.TotalRevenue,
		TotalReimbursements: d.TotalReimbursements,
		TotalBonuses:        d.TotalBonuses,
		TotalPenalties:      d.TotalPenalties,
		TotalDebtsDeducted:  d.TotalDebtsDeducted,
		TotalRejected:       d.TotalRejected,
		TotalAdvances:       d.TotalAdvances,
		TotalDiscounts:      d.TotalDiscounts,
		TotalPayable:        d.TotalPayable,
		Observations:        d.Observations,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSettlement converts a model Settlement to a domain Settlement
func ToDomainSettlement(m models.Settlement) domain.Settlement {
	return domain.Settlement{
		SettlementID:        m.SettlementID,
		Code:                m.Code,
		DriverID:            m.DriverID,
		Status:              domain.SettlementStatus(m.Status),
		PeriodStart:         m.PeriodStart,
		PeriodEnd:           m.PeriodEnd,
		CommissionPercent:   m.CommissionPercent,
		CommissionBase:      m.CommissionBase,
		CommissionValue:     m.CommissionValue,
		TotalRevenue:        m.TotalRevenue,
		TotalReimbursements: m.TotalReimbursements,
		TotalBonuses:        m.TotalBonuses,
		TotalPenalties:      m.TotalPenalties,
		TotalDebtsDeducted:  m.TotalDebtsDeducted,
		TotalRejected:       m.TotalRejected,
		TotalAdvances:       m.TotalAdvances,
		TotalDiscounts:      m.TotalDiscounts,
		TotalPayable:        m.TotalPayable,
		Observations:        m.Observations,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAdjustment converts a domain Adjustment to a model Adjustment
func ToModelAdjustment(d domain.Adjustment) models.Adjustment {
	return models.Adjustment{
		AdjustmentID:  d.AdjustmentID,
		SettlementID:  d.SettlementID,
		Type:          models.AdjustmentType(d.Type),
		Category:      d.Category,
		Description:   d.Description,
		Amount:        d.Amount,
		Justification: d.Justification,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAdjustment converts a model Adjustment to a domain Adjustment
func ToDomainAdjustment(m models.Adjustment) domain.Adjustment {
	return domain.Adjustment{
		AdjustmentID:  m.AdjustmentID,
		SettlementID:  m.SettlementID,
		Type:          domain.AdjustmentType(m.Type),
		Category:      m.Category,
		Description:   m.Description,
		Amount:        m.Amount,
		Justification: m.Justification,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAdjustmentSlice converts a slice of model Adjustments to a slice of domain Adjustments
func ToDomainAdjustmentSlice(ms []models.Adjustment) []domain.Adjustment {
	ds := make([]domain.Adjustment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAdjustment(m)
	}
	return ds
}
