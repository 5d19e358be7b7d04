package mapping

import (
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/ptairone/logistica-flash-sub000/internal/models"
)

// ToDomainDebt converts a model Debt to a domain Debt
func ToDomainDebt(m models.Debt) domain.Debt {
	return domain.Debt{
		DebtID:         m.DebtID,
		DriverID:       m.DriverID,
		Description:    m.Description,
		OriginalAmount: m.OriginalAmount,
		AmountPaid:     m.AmountPaid,
		DueDate:        m.DueDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDebtSlice converts a slice of model Debts to a slice of domain Debts
func ToDomainDebtSlice(ms []models.Debt) []domain.Debt {
	ds := make([]domain.Debt, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDebt(m)
	}
	return ds
}
