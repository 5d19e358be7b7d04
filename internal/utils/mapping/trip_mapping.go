package mapping

import (
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/ptairone/logistica-flash-sub000/internal/models"
)

// ToDomainTrip converts a model Trip to a domain Trip. Expenses are attached
// separately by the repository.
func ToDomainTrip(m models.Trip) domain.Trip {
	return domain.Trip{
		TripID:         m.TripID,
		Code:           m.Code,
		DriverID:       m.DriverID,
		Status:         domain.TripStatus(m.Status),
		DepartureDate:  m.DepartureDate,
		ArrivalDate:    m.ArrivalDate,
		FreightRevenue: m.FreightRevenue,
		KmDriven:       m.KmDriven,
		SettlementID:   m.SettlementID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:    m.ExpenseID,
		TripID:       m.TripID,
		ExpenseType:  domain.ExpenseType(m.ExpenseType),
		Description:  m.Description,
		Amount:       m.Amount,
		Reimbursable: m.Reimbursable,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to a slice of domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
