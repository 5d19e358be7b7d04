package mapping

import (
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	"github.com/ptairone/logistica-flash-sub000/internal/models"
)

// ToDomainDriver converts a model Driver to a domain Driver
func ToDomainDriver(m models.Driver) domain.Driver {
	return domain.Driver{
		DriverID:          m.DriverID,
		Name:              m.Name,
		CommissionPercent: m.CommissionPercent,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
		DeletedAt:         m.DeletedAt,
	}
}

// ToDomainDriverSlice converts a slice of model Drivers to a slice of domain Drivers
func ToDomainDriverSlice(ms []models.Driver) []domain.Driver {
	ds := make([]domain.Driver, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDriver(m)
	}
	return ds
}
