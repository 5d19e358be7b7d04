package services

import (
	"context"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
)

// DriverReaderSvc defines read operations for driver master data
type DriverReaderSvc interface {
	// GetDriverByID retrieves a driver by ID.
	GetDriverByID(ctx context.Context, driverID string) (*domain.Driver, error)

	// ListActiveDrivers retrieves the active drivers available for settlement,
	// each carrying its default commission percent.
	ListActiveDrivers(ctx context.Context) ([]domain.Driver, error)
}

// DriverSvcFacade combines all driver-related service interfaces
type DriverSvcFacade interface {
	DriverReaderSvc
}
