package repositories

import (
	"context"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
)

// DriverReader defines read operations for driver master data.
// Driver records are maintained by external processes; the settlement core
// only reads them.
type DriverReader interface {
	// FindDriverByID retrieves a specific driver.
	FindDriverByID(ctx context.Context, driverID string) (*domain.Driver, error)

	// ListActiveDrivers retrieves all active drivers.
	ListActiveDrivers(ctx context.Context) ([]domain.Driver, error)
}

// DriverRepositoryFacade combines all driver-related repository interfaces
type DriverRepositoryFacade interface {
	DriverReader
}
