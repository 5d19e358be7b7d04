package services

import (
	"context"
	"fmt"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portsrepo "github.com/ptairone/logistica-flash-sub000/internal/core/ports/repositories"
	portssvc "github.com/ptairone/logistica-flash-sub000/internal/core/ports/services"
)

// driverService exposes driver master data to the settlement flow.
type driverService struct {
	driverRepo portsrepo.DriverRepositoryFacade
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo portsrepo.DriverRepositoryFacade) portssvc.DriverSvcFacade {
	return &driverService{driverRepo: driverRepo}
}

var _ portssvc.DriverSvcFacade = (*driverService)(nil)

func (s *driverService) GetDriverByID(ctx context.Context, driverID string) (*domain.Driver, error) {
	driver, err := s.driverRepo.FindDriverByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to get driver %s: %w", driverID, err)
	}
	return driver, nil
}

func (s *driverService) ListActiveDrivers(ctx context.Context) ([]domain.Driver, error) {
	drivers, err := s.driverRepo.ListActiveDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active drivers: %w", err)
	}
	return drivers, nil
}
