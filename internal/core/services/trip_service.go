package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portsrepo "github.com/ptairone/logistica-flash-sub000/internal/core/ports/repositories"
	portssvc "github.com/ptairone/logistica-flash-sub000/internal/core/ports/services"
	"github.com/ptairone/logistica-flash-sub000/internal/middleware"
)

// tripService aggregates settlement-eligible trips for a driver.
type tripService struct {
	tripRepo portsrepo.TripRepositoryFacade
}

// NewTripService creates a new TripService.
func NewTripService(tripRepo portsrepo.TripRepositoryFacade) portssvc.TripSvcFacade {
	return &tripService{tripRepo: tripRepo}
}

// Ensure tripService implements the portssvc.TripSvcFacade interface
var _ portssvc.TripSvcFacade = (*tripService)(nil)

// FetchEligibleTrips returns the driver's completed trips not linked to any
// settlement, each with its expenses attached.
func (s *tripService) FetchEligibleTrips(ctx context.Context, driverID string) ([]domain.Trip, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	trips, err := s.tripRepo.FindEligibleTripsByDriver(ctx, driverID)
	if err != nil {
		logger.Error("Failed to fetch eligible trips", slog.String("driver_id", driverID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch eligible trips for driver %s: %w", driverID, err)
	}

	logger.Debug("Fetched eligible trips", slog.String("driver_id", driverID), slog.Int("count", len(trips)))
	return trips, nil
}

// GetSettlementTrips returns the trips linked to an existing settlement.
func (s *tripService) GetSettlementTrips(ctx context.Context, settlementID string) ([]domain.Trip, error) {
	trips, err := s.tripRepo.FindTripsBySettlementID(ctx, settlementID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trips for settlement %s: %w", settlementID, err)
	}
	return trips, nil
}
