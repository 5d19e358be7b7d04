package services

import (
	"context"

	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
)

// TripAggregatorSvc exposes the settlement-eligible trips of a driver.
type TripAggregatorSvc interface {
	// FetchEligibleTrips returns the driver's completed trips not linked to any
	// settlement, each with its freight revenue and full expense list attached.
	FetchEligibleTrips(ctx context.Context, driverID string) ([]domain.Trip, error)

	// GetSettlementTrips returns the trips linked to an existing settlement.
	GetSettlementTrips(ctx context.Context, settlementID string) ([]domain.Trip, error)
}

// TripSvcFacade combines all trip-related service interfaces
type TripSvcFacade interface {
	TripAggregatorSvc
}
