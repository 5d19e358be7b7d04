package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
)

// TripReader defines read operations for trip data
type TripReader interface {
	// FindEligibleTripsByDriver retrieves the driver's completed trips not yet
	// linked to a settlement, each with its expenses attached.
	FindEligibleTripsByDriver(ctx context.Context, driverID string) ([]domain.Trip, error)

	// FindTripsBySettlementID retrieves the trips linked to a settlement.
	FindTripsBySettlementID(ctx context.Context, settlementID string) ([]domain.Trip, error)
}

// TripLinker defines the settlement-linking write operation for trips
type TripLinker interface {
	// LinkTripsToSettlementInTx links the trips to a settlement inside the
	// caller's database transaction, making them ineligible for future drafts.
	// It fails if any trip is already linked.
	LinkTripsToSettlementInTx(ctx context.Context, tx pgx.Tx, tripIDs []string, settlementID string, userID string, now time.Time) error
}

// TripRepositoryFacade combines all trip-related repository interfaces
type TripRepositoryFacade interface {
	TripReader
	TripLinker
}
