package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ptairone/logistica-flash-sub000/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	driverRepo := newPgxDriverRepository(dbPool)
	tripRepo := newPgxTripRepository(dbPool)
	debtRepo := newPgxDebtRepository(dbPool)
	settlementRepo := newPgxSettlementRepository(dbPool, tripRepo, debtRepo)
	userRepo := newPgxUserRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		DriverRepo:     driverRepo,
		TripRepo:       tripRepo,
		DebtRepo:       debtRepo,
		SettlementRepo: settlementRepo,
		UserRepo:       userRepo,
	}
}
