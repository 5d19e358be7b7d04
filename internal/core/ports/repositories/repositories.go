package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	DriverRepo     DriverRepositoryFacade
	TripRepo       TripRepositoryFacade
	DebtRepo       DebtRepositoryFacade
	SettlementRepo SettlementRepositoryWithTx
	UserRepo       UserRepositoryFacade
}
