package services

import (
	portsrepo "github.com/ptairone/logistica-flash-sub000/internal/core/ports/repositories"
	portssvc "github.com/ptairone/logistica-flash-sub000/internal/core/ports/services"
	"github.com/ptairone/logistica-flash-sub000/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories and returns
// the container the handlers consume.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	driverSvc := NewDriverService(repos.DriverRepo)
	tripSvc := NewTripService(repos.TripRepo)
	debtSvc := NewDebtService(repos.DebtRepo)
	settlementSvc := NewSettlementService(repos.SettlementRepo)
	wizardSvc := NewWizardService(driverSvc, tripSvc, debtSvc, settlementSvc)
	userSvc := NewUserService(repos.UserRepo)
	tokenSvc := NewTokenService(cfg)

	return &portssvc.ServiceContainer{
		Driver:     driverSvc,
		Trip:       tripSvc,
		Debt:       debtSvc,
		Settlement: settlementSvc,
		Wizard:     wizardSvc,
		User:       userSvc,
		Token:      tokenSvc,
	}
}
