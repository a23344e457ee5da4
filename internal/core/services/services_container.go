package services

import (
	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/finance_dashboard/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The finance service still needs Initialize before it serves the stored ledger.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, financeOpts ...FinanceServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	opts := append([]FinanceServiceOption{WithSampleData(cfg.SeedSampleData)}, financeOpts...)
	finance := NewFinanceService(repos.LedgerStateRepo, opts...)
	container.Finance = finance

	container.Auth = NewAuthService(repos.UserRepo, repos.SessionRepo)
	container.Token = NewTokenService(cfg)
	container.Reporting = NewReportingService(finance)
	container.Savings = NewSavingsCalculatorService()

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.FinanceSvcFacade     = (*FinanceService)(nil)
	_ portssvc.AuthSvcFacade        = (*AuthService)(nil)
	_ portssvc.TokenSvc             = (*tokenService)(nil)
	_ portssvc.ReportingSvc         = (*reportingService)(nil)
	_ portssvc.SavingsCalculatorSvc = (*savingsCalculatorService)(nil)
)
