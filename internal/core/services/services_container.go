package services

import (
	portsrepo "github.com/hostfolio/property_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/hostfolio/property_mgmt_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.AutoPosting = NewAutoPostingService(container.Journal, repos.JournalRepo, repos.AccountRepo, repos.DepositRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
