package repositories

import (
	"context"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
)

// DepositReader defines read operations for tenancy deposit data
type DepositReader interface {
	// FindTenancyByID retrieves a tenancy record.
	FindTenancyByID(ctx context.Context, tenancyID string) (*domain.Tenancy, error)

	// ListDepositTransactions retrieves the full deposit transaction history
	// of a tenancy in chronological order.
	ListDepositTransactions(ctx context.Context, tenancyID string) ([]domain.DepositTransaction, error)

	// ListTenanciesWithDeposit retrieves tenancies holding a security deposit,
	// optionally filtered by derived deposit status.
	ListTenanciesWithDeposit(ctx context.Context, status *domain.DepositStatus) ([]domain.Tenancy, error)
}

// DepositWriter defines write operations for tenancy deposit data
type DepositWriter interface {
	// SaveDepositTransaction persists a deposit movement.
	SaveDepositTransaction(ctx context.Context, txn domain.DepositTransaction) error

	// UpdateTenancyDepositStatus stores the derived deposit status.
	UpdateTenancyDepositStatus(ctx context.Context, tenancyID string, status domain.DepositStatus) error
}

// DepositRepositoryFacade combines all deposit-related repository interfaces
type DepositRepositoryFacade interface {
	DepositReader
	DepositWriter
}
