package services

import (
	"context"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
)

// BookingPostingSvc turns booking financials into journal entries.
type BookingPostingSvc interface {
	// GenerateBookingEntry creates the revenue entry for a booking. It fails
	// if an entry for the booking already exists.
	GenerateBookingEntry(ctx context.Context, evt domain.BookingFinanced) (*domain.JournalEntry, error)

	// RegenerateBookingEntry replaces the booking's draft entry after its
	// financials changed. A posted prior entry is left untouched and
	// returned as-is.
	RegenerateBookingEntry(ctx context.Context, evt domain.BookingFinanced) (*domain.JournalEntry, error)
}

// ExpensePostingSvc turns recorded expenses into journal entries.
type ExpensePostingSvc interface {
	// GenerateExpenseEntry creates the accrual entry for an expense. It
	// fails if an entry for the expense already exists.
	GenerateExpenseEntry(ctx context.Context, evt domain.ExpenseRecorded) (*domain.JournalEntry, error)
}

// DepositPostingSvc records security-deposit movements and their entries.
type DepositPostingSvc interface {
	// RecordDepositTransaction persists a deposit movement, posts its
	// journal entry immediately and rederives the tenancy deposit status.
	RecordDepositTransaction(ctx context.Context, evt domain.DepositTransactionRecorded) (*domain.DepositTransaction, error)

	// ListDepositTransactions retrieves a tenancy's deposit history.
	ListDepositTransactions(ctx context.Context, tenancyID string) ([]domain.DepositTransaction, error)

	// SummarizeDeposits aggregates the deposit position of every tenancy
	// holding a security deposit, optionally filtered by status.
	SummarizeDeposits(ctx context.Context, status *domain.DepositStatus) ([]domain.DepositSummary, error)
}

// AutoPostingSvcFacade combines all rule-driven posting interfaces
type AutoPostingSvcFacade interface {
	BookingPostingSvc
	ExpensePostingSvc
	DepositPostingSvc
}
