package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tenancy is the persisted slice of a tenancy the ledger tracks.
type Tenancy struct {
	TenancyID       string          `db:"tenancy_id"`
	PropertyID      string          `db:"property_id"`
	TenantName      string          `db:"tenant_name"`
	SecurityDeposit decimal.Decimal `db:"security_deposit"`
	DepositStatus   string          `db:"deposit_status"`
	AuditFields
}

// DepositTransaction is a persisted security-deposit movement.
type DepositTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	TenancyID       string          `db:"tenancy_id"`
	PropertyID      string          `db:"property_id"`
	TransactionType string          `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	DeductionReason *string         `db:"deduction_reason"`
	JournalEntryID  string          `db:"journal_entry_id"`
	CreatedAt       time.Time       `db:"created_at"`
}
