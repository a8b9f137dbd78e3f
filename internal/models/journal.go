package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the persisted header of a balanced ledger transaction.
// Debit/credit totals are computed from lines at read time, not stored.
type JournalEntry struct {
	EntryID      string     `db:"entry_id"`
	EntryNumber  string     `db:"entry_number"`
	EntryDate    time.Time  `db:"entry_date"`
	Source       string     `db:"source"`
	SourceID     *string    `db:"source_id"`
	Description  string     `db:"description"`
	Memo         string     `db:"memo"`
	IsPosted     bool       `db:"is_posted"`
	IsLocked     bool       `db:"is_locked"`
	IsReversed   bool       `db:"is_reversed"`
	ReversedByID *string    `db:"reversed_by_id"`
	PostedAt     *time.Time `db:"posted_at"`
	AuditFields
}

// JournalLine is one persisted posting within an entry.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	Debit        decimal.Decimal `db:"debit"`
	Credit       decimal.Decimal `db:"credit"`
	PropertyID   *string         `db:"property_id"`
	BookingID    *string         `db:"booking_id"`
	ExpenseID    *string         `db:"expense_id"`
	TenancyID    *string         `db:"tenancy_id"`
	VATTreatment string          `db:"vat_treatment"`
	VATAmount    decimal.Decimal `db:"vat_amount"`
	Description  string          `db:"description"`
	LineOrder    int             `db:"line_order"`
	AccountCode  string          `db:"account_code"` // Joined from accounts at read time
	AccountName  string          `db:"account_name"` // Joined from accounts at read time
}
