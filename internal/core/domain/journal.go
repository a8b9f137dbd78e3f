package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntrySource identifies what kind of business event produced a journal entry.
type EntrySource string

const (
	SourceBooking    EntrySource = "booking"
	SourceExpense    EntrySource = "expense"
	SourceTenancy    EntrySource = "tenancy"
	SourceAdjustment EntrySource = "adjustment"
	SourceManual     EntrySource = "manual"
)

// IsValid reports whether s is one of the known entry sources.
func (s EntrySource) IsValid() bool {
	switch s {
	case SourceBooking, SourceExpense, SourceTenancy, SourceAdjustment, SourceManual:
		return true
	}
	return false
}

// JournalEntry is an atomic, dated financial transaction composed of balanced
// debit/credit lines. Once posted it is immutable; the only way to undo its
// effect is a reversal entry.
type JournalEntry struct {
	EntryID      string          `json:"entryID"`
	EntryNumber  string          `json:"entryNumber"`
	EntryDate    time.Time       `json:"entryDate"`
	Source       EntrySource     `json:"source"`
	SourceID     *string         `json:"sourceID,omitempty"`
	Description  string          `json:"description"`
	Memo         string          `json:"memo,omitempty"`
	IsPosted     bool            `json:"isPosted"`
	IsLocked     bool            `json:"isLocked"`
	IsReversed   bool            `json:"isReversed"`
	ReversedByID *string         `json:"reversedByID,omitempty"`
	PostedAt     *time.Time      `json:"postedAt,omitempty"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	Lines        []JournalLine   `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one posting within an entry. By convention exactly one of
// Debit/Credit is nonzero per line; only the entry-level sum invariant is
// enforced.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	PropertyID   *string         `json:"propertyID,omitempty"`
	BookingID    *string         `json:"bookingID,omitempty"`
	ExpenseID    *string         `json:"expenseID,omitempty"`
	TenancyID    *string         `json:"tenancyID,omitempty"`
	VATTreatment VATTreatment    `json:"vatTreatment,omitempty"`
	VATAmount    decimal.Decimal `json:"vatAmount"`
	Description  string          `json:"description,omitempty"`
	LineOrder    int             `json:"lineOrder"`
	AccountCode  string          `json:"accountCode,omitempty"`
	AccountName  string          `json:"accountName,omitempty"`
}

// EntryFilter narrows journal listings. PropertyID matches entries having at
// least one line tagged with the property.
type EntryFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Source     *EntrySource
	PropertyID *string
	PostedOnly bool
}

const entryNumberPrefix = "JE"

// FormatEntryNumber renders the canonical entry number, e.g. JE-2026-00042.
func FormatEntryNumber(year int, seq int) string {
	return fmt.Sprintf("%s-%d-%05d", entryNumberPrefix, year, seq)
}

// EntryNumberYearPrefix returns the LIKE prefix for all entry numbers of a
// calendar year, e.g. "JE-2026-".
func EntryNumberYearPrefix(year int) string {
	return fmt.Sprintf("%s-%d-", entryNumberPrefix, year)
}

// ParseEntryNumber extracts the year and sequence from an entry number.
func ParseEntryNumber(number string) (year int, seq int, err error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != entryNumberPrefix {
		return 0, 0, fmt.Errorf("malformed entry number %q", number)
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed entry number %q: %w", number, err)
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed entry number %q: %w", number, err)
	}
	return year, seq, nil
}
