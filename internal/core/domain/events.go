package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingFinanced is the inbound event raised when a booking's financial
// fields are finalized or change. The ledger derives a revenue entry from it.
type BookingFinanced struct {
	BookingID          string
	PropertyID         string
	CheckIn            time.Time
	CheckOut           time.Time
	GuestName          string
	Nights             int
	GrossRevenue       decimal.Decimal
	PlatformCommission decimal.Decimal
	CleaningFee        decimal.Decimal
}

// ExpenseRecorded is the inbound event raised when an expense is recorded.
type ExpenseRecorded struct {
	ExpenseID   string
	PropertyID  string
	ExpenseDate time.Time
	Vendor      string
	Description string
	Amount      decimal.Decimal
	VATAmount   decimal.Decimal
}

// DepositTransactionRecorded is the inbound event raised when a security
// deposit moves: received from the tenant, refunded, or deducted against.
type DepositTransactionRecorded struct {
	TenancyID       string
	PropertyID      string
	Type            DepositTransactionType
	Amount          decimal.Decimal
	TransactionDate time.Time
	Description     string
	DeductionReason *DeductionReason
}
