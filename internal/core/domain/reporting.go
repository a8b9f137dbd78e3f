package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is one trial-balance row: debit/credit activity for an
// account over posted entries up to the report date, plus the signed balance.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalance is a snapshot of all account balances as of a date. IsBalanced
// must hold whenever the journal engine's invariant held at every entry
// creation; a false value signals data corruption, not a normal report state.
type TrialBalance struct {
	AsOfDate     time.Time        `json:"asOfDate"`
	PropertyID   *string          `json:"propertyID,omitempty"`
	Accounts     []AccountBalance `json:"accounts"`
	TotalDebits  decimal.Decimal  `json:"totalDebits"`
	TotalCredits decimal.Decimal  `json:"totalCredits"`
	IsBalanced   bool             `json:"isBalanced"`
}
