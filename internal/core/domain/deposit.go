package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositTransactionType identifies the direction of a security-deposit movement.
type DepositTransactionType string

const (
	DepositReceivedTxn  DepositTransactionType = "received"
	DepositRefundTxn    DepositTransactionType = "refund"
	DepositDeductionTxn DepositTransactionType = "deduction"
)

// IsValid reports whether t is one of the known deposit transaction types.
func (t DepositTransactionType) IsValid() bool {
	switch t {
	case DepositReceivedTxn, DepositRefundTxn, DepositDeductionTxn:
		return true
	}
	return false
}

// DeductionReason categorises why part of a deposit was withheld.
type DeductionReason string

const (
	DeductionDamages    DeductionReason = "damages"
	DeductionCleaning   DeductionReason = "cleaning"
	DeductionUnpaidRent DeductionReason = "unpaid_rent"
	DeductionOther      DeductionReason = "other"
)

// IsValid reports whether r is one of the known deduction reasons.
func (r DeductionReason) IsValid() bool {
	switch r {
	case DeductionDamages, DeductionCleaning, DeductionUnpaidRent, DeductionOther:
		return true
	}
	return false
}

// DepositStatus is the derived lifecycle state of a tenancy's security deposit.
type DepositStatus string

const (
	DepositPending           DepositStatus = "pending"
	DepositReceived          DepositStatus = "received"
	DepositPartiallyRefunded DepositStatus = "partially_refunded"
	DepositRefunded          DepositStatus = "refunded"
	DepositForfeited         DepositStatus = "forfeited"
)

// DepositTransaction records one movement of a tenancy's security deposit,
// linked to the journal entry it generated.
type DepositTransaction struct {
	TransactionID   string                 `json:"transactionID"`
	TenancyID       string                 `json:"tenancyID"`
	PropertyID      string                 `json:"propertyID"`
	Type            DepositTransactionType `json:"type"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionDate time.Time              `json:"transactionDate"`
	Description     string                 `json:"description,omitempty"`
	DeductionReason *DeductionReason       `json:"deductionReason,omitempty"`
	JournalEntryID  string                 `json:"journalEntryID"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// Tenancy is the slice of the tenancy record the ledger cares about: identity
// and the derived deposit status.
type Tenancy struct {
	TenancyID       string          `json:"tenancyID"`
	PropertyID      string          `json:"propertyID"`
	TenantName      string          `json:"tenantName"`
	SecurityDeposit decimal.Decimal `json:"securityDeposit"`
	DepositStatus   DepositStatus   `json:"depositStatus"`
	AuditFields
}

// DepositSummary aggregates one tenancy's deposit position for reporting.
type DepositSummary struct {
	TenancyID     string          `json:"tenancyID"`
	TenantName    string          `json:"tenantName"`
	PropertyID    string          `json:"propertyID"`
	DepositAmount decimal.Decimal `json:"depositAmount"`
	Received      decimal.Decimal `json:"received"`
	Deductions    decimal.Decimal `json:"deductions"`
	Refunded      decimal.Decimal `json:"refunded"`
	Balance       decimal.Decimal `json:"balance"`
	Status        DepositStatus   `json:"status"`
}

// ComputeDepositStatus derives the deposit status from the full transaction
// history of a tenancy: pending until anything is received; forfeited when
// deductions consumed the whole deposit; refunded when the balance reached
// zero mostly through refunds; partially_refunded while a positive balance
// coexists with refunds or deductions.
func ComputeDepositStatus(txns []DepositTransaction) DepositStatus {
	received := decimal.Zero
	deductions := decimal.Zero
	refunded := decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case DepositReceivedTxn:
			received = received.Add(t.Amount)
		case DepositDeductionTxn:
			deductions = deductions.Add(t.Amount)
		case DepositRefundTxn:
			refunded = refunded.Add(t.Amount)
		}
	}

	if received.IsZero() {
		return DepositPending
	}

	balance := received.Sub(deductions).Sub(refunded)
	if balance.LessThanOrEqual(decimal.Zero) {
		if deductions.GreaterThanOrEqual(received) {
			return DepositForfeited
		}
		return DepositRefunded
	}
	if refunded.GreaterThan(decimal.Zero) || deductions.GreaterThan(decimal.Zero) {
		return DepositPartiallyRefunded
	}
	return DepositReceived
}
