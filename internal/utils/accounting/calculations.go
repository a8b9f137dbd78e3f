package accounting

import (
	"fmt"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the monetary precision of the ledger. Amounts carrying
// more decimal places are rejected before any balance arithmetic runs.
const MinorUnitPlaces = 2

// CheckAmountPrecision rejects negative amounts and amounts finer than the
// currency's minor unit.
func CheckAmountPrecision(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("amount %s must not be negative", amount.String())
	}
	if amount.Exponent() < -MinorUnitPlaces {
		return fmt.Errorf("amount %s exceeds %d decimal places", amount.String(), MinorUnitPlaces)
	}
	return nil
}

// SumLines returns the debit and credit totals across the given lines.
func SumLines(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateEntryBalance enforces the double-entry invariant over a line set:
// at least two lines, minor-unit precision on every amount, and exact
// equality of debit and credit totals.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines, got %d", len(lines))
	}

	for i, line := range lines {
		if err := CheckAmountPrecision(line.Debit); err != nil {
			return fmt.Errorf("line %d debit: %w", i, err)
		}
		if err := CheckAmountPrecision(line.Credit); err != nil {
			return fmt.Errorf("line %d credit: %w", i, err)
		}
	}

	totalDebit, totalCredit := SumLines(lines)
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("journal entry does not balance: debits %s, credits %s",
			totalDebit.String(), totalCredit.String())
	}
	return nil
}

// BalanceFor computes the signed balance of an account given its aggregated
// debit and credit totals. Asset and expense accounts are debit-normal; the
// rest are credit-normal.
func BalanceFor(accountType domain.AccountType, debitTotal, creditTotal decimal.Decimal) decimal.Decimal {
	if accountType.DebitNormal() {
		return debitTotal.Sub(creditTotal)
	}
	return creditTotal.Sub(debitTotal)
}
