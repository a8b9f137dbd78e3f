package repositories

import (
	"context"
	"time"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
)

// ReportingRepository aggregates ledger activity for reports.
type ReportingRepository interface {
	// AccountActivity sums debit and credit totals per active account over
	// posted entries dated on or before asOf, optionally restricted to lines
	// tagged with a property. Accounts with no activity are omitted.
	AccountActivity(ctx context.Context, asOf time.Time, propertyID *string) ([]domain.AccountBalance, error)
}
