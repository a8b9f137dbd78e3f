package services

import (
	"context"
	"time"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
)

// ReportingSvcFacade produces ledger reports.
type ReportingSvcFacade interface {
	// TrialBalance computes the trial balance as of a date, optionally
	// restricted to one property's activity.
	TrialBalance(ctx context.Context, asOf time.Time, propertyID *string) (*domain.TrialBalance, error)
}
