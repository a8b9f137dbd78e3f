package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	portsrepo "github.com/hostfolio/property_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/hostfolio/property_mgmt_app/internal/core/ports/services"
	"github.com/hostfolio/property_mgmt_app/internal/middleware"
	"github.com/hostfolio/property_mgmt_app/internal/utils/accounting"
)

// reportingService builds ledger reports from posted journal activity.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance computes the trial balance as of a date. Only accounts with
// nonzero activity appear; the grand totals must agree for any as-of date.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time, propertyID *string) (*domain.TrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.AccountActivity(ctx, asOf, propertyID)
	if err != nil {
		logger.Error("Failed to aggregate account activity", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate account activity: %w", err)
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for i := range rows {
		rows[i].Balance = accounting.BalanceFor(rows[i].AccountType, rows[i].DebitTotal, rows[i].CreditTotal)
		totalDebits = totalDebits.Add(rows[i].DebitTotal)
		totalCredits = totalCredits.Add(rows[i].CreditTotal)
	}

	report := &domain.TrialBalance{
		AsOfDate:     asOf,
		PropertyID:   propertyID,
		Accounts:     rows,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		IsBalanced:   totalDebits.Equal(totalCredits),
	}

	if !report.IsBalanced {
		// An imbalance means the double-entry invariant was violated at some
		// point; it demands operator attention, not a request failure.
		logger.Error("Trial balance does not balance",
			slog.String("as_of", asOf.Format("2006-01-02")),
			slog.String("total_debits", totalDebits.String()),
			slog.String("total_credits", totalCredits.String()))
	}

	logger.Debug("Trial balance computed",
		slog.String("as_of", asOf.Format("2006-01-02")),
		slog.Int("accounts", len(rows)))
	return report, nil
}
