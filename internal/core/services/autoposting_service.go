package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hostfolio/property_mgmt_app/internal/apperrors"
	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	portsrepo "github.com/hostfolio/property_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/hostfolio/property_mgmt_app/internal/core/ports/services"
	"github.com/hostfolio/property_mgmt_app/internal/dto"
	"github.com/hostfolio/property_mgmt_app/internal/middleware"

	"github.com/google/uuid"
)

// Chart-of-accounts codes the posting rules resolve at runtime. They match
// the seeded chart; a missing code surfaces as a DerivationError.
const (
	CodeBank                 = "1102"
	CodeOTAReceivables       = "1201"
	CodeAccountsPayable      = "2100"
	CodeDepositsHeld         = "2302"
	CodeAccommodationRevenue = "4101"
	CodeCleaningRevenue      = "4102"
	CodeDepositForfeitures   = "4301"
	CodeOperatingExpenses    = "5100"
	CodePlatformCommission   = "5101"
)

// ErrDuplicateJournal signals that an entry already exists for the source
// record that triggered a posting rule.
var ErrDuplicateJournal = errors.New("journal entry already exists for source")

// DerivationError wraps any failure inside a posting rule so callers can
// recognize it and keep the triggering business operation alive.
type DerivationError struct {
	Rule     string
	SourceID string
	Err      error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("%s rule failed for %s: %v", e.Rule, e.SourceID, e.Err)
}

func (e *DerivationError) Unwrap() error {
	return e.Err
}

func newDerivationError(rule, sourceID string, err error) *DerivationError {
	return &DerivationError{Rule: rule, SourceID: sourceID, Err: err}
}

// autoPostingService converts business events into balanced journal entries.
type autoPostingService struct {
	journalSvc  portssvc.JournalSvcFacade
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	depositRepo portsrepo.DepositRepositoryFacade
}

// NewAutoPostingService creates a new AutoPostingService.
func NewAutoPostingService(
	journalSvc portssvc.JournalSvcFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	depositRepo portsrepo.DepositRepositoryFacade,
) portssvc.AutoPostingSvcFacade {
	return &autoPostingService{
		journalSvc:  journalSvc,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		depositRepo: depositRepo,
	}
}

// Ensure autoPostingService implements the portssvc.AutoPostingSvcFacade interface
var _ portssvc.AutoPostingSvcFacade = (*autoPostingService)(nil)

// resolveAccounts looks up accounts by code and fails on the first missing one.
func (s *autoPostingService) resolveAccounts(ctx context.Context, codes ...string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		acc, err := s.accountRepo.FindAccountByCode(ctx, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("required account %s is missing from the chart of accounts", code)
			}
			return nil, fmt.Errorf("failed to resolve account %s: %w", code, err)
		}
		accounts[code] = *acc
	}
	return accounts, nil
}

// bookingEntryRequest derives the balanced line set for a booking's revenue.
func (s *autoPostingService) bookingEntryRequest(ctx context.Context, evt domain.BookingFinanced) (*dto.CreateEntryRequest, error) {
	accounts, err := s.resolveAccounts(ctx,
		CodeOTAReceivables, CodeAccommodationRevenue, CodeCleaningRevenue, CodePlatformCommission)
	if err != nil {
		return nil, err
	}

	gross := evt.GrossRevenue
	commission := evt.PlatformCommission
	cleaning := evt.CleaningFee

	netReceivable := gross.Sub(commission)
	accommodationRev := gross.Sub(cleaning)

	propertyID := evt.PropertyID
	bookingID := evt.BookingID
	nights := evt.Nights
	if nights < 1 {
		nights = 1
	}

	lines := []dto.CreateLineRequest{{
		AccountID:   accounts[CodeOTAReceivables].AccountID,
		Debit:       netReceivable,
		Credit:      decimal.Zero,
		PropertyID:  &propertyID,
		BookingID:   &bookingID,
		Description: fmt.Sprintf("Receivable from %s", evt.GuestName),
	}}
	if commission.GreaterThan(decimal.Zero) {
		lines = append(lines, dto.CreateLineRequest{
			AccountID:   accounts[CodePlatformCommission].AccountID,
			Debit:       commission,
			Credit:      decimal.Zero,
			PropertyID:  &propertyID,
			BookingID:   &bookingID,
			Description: "Platform commission",
		})
	}
	if accommodationRev.GreaterThan(decimal.Zero) {
		lines = append(lines, dto.CreateLineRequest{
			AccountID:   accounts[CodeAccommodationRevenue].AccountID,
			Debit:       decimal.Zero,
			Credit:      accommodationRev,
			PropertyID:  &propertyID,
			BookingID:   &bookingID,
			Description: fmt.Sprintf("Accommodation %d nights", nights),
		})
	}
	if cleaning.GreaterThan(decimal.Zero) {
		lines = append(lines, dto.CreateLineRequest{
			AccountID:   accounts[CodeCleaningRevenue].AccountID,
			Debit:       decimal.Zero,
			Credit:      cleaning,
			PropertyID:  &propertyID,
			BookingID:   &bookingID,
			Description: "Cleaning fee",
		})
	}

	sourceID := evt.BookingID
	return &dto.CreateEntryRequest{
		EntryDate: evt.CheckIn,
		Source:    domain.SourceBooking,
		SourceID:  &sourceID,
		Description: fmt.Sprintf("Booking: %s (%s to %s)",
			evt.GuestName,
			evt.CheckIn.Format("2006-01-02"),
			evt.CheckOut.Format("2006-01-02")),
		Lines: lines,
	}, nil
}

// GenerateBookingEntry creates the revenue entry for a booking.
// Implements portssvc.AutoPostingSvcFacade
func (s *autoPostingService) GenerateBookingEntry(ctx context.Context, evt domain.BookingFinanced) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.journalRepo.FindEntryBySource(ctx, domain.SourceBooking, evt.BookingID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, newDerivationError("booking", evt.BookingID, fmt.Errorf("idempotency check failed: %w", err))
	}
	if existing != nil {
		return nil, newDerivationError("booking", evt.BookingID,
			fmt.Errorf("%w: %s", ErrDuplicateJournal, existing.EntryNumber))
	}

	req, err := s.bookingEntryRequest(ctx, evt)
	if err != nil {
		return nil, newDerivationError("booking", evt.BookingID, err)
	}

	entry, err := s.journalSvc.CreateEntry(ctx, *req)
	if err != nil {
		return nil, newDerivationError("booking", evt.BookingID, err)
	}

	logger.Info("Booking journal entry generated",
		slog.String("booking_id", evt.BookingID),
		slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// RegenerateBookingEntry replaces the booking's draft entry after its
// financials changed. A posted prior entry is left untouched.
func (s *autoPostingService) RegenerateBookingEntry(ctx context.Context, evt domain.BookingFinanced) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.journalRepo.FindEntryBySource(ctx, domain.SourceBooking, evt.BookingID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, newDerivationError("booking", evt.BookingID, fmt.Errorf("lookup failed: %w", err))
	}
	if existing != nil {
		if existing.IsPosted {
			logger.Info("Booking entry already posted, skipping regeneration",
				slog.String("booking_id", evt.BookingID),
				slog.String("entry_number", existing.EntryNumber))
			return existing, nil
		}
		if err := s.journalRepo.DeleteEntry(ctx, existing.EntryID); err != nil {
			return nil, newDerivationError("booking", evt.BookingID, fmt.Errorf("failed to delete stale draft: %w", err))
		}
		logger.Info("Stale booking draft deleted for regeneration",
			slog.String("booking_id", evt.BookingID),
			slog.String("entry_number", existing.EntryNumber))
	}

	req, err := s.bookingEntryRequest(ctx, evt)
	if err != nil {
		return nil, newDerivationError("booking", evt.BookingID, err)
	}

	entry, err := s.journalSvc.CreateEntry(ctx, *req)
	if err != nil {
		return nil, newDerivationError("booking", evt.BookingID, err)
	}

	logger.Info("Booking journal entry regenerated",
		slog.String("booking_id", evt.BookingID),
		slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// GenerateExpenseEntry creates the accrual entry for an expense.
// Implements portssvc.AutoPostingSvcFacade
func (s *autoPostingService) GenerateExpenseEntry(ctx context.Context, evt domain.ExpenseRecorded) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.journalRepo.FindEntryBySource(ctx, domain.SourceExpense, evt.ExpenseID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, newDerivationError("expense", evt.ExpenseID, fmt.Errorf("idempotency check failed: %w", err))
	}
	if existing != nil {
		return nil, newDerivationError("expense", evt.ExpenseID,
			fmt.Errorf("%w: %s", ErrDuplicateJournal, existing.EntryNumber))
	}

	accounts, err := s.resolveAccounts(ctx, CodeOperatingExpenses, CodeAccountsPayable)
	if err != nil {
		return nil, newDerivationError("expense", evt.ExpenseID, err)
	}

	// VAT is carried inside the expense total rather than broken out.
	total := evt.Amount.Add(evt.VATAmount)

	propertyID := evt.PropertyID
	expenseID := evt.ExpenseID
	debitDescription := evt.Description
	if debitDescription == "" {
		debitDescription = evt.Vendor
	}

	sourceID := evt.ExpenseID
	req := dto.CreateEntryRequest{
		EntryDate:   evt.ExpenseDate,
		Source:      domain.SourceExpense,
		SourceID:    &sourceID,
		Description: fmt.Sprintf("Expense: %s - %s", evt.Vendor, evt.Description),
		Lines: []dto.CreateLineRequest{
			{
				AccountID:   accounts[CodeOperatingExpenses].AccountID,
				Debit:       total,
				Credit:      decimal.Zero,
				PropertyID:  &propertyID,
				ExpenseID:   &expenseID,
				Description: debitDescription,
			},
			{
				AccountID:   accounts[CodeAccountsPayable].AccountID,
				Debit:       decimal.Zero,
				Credit:      total,
				PropertyID:  &propertyID,
				ExpenseID:   &expenseID,
				Description: fmt.Sprintf("Payable to %s", evt.Vendor),
			},
		},
	}

	entry, err := s.journalSvc.CreateEntry(ctx, req)
	if err != nil {
		return nil, newDerivationError("expense", evt.ExpenseID, err)
	}

	logger.Info("Expense journal entry generated",
		slog.String("expense_id", evt.ExpenseID),
		slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// depositEntryLines derives the two posting lines for a deposit movement.
func depositEntryLines(evt domain.DepositTransactionRecorded, tenancy *domain.Tenancy, accounts map[string]domain.Account) (description string, lines []dto.CreateLineRequest, err error) {
	propertyID := tenancy.PropertyID
	tenancyID := tenancy.TenancyID

	line := func(code string, debit, credit decimal.Decimal, desc string) dto.CreateLineRequest {
		return dto.CreateLineRequest{
			AccountID:   accounts[code].AccountID,
			Debit:       debit,
			Credit:      credit,
			PropertyID:  &propertyID,
			TenancyID:   &tenancyID,
			Description: desc,
		}
	}

	switch evt.Type {
	case domain.DepositReceivedTxn:
		description = fmt.Sprintf("Security deposit received - %s", tenancy.TenantName)
		lines = []dto.CreateLineRequest{
			line(CodeBank, evt.Amount, decimal.Zero, fmt.Sprintf("Deposit received from %s", tenancy.TenantName)),
			line(CodeDepositsHeld, decimal.Zero, evt.Amount, fmt.Sprintf("Security deposit held for %s", tenancy.TenantName)),
		}
	case domain.DepositRefundTxn:
		description = fmt.Sprintf("Security deposit refund - %s", tenancy.TenantName)
		lines = []dto.CreateLineRequest{
			line(CodeDepositsHeld, evt.Amount, decimal.Zero, fmt.Sprintf("Deposit refund to %s", tenancy.TenantName)),
			line(CodeBank, decimal.Zero, evt.Amount, "Deposit refund paid"),
		}
	case domain.DepositDeductionTxn:
		reason := domain.DeductionOther
		if evt.DeductionReason != nil {
			reason = *evt.DeductionReason
		}
		description = fmt.Sprintf("Security deposit deduction (%s) - %s", reason, tenancy.TenantName)
		lines = []dto.CreateLineRequest{
			line(CodeDepositsHeld, evt.Amount, decimal.Zero, fmt.Sprintf("Deposit deduction - %s", reason)),
			line(CodeDepositForfeitures, decimal.Zero, evt.Amount, fmt.Sprintf("Deposit forfeiture income - %s", reason)),
		}
	default:
		return "", nil, fmt.Errorf("%w: invalid deposit transaction type %q", apperrors.ErrValidation, evt.Type)
	}
	return description, lines, nil
}

// RecordDepositTransaction persists a deposit movement, posts its journal
// entry immediately and rederives the tenancy's deposit status.
func (s *autoPostingService) RecordDepositTransaction(ctx context.Context, evt domain.DepositTransactionRecorded) (*domain.DepositTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tenancy, err := s.depositRepo.FindTenancyByID(ctx, evt.TenancyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("tenancy %s: %w", evt.TenancyID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find tenancy %s: %w", evt.TenancyID, err)
	}

	accounts, err := s.resolveAccounts(ctx, CodeBank, CodeDepositsHeld, CodeDepositForfeitures)
	if err != nil {
		return nil, newDerivationError("deposit", evt.TenancyID, err)
	}

	description, lines, err := depositEntryLines(evt, tenancy, accounts)
	if err != nil {
		return nil, err
	}

	// Deposit entries go straight to posted; no draft stage.
	sourceID := tenancy.TenancyID
	entry, err := s.journalSvc.CreateEntry(ctx, dto.CreateEntryRequest{
		EntryDate:       evt.TransactionDate,
		Source:          domain.SourceAdjustment,
		SourceID:        &sourceID,
		Description:     description,
		Lines:           lines,
		PostImmediately: true,
	})
	if err != nil {
		return nil, newDerivationError("deposit", evt.TenancyID, err)
	}

	txn := domain.DepositTransaction{
		TransactionID:   uuid.NewString(),
		TenancyID:       tenancy.TenancyID,
		PropertyID:      tenancy.PropertyID,
		Type:            evt.Type,
		Amount:          evt.Amount,
		TransactionDate: evt.TransactionDate,
		Description:     evt.Description,
		DeductionReason: evt.DeductionReason,
		JournalEntryID:  entry.EntryID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.depositRepo.SaveDepositTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save deposit transaction", slog.String("error", err.Error()), slog.String("tenancy_id", evt.TenancyID))
		return nil, fmt.Errorf("failed to save deposit transaction: %w", err)
	}

	history, err := s.depositRepo.ListDepositTransactions(ctx, tenancy.TenancyID)
	if err != nil {
		logger.Error("Failed to load deposit history for status derivation", slog.String("error", err.Error()), slog.String("tenancy_id", evt.TenancyID))
		return nil, fmt.Errorf("failed to load deposit history: %w", err)
	}
	status := domain.ComputeDepositStatus(history)
	if err := s.depositRepo.UpdateTenancyDepositStatus(ctx, tenancy.TenancyID, status); err != nil {
		logger.Error("Failed to update tenancy deposit status", slog.String("error", err.Error()), slog.String("tenancy_id", evt.TenancyID))
		return nil, fmt.Errorf("failed to update deposit status: %w", err)
	}

	logger.Info("Deposit transaction recorded",
		slog.String("tenancy_id", tenancy.TenancyID),
		slog.String("type", string(evt.Type)),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("deposit_status", string(status)))
	return &txn, nil
}

// ListDepositTransactions retrieves a tenancy's deposit history.
// Implements portssvc.AutoPostingSvcFacade
func (s *autoPostingService) ListDepositTransactions(ctx context.Context, tenancyID string) ([]domain.DepositTransaction, error) {
	if _, err := s.depositRepo.FindTenancyByID(ctx, tenancyID); err != nil {
		return nil, fmt.Errorf("failed to find tenancy %s: %w", tenancyID, err)
	}
	txns, err := s.depositRepo.ListDepositTransactions(ctx, tenancyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposit transactions: %w", err)
	}
	return txns, nil
}

// SummarizeDeposits aggregates the deposit position of every tenancy holding
// a security deposit.
func (s *autoPostingService) SummarizeDeposits(ctx context.Context, status *domain.DepositStatus) ([]domain.DepositSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tenancies, err := s.depositRepo.ListTenanciesWithDeposit(ctx, status)
	if err != nil {
		logger.Error("Failed to list tenancies for deposit summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tenancies: %w", err)
	}

	summaries := make([]domain.DepositSummary, 0, len(tenancies))
	for _, tenancy := range tenancies {
		txns, err := s.depositRepo.ListDepositTransactions(ctx, tenancy.TenancyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list deposit transactions for tenancy %s: %w", tenancy.TenancyID, err)
		}

		received := decimal.Zero
		deductions := decimal.Zero
		refunded := decimal.Zero
		for _, t := range txns {
			switch t.Type {
			case domain.DepositReceivedTxn:
				received = received.Add(t.Amount)
			case domain.DepositDeductionTxn:
				deductions = deductions.Add(t.Amount)
			case domain.DepositRefundTxn:
				refunded = refunded.Add(t.Amount)
			}
		}

		summaries = append(summaries, domain.DepositSummary{
			TenancyID:     tenancy.TenancyID,
			TenantName:    tenancy.TenantName,
			PropertyID:    tenancy.PropertyID,
			DepositAmount: tenancy.SecurityDeposit,
			Received:      received,
			Deductions:    deductions,
			Refunded:      refunded,
			Balance:       received.Sub(deductions).Sub(refunded),
			Status:        domain.ComputeDepositStatus(txns),
		})
	}
	return summaries, nil
}
