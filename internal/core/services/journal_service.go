package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hostfolio/property_mgmt_app/internal/apperrors"
	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	portsrepo "github.com/hostfolio/property_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/hostfolio/property_mgmt_app/internal/core/ports/services"
	"github.com/hostfolio/property_mgmt_app/internal/dto"
	"github.com/hostfolio/property_mgmt_app/internal/middleware"
	"github.com/hostfolio/property_mgmt_app/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced = errors.New("journal entry debits and credits do not balance")
	ErrEntryMinLines   = errors.New("journal entry must have at least two lines")
	ErrUnknownAccount  = errors.New("account not found for journal line")
	ErrAlreadyPosted   = errors.New("journal entry is already posted")
	ErrNotPosted       = errors.New("journal entry must be posted first")
	ErrAlreadyReversed = errors.New("journal entry is already reversed")
	ErrEntryLocked     = errors.New("journal entry is locked")
	ErrEntryPosted     = errors.New("posted journal entries cannot be deleted, reverse instead")
)

// journalService implements the journal entry lifecycle: draft creation,
// posting, reversal and deletion of drafts.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates and persists a new journal entry with its lines.
// Implements portssvc.JournalSvcFacade
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) < 2 {
		return nil, ErrEntryMinLines
	}

	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lineOrder := i
		if lineReq.LineOrder != nil {
			lineOrder = *lineReq.LineOrder
		}
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lineReq.AccountID,
			Debit:        lineReq.Debit,
			Credit:       lineReq.Credit,
			PropertyID:   lineReq.PropertyID,
			BookingID:    lineReq.BookingID,
			ExpenseID:    lineReq.ExpenseID,
			TenancyID:    lineReq.TenancyID,
			VATTreatment: lineReq.VATTreatment,
			VATAmount:    lineReq.VATAmount,
			Description:  lineReq.Description,
			LineOrder:    lineOrder,
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEntryUnbalanced, err.Error())
	}

	// Every line must resolve to an existing account.
	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueAccountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for entry creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueAccountIDs {
		if _, found := accountsMap[id]; !found {
			return nil, fmt.Errorf("%w: ID %s", ErrUnknownAccount, id)
		}
	}

	totalDebit, totalCredit := accounting.SumLines(lines)

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.EntryDate,
		Source:      source,
		SourceID:    req.SourceID,
		Description: req.Description,
		Memo:        req.Memo,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if req.PostImmediately {
		entry.IsPosted = true
		postedAt := now
		entry.PostedAt = &postedAt
	}

	// The repository assigns the entry number inside the insert transaction.
	if err := s.journalRepo.CreateEntry(ctx, &entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("source", string(entry.Source)))
	return &entry, nil
}

// GetEntryByID retrieves a journal entry with its lines.
// Implements portssvc.JournalSvcFacade
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry by ID", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves a filtered, paginated list of journal entries.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := domain.EntryFilter{
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		Source:     params.Source,
		PropertyID: params.PropertyID,
		PostedOnly: params.PostedOnly,
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal entries from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	entryResponses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		entryResponses[i] = dto.ToEntryResponse(&entries[i])
	}

	resp := &dto.ListEntriesResponse{
		Entries:   entryResponses,
		NextToken: nextToken,
	}

	logger.Debug("Journal entries listed", slog.Int("count", len(entries)))
	return resp, nil
}

// PostEntry finalizes a draft entry.
// Implements portssvc.JournalSvcFacade
func (s *journalService) PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	if entry.IsPosted {
		return nil, ErrAlreadyPosted
	}
	if entry.IsLocked {
		return nil, ErrEntryLocked
	}

	postedAt := time.Now().UTC()
	if err := s.journalRepo.MarkPosted(ctx, entryID, postedAt); err != nil {
		logger.Error("Failed to mark journal entry posted", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}

	entry.IsPosted = true
	entry.PostedAt = &postedAt
	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// ReverseEntry creates a posted reversal of a posted entry. The reversal and
// the original's flags commit in one repository transaction.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, memo string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Original journal entry not found for reversal", slog.String("entry_id", entryID))
			return nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to fetch original journal entry for reversal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve original journal entry: %w", err)
	}
	if !original.IsPosted {
		return nil, ErrNotPosted
	}
	if original.IsReversed {
		return nil, ErrAlreadyReversed
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversalLines := make([]domain.JournalLine, len(original.Lines))
	for i, origLine := range original.Lines {
		reversalLines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			AccountID:    origLine.AccountID,
			Debit:        origLine.Credit,
			Credit:       origLine.Debit,
			PropertyID:   origLine.PropertyID,
			BookingID:    origLine.BookingID,
			ExpenseID:    origLine.ExpenseID,
			TenancyID:    origLine.TenancyID,
			VATTreatment: origLine.VATTreatment,
			VATAmount:    origLine.VATAmount,
			Description:  origLine.Description,
			LineOrder:    origLine.LineOrder,
		}
	}

	sourceID := original.EntryID
	postedAt := now
	reversal := domain.JournalEntry{
		EntryID:     reversalID,
		EntryDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Source:      domain.SourceAdjustment,
		SourceID:    &sourceID,
		Description: fmt.Sprintf("Reversal of %s", original.EntryNumber),
		Memo:        memo,
		IsPosted:    true,
		PostedAt:    &postedAt,
		TotalDebit:  original.TotalCredit,
		TotalCredit: original.TotalDebit,
		Lines:       reversalLines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.journalRepo.SaveReversal(ctx, original, &reversal); err != nil {
		logger.Error("Failed to save reversal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversal entry: %w", err)
	}

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("reversal_entry_number", reversal.EntryNumber))
	return &reversal, nil
}

// DeleteEntry removes a draft entry and its lines.
// Implements portssvc.JournalSvcFacade
func (s *journalService) DeleteEntry(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	if entry.IsPosted {
		return ErrEntryPosted
	}
	if entry.IsLocked {
		return ErrEntryLocked
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
