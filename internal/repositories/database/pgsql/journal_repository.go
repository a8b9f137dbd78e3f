package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hostfolio/property_mgmt_app/internal/apperrors"
	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	portsrepo "github.com/hostfolio/property_mgmt_app/internal/core/ports/repositories"
	"github.com/hostfolio/property_mgmt_app/internal/models"
	"github.com/hostfolio/property_mgmt_app/internal/utils/mapping"
	"github.com/hostfolio/property_mgmt_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// entryNumberLockClass namespaces the advisory lock that serializes
// entry-number assignment. The lock key is (class, year).
const entryNumberLockClass = 0x4A45 // "JE"

const entryColumns = `entry_id, entry_number, entry_date, source, source_id, description, memo, is_posted, is_locked, is_reversed, reversed_by_id, posted_at, created_at, last_updated_at`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// nextEntryNumberTx assigns the next sequential entry number for the year of
// the assignment clock, regardless of the entry's own date: backdated and
// future-dated entries join the sequence of the year they are created in.
// The advisory lock is transaction-scoped, so concurrent inserts serialize
// until commit and never observe the same MAX.
func nextEntryNumberTx(ctx context.Context, tx pgx.Tx, now time.Time) (string, error) {
	year := now.Year()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2);`, entryNumberLockClass, year); err != nil {
		return "", fmt.Errorf("failed to acquire entry number lock for year %d: %w", year, err)
	}

	var maxSeq int
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(SPLIT_PART(entry_number, '-', 3) AS INTEGER)), 0)
		FROM journal_entries
		WHERE entry_number LIKE $1;
	`, domain.EntryNumberYearPrefix(year)+"%").Scan(&maxSeq)
	if err != nil {
		return "", fmt.Errorf("failed to compute max entry sequence for year %d: %w", year, err)
	}

	return domain.FormatEntryNumber(year, maxSeq+1), nil
}

// insertEntryTx inserts the entry header and its lines inside tx, assigning
// the entry number first. It sets entry.EntryNumber on success.
func (r *PgxJournalRepository) insertEntryTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error {
	number, err := nextEntryNumberTx(ctx, tx, time.Now().UTC())
	if err != nil {
		return err
	}
	entry.EntryNumber = number

	m := mapping.ToModelJournalEntry(*entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.Source,
		m.SourceID,
		m.Description,
		m.Memo,
		m.IsPosted,
		m.IsLocked,
		m.IsReversed,
		m.ReversedByID,
		m.PostedAt,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: entry number %s already assigned", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, property_id, booking_id, expense_id, tenancy_id, vat_treatment, vat_amount, description, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, line := range entry.Lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.EntryID,
			ml.AccountID,
			ml.Debit,
			ml.Credit,
			ml.PropertyID,
			ml.BookingID,
			ml.ExpenseID,
			ml.TenancyID,
			ml.VATTreatment,
			ml.VATAmount,
			ml.Description,
			ml.LineOrder,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert journal lines for entry %s: %w", m.EntryID, err)
	}
	return nil
}

// CreateEntry persists an entry and its lines in one transaction, assigning
// the next sequential entry number for the current year.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, entry *domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// findLinesByEntryID loads an entry's lines with account code/name attached.
func (r *PgxJournalRepository) findLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.property_id, l.booking_id, l.expense_id, l.tenancy_id, l.vat_treatment, l.vat_amount, l.description, l.line_order,
		       a.code, a.name
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = $1
		ORDER BY l.line_order;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.Debit,
			&l.Credit,
			&l.PropertyID,
			&l.BookingID,
			&l.ExpenseID,
			&l.TenancyID,
			&l.VATTreatment,
			&l.VATAmount,
			&l.Description,
			&l.LineOrder,
			&l.AccountCode,
			&l.AccountName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Source,
		&m.SourceID,
		&m.Description,
		&m.Memo,
		&m.IsPosted,
		&m.IsLocked,
		&m.IsReversed,
		&m.ReversedByID,
		&m.PostedAt,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// attachLinesAndTotals completes a domain entry with its lines and totals.
func (r *PgxJournalRepository) attachLinesAndTotals(ctx context.Context, entry *domain.JournalEntry) error {
	lines, err := r.findLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		return err
	}
	entry.Lines = lines

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	entry.TotalDebit = totalDebit
	entry.TotalCredit = totalCredit
	return nil
}

// FindEntryByID retrieves a journal entry with its lines and totals.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(*m)
	if err := r.attachLinesAndTotals(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntryBySource retrieves the entry generated from a business event.
func (r *PgxJournalRepository) FindEntryBySource(ctx context.Context, source domain.EntrySource, sourceID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE source = $1 AND source_id = $2 LIMIT 1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, string(source), sourceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by source %s/%s: %w", source, sourceID, err)
	}

	entry := mapping.ToDomainJournalEntry(*m)
	if err := r.attachLinesAndTotals(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntries retrieves a filtered, paginated list of entries using
// token-based pagination over (entry_date, entry_number).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `
		SELECT e.entry_id, e.entry_number, e.entry_date, e.source, e.source_id, e.description, e.memo,
		       e.is_posted, e.is_locked, e.is_reversed, e.reversed_by_id, e.posted_at, e.created_at, e.last_updated_at,
		       COALESCE(t.total_debit, 0), COALESCE(t.total_credit, 0)
		FROM journal_entries e
		LEFT JOIN (
			SELECT entry_id, SUM(debit) AS total_debit, SUM(credit) AS total_credit
			FROM journal_lines
			GROUP BY entry_id
		) t ON t.entry_id = e.entry_id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}
	if filter.Source != nil {
		args = append(args, string(*filter.Source))
		query += ` AND e.source = $` + strconv.Itoa(len(args))
	}
	if filter.PropertyID != nil {
		args = append(args, *filter.PropertyID)
		query += ` AND EXISTS (SELECT 1 FROM journal_lines pl WHERE pl.entry_id = e.entry_id AND pl.property_id = $` + strconv.Itoa(len(args)) + `)`
	}
	if filter.PostedOnly {
		query += ` AND e.is_posted = TRUE`
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastNumber, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastNumber)
		query += fmt.Sprintf(` AND (e.entry_date, e.entry_number) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY e.entry_date DESC, e.entry_number DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	type listedEntry struct {
		model       models.JournalEntry
		totalDebit  decimal.Decimal
		totalCredit decimal.Decimal
	}
	listed := make([]listedEntry, 0, fetchLimit)
	for rows.Next() {
		var le listedEntry
		if err := rows.Scan(
			&le.model.EntryID,
			&le.model.EntryNumber,
			&le.model.EntryDate,
			&le.model.Source,
			&le.model.SourceID,
			&le.model.Description,
			&le.model.Memo,
			&le.model.IsPosted,
			&le.model.IsLocked,
			&le.model.IsReversed,
			&le.model.ReversedByID,
			&le.model.PostedAt,
			&le.model.CreatedAt,
			&le.model.LastUpdatedAt,
			&le.totalDebit,
			&le.totalCredit,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		listed = append(listed, le)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var nextTokenVal *string
	if len(listed) > limit {
		last := listed[limit-1]
		token := pagination.EncodeToken(last.model.EntryDate, last.model.EntryNumber)
		nextTokenVal = &token
		listed = listed[:limit]
	}

	entries := make([]domain.JournalEntry, len(listed))
	for i, le := range listed {
		entries[i] = mapping.ToDomainJournalEntry(le.model)
		entries[i].TotalDebit = le.totalDebit
		entries[i].TotalCredit = le.totalCredit
	}
	return entries, nextTokenVal, nil
}

// MarkPosted flags a draft entry as posted.
func (r *PgxJournalRepository) MarkPosted(ctx context.Context, entryID string, postedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET is_posted = TRUE, posted_at = $2, last_updated_at = $2
		WHERE entry_id = $1 AND is_posted = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, postedAt)
	if err != nil {
		return fmt.Errorf("failed to mark journal entry %s posted: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either missing or already posted; let the caller distinguish.
		if _, findErr := r.FindEntryByID(ctx, entryID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: journal entry %s is already posted", apperrors.ErrConflict, entryID)
	}
	return nil
}

// SaveReversal persists the reversal entry and flags the original as
// reversed, atomically. Partial application must never be observable.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, original *domain.JournalEntry, reversal *domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryTx(ctx, tx, reversal); err != nil {
		return err
	}

	flagQuery := `
		UPDATE journal_entries
		SET is_reversed = TRUE, reversed_by_id = $2, last_updated_at = $3
		WHERE entry_id = $1 AND is_reversed = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, flagQuery, original.EntryID, reversal.EntryID, reversal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to flag journal entry %s reversed: %w", original.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s was reversed concurrently", apperrors.ErrConflict, original.EntryID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	original.IsReversed = true
	reversedByID := reversal.EntryID
	original.ReversedByID = &reversedByID
	return nil
}

// DeleteEntry removes a draft entry; its lines go with it via FK cascade.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
