package repositories

import (
	"context"
	"time"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryBySource retrieves the entry generated from a business event,
	// identified by its source kind and source record ID.
	FindEntryBySource(ctx context.Context, source domain.EntrySource, sourceID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a filtered, paginated list of entries using
	// token-based pagination. It returns the entries, a token for the next
	// page, and an error.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// CreateEntry persists an entry and its lines in one transaction,
	// assigning the next sequential entry number for the entry's year.
	CreateEntry(ctx context.Context, entry *domain.JournalEntry) error

	// MarkPosted flags a draft entry as posted.
	MarkPosted(ctx context.Context, entryID string, postedAt time.Time) error

	// SaveReversal persists the reversal entry and flags the original as
	// reversed, atomically.
	SaveReversal(ctx context.Context, original *domain.JournalEntry, reversal *domain.JournalEntry) error

	// DeleteEntry removes a draft entry and its lines.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
