package services

import (
	"context"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	"github.com/hostfolio/property_mgmt_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntryByID retrieves a journal entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a filtered, paginated list of journal entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateEntry validates and persists a new journal entry as a draft,
	// or posts it immediately when the request says so.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.JournalEntry, error)

	// PostEntry finalizes a draft entry, making it immutable.
	PostEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts a reversal of a posted entry and
	// returns the reversal.
	ReverseEntry(ctx context.Context, entryID string, memo string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry. Posted entries cannot be deleted.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
