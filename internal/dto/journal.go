package dto

import (
	"time"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineRequest is one posting line inside a CreateEntryRequest. Exactly
// one of debit/credit is expected to be nonzero; the service only enforces
// the entry-level sum invariant.
type CreateLineRequest struct {
	AccountID    string              `json:"accountID" binding:"required"`
	Debit        decimal.Decimal     `json:"debit"`
	Credit       decimal.Decimal     `json:"credit"`
	PropertyID   *string             `json:"propertyID"`
	BookingID    *string             `json:"bookingID"`
	ExpenseID    *string             `json:"expenseID"`
	TenancyID    *string             `json:"tenancyID"`
	VATTreatment domain.VATTreatment `json:"vatTreatment" binding:"omitempty,vattreatment"`
	VATAmount    decimal.Decimal     `json:"vatAmount"`
	Description  string              `json:"description"`
	LineOrder    *int                `json:"lineOrder"`
}

// CreateEntryRequest is the payload for creating a journal entry.
// PostImmediately is set internally by auto-posting rules that must not
// leave a draft behind; it is never bound from the wire.
type CreateEntryRequest struct {
	EntryDate       time.Time           `json:"entryDate" binding:"required"`
	Source          domain.EntrySource  `json:"source" binding:"omitempty,entrysource"`
	SourceID        *string             `json:"sourceID"`
	Description     string              `json:"description" binding:"required"`
	Memo            string              `json:"memo"`
	Lines           []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
	PostImmediately bool                `json:"-"`
}

// ListEntriesParams carries the journal listing filters and cursor.
type ListEntriesParams struct {
	StartDate  *time.Time          `form:"startDate" time_format:"2006-01-02"`
	EndDate    *time.Time          `form:"endDate" time_format:"2006-01-02"`
	Source     *domain.EntrySource `form:"source" binding:"omitempty,entrysource"`
	PropertyID *string             `form:"propertyID"`
	PostedOnly bool                `form:"postedOnly"`
	Limit      int                 `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken  *string             `form:"nextToken"`
}

// LineResponse is the outbound representation of a journal line, annotated
// with the account's code and name for display.
type LineResponse struct {
	LineID       string              `json:"lineID"`
	EntryID      string              `json:"entryID"`
	AccountID    string              `json:"accountID"`
	AccountCode  string              `json:"accountCode,omitempty"`
	AccountName  string              `json:"accountName,omitempty"`
	Debit        decimal.Decimal     `json:"debit"`
	Credit       decimal.Decimal     `json:"credit"`
	PropertyID   *string             `json:"propertyID,omitempty"`
	BookingID    *string             `json:"bookingID,omitempty"`
	ExpenseID    *string             `json:"expenseID,omitempty"`
	TenancyID    *string             `json:"tenancyID,omitempty"`
	VATTreatment domain.VATTreatment `json:"vatTreatment,omitempty"`
	VATAmount    decimal.Decimal     `json:"vatAmount"`
	Description  string              `json:"description,omitempty"`
	LineOrder    int                 `json:"lineOrder"`
}

// EntryResponse is the outbound representation of a journal entry with its
// computed debit/credit totals.
type EntryResponse struct {
	EntryID      string          `json:"entryID"`
	EntryNumber  string          `json:"entryNumber"`
	EntryDate    time.Time       `json:"entryDate"`
	Source       string          `json:"source"`
	SourceID     *string         `json:"sourceID,omitempty"`
	Description  string          `json:"description"`
	Memo         string          `json:"memo,omitempty"`
	IsPosted     bool            `json:"isPosted"`
	IsLocked     bool            `json:"isLocked"`
	IsReversed   bool            `json:"isReversed"`
	ReversedByID *string         `json:"reversedByID,omitempty"`
	PostedAt     *time.Time      `json:"postedAt,omitempty"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	Lines        []LineResponse  `json:"lines"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ListEntriesResponse pages through journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse maps a domain entry (with lines) to its response shape.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]LineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = LineResponse{
			LineID:       l.LineID,
			EntryID:      l.EntryID,
			AccountID:    l.AccountID,
			AccountCode:  l.AccountCode,
			AccountName:  l.AccountName,
			Debit:        l.Debit,
			Credit:       l.Credit,
			PropertyID:   l.PropertyID,
			BookingID:    l.BookingID,
			ExpenseID:    l.ExpenseID,
			TenancyID:    l.TenancyID,
			VATTreatment: l.VATTreatment,
			VATAmount:    l.VATAmount,
			Description:  l.Description,
			LineOrder:    l.LineOrder,
		}
	}
	return EntryResponse{
		EntryID:      e.EntryID,
		EntryNumber:  e.EntryNumber,
		EntryDate:    e.EntryDate,
		Source:       string(e.Source),
		SourceID:     e.SourceID,
		Description:  e.Description,
		Memo:         e.Memo,
		IsPosted:     e.IsPosted,
		IsLocked:     e.IsLocked,
		IsReversed:   e.IsReversed,
		ReversedByID: e.ReversedByID,
		PostedAt:     e.PostedAt,
		TotalDebit:   e.TotalDebit,
		TotalCredit:  e.TotalCredit,
		Lines:        lines,
		CreatedAt:    e.CreatedAt,
	}
}
