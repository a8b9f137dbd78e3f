package mapping

import (
	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	"github.com/hostfolio/property_mgmt_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:      d.EntryID,
		EntryNumber:  d.EntryNumber,
		EntryDate:    d.EntryDate,
		Source:       string(d.Source),
		SourceID:     d.SourceID,
		Description:  d.Description,
		Memo:         d.Memo,
		IsPosted:     d.IsPosted,
		IsLocked:     d.IsLocked,
		IsReversed:   d.IsReversed,
		ReversedByID: d.ReversedByID,
		PostedAt:     d.PostedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		EntryNumber:  m.EntryNumber,
		EntryDate:    m.EntryDate,
		Source:       domain.EntrySource(m.Source),
		SourceID:     m.SourceID,
		Description:  m.Description,
		Memo:         m.Memo,
		IsPosted:     m.IsPosted,
		IsLocked:     m.IsLocked,
		IsReversed:   m.IsReversed,
		ReversedByID: m.ReversedByID,
		PostedAt:     m.PostedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		Debit:        d.Debit,
		Credit:       d.Credit,
		PropertyID:   d.PropertyID,
		BookingID:    d.BookingID,
		ExpenseID:    d.ExpenseID,
		TenancyID:    d.TenancyID,
		VATTreatment: string(d.VATTreatment),
		VATAmount:    d.VATAmount,
		Description:  d.Description,
		LineOrder:    d.LineOrder,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		Debit:        m.Debit,
		Credit:       m.Credit,
		PropertyID:   m.PropertyID,
		BookingID:    m.BookingID,
		ExpenseID:    m.ExpenseID,
		TenancyID:    m.TenancyID,
		VATTreatment: domain.VATTreatment(m.VATTreatment),
		VATAmount:    m.VATAmount,
		Description:  m.Description,
		LineOrder:    m.LineOrder,
		AccountCode:  m.AccountCode,
		AccountName:  m.AccountName,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
