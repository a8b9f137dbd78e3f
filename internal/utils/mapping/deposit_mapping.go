package mapping

import (
	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	"github.com/hostfolio/property_mgmt_app/internal/models"
)

// ToModelDepositTransaction converts a domain DepositTransaction to its model
func ToModelDepositTransaction(d domain.DepositTransaction) models.DepositTransaction {
	var reason *string
	if d.DeductionReason != nil {
		r := string(*d.DeductionReason)
		reason = &r
	}
	return models.DepositTransaction{
		TransactionID:   d.TransactionID,
		TenancyID:       d.TenancyID,
		PropertyID:      d.PropertyID,
		TransactionType: string(d.Type),
		Amount:          d.Amount,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		DeductionReason: reason,
		JournalEntryID:  d.JournalEntryID,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainDepositTransaction converts a model DepositTransaction to its domain shape
func ToDomainDepositTransaction(m models.DepositTransaction) domain.DepositTransaction {
	var reason *domain.DeductionReason
	if m.DeductionReason != nil {
		r := domain.DeductionReason(*m.DeductionReason)
		reason = &r
	}
	return domain.DepositTransaction{
		TransactionID:   m.TransactionID,
		TenancyID:       m.TenancyID,
		PropertyID:      m.PropertyID,
		Type:            domain.DepositTransactionType(m.TransactionType),
		Amount:          m.Amount,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		DeductionReason: reason,
		JournalEntryID:  m.JournalEntryID,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainDepositTransactionSlice converts model deposit transactions to domain ones
func ToDomainDepositTransactionSlice(ms []models.DepositTransaction) []domain.DepositTransaction {
	ds := make([]domain.DepositTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDepositTransaction(m)
	}
	return ds
}

// ToDomainTenancy converts a model Tenancy to its domain shape
func ToDomainTenancy(m models.Tenancy) domain.Tenancy {
	return domain.Tenancy{
		TenancyID:       m.TenancyID,
		PropertyID:      m.PropertyID,
		TenantName:      m.TenantName,
		SecurityDeposit: m.SecurityDeposit,
		DepositStatus:   domain.DepositStatus(m.DepositStatus),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
