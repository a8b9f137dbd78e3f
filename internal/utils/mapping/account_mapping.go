package mapping

import (
	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	"github.com/hostfolio/property_mgmt_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:           d.AccountID,
		Code:                d.Code,
		Name:                d.Name,
		AccountType:         string(d.AccountType),
		ParentCode:          d.ParentCode,
		IsSystem:            d.IsSystem,
		IsActive:            d.IsActive,
		AllowManualEntries:  d.AllowManualEntries,
		DefaultVATTreatment: string(d.DefaultVATTreatment),
		DisplayOrder:        d.DisplayOrder,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:           m.AccountID,
		Code:                m.Code,
		Name:                m.Name,
		AccountType:         domain.AccountType(m.AccountType),
		ParentCode:          m.ParentCode,
		IsSystem:            m.IsSystem,
		IsActive:            m.IsActive,
		AllowManualEntries:  m.AllowManualEntries,
		DefaultVATTreatment: domain.VATTreatment(m.DefaultVATTreatment),
		DisplayOrder:        m.DisplayOrder,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
