package dto

import (
	"time"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
)

// CreateAccountRequest is the payload for adding an account to the chart of
// accounts. Code and account type are immutable once created.
type CreateAccountRequest struct {
	Code                string              `json:"code" binding:"required,max=20"`
	Name                string              `json:"name" binding:"required,max=100"`
	AccountType         domain.AccountType  `json:"accountType" binding:"required,accounttype"`
	ParentCode          string              `json:"parentCode" binding:"omitempty,max=20"`
	IsSystem            bool                `json:"isSystem"`
	AllowManualEntries  *bool               `json:"allowManualEntries"`
	DefaultVATTreatment domain.VATTreatment `json:"defaultVatTreatment" binding:"omitempty,vattreatment"`
	DisplayOrder        int                 `json:"displayOrder"`
}

// UpdateAccountRequest is a partial update; absent fields are left unchanged.
type UpdateAccountRequest struct {
	Name                *string              `json:"name" binding:"omitempty,max=100"`
	ParentCode          *string              `json:"parentCode" binding:"omitempty,max=20"`
	IsActive            *bool                `json:"isActive"`
	AllowManualEntries  *bool                `json:"allowManualEntries"`
	DefaultVATTreatment *domain.VATTreatment `json:"defaultVatTreatment" binding:"omitempty,vattreatment"`
	DisplayOrder        *int                 `json:"displayOrder"`
}

// ToPatch converts the request into the domain patch type.
func (r UpdateAccountRequest) ToPatch() domain.AccountPatch {
	return domain.AccountPatch{
		Name:                r.Name,
		ParentCode:          r.ParentCode,
		IsActive:            r.IsActive,
		AllowManualEntries:  r.AllowManualEntries,
		DefaultVATTreatment: r.DefaultVATTreatment,
		DisplayOrder:        r.DisplayOrder,
	}
}

// ListAccountsParams narrows account listings via query parameters.
type ListAccountsParams struct {
	AccountType *domain.AccountType `form:"accountType" binding:"omitempty,accounttype"`
	ActiveOnly  bool                `form:"activeOnly,default=true"`
}

// AccountResponse is the outbound representation of an account.
type AccountResponse struct {
	AccountID           string              `json:"accountID"`
	Code                string              `json:"code"`
	Name                string              `json:"name"`
	AccountType         domain.AccountType  `json:"accountType"`
	ParentCode          string              `json:"parentCode,omitempty"`
	IsSystem            bool                `json:"isSystem"`
	IsActive            bool                `json:"isActive"`
	AllowManualEntries  bool                `json:"allowManualEntries"`
	DefaultVATTreatment domain.VATTreatment `json:"defaultVatTreatment,omitempty"`
	DisplayOrder        int                 `json:"displayOrder"`
	CreatedAt           time.Time           `json:"createdAt"`
	LastUpdatedAt       time.Time           `json:"lastUpdatedAt"`
}

// ToAccountResponse maps a domain account to its response shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:           a.AccountID,
		Code:                a.Code,
		Name:                a.Name,
		AccountType:         a.AccountType,
		ParentCode:          a.ParentCode,
		IsSystem:            a.IsSystem,
		IsActive:            a.IsActive,
		AllowManualEntries:  a.AllowManualEntries,
		DefaultVATTreatment: a.DefaultVATTreatment,
		DisplayOrder:        a.DisplayOrder,
		CreatedAt:           a.CreatedAt,
		LastUpdatedAt:       a.LastUpdatedAt,
	}
}

// ToAccountResponses maps a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
