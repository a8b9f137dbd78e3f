package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// DebitNormal reports whether the account type carries a debit-normal balance,
// i.e. balance = debits - credits. Liability, equity and revenue accounts are
// credit-normal.
func (t AccountType) DebitNormal() bool {
	return t == Asset || t == Expense
}

// VATTreatment classifies how VAT applies to postings against an account.
type VATTreatment string

const (
	VATStandard   VATTreatment = "standard"
	VATZeroRated  VATTreatment = "zero_rated"
	VATExempt     VATTreatment = "exempt"
	VATOutOfScope VATTreatment = "out_of_scope"
)

// IsValid reports whether v is one of the known VAT treatments.
func (v VATTreatment) IsValid() bool {
	switch v {
	case VATStandard, VATZeroRated, VATExempt, VATOutOfScope:
		return true
	}
	return false
}

// Account represents a node in the chart of accounts.
// Code is globally unique and immutable after creation; it doubles as the
// ordering key within a display_order bucket.
type Account struct {
	AccountID           string       `json:"accountID"`
	Code                string       `json:"code"`
	Name                string       `json:"name"`
	AccountType         AccountType  `json:"accountType"`
	ParentCode          string       `json:"parentCode,omitempty"`
	IsSystem            bool         `json:"isSystem"`
	IsActive            bool         `json:"isActive"`
	AllowManualEntries  bool         `json:"allowManualEntries"`
	DefaultVATTreatment VATTreatment `json:"defaultVatTreatment,omitempty"`
	DisplayOrder        int          `json:"displayOrder"`
	AuditFields
}

// AccountPatch carries optional field updates for an account. Code and
// account type are deliberately absent: both are fixed at creation.
type AccountPatch struct {
	Name                *string
	ParentCode          *string
	IsActive            *bool
	AllowManualEntries  *bool
	DefaultVATTreatment *VATTreatment
	DisplayOrder        *int
}

// IsEmpty reports whether the patch carries no changes.
func (p AccountPatch) IsEmpty() bool {
	return p.Name == nil && p.ParentCode == nil && p.IsActive == nil &&
		p.AllowManualEntries == nil && p.DefaultVATTreatment == nil && p.DisplayOrder == nil
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	AccountType *AccountType
	ActiveOnly  bool
}
