package models

// Account is the persisted shape of a chart-of-accounts node.
type Account struct {
	AccountID           string `db:"account_id"`
	Code                string `db:"code"`
	Name                string `db:"name"`
	AccountType         string `db:"account_type"`
	ParentCode          string `db:"parent_code"` // Nullable, stored as empty string
	IsSystem            bool   `db:"is_system"`
	IsActive            bool   `db:"is_active"`
	AllowManualEntries  bool   `db:"allow_manual_entries"`
	DefaultVATTreatment string `db:"default_vat_treatment"`
	DisplayOrder        int    `db:"display_order"`
	AuditFields
}
