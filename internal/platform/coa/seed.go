package coa

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	portsrepo "github.com/hostfolio/property_mgmt_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SeedAccount is one account definition in the chart-of-accounts seed file.
type SeedAccount struct {
	Code                string `yaml:"code"`
	Name                string `yaml:"name"`
	Type                string `yaml:"type"`
	ParentCode          string `yaml:"parent_code"`
	IsSystem            bool   `yaml:"is_system"`
	AllowManualEntries  *bool  `yaml:"allow_manual_entries"`
	DefaultVATTreatment string `yaml:"default_vat_treatment"`
	DisplayOrder        int    `yaml:"display_order"`
}

type seedFile struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

// LoadSeedFile parses a chart-of-accounts seed file and validates every
// account definition in it.
func LoadSeedFile(path string) ([]SeedAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart of accounts seed %s: %w", path, err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse chart of accounts seed %s: %w", path, err)
	}

	seen := make(map[string]bool, len(f.Accounts))
	for _, a := range f.Accounts {
		if a.Code == "" || a.Name == "" {
			return nil, fmt.Errorf("seed account missing code or name: %+v", a)
		}
		if !domain.AccountType(a.Type).IsValid() {
			return nil, fmt.Errorf("seed account %s has invalid type %q", a.Code, a.Type)
		}
		if a.DefaultVATTreatment != "" && !domain.VATTreatment(a.DefaultVATTreatment).IsValid() {
			return nil, fmt.Errorf("seed account %s has invalid vat treatment %q", a.Code, a.DefaultVATTreatment)
		}
		if seen[a.Code] {
			return nil, fmt.Errorf("seed account code %s appears twice", a.Code)
		}
		seen[a.Code] = true
	}
	return f.Accounts, nil
}

// Seed inserts any seed accounts whose codes are not yet in the chart of
// accounts. Existing codes are left untouched so local edits survive restarts.
func Seed(ctx context.Context, repo portsrepo.AccountRepositoryFacade, path string, logger *slog.Logger) error {
	seeds, err := LoadSeedFile(path)
	if err != nil {
		return err
	}

	existing, err := repo.ListAccounts(ctx, domain.AccountFilter{})
	if err != nil {
		return fmt.Errorf("failed to list accounts before seeding: %w", err)
	}
	existingCodes := make(map[string]bool, len(existing))
	for _, a := range existing {
		existingCodes[a.Code] = true
	}

	created := 0
	now := time.Now().UTC()
	for _, seed := range seeds {
		if existingCodes[seed.Code] {
			continue
		}

		allowManual := true
		if seed.AllowManualEntries != nil {
			allowManual = *seed.AllowManualEntries
		}

		account := domain.Account{
			AccountID:           uuid.NewString(),
			Code:                seed.Code,
			Name:                seed.Name,
			AccountType:         domain.AccountType(seed.Type),
			ParentCode:          seed.ParentCode,
			IsSystem:            seed.IsSystem,
			IsActive:            true,
			AllowManualEntries:  allowManual,
			DefaultVATTreatment: domain.VATTreatment(seed.DefaultVATTreatment),
			DisplayOrder:        seed.DisplayOrder,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		if err := repo.SaveAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", seed.Code, err)
		}
		created++
	}

	logger.Info("Chart of accounts seeded",
		slog.Int("created", created),
		slog.Int("existing", len(existingCodes)))
	return nil
}
