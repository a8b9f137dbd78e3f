package coa

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart_of_accounts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeedFile(t, `
accounts:
  - code: "1102"
    name: "Bank"
    type: asset
    parent_code: "1100"
    is_system: true
    display_order: 2
  - code: "4101"
    name: "Nightly Rate Revenue"
    type: revenue
    default_vat_treatment: standard
    allow_manual_entries: false
    display_order: 10
`)

	seeds, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, seeds, 2)

	assert.Equal(t, "1102", seeds[0].Code)
	assert.Equal(t, "asset", seeds[0].Type)
	assert.True(t, seeds[0].IsSystem)
	assert.Nil(t, seeds[0].AllowManualEntries)

	assert.Equal(t, "standard", seeds[1].DefaultVATTreatment)
	require.NotNil(t, seeds[1].AllowManualEntries)
	assert.False(t, *seeds[1].AllowManualEntries)
}

func TestLoadSeedFileRejectsInvalidType(t *testing.T) {
	path := writeSeedFile(t, `
accounts:
  - code: "9000"
    name: "Mystery"
    type: contra_asset
`)

	_, err := LoadSeedFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid type")
}

func TestLoadSeedFileRejectsInvalidVATTreatment(t *testing.T) {
	path := writeSeedFile(t, `
accounts:
  - code: "4101"
    name: "Nightly Rate Revenue"
    type: revenue
    default_vat_treatment: reduced
`)

	_, err := LoadSeedFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid vat treatment")
}

func TestLoadSeedFileRejectsDuplicateCode(t *testing.T) {
	path := writeSeedFile(t, `
accounts:
  - code: "1102"
    name: "Bank"
    type: asset
  - code: "1102"
    name: "Bank Again"
    type: asset
`)

	_, err := LoadSeedFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appears twice")
}

func TestLoadSeedFileRejectsMissingName(t *testing.T) {
	path := writeSeedFile(t, `
accounts:
  - code: "1102"
    type: asset
`)

	_, err := LoadSeedFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing code or name")
}

func TestLoadSeedFileMissingFile(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
