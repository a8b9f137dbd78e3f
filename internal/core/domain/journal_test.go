package domain_test

import (
	"testing"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEntryNumber(t *testing.T) {
	assert.Equal(t, "JE-2025-00001", domain.FormatEntryNumber(2025, 1))
	assert.Equal(t, "JE-2026-00042", domain.FormatEntryNumber(2026, 42))
	assert.Equal(t, "JE-2025-100000", domain.FormatEntryNumber(2025, 100000))
}

func TestEntryNumberYearPrefix(t *testing.T) {
	assert.Equal(t, "JE-2025-", domain.EntryNumberYearPrefix(2025))
}

func TestParseEntryNumber(t *testing.T) {
	year, seq, err := domain.ParseEntryNumber("JE-2025-00317")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 317, seq)
}

func TestParseEntryNumberRoundTrip(t *testing.T) {
	number := domain.FormatEntryNumber(2026, 99999)
	year, seq, err := domain.ParseEntryNumber(number)
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 99999, seq)
}

func TestParseEntryNumberMalformed(t *testing.T) {
	for _, number := range []string{"", "JE-2025", "INV-2025-00001", "JE-abcd-00001", "JE-2025-x"} {
		_, _, err := domain.ParseEntryNumber(number)
		assert.Error(t, err, "expected %q to be rejected", number)
	}
}

func TestEntrySourceIsValid(t *testing.T) {
	assert.True(t, domain.SourceBooking.IsValid())
	assert.True(t, domain.SourceManual.IsValid())
	assert.False(t, domain.EntrySource("invoice").IsValid())
}
