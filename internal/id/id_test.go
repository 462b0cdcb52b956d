package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFilingID(t *testing.T) {
	assert.Equal(t, "2024-01-001", FormatFilingID(2024, 1, 1))
	assert.Equal(t, "2024-12-042", FormatFilingID(2024, 12, 42))
}

func TestParseFilingID(t *testing.T) {
	year, month, seq, err := ParseFilingID("2024-01-003")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 1, month)
	assert.Equal(t, 3, seq)

	_, _, _, err = ParseFilingID("garbage")
	assert.Error(t, err)
}

func TestInvoiceRef(t *testing.T) {
	ref := InvoiceRef()
	assert.Len(t, ref, 12)
	assert.Equal(t, "INV-", ref[:4])
	assert.NotEqual(t, ref, InvoiceRef())
}
