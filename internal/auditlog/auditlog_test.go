package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCreatesFileWithHeader(t *testing.T) {
	root := t.TempDir()

	err := Append(root, []Entry{{
		Timestamp:  time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
		Actor:      "A012345678B",
		Action:     ActionFilingSubmitted,
		EntityType: "filing",
		EntityID:   "2024-07-001",
		Details:    "MRI filing submitted",
	}})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "logs", "audit-log.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, Header, lines[0])
	assert.Contains(t, lines[1], "FILING_SUBMITTED")
}

func TestAppendIsAppendOnly(t *testing.T) {
	root := t.TempDir()
	ts := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, Append(root, []Entry{
		{Timestamp: ts, Actor: "system", Action: ActionArchiveGenerated, EntityType: "archive", EntityID: "2024-07-001"},
	}))
	require.NoError(t, Append(root, []Entry{
		{Timestamp: ts.Add(time.Minute), Actor: "A012345678B", Action: ActionRegimeSwitched, EntityType: "taxpayer", EntityID: "A012345678B", Details: "TRADER -> PROFESSIONAL"},
	}))

	entries, err := Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionArchiveGenerated, entries[0].Action)
	assert.Equal(t, ActionRegimeSwitched, entries[1].Action)
	assert.Equal(t, "TRADER -> PROFESSIONAL", entries[1].Details)
}

func TestReadMissingFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntryRoundTrip(t *testing.T) {
	e := Entry{
		Timestamp:  time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC),
		Actor:      "system",
		Action:     ActionArchiveGenerated,
		EntityType: "archive",
		EntityID:   "2024-02-003",
		Details:    "vault copy AUDIT_A012345678B_2024-02-003_2024-02-29.xlsx",
	}

	got, err := UnmarshalEntry(MarshalEntry(e))
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestUnmarshalEntryBadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"only", "three", "fields"})
	assert.Error(t, err)
}
