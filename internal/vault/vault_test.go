package vault

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveName(t *testing.T) {
	name := ArchiveName("A012345678B", "2024-07-001", time.Date(2024, 8, 2, 9, 0, 0, 0, time.UTC), ".xlsx")
	assert.Equal(t, "AUDIT_A012345678B_2024-07-001_2024-08-02.xlsx", name)
}

func TestStoreCopiesForm(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "filled.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("form bytes"), 0o644))

	svc := New(root, nil, zerolog.Nop())
	arc, err := svc.Store(src, "A012345678B", "2024-07-001")
	require.NoError(t, err)

	assert.Equal(t, "2024-07-001", arc.FilingID)
	assert.Contains(t, arc.Name, "AUDIT_A012345678B_2024-07-001_")

	data, err := os.ReadFile(arc.Path)
	require.NoError(t, err)
	assert.Equal(t, "form bytes", string(data))

	// Original stays in place.
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestStoreMissingSource(t *testing.T) {
	svc := New(t.TempDir(), nil, zerolog.Nop())
	_, err := svc.Store("/nonexistent/form.xlsx", "A012345678B", "2024-07-001")
	assert.Error(t, err)
}

func TestListEmptyVault(t *testing.T) {
	svc := New(t.TempDir(), nil, zerolog.Nop())
	archives, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, archives)
}

func TestListReturnsArchives(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "filled.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	svc := New(root, nil, zerolog.Nop())
	_, err := svc.Store(src, "A012345678B", "2024-06-001")
	require.NoError(t, err)
	_, err = svc.Store(src, "A012345678B", "2024-07-002")
	require.NoError(t, err)

	archives, err := svc.List()
	require.NoError(t, err)
	require.Len(t, archives, 2)
	assert.Contains(t, archives[0].Name, "2024-06-001")
	assert.Contains(t, archives[1].Name, "2024-07-002")
}
