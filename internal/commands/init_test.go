package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesafile-dev/pesafile/internal/config"
)

func TestRunInitCreatesWorkspace(t *testing.T) {
	dir := t.TempDir()

	err := runInit(dir, "Wanjiku Traders", "A012345678B", "Shopkeeper", "RETAIL")
	require.NoError(t, err)

	for _, d := range []string{"rules", "filings", "uploads", "templates", "vault", "logs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, d)
		assert.True(t, info.IsDir(), d)
	}

	cfg, err := config.Load(filepath.Join(dir, "pesafile.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Wanjiku Traders", cfg.Taxpayer.Name)
	assert.Equal(t, "A012345678B", cfg.Taxpayer.PIN)
	assert.Equal(t, "TRADER", cfg.Taxpayer.Regime)
	assert.False(t, cfg.Taxpayer.Confirmed)

	_, err = os.Stat(filepath.Join(dir, "rules", "tax-rules.csv"))
	assert.NoError(t, err)
}

func TestRunInitTriagesProfessional(t *testing.T) {
	dir := t.TempDir()

	err := runInit(dir, "Dr. Atieno", "A098765432C", "Doctor", "CLINIC")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "pesafile.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "PROFESSIONAL", cfg.Taxpayer.Regime)
}

func TestRunInitRejectsShortPIN(t *testing.T) {
	err := runInit(t.TempDir(), "X", "A123", "", "")
	assert.Error(t, err)
}

func TestOpenWorkspaceRequiresInit(t *testing.T) {
	_, err := openWorkspace(t.TempDir())
	assert.Error(t, err)
}

func TestOpenWorkspaceAfterInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "Wanjiku Traders", "A012345678B", "Shopkeeper", "RETAIL"))

	ws, err := openWorkspace(dir)
	require.NoError(t, err)
	assert.NotNil(t, ws.svc)
	assert.NotEmpty(t, ws.rules.All())
}
