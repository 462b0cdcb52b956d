package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesafile-dev/pesafile/internal/model"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pesafile.yaml")

	cfg := Default("Wanjiku Traders", "A012345678B")
	cfg.Taxpayer.Profession = "Shopkeeper"
	cfg.Taxpayer.BusinessType = "RETAIL"
	cfg.Git.AutoCommit = true

	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "pesafile.yaml"))
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Wanjiku Traders", "A012345678B")

	assert.Equal(t, string(model.RegimeTrader), cfg.Taxpayer.Regime)
	assert.False(t, cfg.Taxpayer.Confirmed)
	assert.Equal(t, 0.03, cfg.Rates.TraderFallback)
	assert.Equal(t, 0.30, cfg.Rates.ProfessionalFallback)
	assert.Equal(t, "python3", cfg.Filler.Python)
	assert.Equal(t, 45, cfg.Filler.TimeoutSeconds)
	assert.False(t, cfg.Git.AutoCommit)
}

func TestProfileRoundTrip(t *testing.T) {
	p := model.TaxpayerProfile{
		Name:         "Dr. Atieno",
		PIN:          "A098765432C",
		Profession:   "Doctor",
		BusinessType: "CLINIC",
		Regime:       model.RegimeProfessional,
		Confirmed:    true,
	}

	var cfg Config
	cfg.SetProfile(p)
	assert.Equal(t, p, cfg.Profile())
}
