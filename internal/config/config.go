package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pesafile-dev/pesafile/internal/model"
)

// Config represents the top-level pesafile.yaml configuration.
type Config struct {
	Taxpayer TaxpayerConfig `yaml:"taxpayer"`
	Rates    RatesConfig    `yaml:"rates"`
	Filler   FillerConfig   `yaml:"filler"`
	Git      GitConfig      `yaml:"git"`
}

// TaxpayerConfig identifies the taxpayer and their confirmed regime.
type TaxpayerConfig struct {
	Name         string `yaml:"name"`
	PIN          string `yaml:"pin"`
	Profession   string `yaml:"profession"`
	BusinessType string `yaml:"business_type"`
	Regime       string `yaml:"regime"`
	Confirmed    bool   `yaml:"confirmed"`
}

// RatesConfig holds fallback tax rates used when no rule resolves for
// a filing period.
type RatesConfig struct {
	TraderFallback       float64 `yaml:"trader_fallback"`
	ProfessionalFallback float64 `yaml:"professional_fallback"`
}

// FillerConfig controls the external form filler.
type FillerConfig struct {
	Python         string `yaml:"python"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// GitConfig controls vault git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Profile converts the taxpayer section into a model profile.
func (c *Config) Profile() model.TaxpayerProfile {
	return model.TaxpayerProfile{
		Name:         c.Taxpayer.Name,
		PIN:          c.Taxpayer.PIN,
		Profession:   c.Taxpayer.Profession,
		BusinessType: c.Taxpayer.BusinessType,
		Regime:       model.Regime(c.Taxpayer.Regime),
		Confirmed:    c.Taxpayer.Confirmed,
	}
}

// SetProfile writes a model profile back into the taxpayer section.
func (c *Config) SetProfile(p model.TaxpayerProfile) {
	c.Taxpayer = TaxpayerConfig{
		Name:         p.Name,
		PIN:          p.PIN,
		Profession:   p.Profession,
		BusinessType: p.BusinessType,
		Regime:       string(p.Regime),
		Confirmed:    p.Confirmed,
	}
}

// Load reads a pesafile.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(name, pin string) *Config {
	return &Config{
		Taxpayer: TaxpayerConfig{
			Name:   name,
			PIN:    pin,
			Regime: string(model.RegimeTrader),
		},
		Rates: RatesConfig{
			TraderFallback:       0.03,
			ProfessionalFallback: 0.30,
		},
		Filler: FillerConfig{
			Python:         "python3",
			TimeoutSeconds: 45,
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Pesafile",
			AuthorEmail: "vault@pesafile.dev",
		},
	}
}
