// Package regime assigns a taxpayer to one of the two statutory tax
// regimes at registration time. The assignment is system-authoritative:
// the taxpayer can only change it later through an explicit, audited
// regime switch.
package regime

import (
	"strings"

	"github.com/pesafile-dev/pesafile/internal/model"
)

// Config holds the triage keyword lists. Injected rather than baked in
// so rule changes ship as data.
type Config struct {
	// ProfessionalProfessions force PROFESSIONAL by substring match
	// against the declared profession. These occupations are excluded
	// from turnover tax by statute.
	ProfessionalProfessions []string
	// ProfessionalBusinessTypes force PROFESSIONAL by exact match
	// against the declared business type.
	ProfessionalBusinessTypes []string
}

// DefaultConfig returns the statutory exclusion lists.
func DefaultConfig() Config {
	return Config{
		ProfessionalProfessions: []string{
			"Doctor",
			"Engineer",
			"Accountant",
			"Lawyer",
			"Consultant",
			"IT Specialist",
			"Architect",
			"Auditor",
		},
		ProfessionalBusinessTypes: []string{"CONSULTANT"},
	}
}

// Classifier decides the tax regime for a profession/business type
// pair. Pure and total: every input classifies.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a Classifier with the given triage config.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify returns PROFESSIONAL when the profession contains an
// excluded occupation or the business type is itself excluded, and
// TRADER otherwise. Matching is case-insensitive.
func (c *Classifier) Classify(profession, businessType string) model.Regime {
	prof := strings.ToLower(profession)
	for _, keyword := range c.cfg.ProfessionalProfessions {
		if strings.Contains(prof, strings.ToLower(keyword)) {
			return model.RegimeProfessional
		}
	}

	bt := strings.ToUpper(strings.TrimSpace(businessType))
	for _, excluded := range c.cfg.ProfessionalBusinessTypes {
		if bt == strings.ToUpper(excluded) {
			return model.RegimeProfessional
		}
	}

	return model.RegimeTrader
}
