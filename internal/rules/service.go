// Package rules stores time-versioned tax rules and resolves the rule
// in force on a given date.
package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/pesafile-dev/pesafile/internal/model"
)

const rulesFile = "rules/tax-rules.csv"

// NotFoundError means no rule for a code was active on the requested
// date. Resolved only by an administrative rule-table correction.
type NotFoundError struct {
	Code string
	AsOf time.Time
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no active tax rule for %s on %s", e.Code, e.AsOf.Format("2006-01-02"))
}

// Service provides in-memory lookup over the rule table. Lookups are
// pure reads; the table is only written administratively.
type Service struct {
	rules []model.TaxRule
	log   zerolog.Logger
}

// NewService creates a Service from a slice of rules.
func NewService(rules []model.TaxRule, log zerolog.Logger) *Service {
	return &Service{rules: rules, log: log}
}

// Load reads rules/tax-rules.csv from a workspace root.
func Load(root string, log zerolog.Logger) (*Service, error) {
	f, err := os.Open(filepath.Join(root, rulesFile))
	if err != nil {
		return nil, fmt.Errorf("opening tax rules: %w", err)
	}
	defer f.Close()

	rr, err := ReadRules(f)
	if err != nil {
		return nil, fmt.Errorf("reading tax rules: %w", err)
	}
	return NewService(rr, log), nil
}

// Save writes the rule table to rules/tax-rules.csv.
func (s *Service) Save(root string) error {
	dir := filepath.Join(root, "rules")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating rules dir: %w", err)
	}

	f, err := os.Create(filepath.Join(root, rulesFile))
	if err != nil {
		return fmt.Errorf("creating tax rules file: %w", err)
	}
	defer f.Close()

	if err := WriteRules(f, s.rules); err != nil {
		return fmt.Errorf("writing tax rules: %w", err)
	}
	return nil
}

// All returns all rule rows, historical versions included.
func (s *Service) All() []model.TaxRule {
	return s.rules
}

// Add appends a rule row. Existing rows are never modified; superseding
// a rule means closing its interval and adding a new row.
func (s *Service) Add(rule model.TaxRule) {
	s.rules = append(s.rules, rule)
}

// Resolve returns the rule for code in force on asOf. A zero asOf means
// today. Zero matches is a NotFoundError. More than one match is a
// data-integrity fault: it is logged and the rule with the latest
// valid_from wins, ties broken by the narrowest interval.
func (s *Service) Resolve(code string, asOf time.Time) (model.TaxRule, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	var matches []model.TaxRule
	for _, r := range s.rules {
		if r.Code == code && r.ActiveOn(asOf) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		return model.TaxRule{}, &NotFoundError{Code: code, AsOf: asOf}
	case 1:
		return matches[0], nil
	}

	s.log.Warn().
		Str("code", code).
		Time("as_of", asOf).
		Int("matches", len(matches)).
		Msg("overlapping tax rule intervals, picking latest valid_from")

	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].ValidFrom.Equal(matches[j].ValidFrom) {
			return matches[i].ValidFrom.After(matches[j].ValidFrom)
		}
		return matches[i].ValidTo.Sub(matches[i].ValidFrom) < matches[j].ValidTo.Sub(matches[j].ValidFrom)
	})
	return matches[0], nil
}
