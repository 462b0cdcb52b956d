package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rule codes group rule versions over time. One code, many rows, each
// valid for a different date interval.
const (
	RuleTurnoverTax  = "TURNOVER_TAX"
	RuleIncomeTaxPro = "INCOME_TAX_PRO"
	RuleHousingLevy  = "HOUSING_LEVY"
)

// TaxRule is one time-versioned statutory rate. Rows are immutable once
// superseded; old rows are kept so backdated filings resolve against
// the law in force at the time.
type TaxRule struct {
	Code           string
	Name           string
	Rate           decimal.Decimal // fraction, e.g. 0.03
	Deductible     bool            // subtracted from gross before tax, vs. charged on top
	ValidFrom      time.Time
	ValidTo        time.Time
	Description    string
	LegalReference string
}

// ActiveOn reports whether the rule's validity interval contains d.
// Both endpoints are inclusive.
func (r TaxRule) ActiveOn(d time.Time) bool {
	return !d.Before(r.ValidFrom) && !d.After(r.ValidTo)
}
