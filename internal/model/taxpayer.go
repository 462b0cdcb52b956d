package model

// Regime is one of the two mutually exclusive statutory tax treatments.
type Regime string

const (
	// RegimeTrader pays turnover tax on gross income; expenses are not
	// deductible.
	RegimeTrader Regime = "TRADER"
	// RegimeProfessional pays income tax on net profit.
	RegimeProfessional Regime = "PROFESSIONAL"
)

// RuleCode returns the tax rule code that governs this regime.
func (r Regime) RuleCode() string {
	if r == RegimeProfessional {
		return RuleIncomeTaxPro
	}
	return RuleTurnoverTax
}

// MinPINLength is the minimum accepted length for a revenue-authority
// PIN (format A000000000B).
const MinPINLength = 11

// TaxpayerProfile is the subset of a taxpayer's registration that the
// filing core needs.
type TaxpayerProfile struct {
	Name         string
	PIN          string
	Profession   string
	BusinessType string
	Regime       Regime
	// Confirmed is true once the taxpayer has explicitly accepted the
	// regime assignment, as opposed to the system default from triage.
	Confirmed bool
}
