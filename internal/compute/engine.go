// Package compute turns a normalized transaction list into the tax
// position for a filing period.
package compute

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pesafile-dev/pesafile/internal/model"
)

// Resolver looks up the tax rule in force on a date. *rules.Service
// satisfies this.
type Resolver interface {
	Resolve(code string, asOf time.Time) (model.TaxRule, error)
}

// FallbackRates are used when no rule table is wired (resolver is nil).
type FallbackRates struct {
	Trader       decimal.Decimal
	Professional decimal.Decimal
}

// DefaultFallbackRates returns the statutory rates hardcoded as a last
// resort: 3% turnover, 30% net profit.
func DefaultFallbackRates() FallbackRates {
	return FallbackRates{
		Trader:       decimal.NewFromFloat(0.03),
		Professional: decimal.NewFromFloat(0.30),
	}
}

// Summary is the computed tax position for one filing period.
type Summary struct {
	GrossIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Rate          decimal.Decimal
	TaxDue        decimal.Decimal
	RuleCode      string
}

// Engine computes tax over transactions. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	resolver Resolver
	fallback FallbackRates
}

// NewEngine creates an Engine. resolver may be nil, in which case the
// fallback rates apply.
func NewEngine(resolver Resolver, fallback FallbackRates) *Engine {
	return &Engine{resolver: resolver, fallback: fallback}
}

// Compute partitions transactions into income and expenses, resolves
// the regime's rate as of asOf, and applies the regime's formula.
// Total over any well-formed transaction list; the only failure mode is
// a rule lookup error, which is propagated untouched.
func (e *Engine) Compute(txns []model.Transaction, reg model.Regime, asOf time.Time) (Summary, error) {
	gross := decimal.Zero
	expenses := decimal.Zero
	for _, txn := range txns {
		if txn.Category == model.CategoryIncome {
			gross = gross.Add(txn.Amount)
		} else {
			expenses = expenses.Add(txn.Amount)
		}
	}

	strat := strategyFor(reg)

	rate, err := e.rateFor(strat, asOf)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		GrossIncome:   gross,
		TotalExpenses: expenses,
		Rate:          rate,
		TaxDue:        strat.taxDue(gross, expenses, rate),
		RuleCode:      strat.ruleCode(),
	}, nil
}

// AttributeTax returns the per-line tax attribution used for the
// return-lines file: income lines carry tax at the given rate, expense
// lines carry zero. Rounded to 2 decimal places.
func AttributeTax(txn model.Transaction, rate decimal.Decimal) decimal.Decimal {
	if txn.Category != model.CategoryIncome {
		return decimal.Zero
	}
	return txn.Amount.Mul(rate).Round(2)
}

func (e *Engine) rateFor(strat strategy, asOf time.Time) (decimal.Decimal, error) {
	if e.resolver == nil {
		return strat.fallbackRate(e.fallback), nil
	}
	rule, err := e.resolver.Resolve(strat.ruleCode(), asOf)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return rule.Rate, nil
}
