package compute

import (
	"github.com/shopspring/decimal"

	"github.com/pesafile-dev/pesafile/internal/model"
)

// strategy supplies the regime-specific pieces of the computation: the
// governing rule code, the fallback rate, and the tax formula.
type strategy interface {
	ruleCode() string
	fallbackRate(fb FallbackRates) decimal.Decimal
	taxDue(gross, expenses, rate decimal.Decimal) decimal.Decimal
}

func strategyFor(reg model.Regime) strategy {
	if reg == model.RegimeProfessional {
		return professionalStrategy{}
	}
	return traderStrategy{}
}

// traderStrategy: turnover tax on gross income. Expenses are not
// deductible; that is the defining property of the regime.
type traderStrategy struct{}

func (traderStrategy) ruleCode() string { return model.RuleTurnoverTax }

func (traderStrategy) fallbackRate(fb FallbackRates) decimal.Decimal { return fb.Trader }

func (traderStrategy) taxDue(gross, _, rate decimal.Decimal) decimal.Decimal {
	return gross.Mul(rate)
}

// professionalStrategy: income tax on net profit, floored at zero.
type professionalStrategy struct{}

func (professionalStrategy) ruleCode() string { return model.RuleIncomeTaxPro }

func (professionalStrategy) fallbackRate(fb FallbackRates) decimal.Decimal { return fb.Professional }

func (professionalStrategy) taxDue(gross, expenses, rate decimal.Decimal) decimal.Decimal {
	net := gross.Sub(expenses)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return net.Mul(rate)
}
