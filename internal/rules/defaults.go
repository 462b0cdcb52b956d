package rules

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pesafile-dev/pesafile/internal/model"
)

// DefaultRules returns the administrative seed set, including expired
// versions so backdated filings resolve correctly.
func DefaultRules() []model.TaxRule {
	return []model.TaxRule{
		{
			Code:           model.RuleTurnoverTax,
			Name:           "Turnover Tax (2023)",
			Rate:           decimal.NewFromFloat(0.03),
			ValidFrom:      date(2023, 7, 1),
			ValidTo:        date(2099, 12, 31),
			Description:    "3% on gross sales",
			LegalReference: "Finance Act 2023 Sec 12C",
		},
		{
			Code:           model.RuleTurnoverTax,
			Name:           "Turnover Tax (expired)",
			Rate:           decimal.NewFromFloat(0.01),
			ValidFrom:      date(2020, 1, 1),
			ValidTo:        date(2023, 6, 30),
			Description:    "1% on gross sales",
			LegalReference: "Finance Act 2020",
		},
		{
			Code:           model.RuleIncomeTaxPro,
			Name:           "Professional Income Tax",
			Rate:           decimal.NewFromFloat(0.30),
			ValidFrom:      date(2023, 7, 1),
			ValidTo:        date(2099, 12, 31),
			Description:    "30% on net profit",
			LegalReference: "Head B",
		},
		{
			Code:           model.RuleHousingLevy,
			Name:           "Affordable Housing Levy",
			Rate:           decimal.NewFromFloat(0.015),
			Deductible:     true,
			ValidFrom:      date(2024, 3, 19),
			ValidTo:        date(2099, 12, 31),
			Description:    "1.5% of gross, deductible before income tax",
			LegalReference: "Affordable Housing Act 2024",
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
