package rules

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesafile-dev/pesafile/internal/model"
)

func testService(rr ...model.TaxRule) *Service {
	return NewService(rr, zerolog.Nop())
}

func turnoverRules() []model.TaxRule {
	return []model.TaxRule{
		{
			Code:      model.RuleTurnoverTax,
			Rate:      decimal.NewFromFloat(0.01),
			ValidFrom: date(2020, 1, 1),
			ValidTo:   date(2023, 6, 30),
		},
		{
			Code:      model.RuleTurnoverTax,
			Rate:      decimal.NewFromFloat(0.03),
			ValidFrom: date(2023, 7, 1),
			ValidTo:   date(2099, 12, 31),
		},
	}
}

func TestResolve_TimeTravel(t *testing.T) {
	svc := testService(turnoverRules()...)

	old, err := svc.Resolve(model.RuleTurnoverTax, date(2023, 1, 15))
	require.NoError(t, err)
	assert.Equal(t, "0.01", old.Rate.String())

	current, err := svc.Resolve(model.RuleTurnoverTax, date(2023, 12, 1))
	require.NoError(t, err)
	assert.Equal(t, "0.03", current.Rate.String())
}

func TestResolve_BoundaryDatesInclusive(t *testing.T) {
	svc := testService(turnoverRules()...)

	rule, err := svc.Resolve(model.RuleTurnoverTax, date(2023, 6, 30))
	require.NoError(t, err)
	assert.Equal(t, "0.01", rule.Rate.String())

	rule, err = svc.Resolve(model.RuleTurnoverTax, date(2023, 7, 1))
	require.NoError(t, err)
	assert.Equal(t, "0.03", rule.Rate.String())
}

func TestResolve_NotFound(t *testing.T) {
	svc := testService(turnoverRules()...)

	_, err := svc.Resolve(model.RuleTurnoverTax, date(2019, 1, 1))
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, model.RuleTurnoverTax, notFound.Code)
	assert.Contains(t, err.Error(), "2019-01-01")

	_, err = svc.Resolve("NO_SUCH_CODE", date(2024, 1, 1))
	assert.Error(t, err)
}

func TestResolve_OverlapPicksLatestValidFrom(t *testing.T) {
	svc := testService(
		model.TaxRule{
			Code:      model.RuleTurnoverTax,
			Name:      "older",
			Rate:      decimal.NewFromFloat(0.01),
			ValidFrom: date(2023, 1, 1),
			ValidTo:   date(2099, 12, 31),
		},
		model.TaxRule{
			Code:      model.RuleTurnoverTax,
			Name:      "newer",
			Rate:      decimal.NewFromFloat(0.03),
			ValidFrom: date(2023, 7, 1),
			ValidTo:   date(2099, 12, 31),
		},
	)

	rule, err := svc.Resolve(model.RuleTurnoverTax, date(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "newer", rule.Name)

	// Deterministic across repeated calls.
	again, err := svc.Resolve(model.RuleTurnoverTax, date(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, rule, again)
}

func TestResolve_ZeroAsOfMeansToday(t *testing.T) {
	svc := testService(DefaultRules()...)

	rule, err := svc.Resolve(model.RuleTurnoverTax, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "0.03", rule.Rate.String())
}

func TestLoadSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	svc := testService(DefaultRules()...)
	require.NoError(t, svc.Save(dir))

	_, err := filepath.Glob(filepath.Join(dir, "rules", "tax-rules.csv"))
	require.NoError(t, err)

	loaded, err := Load(dir, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, loaded.All(), len(DefaultRules()))

	levy, err := loaded.Resolve(model.RuleHousingLevy, date(2025, 1, 1))
	require.NoError(t, err)
	assert.True(t, levy.Deductible)
	assert.Equal(t, "Affordable Housing Act 2024", levy.LegalReference)
}
