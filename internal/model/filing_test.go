package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilingStatus_ForwardOnly(t *testing.T) {
	assert.True(t, StatusDraft.CanTransitionTo(StatusProcessing))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusComputed))
	assert.True(t, StatusComputed.CanTransitionTo(StatusFormFilling))
	assert.True(t, StatusFormFilling.CanTransitionTo(StatusReady))
	assert.True(t, StatusReady.CanTransitionTo(StatusSubmitted))

	assert.False(t, StatusComputed.CanTransitionTo(StatusDraft))
	assert.False(t, StatusSubmitted.CanTransitionTo(StatusReady))
	assert.False(t, StatusReady.CanTransitionTo(StatusReady))
}

func TestFilingStatus_FillRetryRollback(t *testing.T) {
	assert.True(t, StatusFormFilling.CanTransitionTo(StatusComputed))
	assert.False(t, StatusReady.CanTransitionTo(StatusComputed))
}

func TestFiling_PeriodBounds(t *testing.T) {
	f := Filing{Month: 1, Year: 2024}
	assert.Equal(t, "2024-01-01", f.PeriodStart().Format("2006-01-02"))
	assert.Equal(t, "2024-01-31", f.PeriodEnd().Format("2006-01-02"))

	// February in a leap year.
	f = Filing{Month: 2, Year: 2024}
	assert.Equal(t, "2024-02-29", f.PeriodEnd().Format("2006-01-02"))

	// February in a non-leap year.
	f = Filing{Month: 2, Year: 2023}
	assert.Equal(t, "2023-02-28", f.PeriodEnd().Format("2006-01-02"))
}

func TestRegime_RuleCode(t *testing.T) {
	assert.Equal(t, RuleTurnoverTax, RegimeTrader.RuleCode())
	assert.Equal(t, RuleIncomeTaxPro, RegimeProfessional.RuleCode())
}
