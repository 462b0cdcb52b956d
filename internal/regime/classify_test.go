package regime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pesafile-dev/pesafile/internal/model"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		name         string
		profession   string
		businessType string
		want         model.Regime
	}{
		{"excluded profession", "Doctor", "RETAIL", model.RegimeProfessional},
		{"excluded profession any business type", "Doctor", "", model.RegimeProfessional},
		{"profession substring", "Medical Doctor (Private Practice)", "RETAIL", model.RegimeProfessional},
		{"case insensitive profession", "accountant", "", model.RegimeProfessional},
		{"business type override", "Baker", "CONSULTANT", model.RegimeProfessional},
		{"business type case insensitive", "Baker", "consultant", model.RegimeProfessional},
		{"plain trader", "Shopkeeper", "RETAIL", model.RegimeTrader},
		{"empty input", "", "", model.RegimeTrader},
		{"unknown profession defaults to trader", "Farmer", "AGRICULTURE", model.RegimeTrader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.profession, tt.businessType))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	for i := 0; i < 5; i++ {
		assert.Equal(t, model.RegimeProfessional, c.Classify("IT Specialist", "RETAIL"))
	}
}

func TestClassify_InjectedConfig(t *testing.T) {
	c := NewClassifier(Config{ProfessionalProfessions: []string{"Blacksmith"}})

	assert.Equal(t, model.RegimeProfessional, c.Classify("Blacksmith", ""))
	assert.Equal(t, model.RegimeTrader, c.Classify("Doctor", ""))
}
