package advising

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/north-star-api/internal/domain"
)

func TestSimulateScenarios(t *testing.T) {
	tests := []struct {
		name         string
		totalProfit  float64
		meanMER      float64
		conservative float64
		scaleUp      float64
		emergency    float64
	}{
		{
			name:         "MER médio acima de 4.0 usa multiplicador 1.25",
			totalProfit:  1000,
			meanMER:      5.0,
			conservative: 1000,
			scaleUp:      1250,
			emergency:    800,
		},
		{
			name:         "MER médio exatamente 4.0 usa multiplicador 1.10",
			totalProfit:  1000,
			meanMER:      4.0,
			conservative: 1000,
			scaleUp:      1100,
			emergency:    800,
		},
		{
			name:         "Lucro negativo mantém os multiplicadores",
			totalProfit:  -500,
			meanMER:      2.0,
			conservative: -500,
			scaleUp:      -550,
			emergency:    -400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenarios := SimulateScenarios(tt.totalProfit, tt.meanMER)
			require.Len(t, scenarios, 3)

			assert.InDelta(t, tt.conservative, scenarios[ScenarioConservative].Profit, 1e-9)
			assert.InDelta(t, tt.scaleUp, scenarios[ScenarioScaleUp].Profit, 1e-9)
			assert.InDelta(t, tt.emergency, scenarios[ScenarioEmergencyCut].Profit, 1e-9)

			for key, projection := range scenarios {
				assert.NotEmpty(t, projection.Label, key)
				assert.NotEmpty(t, projection.Description, key)
			}
		})
	}
}

func TestSimulateScenarios_IsPure(t *testing.T) {
	first := SimulateScenarios(1234.56, 4.2)
	second := SimulateScenarios(1234.56, 4.2)

	assert.Equal(t, first, second)
}

func TestSimulateForRecords(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	records := domain.RecordSet{
		{Date: day, ContributionMargin: 600, MER: 6},
		{Date: day.AddDate(0, 0, 1), ContributionMargin: 400, MER: 4},
	}

	scenarios := SimulateForRecords(records)

	// MER médio 5.0
	assert.InDelta(t, 1250.0, scenarios[ScenarioScaleUp].Profit, 1e-9)
	assert.InDelta(t, 1000.0, scenarios[ScenarioConservative].Profit, 1e-9)

	empty := SimulateForRecords(domain.RecordSet{})
	assert.Zero(t, empty[ScenarioConservative].Profit)
	assert.Equal(t, scaleUpLowMultiplier, empty[ScenarioScaleUp].Multiplier)
}
