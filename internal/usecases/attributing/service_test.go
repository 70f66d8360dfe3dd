package attributing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/north-star-api/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateKPIs(t *testing.T) {
	records := domain.RecordSet{
		{Date: day(1), Revenue: 2000, AdSpend: 500, COGS: 700, GatewayFees: 50, NewCustomers: 13},
		{Date: day(2), Revenue: 1500, AdSpend: 0, COGS: 450, GatewayFees: 30},
		{Date: day(3), Revenue: 800, AdSpend: 400, COGS: 300, GatewayFees: 20},
	}

	result, err := CalculateKPIs(records)
	require.NoError(t, err)
	require.Len(t, result, 3)

	for i, record := range result {
		expected := records[i].Revenue - records[i].COGS - records[i].AdSpend - records[i].GatewayFees
		assert.Equal(t, expected, record.ContributionMargin)
		assert.Equal(t, record.ContributionMargin, record.NetProfit)
		assert.Equal(t, records[i].Date, record.Date, "a ordem deve ser preservada")
	}

	assert.Equal(t, 4.0, result[0].MER)
	assert.Equal(t, 0.0, result[1].MER, "gasto zero deve resultar em MER zero")
	assert.Equal(t, 2.0, result[2].MER)
	assert.Equal(t, 80.0, result[2].ContributionMargin)

	// a entrada não é alterada
	assert.Zero(t, records[0].ContributionMargin)
	assert.Zero(t, records[0].MER)
}

func TestCalculateKPIs_ZeroSpendNeverInfinite(t *testing.T) {
	revenues := []float64{0, 0.01, 1000, 1e9}

	for _, revenue := range revenues {
		result, err := CalculateKPIs(domain.RecordSet{{Date: day(1), Revenue: revenue}})
		require.NoError(t, err)
		assert.Equal(t, 0.0, result[0].MER)
		assert.False(t, math.IsInf(result[0].MER, 0))
	}
}

func TestCalculateKPIs_NegativeMarginIsAllowed(t *testing.T) {
	result, err := CalculateKPIs(domain.RecordSet{
		{Date: day(1), Revenue: 100, AdSpend: 80, COGS: 40, GatewayFees: 3},
	})
	require.NoError(t, err)
	assert.InDelta(t, -23.0, result[0].ContributionMargin, 1e-9)
}

func TestCalculateKPIs_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input domain.DailyRecord
		field string
	}{
		{
			name:  "Registro sem data deve falhar no campo date",
			input: domain.DailyRecord{Revenue: 10},
			field: "date",
		},
		{
			name:  "Receita negativa deve falhar no campo revenue",
			input: domain.DailyRecord{Date: day(1), Revenue: -1},
			field: "revenue",
		},
		{
			name:  "Gasto NaN deve falhar no campo ad_spend",
			input: domain.DailyRecord{Date: day(1), Revenue: 10, AdSpend: math.NaN()},
			field: "ad_spend",
		},
		{
			name:  "COGS infinito deve falhar no campo cogs",
			input: domain.DailyRecord{Date: day(1), Revenue: 10, COGS: math.Inf(1)},
			field: "cogs",
		},
		{
			name:  "Taxa negativa deve falhar no campo gateway_fees",
			input: domain.DailyRecord{Date: day(1), Revenue: 10, GatewayFees: -0.5},
			field: "gateway_fees",
		},
		{
			name:  "Clientes negativos devem falhar no campo new_customers",
			input: domain.DailyRecord{Date: day(1), Revenue: 10, NewCustomers: -2},
			field: "new_customers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := domain.RecordSet{
				{Date: day(1), Revenue: 100, AdSpend: 10},
				tt.input,
			}

			result, err := CalculateKPIs(records)
			require.Error(t, err)
			assert.Nil(t, result, "nenhum resultado parcial deve ser devolvido")

			var validationErr *domain.DataValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Equal(t, 1, validationErr.Row)
		})
	}
}

func TestDetectAnomalies(t *testing.T) {
	records := domain.RecordSet{
		{Date: day(1), MER: 2.99},
		{Date: day(2), MER: 3.0},
		{Date: day(3), MER: 0},
		{Date: day(4), MER: 5.2},
	}

	result := DetectAnomalies(records, DefaultMERThreshold)

	assert.True(t, result[0].AnomalyLowMER)
	assert.False(t, result[1].AnomalyLowMER, "MER igual ao limiar não é anomalia")
	assert.True(t, result[2].AnomalyLowMER)
	assert.False(t, result[3].AnomalyLowMER)
	assert.False(t, records[0].AnomalyLowMER, "a entrada não é alterada")
}

func TestService_ApplyAttributionLogic(t *testing.T) {
	records := domain.RecordSet{
		{Date: day(1), Revenue: 900, AdSpend: 200, COGS: 300, GatewayFees: 20},
		{Date: day(2), Revenue: 900, AdSpend: 400, COGS: 300, GatewayFees: 20},
	}

	t.Run("Limiar padrão quando configurado com zero", func(t *testing.T) {
		result, err := NewService(0).ApplyAttributionLogic(records)
		require.NoError(t, err)
		assert.False(t, result[0].AnomalyLowMER) // MER 4.5
		assert.True(t, result[1].AnomalyLowMER)  // MER 2.25
	})

	t.Run("Limiar customizado", func(t *testing.T) {
		result, err := NewService(5).ApplyAttributionLogic(records)
		require.NoError(t, err)
		assert.True(t, result[0].AnomalyLowMER)
		assert.True(t, result[1].AnomalyLowMER)
	})

	t.Run("Conjunto vazio", func(t *testing.T) {
		result, err := NewService(3).ApplyAttributionLogic(domain.RecordSet{})
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}
