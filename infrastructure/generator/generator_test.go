package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/pkg/utils"
)

type memoryWriter struct {
	saved domain.RecordSet
	err   error
}

func (w *memoryWriter) Save(_ context.Context, records domain.RecordSet) error {
	if w.err != nil {
		return w.err
	}
	w.saved = records
	return nil
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 30, 15, 30, 0, 0, time.UTC)
}

func TestGenerate(t *testing.T) {
	g := New(WithClock(fixedClock))

	records, err := g.Generate(90)
	require.NoError(t, err)
	require.Len(t, records, 91)

	first, last, ok := records.Bounds()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), last)

	for i, record := range records {
		if i > 0 {
			assert.Equal(t, records[i-1].Date.AddDate(0, 0, 1), record.Date, "datas consecutivas")
		}

		assert.GreaterOrEqual(t, record.Revenue, 0.0)
		assert.GreaterOrEqual(t, record.AdSpend, 0.0)
		assert.InDelta(t, record.Revenue/averageTicket, float64(record.NewCustomers), 1.0, "novos clientes ~ receita/150")

		if record.Revenue > 0 {
			assert.InDelta(t, record.Revenue*0.35, record.COGS, record.Revenue*0.05+0.01)
			assert.InDelta(t, record.Revenue*0.025, record.GatewayFees, record.Revenue*0.005+0.01)

			mer := record.Revenue / record.AdSpend
			assert.GreaterOrEqual(t, mer, 2.99)
			assert.LessOrEqual(t, mer, 6.01)
		}

		assert.Equal(t, utils.RoundWithTwoDecimalPlace(record.Revenue), record.Revenue, "duas casas decimais")
	}
}

func TestNewCustomers_UsesUnroundedRevenue(t *testing.T) {
	assert.Equal(t, 1, newCustomers(299.996), "299.996 arredonda para 300.00 mas ainda é 1 cliente")
	assert.Equal(t, 2, newCustomers(300))
	assert.Equal(t, 0, newCustomers(0))
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := New(WithClock(fixedClock)).Generate(30)
	require.NoError(t, err)

	b, err := New(WithClock(fixedClock)).Generate(30)
	require.NoError(t, err)

	assert.Equal(t, a, b)

	c, err := New(WithClock(fixedClock), WithSeed(7)).Generate(30)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerate_InvalidDays(t *testing.T) {
	for _, days := range []int{0, -5} {
		records, err := New().Generate(days)
		assert.ErrorIs(t, err, ErrInvalidDays)
		assert.Nil(t, records)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		records domain.RecordSet
		wantErr error
	}{
		{
			name:    "Base vazia",
			records: domain.RecordSet{},
			wantErr: ErrEmptyDataset,
		},
		{
			name: "Receita negativa",
			records: domain.RecordSet{
				{Date: fixedClock(), Revenue: 10},
				{Date: fixedClock().AddDate(0, 0, 1), Revenue: -1},
			},
			wantErr: ErrNegativeRevenue,
		},
		{
			name: "Base válida",
			records: domain.RecordSet{
				{Date: fixedClock(), Revenue: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.records)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRun(t *testing.T) {
	writer := &memoryWriter{}

	records, err := New(WithClock(fixedClock)).Run(context.Background(), writer, 10)
	require.NoError(t, err)
	assert.Len(t, records, 11)
	assert.Equal(t, records, writer.saved)
}

func TestRun_WriterError(t *testing.T) {
	writer := &memoryWriter{err: errors.New("disco cheio")}

	_, err := New(WithClock(fixedClock)).Run(context.Background(), writer, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disco cheio")
}

func TestRun_InvalidDaysDoesNotWrite(t *testing.T) {
	writer := &memoryWriter{}

	_, err := New().Run(context.Background(), writer, 0)
	assert.ErrorIs(t, err, ErrInvalidDays)
	assert.Nil(t, writer.saved)
}
