package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/north-star-api/infrastructure/storage/csvstore"
	"github.com/vfg2006/north-star-api/internal/config"
	"github.com/vfg2006/north-star-api/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Data:     config.Data{Source: config.DataSourceCSV, Path: filepath.Join(t.TempDir(), "maestro.csv")},
		Analysis: config.Analysis{MERThreshold: 3.0, Currency: "USD"},
	}
}

func TestNewRecordStore_CSV(t *testing.T) {
	cfg := testConfig(t)

	store, closer, err := NewRecordStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closer()

	csv, ok := store.(*csvstore.Store)
	require.True(t, ok)
	assert.Equal(t, cfg.Data.Path, csv.Path())
}

func TestNewRecordStore_UnknownSource(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.Source = "s3"

	store, _, err := NewRecordStore(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, store)
}

func TestNewDashboardService(t *testing.T) {
	cfg := testConfig(t)

	store, closer, err := NewRecordStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closer()

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(context.Background(), domain.RecordSet{
		{Date: day, Revenue: 1000, AdSpend: 500, COGS: 300, GatewayFees: 25, NewCustomers: 6},
		{Date: day.AddDate(0, 0, 1), Revenue: 2000, AdSpend: 400, COGS: 600, GatewayFees: 50, NewCustomers: 13},
	}))

	view, err := NewDashboardService(store, cfg).BuildDashboard(context.Background(), domain.DashboardFilters{})
	require.NoError(t, err)

	assert.Equal(t, 2, view.Summary.Days)
	assert.Equal(t, 3000.0, view.Summary.RevenueSum)
	assert.Equal(t, 1, view.Summary.AnomalyDays, "MER 2.0 fica abaixo do limiar 3.0")
}
