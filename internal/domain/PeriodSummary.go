package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodSummary agrega os registros de um período já filtrado e ajustado pelo cenário
type PeriodSummary struct {
	StartDate             *time.Time `json:"start_date,omitempty"`
	EndDate               *time.Time `json:"end_date,omitempty"`
	Days                  int        `json:"days"`
	RevenueSum            float64    `json:"revenue_sum"`
	AdSpendSum            float64    `json:"ad_spend_sum"`
	COGSSum               float64    `json:"cogs_sum"`
	GatewayFeesSum        float64    `json:"gateway_fees_sum"`
	ContributionMarginSum float64    `json:"contribution_margin_sum"`
	NewCustomersSum       int        `json:"new_customers_sum"`
	GlobalMER             float64    `json:"global_mer"`
	MarginPct             float64    `json:"margin_pct"`
	MeanMER               float64    `json:"mean_mer"`
	AnomalyDays           int        `json:"anomaly_days"`
}

// Summarize calcula os totais do período. Receita ou gasto zerados resolvem os índices para 0.
func Summarize(records RecordSet) PeriodSummary {
	var (
		revenue     = decimal.Zero
		adSpend     = decimal.Zero
		cogs        = decimal.Zero
		gatewayFees = decimal.Zero
		margin      = decimal.Zero
		merTotal    float64
	)

	summary := PeriodSummary{Days: len(records)}

	for _, record := range records {
		revenue = revenue.Add(decimal.NewFromFloat(record.Revenue))
		adSpend = adSpend.Add(decimal.NewFromFloat(record.AdSpend))
		cogs = cogs.Add(decimal.NewFromFloat(record.COGS))
		gatewayFees = gatewayFees.Add(decimal.NewFromFloat(record.GatewayFees))
		margin = margin.Add(decimal.NewFromFloat(record.ContributionMargin))
		merTotal += record.MER

		summary.NewCustomersSum += record.NewCustomers
		if record.AnomalyLowMER {
			summary.AnomalyDays++
		}
	}

	summary.RevenueSum = revenue.InexactFloat64()
	summary.AdSpendSum = adSpend.InexactFloat64()
	summary.COGSSum = cogs.InexactFloat64()
	summary.GatewayFeesSum = gatewayFees.InexactFloat64()
	summary.ContributionMarginSum = margin.InexactFloat64()

	summary.GlobalMER = SafeRatio(summary.RevenueSum, summary.AdSpendSum)
	summary.MarginPct = SafeRatio(summary.ContributionMarginSum, summary.RevenueSum)

	if len(records) > 0 {
		summary.MeanMER = merTotal / float64(len(records))
	}

	if first, last, ok := records.Bounds(); ok {
		summary.StartDate = &first
		summary.EndDate = &last
	}

	return summary
}

// SafeRatio divide a por b, devolvendo 0 quando b não é positivo
func SafeRatio(a, b float64) float64 {
	if b > 0 {
		return a / b
	}
	return 0
}
