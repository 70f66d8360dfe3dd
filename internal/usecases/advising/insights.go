package advising

import (
	"fmt"

	"github.com/vfg2006/north-star-api/internal/domain"
)

// Limiares de negócio usados pelas regras de recomendação
const (
	TargetMER           = 3.0
	EmergencyMarginPct  = 0.15
	ScaleUpMER          = 4.0
	PauseChannelMER     = 2.0
	ScaleBudgetIncrease = 0.20
)

// GenerateInsights aplica as regras, sempre na mesma ordem, sobre o resumo do período.
// As regras são independentes: todas as aplicáveis entram na lista.
func GenerateInsights(summary domain.PeriodSummary) []domain.Insight {
	globalMER := domain.SafeRatio(summary.RevenueSum, summary.AdSpendSum)
	marginPct := domain.SafeRatio(summary.ContributionMarginSum, summary.RevenueSum)

	insights := make([]domain.Insight, 0, 3)

	// 1. Ponto de equilíbrio
	if globalMER < TargetMER {
		// MER = AOV / CPA, então chegar ao alvo exige CPA reduzido pelo fator MER / alvo
		reduction := 1 - (globalMER / TargetMER)
		insights = append(insights, domain.Insight{
			Kind:     domain.InsightProfitabilityAlert,
			Severity: domain.SeverityCritical,
			Value:    reduction,
			Message: fmt.Sprintf(
				"🔴 **ALERTA DE RENTABILIDADE**: O MER global (%.2f) está abaixo do objetivo (%.1f). "+
					"Para recuperar o equilíbrio, você precisa **reduzir seu CPA em %.1f%%** "+
					"ou aumentar seu AOV proporcionalmente.",
				globalMER, TargetMER, reduction*100,
			),
		})
	} else {
		insights = append(insights, domain.Insight{
			Kind:     domain.InsightFinancialHealth,
			Severity: domain.SeverityPositive,
			Value:    globalMER,
			Message: fmt.Sprintf(
				"🟢 **Saúde Financeira**: O MER global (%.2f) é saudável. O negócio está gerando lucro.",
				globalMER,
			),
		})
	}

	// 2. Proteção de margem
	if marginPct < EmergencyMarginPct {
		insights = append(insights, domain.Insight{
			Kind:     domain.InsightEmergencyProtocol,
			Severity: domain.SeverityWarning,
			Value:    marginPct,
			Message: fmt.Sprintf(
				"⚠️ **PROTOCOLO DE EMERGÊNCIA**: A margem de contribuição global é %.1f%%. "+
					"Ação recomendada: **pausar imediatamente os canais com MER < %.1f** e revisar a estrutura de COGS.",
				marginPct*100, PauseChannelMER,
			),
		})
	}

	// 3. Escala
	if globalMER > ScaleUpMER {
		insights = append(insights, domain.Insight{
			Kind:     domain.InsightScaleOpportunity,
			Severity: domain.SeverityPositive,
			Value:    globalMER,
			Message: fmt.Sprintf(
				"🚀 **Oportunidade de Escala**: Há excesso de eficiência (MER %.2f). "+
					"Recomendação: **aumentar o orçamento em %.0f%%** nas campanhas de melhor desempenho.",
				globalMER, ScaleBudgetIncrease*100,
			),
		})
	} else {
		insights = append(insights, domain.Insight{
			Kind:     domain.InsightSteadyState,
			Severity: domain.SeverityInfo,
			Value:    globalMER,
			Message:  "⚖️ **Estratégia**: Manter o orçamento atual e otimizar os criativos para melhorar o CTR.",
		})
	}

	return insights
}
