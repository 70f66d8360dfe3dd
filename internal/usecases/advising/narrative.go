package advising

import (
	"fmt"

	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/pkg/utils"
)

// channelShares é uma divisão ilustrativa até existirem dados de gasto por canal
var channelShares = []struct {
	channel string
	share   float64
}{
	{"Meta Ads", 0.6},
	{"Google Ads", 0.3},
	{"TikTok", 0.1},
}

// Story resume o período em uma frase com o lucro real e o MER global
func Story(summary domain.PeriodSummary, currency string) string {
	return fmt.Sprintf(
		"Neste período, o negócio gerou **%s** de lucro real. Com um MER de **%.2f**.",
		utils.FormatMoney(summary.ContributionMarginSum, currency),
		domain.SafeRatio(summary.RevenueSum, summary.AdSpendSum),
	)
}

// Verdict devolve o veredito para o cenário global selecionado
func Verdict(scenario domain.GlobalScenario) domain.Verdict {
	switch scenario {
	case domain.ScenarioPessimistic:
		return domain.Verdict{
			Severity: domain.SeverityWarning,
			Message:  "⚠️ **Veredito:** Cuidado! Neste cenário pessimista a rentabilidade cai. Melhor otimizar.",
		}
	case domain.ScenarioOptimistic:
		return domain.Verdict{
			Severity: domain.SeverityPositive,
			Message:  "🚀 **Veredito:** Escala agressiva! Os números projetados são excelentes.",
		}
	default:
		return domain.Verdict{
			Severity: domain.SeverityPositive,
			Message:  "✅ **Veredito:** O negócio é sólido. Continue acelerando.",
		}
	}
}

// ChannelSpendSplit distribui o gasto total nas proporções fixas 60/30/10
func ChannelSpendSplit(totalSpend float64) []domain.ChannelSpend {
	split := make([]domain.ChannelSpend, 0, len(channelShares))
	for _, item := range channelShares {
		split = append(split, domain.ChannelSpend{
			Channel:   item.channel,
			Share:     item.share,
			Amount:    totalSpend * item.share,
			Estimated: true,
		})
	}

	return split
}
