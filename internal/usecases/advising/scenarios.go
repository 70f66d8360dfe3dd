package advising

import (
	"github.com/vfg2006/north-star-api/internal/domain"
)

// Chaves dos cenários projetados
const (
	ScenarioConservative = "conservative"
	ScenarioScaleUp      = "scale_up"
	ScenarioEmergencyCut = "emergency_cut"
)

// ScenarioOrder é a ordem de exibição dos cenários projetados
var ScenarioOrder = []string{ScenarioConservative, ScenarioScaleUp, ScenarioEmergencyCut}

// Multiplicadores fixos, premissas de negócio e não resultado de um modelo
const (
	conservativeMultiplier = 1.0
	scaleUpHighMultiplier  = 1.25
	scaleUpLowMultiplier   = 1.10
	emergencyMultiplier    = 0.8
)

// SimulateScenarios projeta o lucro total sob os três cenários nomeados.
// O escalonamento usa 1.25 quando o MER médio do período passa de 4.0 e 1.10 caso contrário.
func SimulateScenarios(totalProfit, meanMER float64) map[string]domain.ScenarioProjection {
	scaleUp := scaleUpLowMultiplier
	if meanMER > ScaleUpMER {
		scaleUp = scaleUpHighMultiplier
	}

	return map[string]domain.ScenarioProjection{
		ScenarioConservative: {
			Label:       "Conservador",
			Profit:      totalProfit * conservativeMultiplier,
			Multiplier:  conservativeMultiplier,
			Description: "Manter o ritmo atual.",
		},
		ScenarioScaleUp: {
			Label:       "Escalonamento",
			Profit:      totalProfit * scaleUp,
			Multiplier:  scaleUp,
			Description: "Aumentar o investimento em 20% nos canais de MER alto.",
		},
		ScenarioEmergencyCut: {
			Label:       "Emergência",
			Profit:      totalProfit * emergencyMultiplier,
			Multiplier:  emergencyMultiplier,
			Description: "Pausar anúncios com MER < 1.5.",
		},
	}
}

// SimulateForRecords deriva lucro total e MER médio de registros já calculados
func SimulateForRecords(records domain.RecordSet) map[string]domain.ScenarioProjection {
	summary := domain.Summarize(records)
	return SimulateScenarios(summary.ContributionMarginSum, summary.MeanMER)
}
