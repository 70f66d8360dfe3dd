package domain

import (
	"fmt"
	"strings"
)

// GlobalScenario é o cenário de receita escolhido pelo usuário para a visão filtrada
type GlobalScenario string

const (
	ScenarioRealistic   GlobalScenario = "realistic"
	ScenarioPessimistic GlobalScenario = "pessimistic"
	ScenarioOptimistic  GlobalScenario = "optimistic"
)

// GlobalScenarioOption descreve um cenário disponível para seleção
type GlobalScenarioOption struct {
	ID            GlobalScenario `json:"id"`
	Label         string         `json:"label"`
	RevenueFactor float64        `json:"revenue_factor"`
}

var globalScenarioFactors = map[GlobalScenario]float64{
	ScenarioRealistic:   1.0,
	ScenarioPessimistic: 0.8,
	ScenarioOptimistic:  1.2,
}

// GlobalScenarios lista os cenários na ordem em que aparecem no seletor
func GlobalScenarios() []GlobalScenarioOption {
	return []GlobalScenarioOption{
		{ID: ScenarioRealistic, Label: "Realista", RevenueFactor: 1.0},
		{ID: ScenarioPessimistic, Label: "Pessimista (-20% Receita)", RevenueFactor: 0.8},
		{ID: ScenarioOptimistic, Label: "Otimista (+20% Receita)", RevenueFactor: 1.2},
	}
}

// ParseGlobalScenario converte o parâmetro recebido. Vazio equivale ao cenário realista.
func ParseGlobalScenario(value string) (GlobalScenario, error) {
	normalized := GlobalScenario(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return ScenarioRealistic, nil
	}

	if _, ok := globalScenarioFactors[normalized]; !ok {
		return "", fmt.Errorf("invalid scenario %q: accepted values are realistic, pessimistic, optimistic", value)
	}

	return normalized, nil
}

// RevenueFactor retorna o multiplicador de receita do cenário (1.0 para valores desconhecidos)
func (s GlobalScenario) RevenueFactor() float64 {
	factor, ok := globalScenarioFactors[s]
	if !ok {
		return 1.0
	}
	return factor
}

// ApplyScenario devolve uma cópia dos registros com a receita escalada pelo cenário.
// Os KPIs derivados precisam ser recalculados pelo chamador.
func ApplyScenario(records RecordSet, scenario GlobalScenario) RecordSet {
	factor := scenario.RevenueFactor()

	out := records.Clone()
	for i := range out {
		out[i].Revenue *= factor
	}

	return out
}
