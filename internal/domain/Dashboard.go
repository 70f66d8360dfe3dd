package domain

import "time"

// DashboardFilters são as únicas entradas controladas pelo usuário
type DashboardFilters struct {
	StartDate *time.Time     `json:"start_date,omitempty"`
	EndDate   *time.Time     `json:"end_date,omitempty"`
	Scenario  GlobalScenario `json:"scenario"`
}

// DataBounds é o intervalo de datas disponível na base carregada
type DataBounds struct {
	MinDate *time.Time `json:"min_date,omitempty"`
	MaxDate *time.Time `json:"max_date,omitempty"`
}

// DashboardResponse é a visão completa montada a cada interação
type DashboardResponse struct {
	ViewID       string                        `json:"view_id"`
	Filters      DashboardFilters              `json:"filters"`
	Bounds       DataBounds                    `json:"bounds"`
	Summary      PeriodSummary                 `json:"summary"`
	Insights     []Insight                     `json:"insights"`
	Scenarios    map[string]ScenarioProjection `json:"scenarios"`
	ChannelSpend []ChannelSpend                `json:"channel_spend"`
	Story        string                        `json:"story"`
	Verdict      Verdict                       `json:"verdict"`
	Records      RecordSet                     `json:"records,omitempty"`
}
