package domain

// InsightKind identifica a regra que gerou a recomendação
type InsightKind string

const (
	InsightProfitabilityAlert InsightKind = "profitability_alert"
	InsightFinancialHealth    InsightKind = "financial_health"
	InsightEmergencyProtocol  InsightKind = "emergency_protocol"
	InsightScaleOpportunity   InsightKind = "scale_opportunity"
	InsightSteadyState        InsightKind = "steady_state"
)

// Severity indica o tom visual da recomendação
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityPositive Severity = "positive"
	SeverityInfo     Severity = "info"
)

// Insight é uma recomendação textual. Message está em markdown; HTML é preenchido pela camada HTTP.
type Insight struct {
	Kind     InsightKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	HTML     string      `json:"html,omitempty"`
	Value    float64     `json:"value"`
}

// ScenarioProjection é a projeção de lucro de um cenário nomeado
type ScenarioProjection struct {
	Label       string  `json:"label"`
	Profit      float64 `json:"profit"`
	Multiplier  float64 `json:"multiplier"`
	Description string  `json:"description"`
}

// Verdict é o veredito exibido para o cenário global selecionado
type Verdict struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// ChannelSpend é a fatia do gasto atribuída a um canal.
// Estimated sinaliza que a divisão é fixa e não vem de dados por canal.
type ChannelSpend struct {
	Channel   string  `json:"channel"`
	Share     float64 `json:"share"`
	Amount    float64 `json:"amount"`
	Estimated bool    `json:"estimated"`
}
