package attributing

import (
	"math"

	"github.com/vfg2006/north-star-api/internal/domain"
)

// DefaultMERThreshold é o MER abaixo do qual um dia é marcado como anomalia
const DefaultMERThreshold = 3.0

// Attributor aplica a lógica de rentabilidade sobre um conjunto de registros
type Attributor interface {
	// ApplyAttributionLogic calcula os KPIs e marca as anomalias de MER baixo
	ApplyAttributionLogic(records domain.RecordSet) (domain.RecordSet, error)
}

// Service implementa Attributor com um limiar de MER configurável
type Service struct {
	merThreshold float64
}

// NewService cria o serviço. Limiares não positivos usam o padrão de 3.0.
func NewService(merThreshold float64) Attributor {
	if merThreshold <= 0 {
		merThreshold = DefaultMERThreshold
	}

	return &Service{merThreshold: merThreshold}
}

func (s *Service) ApplyAttributionLogic(records domain.RecordSet) (domain.RecordSet, error) {
	return ApplyAttributionLogic(records, s.merThreshold)
}

// ApplyAttributionLogic executa CalculateKPIs e DetectAnomalies, nessa ordem
func ApplyAttributionLogic(records domain.RecordSet, merThreshold float64) (domain.RecordSet, error) {
	augmented, err := CalculateKPIs(records)
	if err != nil {
		return nil, err
	}

	return DetectAnomalies(augmented, merThreshold), nil
}

// CalculateKPIs devolve uma cópia dos registros com margem de contribuição, MER e lucro líquido.
// A entrada não é alterada e a ordem é preservada.
func CalculateKPIs(records domain.RecordSet) (domain.RecordSet, error) {
	if err := ValidateRecords(records); err != nil {
		return nil, err
	}

	out := records.Clone()
	for i := range out {
		record := &out[i]

		record.ContributionMargin = record.Revenue - record.COGS - record.AdSpend - record.GatewayFees
		record.MER = domain.SafeRatio(record.Revenue, record.AdSpend)

		// Neste modelo a margem de contribuição é o lucro operacional
		record.NetProfit = record.ContributionMargin
	}

	return out, nil
}

// DetectAnomalies devolve uma cópia marcando os dias com MER estritamente abaixo do limiar
func DetectAnomalies(records domain.RecordSet, merThreshold float64) domain.RecordSet {
	out := records.Clone()
	for i := range out {
		out[i].AnomalyLowMER = out[i].MER < merThreshold
	}

	return out
}

// ValidateRecords rejeita registros sem data, com valores não finitos ou negativos
func ValidateRecords(records domain.RecordSet) error {
	for row, record := range records {
		if record.Date.IsZero() {
			return domain.NewDataValidationError("date", row, "missing date")
		}

		amounts := []struct {
			field string
			value float64
		}{
			{"revenue", record.Revenue},
			{"ad_spend", record.AdSpend},
			{"cogs", record.COGS},
			{"gateway_fees", record.GatewayFees},
		}

		for _, amount := range amounts {
			if math.IsNaN(amount.value) || math.IsInf(amount.value, 0) {
				return domain.NewDataValidationError(amount.field, row, "value is not a finite number")
			}
			if amount.value < 0 {
				return domain.NewDataValidationError(amount.field, row, "negative amount")
			}
		}

		if record.NewCustomers < 0 {
			return domain.NewDataValidationError("new_customers", row, "negative customer count")
		}
	}

	return nil
}
