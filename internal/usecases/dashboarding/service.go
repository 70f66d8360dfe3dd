package dashboarding

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/north-star-api/infrastructure/storage/xlsxexport"
	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/internal/usecases/advising"
	"github.com/vfg2006/north-star-api/internal/usecases/attributing"
	"github.com/vfg2006/north-star-api/pkg/apiErrors"
	"github.com/vfg2006/north-star-api/pkg/log"
	"github.com/vfg2006/north-star-api/pkg/utils"
)

// Service implementa Dashboarder. Cada chamada relê a base, não há cache entre visões.
type Service struct {
	source     RecordSource
	attributor attributing.Attributor
	currency   string
	generateID func() (string, error)
}

func NewService(source RecordSource, attributor attributing.Attributor, currency string) Dashboarder {
	return &Service{
		source:     source,
		attributor: attributor,
		currency:   currency,
		generateID: utils.GenerateID,
	}
}

func (s *Service) BuildDashboard(ctx context.Context, filters domain.DashboardFilters) (*domain.DashboardResponse, error) {
	logger := log.ForContext(ctx)

	raw, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, NewDashboardError(ErrEmptyDataset, apiErrors.ErrDataValidation, "gere a base com `northstar ingest`")
	}

	// KPIs da base completa, usada apenas para os limites de data
	full, err := s.attributor.ApplyAttributionLogic(raw)
	if err != nil {
		return nil, err
	}

	minDate, maxDate, _ := full.Bounds()

	resolved, err := resolveFilters(filters, minDate, maxDate)
	if err != nil {
		return nil, err
	}

	window := full.Between(*resolved.StartDate, *resolved.EndDate)
	adjusted := domain.ApplyScenario(window, resolved.Scenario)

	augmented, err := s.attributor.ApplyAttributionLogic(adjusted)
	if err != nil {
		return nil, err
	}

	summary := domain.Summarize(augmented)

	viewID, err := s.generateID()
	if err != nil {
		return nil, NewDashboardError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	response := &domain.DashboardResponse{
		ViewID:       viewID,
		Filters:      resolved,
		Bounds:       domain.DataBounds{MinDate: &minDate, MaxDate: &maxDate},
		Summary:      summary,
		Insights:     advising.GenerateInsights(summary),
		Scenarios:    advising.SimulateScenarios(summary.ContributionMarginSum, summary.MeanMER),
		ChannelSpend: advising.ChannelSpendSplit(summary.AdSpendSum),
		Story:        advising.Story(summary, s.currency),
		Verdict:      advising.Verdict(resolved.Scenario),
		Records:      augmented,
	}

	logger.WithFields(log.Fields{
		"view_id":  viewID,
		"scenario": resolved.Scenario,
		"days":     summary.Days,
	}).Debug("dashboarding: visão montada")

	return response, nil
}

func (s *Service) ExportWorkbook(ctx context.Context, filters domain.DashboardFilters, w io.Writer) error {
	view, err := s.BuildDashboard(ctx, filters)
	if err != nil {
		return err
	}

	return errors.Wrap(xlsxexport.Write(w, view, s.currency), "dashboarding: erro ao exportar planilha")
}

func (s *Service) Scenarios() []domain.GlobalScenarioOption {
	return domain.GlobalScenarios()
}

// resolveFilters completa as datas ausentes com os limites da base e valida o intervalo
func resolveFilters(filters domain.DashboardFilters, minDate, maxDate time.Time) (domain.DashboardFilters, error) {
	start := minDate
	if filters.StartDate != nil && !filters.StartDate.IsZero() {
		start = domain.TruncateToDay(*filters.StartDate)
	}

	end := maxDate
	if filters.EndDate != nil && !filters.EndDate.IsZero() {
		end = domain.TruncateToDay(*filters.EndDate)
	}

	if start.After(end) {
		return filters, NewDashboardError(ErrInvalidDateRange, apiErrors.ErrInvalidRequest,
			start.Format(time.DateOnly)+" > "+end.Format(time.DateOnly))
	}

	scenario := filters.Scenario
	if scenario == "" {
		scenario = domain.ScenarioRealistic
	}

	return domain.DashboardFilters{
		StartDate: &start,
		EndDate:   &end,
		Scenario:  scenario,
	}, nil
}
