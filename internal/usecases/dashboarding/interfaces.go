package dashboarding

import (
	"context"
	"io"

	"github.com/vfg2006/north-star-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/dashboarding_mock.go -package=mocks

// RecordSource carrega a base completa de registros brutos (CSV ou postgres)
type RecordSource interface {
	Load(ctx context.Context) (domain.RecordSet, error)
}

// Dashboarder monta a visão filtrada do dashboard
type Dashboarder interface {
	// BuildDashboard recarrega a base e monta resumo, insights, cenários e narrativa para os filtros
	BuildDashboard(ctx context.Context, filters domain.DashboardFilters) (*domain.DashboardResponse, error)

	// ExportWorkbook grava a mesma visão como planilha XLSX
	ExportWorkbook(ctx context.Context, filters domain.DashboardFilters, w io.Writer) error

	// Scenarios lista os cenários globais disponíveis
	Scenarios() []domain.GlobalScenarioOption
}
