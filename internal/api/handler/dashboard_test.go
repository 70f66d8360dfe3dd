package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/north-star-api/internal/api/handler/router"
	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/internal/usecases/dashboarding"
	"github.com/vfg2006/north-star-api/internal/usecases/dashboarding/mocks"
	"github.com/vfg2006/north-star-api/pkg/apiErrors"
	"github.com/vfg2006/north-star-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func date(d int) *time.Time {
	t := time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleView() *domain.DashboardResponse {
	return &domain.DashboardResponse{
		ViewID:  "abc123",
		Filters: domain.DashboardFilters{StartDate: date(1), EndDate: date(2), Scenario: domain.ScenarioRealistic},
		Summary: domain.PeriodSummary{RevenueSum: 3000, AdSpendSum: 1000, GlobalMER: 3},
		Insights: []domain.Insight{
			{Kind: domain.InsightFinancialHealth, Severity: domain.SeverityPositive, Message: "✅ **Saúde Financeira:** MER de **3.00**."},
		},
		Records: domain.RecordSet{
			{Date: *date(1), Revenue: 1500, AdSpend: 500, MER: 3},
			{Date: *date(2), Revenue: 1500, AdSpend: 500, MER: 3},
		},
	}
}

func newTestRouter(service dashboarding.Dashboarder) http.Handler {
	return router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Dashboard(service)...),
	)
}

func TestGetDashboard(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockDashboarder(ctrl)
	handler := newTestRouter(service)

	tests := []struct {
		name       string
		url        string
		setup      func()
		wantStatus int
		validate   func(t *testing.T, body []byte)
	}{
		{
			name: "Sucesso - filtros repassados e insights com HTML",
			url:  "/v1/dashboard?start_date=2024-01-01&end_date=2024-01-02&scenario=optimistic",
			setup: func() {
				service.EXPECT().
					BuildDashboard(gomock.Any(), domain.DashboardFilters{
						StartDate: date(1),
						EndDate:   date(2),
						Scenario:  domain.ScenarioOptimistic,
					}).
					Return(sampleView(), nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body []byte) {
				var view domain.DashboardResponse
				require.NoError(t, json.Unmarshal(body, &view))

				assert.Equal(t, "abc123", view.ViewID)
				require.Len(t, view.Insights, 1)
				assert.Contains(t, view.Insights[0].HTML, "<strong>Saúde Financeira:</strong>")
				assert.Empty(t, view.Records, "registros ficam fora do resumo")
			},
		},
		{
			name: "Sem parâmetros - cenário realista e datas vazias",
			url:  "/v1/dashboard",
			setup: func() {
				service.EXPECT().
					BuildDashboard(gomock.Any(), domain.DashboardFilters{Scenario: domain.ScenarioRealistic}).
					Return(sampleView(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Data em formato inválido",
			url:        "/v1/dashboard?start_date=01-01-2024",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), apiErrors.ErrInvalidFormat)
			},
		},
		{
			name:       "Cenário desconhecido",
			url:        "/v1/dashboard?scenario=apocalipse",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), apiErrors.ErrInvalidRequest)
			},
		},
		{
			name: "Base ausente",
			url:  "/v1/dashboard",
			setup: func() {
				service.EXPECT().
					BuildDashboard(gomock.Any(), gomock.Any()).
					Return(nil, errors.Wrap(domain.ErrMissingSourceFile, "o arquivo data/maestro.csv não existe"))
			},
			wantStatus: http.StatusServiceUnavailable,
			validate: func(t *testing.T, body []byte) {
				var apiErr apiErrors.APIError
				require.NoError(t, json.Unmarshal(body, &apiErr))
				assert.Equal(t, apiErrors.ErrMissingSource, apiErr.Code)
				assert.Contains(t, apiErr.Message, "data/maestro.csv")
			},
		},
		{
			name: "Registro inválido",
			url:  "/v1/dashboard",
			setup: func() {
				service.EXPECT().
					BuildDashboard(gomock.Any(), gomock.Any()).
					Return(nil, domain.NewDataValidationError("revenue", 4, "negative amount"))
			},
			wantStatus: http.StatusUnprocessableEntity,
			validate: func(t *testing.T, body []byte) {
				var apiErr struct {
					Code    string                     `json:"code"`
					Details domain.DataValidationError `json:"details"`
				}
				require.NoError(t, json.Unmarshal(body, &apiErr))
				assert.Equal(t, apiErrors.ErrDataValidation, apiErr.Code)
				assert.Equal(t, "revenue", apiErr.Details.Field)
				assert.Equal(t, 4, apiErr.Details.Row)
			},
		},
		{
			name: "Intervalo invertido",
			url:  "/v1/dashboard?start_date=2024-01-05&end_date=2024-01-01",
			setup: func() {
				service.EXPECT().
					BuildDashboard(gomock.Any(), gomock.Any()).
					Return(nil, dashboarding.NewDashboardError(dashboarding.ErrInvalidDateRange, apiErrors.ErrInvalidRequest, ""))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Erro inesperado",
			url:  "/v1/dashboard",
			setup: func() {
				service.EXPECT().
					BuildDashboard(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("conexão recusada"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.validate != nil {
				tt.validate(t, rec.Body.Bytes())
			}
		})
	}
}

func TestGetDashboardRecords(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockDashboarder(ctrl)
	service.EXPECT().BuildDashboard(gomock.Any(), gomock.Any()).Return(sampleView(), nil)

	rec := httptest.NewRecorder()
	newTestRouter(service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/records", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body recordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "abc123", body.ViewID)
	require.Len(t, body.Records, 2)
	assert.Equal(t, 1500.0, body.Records[0].Revenue)
}

func TestExportDashboard(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockDashboarder(ctrl)

	t.Run("Planilha anexada", func(t *testing.T) {
		service.EXPECT().
			ExportWorkbook(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.DashboardFilters, w io.Writer) error {
				_, err := w.Write([]byte("PK-conteudo"))
				return err
			})

		rec := httptest.NewRecorder()
		newTestRouter(service).ServeHTTP(rec,
			httptest.NewRequest(http.MethodGet, "/v1/dashboard/export?start_date=2024-01-01&end_date=2024-01-31&scenario=pessimistic", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="northstar_pessimistic_2024-01-01_2024-01-31.xlsx"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "PK-conteudo", rec.Body.String())
	})

	t.Run("Erro vira JSON", func(t *testing.T) {
		service.EXPECT().
			ExportWorkbook(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.ErrMissingSourceFile)

		rec := httptest.NewRecorder()
		newTestRouter(service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/export", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
	})
}

func TestListScenarios(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockDashboarder(ctrl)
	service.EXPECT().Scenarios().Return(domain.GlobalScenarios())

	rec := httptest.NewRecorder()
	newTestRouter(service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/scenarios", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body scenariosResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Scenarios, 3)
	assert.Equal(t, domain.ScenarioPessimistic, body.Scenarios[1].ID)
	assert.Equal(t, 0.8, body.Scenarios[1].RevenueFactor)
}

func TestHealthcheck(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
