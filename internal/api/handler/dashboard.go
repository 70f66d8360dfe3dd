package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/internal/usecases/dashboarding"
	"github.com/vfg2006/north-star-api/pkg/apiErrors"
	"github.com/vfg2006/north-star-api/pkg/log"
	"github.com/vfg2006/north-star-api/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type recordsResponse struct {
	ViewID  string                  `json:"view_id"`
	Filters domain.DashboardFilters `json:"filters"`
	Records domain.RecordSet        `json:"records"`
}

type scenariosResponse struct {
	Scenarios []domain.GlobalScenarioOption `json:"scenarios"`
}

func GetDashboard(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, apiErr := parseFilters(r)
		if apiErr != nil {
			logger.WithField("error", apiErr.Message).Warn("dashboard: invalid query parameters")
			apiErrors.WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
			return
		}

		logger.WithFields(filterFields(filters)).Debug("dashboard: building view")

		view, err := service.BuildDashboard(r.Context(), filters)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		for i := range view.Insights {
			html, err := utils.MarkdownToHTML(view.Insights[i].Message)
			if err != nil {
				logger.WithField("error", err.Error()).Warn("dashboard: failed to render insight")
				continue
			}
			view.Insights[i].HTML = html
		}

		// a tabela detalhada fica em /v1/dashboard/records
		view.Records = nil

		logger.WithFields(log.Fields{
			"view_id":  view.ViewID,
			"insights": len(view.Insights),
		}).Info("dashboard: view built")

		writeJSON(w, logger, view)
	})
}

func GetDashboardRecords(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, apiErr := parseFilters(r)
		if apiErr != nil {
			logger.WithField("error", apiErr.Message).Warn("dashboard: invalid query parameters")
			apiErrors.WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
			return
		}

		view, err := service.BuildDashboard(r.Context(), filters)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		records := view.Records
		if records == nil {
			records = domain.RecordSet{}
		}

		writeJSON(w, logger, recordsResponse{
			ViewID:  view.ViewID,
			Filters: view.Filters,
			Records: records,
		})
	})
}

func ExportDashboard(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, apiErr := parseFilters(r)
		if apiErr != nil {
			logger.WithField("error", apiErr.Message).Warn("dashboard: invalid query parameters")
			apiErrors.WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
			return
		}

		// a planilha é montada em memória para que um erro ainda possa virar JSON
		var buf bytes.Buffer
		if err := service.ExportWorkbook(r.Context(), filters, &buf); err != nil {
			writeServiceError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(filters)))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

		if _, err := buf.WriteTo(w); err != nil {
			logger.WithField("error", err.Error()).Error("dashboard: failed to write workbook")
			return
		}

		logger.WithFields(filterFields(filters)).Info("dashboard: workbook exported")
	})
}

func ListScenarios(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log.ForContext(r.Context()), scenariosResponse{Scenarios: service.Scenarios()})
	})
}

func exportFilename(filters domain.DashboardFilters) string {
	start, end := "inicio", "fim"
	if filters.StartDate != nil {
		start = filters.StartDate.Format(time.DateOnly)
	}
	if filters.EndDate != nil {
		end = filters.EndDate.Format(time.DateOnly)
	}

	return fmt.Sprintf("northstar_%s_%s_%s.xlsx", filters.Scenario, start, end)
}
