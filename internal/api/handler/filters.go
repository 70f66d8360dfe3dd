package handler

import (
	"errors"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/north-star-api/internal/domain"
	"github.com/vfg2006/north-star-api/internal/usecases/dashboarding"
	"github.com/vfg2006/north-star-api/pkg/apiErrors"
	"github.com/vfg2006/north-star-api/pkg/log"
	"github.com/vfg2006/north-star-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// parseFilters lê start_date, end_date e scenario da query string
func parseFilters(r *http.Request) (domain.DashboardFilters, *apiErrors.APIError) {
	query := r.URL.Query()

	startDate, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		return domain.DashboardFilters{}, &apiErrors.APIError{
			Code:    apiErrors.ErrInvalidFormat,
			Message: "start_date deve estar no formato YYYY-MM-DD",
			Details: map[string]string{"start_date": query.Get("start_date")},
		}
	}

	endDate, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		return domain.DashboardFilters{}, &apiErrors.APIError{
			Code:    apiErrors.ErrInvalidFormat,
			Message: "end_date deve estar no formato YYYY-MM-DD",
			Details: map[string]string{"end_date": query.Get("end_date")},
		}
	}

	scenario, err := domain.ParseGlobalScenario(query.Get("scenario"))
	if err != nil {
		return domain.DashboardFilters{}, &apiErrors.APIError{
			Code:    apiErrors.ErrInvalidRequest,
			Message: err.Error(),
		}
	}

	return domain.DashboardFilters{
		StartDate: startDate,
		EndDate:   endDate,
		Scenario:  scenario,
	}, nil
}

func filterFields(filters domain.DashboardFilters) log.Fields {
	fields := log.Fields{"scenario": filters.Scenario}
	if filters.StartDate != nil {
		fields["start_date"] = filters.StartDate.Format(time.DateOnly)
	}
	if filters.EndDate != nil {
		fields["end_date"] = filters.EndDate.Format(time.DateOnly)
	}
	return fields
}

// writeServiceError traduz o erro do serviço para o envelope de erro da API
func writeServiceError(w http.ResponseWriter, logger log.Logger, err error) {
	code := dashboarding.ErrorCode(err)

	var details any
	var validationErr *domain.DataValidationError
	if errors.As(err, &validationErr) {
		details = validationErr
	}

	if apiErrors.StatusCode(code) >= http.StatusInternalServerError {
		logger.WithError(err).Error("dashboard: failed to build view")
	} else {
		logger.WithField("error", err.Error()).Warn("dashboard: request rejected")
	}

	apiErrors.WriteError(w, code, err.Error(), details)
}

func writeJSON(w http.ResponseWriter, logger log.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithField("error", err.Error()).Error("dashboard: failed to encode response")
	}
}
