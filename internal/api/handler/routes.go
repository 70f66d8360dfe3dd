package handler

import (
	"net/http"

	"github.com/vfg2006/north-star-api/internal/api/handler/router"
	"github.com/vfg2006/north-star-api/internal/usecases/dashboarding"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
		{
			Path:    "/v1/dashboard/records",
			Method:  http.MethodGet,
			Handler: GetDashboardRecords(service),
		},
		{
			Path:    "/v1/dashboard/export",
			Method:  http.MethodGet,
			Handler: ExportDashboard(service),
		},
		{
			Path:    "/v1/scenarios",
			Method:  http.MethodGet,
			Handler: ListScenarios(service),
		},
	}
}
