package handler

import (
	"net/http"

	"github.com/vfg2006/insights-exporter/internal/api/handler/router"
	"github.com/vfg2006/insights-exporter/internal/usecases/authenticating"
	"github.com/vfg2006/insights-exporter/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Exports(services ExportServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/exports/run",
			Method:      http.MethodPost,
			Handler:     RunExport(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/exports/configurations",
			Method:      http.MethodGet,
			Handler:     ListConfigurations(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/exports/configurations",
			Method:      http.MethodPost,
			Handler:     CreateConfiguration(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
		{
			Path:        "/v1/exports/configurations/:id/run",
			Method:      http.MethodPost,
			Handler:     RunConfiguration(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/exports/runs",
			Method:      http.MethodGet,
			Handler:     ListRuns(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/integrations",
			Method:      http.MethodPut,
			Handler:     SaveIntegrations(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(passRunner PassRunner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/export/run",
			Method:      http.MethodPost,
			Handler:     RunExportPass(passRunner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(passRunner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
	}
}
