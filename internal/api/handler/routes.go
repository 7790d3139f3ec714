package handler

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/tariff-sync/infrastructure/repository"
	"github.com/vfg2006/tariff-sync/internal/api/handler/router"
	"github.com/vfg2006/tariff-sync/pkg/middleware"
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

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func CronJobs(service TariffSyncTrigger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/tariffs",
			Method:      http.MethodPost,
			Handler:     RunTariffSync(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Tariffs(repo repository.TariffRepository, loc *time.Location) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/tariffs",
			Method:      http.MethodGet,
			Handler:     ListTariffs(repo, loc),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
