package handler

import (
	"net/http"

	"github.com/vfg2006/sales-territory-api/infrastructure/repository"
	"github.com/vfg2006/sales-territory-api/internal/api/handler/router"
	"github.com/vfg2006/sales-territory-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-territory-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-territory-api/internal/usecases/targeting"
	"github.com/vfg2006/sales-territory-api/pkg/middleware"
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

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Territories(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/territories",
			Method:      http.MethodGet,
			Handler:     GetTerritoryPerformance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/territories/:id",
			Method:      http.MethodGet,
			Handler:     GetTerritoryDetail(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Maps(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/map/live",
			Method:      http.MethodGet,
			Handler:     GetLiveMap(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/map/choropleth",
			Method:      http.MethodGet,
			Handler:     GetChoroplethMap(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Insights(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/insights/summary",
			Method:      http.MethodGet,
			Handler:     GetManagementSummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManagement()},
		},
	}
}

func Performance(service targeting.TargetService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/performance",
			Method:      http.MethodGet,
			Handler:     GetPerformanceListing(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Targets(service targeting.TargetService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/targets",
			Method:      http.MethodPut,
			Handler:     UpsertTarget(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManagement()},
		},
	}
}

func TerritoryRanking(repo repository.TerritoryRankingRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/rankings/territories",
			Method:      http.MethodGet,
			Handler:     GetTerritoryRanking(repo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManagement()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
