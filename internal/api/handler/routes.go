package handler

import (
	"net/http"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/account"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/assisting"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/middleware"
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

func Metrics(m *metrics.Metrics) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: m.Handler(),
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
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Credentials(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/meta-ads/credentials",
			Method:      http.MethodGet,
			Handler:     GetCredentials(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meta-ads/credentials",
			Method:      http.MethodPut,
			Handler:     SaveCredentials(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meta-ads/credentials",
			Method:      http.MethodDelete,
			Handler:     DeleteCredentials(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func MetaAds(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/meta-ads/insights",
			Method:      http.MethodGet,
			Handler:     GetInsights(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meta-ads/metrics",
			Method:      http.MethodGet,
			Handler:     GetMetrics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meta-ads/rankings",
			Method:      http.MethodGet,
			Handler:     GetRankings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meta-ads/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meta-ads/creatives",
			Method:      http.MethodGet,
			Handler:     GetCreatives(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meta-ads/campaigns",
			Method:      http.MethodGet,
			Handler:     GetCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/meta-ads/ads/:id/creative",
			Method:      http.MethodGet,
			Handler:     GetAdCreative(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Assistant(analyzer assisting.Analyzer, reporter reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ai/analyze",
			Method:      http.MethodPost,
			Handler:     Analyze(analyzer, reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
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
