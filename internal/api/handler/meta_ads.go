package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/log"
)

// parseInsightQuery lê date_preset, since, until, level, sort_by e limit.
// A validação de valores fica no caso de uso; aqui só o formato de limit é checado.
func parseInsightQuery(r *http.Request) (domain.InsightQuery, error) {
	values := r.URL.Query()

	query := domain.InsightQuery{
		DatePreset: strings.TrimSpace(values.Get("date_preset")),
		Level:      strings.TrimSpace(values.Get("level")),
		SortBy:     strings.TrimSpace(values.Get("sort_by")),
	}

	since, until := strings.TrimSpace(values.Get("since")), strings.TrimSpace(values.Get("until"))
	if since != "" || until != "" {
		query.TimeRange = &domain.TimeRange{Since: since, Until: until}
	}

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return query, fmt.Errorf("limit inválido: %q", raw)
		}
		query.Limit = &limit
	}

	return query, nil
}

// serveReport cobre o fluxo comum das rotas de relatório: usuário, query, caso de uso e resposta
func serveReport[T any](view string, fetch func(context.Context, int, domain.InsightQuery) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		query, err := parseInsightQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		result, err := fetch(r.Context(), claims.UserID, query)
		if err != nil {
			handleReportingError(r.Context(), w, view, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func GetInsights(service reporting.Reporter) http.HandlerFunc {
	return serveReport(reporting.ViewInsights, service.GetInsights)
}

func GetMetrics(service reporting.Reporter) http.HandlerFunc {
	return serveReport(reporting.ViewMetrics, service.GetMetrics)
}

func GetRankings(service reporting.Reporter) http.HandlerFunc {
	return serveReport(reporting.ViewRankings, service.GetRankings)
}

func GetDashboard(service reporting.Reporter) http.HandlerFunc {
	return serveReport(reporting.ViewDashboard, service.GetDashboard)
}

func GetCreatives(service reporting.Reporter) http.HandlerFunc {
	return serveReport(reporting.ViewCreatives, service.GetCreativesOverview)
}

func GetCampaigns(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		campaigns, err := service.GetCampaigns(r.Context(), claims.UserID)
		if err != nil {
			handleReportingError(r.Context(), w, reporting.ViewCampaigns, err)
			return
		}

		writeJSON(w, http.StatusOK, campaigns)
	}
}

// GetAdCreative responde null quando o criativo não está disponível
func GetAdCreative(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		adID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		creative, err := service.GetAdCreative(r.Context(), claims.UserID, adID)
		if err != nil {
			handleReportingError(r.Context(), w, reporting.ViewCreative, err)
			return
		}

		writeJSON(w, http.StatusOK, creative)
	}
}

func handleReportingError(ctx context.Context, w http.ResponseWriter, view string, err error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"view":  view,
		"error": err.Error(),
	})

	if errors.Is(err, reporting.ErrNoCredentials) {
		logger.Info("meta-ads: usuário sem credenciais configuradas")
		apiErrors.WriteError(w, apiErrors.ErrCredentialsMissing, "Configure as credenciais do Meta Ads", nil)
		return
	}

	if errors.Is(err, reporting.ErrInvalidQuery) {
		logger.Warn("meta-ads: consulta inválida")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return
	}

	if remote, ok := meta.IsRemoteError(err); ok {
		details := map[string]any{"meta_code": remote.Code}
		if remote.IsRateLimited() {
			logger.Warn("meta-ads: limite de requisições da Graph API")
			apiErrors.WriteError(w, apiErrors.ErrRateLimited, remote.Error(), details)
			return
		}

		logger.Error("meta-ads: erro da Graph API")
		apiErrors.WriteError(w, apiErrors.ErrExternalService, remote.Error(), details)
		return
	}

	logger.Error("meta-ads: erro ao montar relatório")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar o Meta Ads", nil)
}
