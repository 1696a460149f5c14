package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/llm"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/assisting"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/log"
)

// Analyze responde perguntas sobre métricas já agregadas. Sem contexto no corpo,
// o contexto é montado a partir do dashboard do período pedido na query string.
func Analyze(analyzer assisting.Analyzer, reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req domain.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if strings.TrimSpace(req.Question) == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, assisting.ErrEmptyQuestion.Error(), nil)
			return
		}

		if req.Context == nil {
			query, err := parseInsightQuery(r)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}
			req.Context = dashboardContext(r.Context(), reporter, claims.UserID, query)
		}

		response, err := analyzer.Analyze(r.Context(), req)
		if err != nil {
			handleAssistantError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// dashboardContext devolve nil quando o dashboard não pode ser montado;
// o assistente responde sem números nesse caso.
func dashboardContext(ctx context.Context, reporter reporting.Reporter, userID int, query domain.InsightQuery) *domain.AssistantContext {
	if reporter == nil {
		return nil
	}

	dashboard, err := reporter.GetDashboard(ctx, userID, query)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("assistant: contexto do dashboard indisponível")
		return nil
	}

	return assisting.ContextFromDashboard(periodLabel(query), dashboard)
}

func periodLabel(query domain.InsightQuery) string {
	if query.TimeRange != nil {
		return fmt.Sprintf("%s a %s", query.TimeRange.Since, query.TimeRange.Until)
	}
	if query.DatePreset != "" {
		return query.DatePreset
	}
	return domain.DefaultDatePreset
}

func handleAssistantError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assisting.ErrEmptyQuestion):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
		return

	case errors.Is(err, assisting.ErrUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrCommunication, "Assistente não configurado", nil)
		return
	}

	var upstream *llm.APIError
	if errors.As(err, &upstream) {
		if upstream.Status == http.StatusTooManyRequests {
			apiErrors.WriteError(w, apiErrors.ErrRateLimited, upstream.Message, nil)
			return
		}
		apiErrors.WriteError(w, apiErrors.ErrExternalService, upstream.Message, nil)
		return
	}

	log.ForContext(ctx).WithError(err).Error("assistant: erro ao gerar resposta")
	apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao consultar o assistente", nil)
}
