package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	metadomain "github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/log"
)

// DefaultInsightFields são os campos pedidos quando a requisição não define nenhum
var DefaultInsightFields = []string{
	"account_id",
	"account_name",
	"campaign_id",
	"campaign_name",
	"adset_id",
	"adset_name",
	"ad_id",
	"ad_name",
	"impressions",
	"reach",
	"frequency",
	"clicks",
	"unique_clicks",
	"spend",
	"ctr",
	"cpc",
	"cpm",
	"cpp",
	"video_p50_watched_actions",
	"video_p100_watched_actions",
	"actions",
	"action_values",
	"cost_per_action_type",
}

// VideoInsightFields complementam os campos padrão na visão de criativos
var VideoInsightFields = []string{
	"video_play_actions",
	"video_thruplay_watched_actions",
	"video_avg_time_watched_actions",
}

// CreativeInsightFields são os campos padrão acrescidos das métricas de vídeo
func CreativeInsightFields() []string {
	fields := make([]string, 0, len(DefaultInsightFields)+len(VideoInsightFields))
	fields = append(fields, DefaultInsightFields...)
	return append(fields, VideoInsightFields...)
}

// InsightParams monta os parâmetros de /act_{id}/insights.
// time_range tem prioridade sobre date_preset; com intervalo a granularidade padrão é diária.
func InsightParams(req domain.InsightsRequest) (url.Values, error) {
	fields := req.Fields
	if len(fields) == 0 {
		fields = DefaultInsightFields
	}

	level := req.Level
	if level == "" {
		level = domain.DefaultLevel
	}

	params := url.Values{}
	params.Set("access_token", req.AccessToken)
	params.Set("level", level)
	params.Set("fields", strings.Join(fields, ","))

	if req.TimeRange != nil {
		timeRange, err := json.Marshal(req.TimeRange)
		if err != nil {
			return nil, fmt.Errorf("metaclient: erro ao serializar time_range: %w", err)
		}
		params.Set("time_range", string(timeRange))
	} else {
		preset := req.DatePreset
		if preset == "" {
			preset = domain.DefaultDatePreset
		}
		params.Set("date_preset", preset)
	}

	if req.TimeGranularity != "" {
		params.Set("time_granularity", req.TimeGranularity)
	} else if req.TimeRange != nil {
		params.Set("time_granularity", domain.TimeGranularityDaily)
	}

	return params, nil
}

// GetInsights busca as linhas de insights seguindo paging.next até o limite de páginas
func (c *MetaClient) GetInsights(ctx context.Context, req domain.InsightsRequest) ([]domain.InsightRow, error) {
	params, err := InsightParams(req)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.InsightRow, 0)
	next := c.endpoint(fmt.Sprintf("act_%s/insights", req.AccountID), params)

	for page := 1; next != "" && page <= c.maxPages; page++ {
		body, err := c.get(ctx, opInsights, next)
		if err != nil {
			return nil, err
		}

		var response metadomain.InsightsResponse
		if err := json.Unmarshal(body, &response); err != nil {
			log.ForContext(ctx).WithError(err).Error("metaclient: erro ao decodificar JSON de insights")
			return nil, fmt.Errorf("metaclient: resposta de insights inválida: %w", err)
		}

		rows = append(rows, response.Data...)
		next = response.Paging.Next

		if next != "" && page == c.maxPages {
			log.ForContext(ctx).WithFields(log.Fields{
				"account_id": req.AccountID,
				"pages":      page,
				"rows":       len(rows),
			}).Warn("metaclient: limite de páginas atingido, resultado truncado")
		}
	}

	return rows, nil
}
