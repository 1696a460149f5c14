package reporting

import (
	"fmt"
	"strings"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

// Views usadas como prefixo das chaves de cache
const (
	ViewInsights  = "insights"
	ViewMetrics   = "metrics"
	ViewRankings  = "rankings"
	ViewCreative  = "creative"
	ViewDashboard = "dashboard"
	ViewCreatives = "creatives"
	ViewCampaigns = "campaigns"
)

const emptyRange = "{}"

// canonicalRange serializa o intervalo sempre com since antes de until
func canonicalRange(timeRange *domain.TimeRange) string {
	if timeRange == nil {
		return emptyRange
	}

	return fmt.Sprintf(`{"since":%q,"until":%q}`, timeRange.Since, timeRange.Until)
}

// BuildCacheKey monta a chave determinística de uma consulta.
// Com intervalo de datas o preset é ignorado; sem intervalo o preset padrão é last_30d.
func BuildCacheKey(view string, query domain.InsightQuery, discriminators ...string) string {
	parts := make([]string, 0, len(discriminators)+3)
	parts = append(parts, view)
	parts = append(parts, discriminators...)

	if query.TimeRange == nil {
		preset := query.DatePreset
		if preset == "" {
			preset = domain.DefaultDatePreset
		}
		parts = append(parts, preset)
	}

	parts = append(parts, canonicalRange(query.TimeRange))

	return strings.Join(parts, "_")
}
