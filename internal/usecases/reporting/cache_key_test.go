package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name           string
		view           string
		query          domain.InsightQuery
		discriminators []string
		want           string
	}{
		{
			name:  "preset padrão",
			view:  ViewMetrics,
			query: domain.InsightQuery{},
			want:  `metrics_last_30d_{}`,
		},
		{
			name:           "preset explícito com nível",
			view:           ViewInsights,
			query:          domain.InsightQuery{DatePreset: "last_7d"},
			discriminators: []string{domain.LevelCampaign},
			want:           `insights_campaign_last_7d_{}`,
		},
		{
			name: "intervalo ignora preset",
			view: ViewDashboard,
			query: domain.InsightQuery{
				DatePreset: "last_7d",
				TimeRange:  &domain.TimeRange{Since: "2024-01-01", Until: "2024-01-31"},
			},
			want: `dashboard_{"since":"2024-01-01","until":"2024-01-31"}`,
		},
		{
			name:           "rankings inclui ordenação e limite",
			view:           ViewRankings,
			query:          domain.InsightQuery{DatePreset: "today"},
			discriminators: []string{"roas", "5"},
			want:           `rankings_roas_5_today_{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildCacheKey(tt.view, tt.query, tt.discriminators...))
		})
	}
}

func TestBuildCacheKey_Deterministic(t *testing.T) {
	query := domain.InsightQuery{TimeRange: &domain.TimeRange{Since: "2024-02-01", Until: "2024-02-10"}}
	same := domain.InsightQuery{TimeRange: &domain.TimeRange{Until: "2024-02-10", Since: "2024-02-01"}}

	assert.Equal(t, BuildCacheKey(ViewMetrics, query), BuildCacheKey(ViewMetrics, same))
	assert.NotEqual(t, BuildCacheKey(ViewMetrics, query), BuildCacheKey(ViewDashboard, query))
}
