package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

func TestAggregate(t *testing.T) {
	t.Run("sem linhas retorna zeros", func(t *testing.T) {
		assert.Equal(t, domain.AggregatedMetrics{}, Aggregate(nil))
	})

	t.Run("soma totais e tira média simples", func(t *testing.T) {
		rows := []domain.InsightRow{
			{
				Spend: "100", Impressions: "1000", Reach: "800", Clicks: "50",
				CTR: "5", CPC: "2", CPM: "100",
				ActionValues: []domain.Action{{ActionType: domain.ActionPurchase, Value: "300"}},
			},
			{
				Spend: "50", Impressions: "500", Reach: "400", Clicks: "10",
				CTR: "2", CPC: "5", CPM: "100",
				ActionValues: []domain.Action{
					{ActionType: domain.ActionOmniPurchase, Value: "60"},
					{ActionType: domain.ActionPixelPurchase, Value: "40"},
				},
			},
		}

		metrics := Aggregate(rows)

		assert.Equal(t, 150.0, metrics.TotalSpend)
		assert.Equal(t, int64(1500), metrics.TotalImpressions)
		assert.Equal(t, int64(1200), metrics.TotalReach)
		assert.Equal(t, int64(60), metrics.TotalClicks)
		assert.InDelta(t, 3.5, metrics.AvgCTR, 1e-9)
		assert.InDelta(t, 3.5, metrics.AvgCPC, 1e-9)
		assert.InDelta(t, 100, metrics.AvgCPM, 1e-9)
		assert.Equal(t, 400.0, metrics.PurchaseValue)
		assert.InDelta(t, 400.0/150.0, metrics.ROAS, 1e-9)
	})

	t.Run("gasto zero mantém ROAS zero", func(t *testing.T) {
		rows := []domain.InsightRow{{
			Spend:        "0",
			ActionValues: []domain.Action{{ActionType: domain.ActionPurchase, Value: "10"}},
		}}

		metrics := Aggregate(rows)
		assert.Equal(t, 10.0, metrics.PurchaseValue)
		assert.Zero(t, metrics.ROAS)
	})

	t.Run("linhas duplicadas não são removidas", func(t *testing.T) {
		row := domain.InsightRow{AdID: "1", DateStart: "2024-01-01", Spend: "10"}
		metrics := Aggregate([]domain.InsightRow{row, row})
		assert.Equal(t, 20.0, metrics.TotalSpend)
	})
}
