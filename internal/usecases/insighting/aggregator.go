package insighting

import (
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

// Aggregate reduz as linhas de uma consulta em um único AggregatedMetrics.
// Totais somam todas as linhas sem deduplicar. As médias de CTR, CPC e CPM são
// a média simples dos valores já calculados por linha.
func Aggregate(rows []domain.InsightRow) domain.AggregatedMetrics {
	metrics := domain.AggregatedMetrics{}
	if len(rows) == 0 {
		return metrics
	}

	var sumCTR, sumCPC, sumCPM float64
	for _, row := range rows {
		metrics.TotalSpend += ParseMetric(row.Spend)
		metrics.TotalImpressions += ParseCount(row.Impressions)
		metrics.TotalReach += ParseCount(row.Reach)
		metrics.TotalClicks += ParseCount(row.Clicks)

		sumCTR += ParseMetric(row.CTR)
		sumCPC += ParseMetric(row.CPC)
		sumCPM += ParseMetric(row.CPM)

		purchase, _ := SumMatchingValues(row.ActionValues, domain.PurchaseActionTypes...)
		metrics.PurchaseValue += purchase
	}

	count := float64(len(rows))
	metrics.AvgCTR = sumCTR / count
	metrics.AvgCPC = sumCPC / count
	metrics.AvgCPM = sumCPM / count
	metrics.ROAS = safeDivide(metrics.PurchaseValue, metrics.TotalSpend)

	return metrics
}
