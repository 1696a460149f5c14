package insighting

import (
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

type rowKey struct {
	adID      string
	dateStart string
}

// CalculateRevenue soma gasto e receita de compras ignorando linhas repetidas
// de (ad_id, date_start). A primeira ocorrência vence. Os contadores de
// diagnóstico saem da mesma passada.
func CalculateRevenue(rows []domain.InsightRow) domain.RevenueSummary {
	summary := domain.RevenueSummary{}
	summary.Diagnostics.InputRows = len(rows)

	seen := make(map[rowKey]struct{}, len(rows))
	adIDs := make(map[string]struct{})

	for _, row := range rows {
		key := rowKey{adID: row.AdID, dateStart: row.DateStart}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		adIDs[row.AdID] = struct{}{}

		summary.TotalSpend += ParseMetric(row.Spend)

		generated, matched := SumMatchingValues(row.ActionValues, domain.PurchaseActionTypes...)
		summary.TotalGenerated += generated
		summary.Diagnostics.MatchedPurchaseActions += matched
	}

	summary.Diagnostics.UniqueRows = len(seen)
	summary.Diagnostics.DistinctAdIDs = len(adIDs)

	summary.ROAS = safeDivide(summary.TotalGenerated, summary.TotalSpend)
	if summary.TotalSpend > 0 {
		summary.ROI = (summary.TotalGenerated - summary.TotalSpend) / summary.TotalSpend * 100
	}

	return summary
}
