package domain

// AggregatedMetrics é o resumo de um conjunto de linhas de insights.
// As médias são a média aritmética dos valores por linha (ctr, cpc, cpm),
// não a razão dos totais.
type AggregatedMetrics struct {
	TotalSpend       float64 `json:"totalSpend"`
	TotalImpressions int64   `json:"totalImpressions"`
	TotalReach       int64   `json:"totalReach"`
	TotalClicks      int64   `json:"totalClicks"`
	AvgCTR           float64 `json:"avgCTR"`
	AvgCPC           float64 `json:"avgCPC"`
	AvgCPM           float64 `json:"avgCPM"`
	PurchaseValue    float64 `json:"purchaseValue"`
	ROAS             float64 `json:"roas"`
}

// RevenueDiagnostics são contadores operacionais da deduplicação
type RevenueDiagnostics struct {
	InputRows              int `json:"inputRows"`
	UniqueRows             int `json:"uniqueRows"`
	DistinctAdIDs          int `json:"distinctAdIds"`
	MatchedPurchaseActions int `json:"matchedPurchaseActions"`
}

// RevenueSummary é o resultado do cálculo de receita deduplicado por (ad_id, date_start)
type RevenueSummary struct {
	TotalSpend     float64            `json:"totalSpend"`
	TotalGenerated float64            `json:"totalGenerated"`
	ROAS           float64            `json:"roas"`
	ROI            float64            `json:"roi"`
	Diagnostics    RevenueDiagnostics `json:"-"`
}

// TimelinePoint agrega gasto, impressões e cliques de um dia
type TimelinePoint struct {
	Date        string  `json:"date"`
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
}

// CampaignSummary é a visão resumida de uma campanha no dashboard
type CampaignSummary struct {
	Name        string  `json:"name"`
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
}

type Dashboard struct {
	Metrics      AggregatedMetrics `json:"metrics"`
	Revenue      RevenueSummary    `json:"revenue"`
	Timeline     []TimelinePoint   `json:"timeline"`
	TopCampaigns []CampaignSummary `json:"topCampaigns"`
}

// VideoRetention são as métricas de retenção de vídeo de um anúncio
type VideoRetention struct {
	VideoPlays     int64   `json:"videoPlays"`
	Thruplays      int64   `json:"thruplays"`
	AvgTimeWatched float64 `json:"avgTimeWatched"`
	P50            int64   `json:"p50"`
	P100           int64   `json:"p100"`
	HasVideoData   bool    `json:"hasVideoData"`
}

// AdPerformance é uma linha da visão de criativos
type AdPerformance struct {
	AdID        string         `json:"adId"`
	AdName      string         `json:"adName"`
	Impressions int64          `json:"impressions"`
	Clicks      int64          `json:"clicks"`
	CTR         float64        `json:"ctr"`
	Spend       float64        `json:"spend"`
	Retention   VideoRetention `json:"retention"`
}

// RankedRow é uma linha de insight enriquecida com ROAS e conversões
type RankedRow struct {
	InsightRow
	ROAS        float64 `json:"roas"`
	Conversions float64 `json:"conversions"`
}
