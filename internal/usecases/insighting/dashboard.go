package insighting

import (
	"sort"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

const unknownLabel = "Unknown"

// BuildTimeline agrupa as linhas por date_start em ordem crescente de data
func BuildTimeline(rows []domain.InsightRow) []domain.TimelinePoint {
	byDate := make(map[string]*domain.TimelinePoint)

	for _, row := range rows {
		date := row.DateStart
		if date == "" {
			date = unknownLabel
		}

		point, ok := byDate[date]
		if !ok {
			point = &domain.TimelinePoint{Date: date}
			byDate[date] = point
		}

		point.Spend += ParseMetric(row.Spend)
		point.Impressions += ParseCount(row.Impressions)
		point.Clicks += ParseCount(row.Clicks)
	}

	timeline := make([]domain.TimelinePoint, 0, len(byDate))
	for _, point := range byDate {
		timeline = append(timeline, *point)
	}

	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Date < timeline[j].Date
	})

	return timeline
}

// TopCampaigns resume as primeiras n linhas de campanha na ordem recebida da API
func TopCampaigns(rows []domain.InsightRow, n int) []domain.CampaignSummary {
	if n > len(rows) {
		n = len(rows)
	}
	if n < 0 {
		n = 0
	}

	campaigns := make([]domain.CampaignSummary, 0, n)
	for _, row := range rows[:n] {
		name := row.CampaignName
		if name == "" {
			name = unknownLabel
		}

		campaigns = append(campaigns, domain.CampaignSummary{
			Name:        name,
			Spend:       ParseMetric(row.Spend),
			Impressions: ParseCount(row.Impressions),
			Clicks:      ParseCount(row.Clicks),
		})
	}

	return campaigns
}

// VideoRetentionOf lê as métricas de retenção de vídeo de uma linha de anúncio
func VideoRetentionOf(row domain.InsightRow) domain.VideoRetention {
	retention := domain.VideoRetention{
		VideoPlays:     int64(FirstValue(row.VideoPlayActions)),
		Thruplays:      int64(FirstValue(row.VideoThruplayWatchedActions)),
		AvgTimeWatched: FirstValue(row.VideoAvgTimeWatchedActions),
		P50:            int64(FirstValue(row.VideoP50WatchedActions)),
		P100:           int64(FirstValue(row.VideoP100WatchedActions)),
	}

	retention.HasVideoData = retention.VideoPlays > 0 ||
		retention.Thruplays > 0 ||
		retention.P50 > 0 ||
		retention.P100 > 0

	return retention
}

// AdPerformances monta a visão de criativos a partir de linhas de anúncio
func AdPerformances(rows []domain.InsightRow) []domain.AdPerformance {
	ads := make([]domain.AdPerformance, 0, len(rows))
	for _, row := range rows {
		ads = append(ads, domain.AdPerformance{
			AdID:        row.AdID,
			AdName:      row.AdName,
			Impressions: ParseCount(row.Impressions),
			Clicks:      ParseCount(row.Clicks),
			CTR:         ParseMetric(row.CTR),
			Spend:       ParseMetric(row.Spend),
			Retention:   VideoRetentionOf(row),
		})
	}

	return ads
}
