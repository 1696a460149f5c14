package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

func TestBuildTimeline(t *testing.T) {
	rows := []domain.InsightRow{
		{DateStart: "2024-01-02", Spend: "10", Impressions: "100", Clicks: "3"},
		{DateStart: "2024-01-01", Spend: "5", Impressions: "50", Clicks: "1"},
		{DateStart: "2024-01-02", Spend: "2.5", Impressions: "20", Clicks: "2"},
	}

	timeline := BuildTimeline(rows)

	require.Len(t, timeline, 2)
	assert.Equal(t, domain.TimelinePoint{Date: "2024-01-01", Spend: 5, Impressions: 50, Clicks: 1}, timeline[0])
	assert.Equal(t, domain.TimelinePoint{Date: "2024-01-02", Spend: 12.5, Impressions: 120, Clicks: 5}, timeline[1])
}

func TestBuildTimeline_Empty(t *testing.T) {
	assert.Empty(t, BuildTimeline(nil))
}

func TestTopCampaigns(t *testing.T) {
	rows := []domain.InsightRow{
		{CampaignName: "Black Friday", Spend: "10", Impressions: "100", Clicks: "4"},
		{Spend: "1"},
		{CampaignName: "Natal", Spend: "3"},
	}

	top := TopCampaigns(rows, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Black Friday", top[0].Name)
	assert.Equal(t, int64(4), top[0].Clicks)
	assert.Equal(t, "Unknown", top[1].Name)

	assert.Len(t, TopCampaigns(rows, 5), 3)
	assert.Empty(t, TopCampaigns(rows, -1))
}

func TestVideoRetentionOf(t *testing.T) {
	row := domain.InsightRow{
		VideoPlayActions:            []domain.Action{{ActionType: "video_view", Value: "200"}},
		VideoThruplayWatchedActions: []domain.Action{{ActionType: "video_view", Value: "80"}},
		VideoAvgTimeWatchedActions:  []domain.Action{{ActionType: "video_view", Value: "6.5"}},
		VideoP50WatchedActions:      []domain.Action{{ActionType: "video_view", Value: "120"}},
		VideoP100WatchedActions:     []domain.Action{{ActionType: "video_view", Value: "40"}},
	}

	retention := VideoRetentionOf(row)
	assert.Equal(t, domain.VideoRetention{
		VideoPlays:     200,
		Thruplays:      80,
		AvgTimeWatched: 6.5,
		P50:            120,
		P100:           40,
		HasVideoData:   true,
	}, retention)

	assert.False(t, VideoRetentionOf(domain.InsightRow{}).HasVideoData)
}

func TestAdPerformances(t *testing.T) {
	ads := AdPerformances([]domain.InsightRow{{AdID: "1", AdName: "Ad", Impressions: "10", Clicks: "2", CTR: "20", Spend: "3.3"}})

	require.Len(t, ads, 1)
	assert.Equal(t, "1", ads[0].AdID)
	assert.Equal(t, 20.0, ads[0].CTR)
	assert.False(t, ads[0].Retention.HasVideoData)
}
