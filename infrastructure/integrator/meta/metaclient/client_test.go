package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metadomain "github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/config"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/metrics"
)

func newTestClient(server *httptest.Server, m *metrics.Metrics) *MetaClient {
	return NewClient(config.Meta{
		URL:            server.URL + "/v24.0",
		AppID:          "app",
		AppSecret:      "secret",
		RequestTimeout: 5 * time.Second,
		MaxPages:       3,
	}, m)
}

func TestInsightParams(t *testing.T) {
	tests := []struct {
		name     string
		req      domain.InsightsRequest
		validate func(t *testing.T, params map[string][]string)
	}{
		{
			name: "preset padrão e nível ad",
			req:  domain.InsightsRequest{AccessToken: "tok"},
			validate: func(t *testing.T, params map[string][]string) {
				assert.Equal(t, []string{"last_30d"}, params["date_preset"])
				assert.Equal(t, []string{"ad"}, params["level"])
				assert.NotContains(t, params, "time_range")
				assert.NotContains(t, params, "time_granularity")
			},
		},
		{
			name: "intervalo substitui preset e usa granularidade diária",
			req: domain.InsightsRequest{
				AccessToken: "tok",
				DatePreset:  "last_7d",
				TimeRange:   &domain.TimeRange{Since: "2024-01-01", Until: "2024-01-31"},
			},
			validate: func(t *testing.T, params map[string][]string) {
				assert.Equal(t, []string{`{"since":"2024-01-01","until":"2024-01-31"}`}, params["time_range"])
				assert.Equal(t, []string{"daily"}, params["time_granularity"])
				assert.NotContains(t, params, "date_preset")
			},
		},
		{
			name: "granularidade explícita",
			req:  domain.InsightsRequest{TimeGranularity: "monthly", Fields: []string{"spend", "ctr"}},
			validate: func(t *testing.T, params map[string][]string) {
				assert.Equal(t, []string{"monthly"}, params["time_granularity"])
				assert.Equal(t, []string{"spend,ctr"}, params["fields"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := InsightParams(tt.req)
			require.NoError(t, err)
			tt.validate(t, params)
		})
	}
}

func TestMetaClient_GetInsights_FollowsPaging(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v24.0/act_123/insights", r.URL.Path)

		if r.URL.Query().Get("after") == "" {
			fmt.Fprintf(w, `{"data":[{"ad_id":"1","spend":"10.5"}],"paging":{"next":"%s/v24.0/act_123/insights?after=abc"}}`, server.URL)
			return
		}

		fmt.Fprint(w, `{"data":[{"ad_id":"2","spend":"3"}],"paging":{}}`)
	}))
	defer server.Close()

	m := metrics.New(prometheus.NewRegistry())
	client := newTestClient(server, m)

	rows, err := client.GetInsights(context.Background(), domain.InsightsRequest{AccountID: "123", AccessToken: "tok"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].AdID)
	assert.Equal(t, "10.5", rows[0].Spend)
	assert.Equal(t, "2", rows[1].AdID)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues(opInsights, "ok")))
}

func TestMetaClient_GetInsights_PageLimit(t *testing.T) {
	calls := 0
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"data":[{"ad_id":"%d"}],"paging":{"next":"%s/v24.0/act_1/insights?after=%d"}}`, calls, server.URL, calls)
	}))
	defer server.Close()

	rows, err := newTestClient(server, nil).GetInsights(context.Background(), domain.InsightsRequest{AccountID: "1"})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, 3, calls)
}

func TestMetaClient_GetInsights_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`)
	}))
	defer server.Close()

	_, err := newTestClient(server, nil).GetInsights(context.Background(), domain.InsightsRequest{AccountID: "1"})
	require.Error(t, err)

	var apiErr *metadomain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Meta Ads API Error: Invalid OAuth access token.", apiErr.Error())
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.True(t, apiErr.IsTokenExpired())
}

func TestMetaClient_GetInsights_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server, nil).GetInsights(ctx, domain.InsightsRequest{AccountID: "1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMetaClient_GetAdCreative(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v24.0/987", r.URL.Path)
		assert.Equal(t, creativeFields, r.URL.Query().Get("fields"))

		if r.URL.Query().Get("access_token") == "empty" {
			fmt.Fprint(w, `{"id":"987"}`)
			return
		}

		fmt.Fprint(w, `{"id":"987","creative":{"id":"c1","title":"Promo","image_url":"https://img","object_story_spec":{"video_data":{"video_id":"v1"}}}}`)
	}))
	defer server.Close()

	client := newTestClient(server, nil)

	creative, err := client.GetAdCreative(context.Background(), "987", "tok")
	require.NoError(t, err)
	require.NotNil(t, creative)
	assert.Equal(t, "c1", creative.ID)
	assert.Equal(t, "Promo", creative.Title)
	require.NotNil(t, creative.ObjectStorySpec)
	assert.Equal(t, "v1", creative.ObjectStorySpec.VideoData.VideoID)

	creative, err = client.GetAdCreative(context.Background(), "987", "empty")
	require.NoError(t, err)
	assert.Nil(t, creative)
}

func TestMetaClient_GetCampaigns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v24.0/act_55/campaigns", r.URL.Path)
		assert.Equal(t, campaignFields, r.URL.Query().Get("fields"))
		fmt.Fprint(w, `{"data":[{"id":"1","name":"Black Friday","status":"ACTIVE","objective":"OUTCOME_SALES","daily_budget":"5000"}]}`)
	}))
	defer server.Close()

	campaigns, err := newTestClient(server, nil).GetCampaigns(context.Background(), "55", "tok")
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, domain.Campaign{
		ID:          "1",
		Name:        "Black Friday",
		Status:      "ACTIVE",
		Objective:   "OUTCOME_SALES",
		DailyBudget: "5000",
	}, campaigns[0])
}

func TestMetaClient_ExchangeToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v24.0/oauth/access_token", r.URL.Path)
		assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "short", r.URL.Query().Get("fb_exchange_token"))
		fmt.Fprint(w, `{"access_token":"long","token_type":"bearer","expires_in":5184000}`)
	}))
	defer server.Close()

	token, err := newTestClient(server, nil).ExchangeToken(context.Background(), "short")
	require.NoError(t, err)
	assert.Equal(t, "long", token.AccessToken)
	assert.Equal(t, int64(5184000), token.ExpiresIn)
}

func TestMetaClient_ExchangeToken_NotConfigured(t *testing.T) {
	client := NewClient(config.Meta{URL: "http://localhost", MaxPages: 1}, nil)

	_, err := client.ExchangeToken(context.Background(), "short")
	assert.ErrorIs(t, err, ErrExchangeNotConfigured)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "60 dias, 0 horas e 0 minutos", FormatDuration(5184000))
	assert.Equal(t, "0 dias, 1 horas e 30 minutos", FormatDuration(5400))
}

func TestCreativeInsightFields(t *testing.T) {
	fields := CreativeInsightFields()

	assert.Len(t, fields, len(DefaultInsightFields)+3)
	assert.Contains(t, fields, "video_thruplay_watched_actions")
	assert.NotContains(t, DefaultInsightFields, "video_play_actions")
}
