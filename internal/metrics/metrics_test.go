package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordCacheLookup("metrics", CacheHit)
	m.RecordCacheLookup("metrics", CacheHit)
	m.RecordCacheLookup("metrics", CacheMiss)
	m.RecordCacheWriteError("dashboard")
	m.RecordCacheSweep(3)
	m.RecordCacheSweep(0)
	m.RecordUpstream("insights", time.Now(), nil)
	m.RecordUpstream("insights", time.Now(), errors.New("boom"))
	m.RecordAssistantUsage(10, 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("metrics", CacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("metrics", CacheMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheWriteErrors.WithLabelValues("dashboard")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CacheSwept))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("insights", "error")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.AssistantTokens.WithLabelValues("prompt")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordCacheLookup("metrics", CacheHit)
		m.RecordCacheWriteError("metrics")
		m.RecordCacheSweep(1)
		m.RecordUpstream("insights", time.Now(), nil)
		m.RecordHTTP("/healthcheck", http.MethodGet, http.StatusOK, time.Millisecond)
		m.RecordAssistantUsage(1, 1)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordHTTP("/v1/meta-ads/metrics", http.MethodGet, http.StatusOK, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "meta_ads_http_requests_total"))
}
