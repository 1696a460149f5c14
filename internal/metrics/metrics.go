package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "meta_ads"

// Resultados de consulta ao cache
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics reúne as métricas Prometheus do serviço.
// Todos os métodos aceitam receptor nil, assim os componentes funcionam sem métricas.
type Metrics struct {
	registry prometheus.Gatherer

	// Cache
	CacheLookups     *prometheus.CounterVec
	CacheWriteErrors *prometheus.CounterVec
	CacheSwept       prometheus.Counter

	// Graph API
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec

	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	// Assistente
	AssistantTokens *prometheus.CounterVec
}

// New cria e registra as métricas no registry informado
func New(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by view and result",
			},
			[]string{"view", "result"},
		),
		CacheWriteErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "cache_write_errors_total",
				Help:      "Failed cache writes by view",
			},
			[]string{"view"},
		),
		CacheSwept: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "cache_swept_entries_total",
				Help:      "Expired cache entries removed by the sweeper",
			},
		),
		UpstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "graph_api_requests_total",
				Help:      "Graph API calls by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		UpstreamLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "graph_api_request_duration_seconds",
				Help:      "Graph API call latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),
		HTTPLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		AssistantTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "assistant_tokens_total",
				Help:      "Tokens consumed by the assistant",
			},
			[]string{"kind"},
		),
	}
}

// Handler expõe as métricas registradas
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordCacheLookup(view, result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(view, result).Inc()
}

func (m *Metrics) RecordCacheWriteError(view string) {
	if m == nil {
		return
	}
	m.CacheWriteErrors.WithLabelValues(view).Inc()
}

func (m *Metrics) RecordCacheSweep(deleted int64) {
	if m == nil || deleted <= 0 {
		return
	}
	m.CacheSwept.Add(float64(deleted))
}

func (m *Metrics) RecordUpstream(operation string, started time.Time, err error) {
	if m == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
	}

	m.UpstreamRequests.WithLabelValues(operation, status).Inc()
	m.UpstreamLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) RecordHTTP(route, method string, code int, latency time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPLatency.WithLabelValues(route, method).Observe(latency.Seconds())
}

func (m *Metrics) RecordAssistantUsage(promptTokens, completionTokens int64) {
	if m == nil {
		return
	}
	m.AssistantTokens.WithLabelValues("prompt").Add(float64(promptTokens))
	m.AssistantTokens.WithLabelValues("completion").Add(float64(completionTokens))
}
