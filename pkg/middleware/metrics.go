package middleware

import (
	"net/http"
	"time"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/metrics"
)

// Metrics registra duração e status por rota. O label route é o padrão
// registrado no router (/v1/meta-ads/ads/:id/creative), não a URL concreta.
func Metrics(m *metrics.Metrics, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			m.RecordHTTP(route, r.Method, lrw.statusCode, time.Since(started))
		})
	}
}
