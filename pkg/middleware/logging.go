package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/meta-ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/log"
)

const slowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware abre o log.Request da requisição e, ao final, registra
// rota, usuário, status e duração. Rota e usuário são preenchidos mais
// adiante na cadeia (router e AuthMiddleware).
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, req := log.StartRequest(r.Context())
			r = r.WithContext(ctx)

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			log.L.WithFields(log.Fields{
				log.FieldCorrelationID: req.CorrelationID,
				"method":               r.Method,
				"path":                 r.URL.Path,
				"query":                r.URL.RawQuery,
				"remote_addr":          r.RemoteAddr,
				"user_agent":           r.UserAgent(),
			}).Debug("http: requisição iniciada")

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(startTime)

			fields := req.Fields()
			fields["method"] = r.Method
			fields["path"] = r.URL.Path
			fields["status_code"] = lrw.statusCode
			fields["duration_ms"] = elapsed.Milliseconds()

			logger := log.L.WithFields(fields)
			msg := fmt.Sprintf("http: %s %s %d em %s", r.Method, routeOrPath(req, r), lrw.statusCode, formatDuration(elapsed))

			switch {
			case lrw.statusCode >= 500:
				logger.Error(msg)
			case lrw.statusCode >= 400:
				logger.Warn(msg)
			default:
				logger.Info(msg)
			}

			if elapsed > slowRequestThreshold {
				logger.Warnf("http: requisição lenta (%s)", formatDuration(elapsed))
			}
		})
	}
}

// rotas não encontradas não passam pelo router e ficam sem padrão
func routeOrPath(req *log.Request, r *http.Request) string {
	if req.Route != "" {
		return req.Route
	}
	return r.URL.Path
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter captura o status code; também usado pelo middleware de métricas
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{w, http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware recupera panics dos handlers e responde SRV_001 no
// mesmo formato JSON dos demais erros da API.
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				stack := make([]byte, 4096)
				stackTrace := string(stack[:runtime.Stack(stack, false)])

				logger := log.ForContext(r.Context()).WithFields(log.Fields{
					"panic_error": fmt.Sprint(recovered),
					"method":      r.Method,
					"path":        r.URL.Path,
				})
				logger.Error("http: panic ao atender a requisição")

				if log.IsDevelopment() {
					fmt.Fprintf(os.Stderr, "\n=== STACK TRACE ===\n%s\n", stackTrace)
				} else {
					logger.WithField("stack_trace", stackTrace).Error("http: stack trace do panic")
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
