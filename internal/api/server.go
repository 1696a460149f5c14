package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/api/handler"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/config"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/scheduler"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/account"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/assisting"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// New monta o router e a cadeia de middlewares. m pode ser nil quando
// METRICS_ENABLED=false; nesse caso /metrics não é registrado.
func New(
	config *config.Config,
	reporter reporting.Reporter,
	accountService account.AccountService,
	authenticator authenticating.Authenticator,
	analyzer assisting.Analyzer,
	cacheSweepService *scheduler.CacheSweepService,
	m *metrics.Metrics,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		CacheSweepService: cacheSweepService,
	}

	configs := []router.ConfigRouter{
		router.WithInstrumentation(func(path string) func(http.Handler) http.Handler {
			return middleware.Metrics(m, path)
		}),
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Credentials(accountService)...),
		router.WithRoutes(handler.MetaAds(reporter)...),
		router.WithRoutes(handler.Assistant(analyzer, reporter)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	}

	if m != nil {
		configs = append(configs, router.WithRoutes(handler.Metrics(m)...))
	}

	rt := router.New(configs...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.App.CorsOrigins...),
		middleware.Gzip(),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
