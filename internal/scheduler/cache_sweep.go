package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/config"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/utils"
)

const sweepTimeout = 2 * time.Minute

// CacheSweepService remove periodicamente as entradas de cache expiradas.
// A leitura já ignora entradas vencidas; a limpeza só libera espaço.
type CacheSweepService struct {
	scheduler *gocron.Scheduler
	config    config.CacheSweep
	cacheRepo repository.CacheRepository
	metrics   *metrics.Metrics

	sweepRunning         bool
	sweepMutex           sync.Mutex
	lastSweepStartedAt   time.Time
	lastSweepCompletedAt time.Time
	lastSweepRemoved     int64
	lastSweepError       string
	lastRunID            string
}

func NewCacheSweepService(cacheRepo repository.CacheRepository, cfg config.CacheSweep, m *metrics.Metrics) *CacheSweepService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": cfg.CronSchedule,
		"sweep_enabled": cfg.Enabled,
	}).Info("scheduler: configuração da limpeza de cache carregada")

	return &CacheSweepService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    cfg,
		cacheRepo: cacheRepo,
		metrics:   m,
	}
}

// Start agenda a limpeza e para o agendador quando o contexto for cancelado
func (s *CacheSweepService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduler: limpeza de cache desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.sweep(ctx, "cron")
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de cache: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: parando agendador de limpeza de cache")
		s.scheduler.Stop()
	}()

	return nil
}

// sweep executa uma limpeza, ignorando o pedido se outra já estiver em andamento
func (s *CacheSweepService) sweep(ctx context.Context, runID string) (int64, error) {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Info("scheduler: limpeza de cache já em andamento, ignorando")
		return 0, nil
	}
	s.sweepRunning = true
	s.lastSweepStartedAt = time.Now()
	s.lastRunID = runID
	s.sweepMutex.Unlock()

	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	removed, err := s.cacheRepo.DeleteExpired(ctx)

	s.sweepMutex.Lock()
	s.sweepRunning = false
	s.lastSweepCompletedAt = time.Now()
	s.lastSweepRemoved = removed
	s.lastSweepError = ""
	if err != nil {
		s.lastSweepError = err.Error()
	}
	s.sweepMutex.Unlock()

	logger := logrus.WithFields(logrus.Fields{
		"run_id":  runID,
		"removed": removed,
	})

	if err != nil {
		logger.WithError(err).Error("scheduler: erro ao limpar cache expirado")
		return 0, err
	}

	s.metrics.RecordCacheSweep(removed)
	logger.Info("scheduler: limpeza de cache concluída")

	return removed, nil
}

// TriggerManualSweep dispara uma limpeza em segundo plano e devolve o id da execução
func (s *CacheSweepService) TriggerManualSweep() (string, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	logrus.WithField("run_id", runID).Info("scheduler: limpeza manual de cache solicitada")
	go s.sweep(context.Background(), runID)

	return runID, nil
}

// GetStatus retorna o status atual do agendador
func (s *CacheSweepService) GetStatus() map[string]any {
	s.sweepMutex.Lock()
	defer s.sweepMutex.Unlock()

	return map[string]any{
		"sweep_enabled":           s.config.Enabled,
		"sweep_cron":              s.config.CronSchedule,
		"sweep_running":           s.sweepRunning,
		"last_run_id":             s.lastRunID,
		"last_sweep_started_at":   s.lastSweepStartedAt,
		"last_sweep_completed_at": s.lastSweepCompletedAt,
		"last_sweep_removed":      s.lastSweepRemoved,
		"last_sweep_error":        s.lastSweepError,
	}
}
