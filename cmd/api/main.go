package main

import (
	"context"
	"database/sql"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/database/redis"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/database/sqlite"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/llm"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/api"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/config"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/scheduler"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/account"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/assisting"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	if cfg.App.LogFile != "" {
		logFile := &lumberjack.Logger{
			Filename:   cfg.App.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // dias
			Compress:   true,
		}
		defer logFile.Close()

		logrus.SetOutput(io.MultiWriter(os.Stdout, logFile))
		logrus.WithField("file", cfg.App.LogFile).Info("Logs também gravados em arquivo")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var appMetrics *metrics.Metrics
	if cfg.App.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		appMetrics = metrics.New(registry)
	}

	db, dialect := openDatabase(ctx, cfg)
	defer db.Close()

	if err := migration.Up(ctx, db, dialect); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar o schema do banco")
	}

	userRepo := repository.NewUserRepository(db, dialect)
	credentialsRepo := repository.NewCredentialsRepository(db, dialect)
	cacheRepo := cacheRepository(ctx, cfg, db, dialect)

	metaClient := metaclient.NewClient(cfg.Meta, appMetrics)
	metaIntegrator := meta.New(metaClient)

	authenticator := authenticating.NewService(userRepo, cfg.SecretKey)
	accountService := account.NewService(credentialsRepo, cacheRepo, metaIntegrator, cfg.Meta.CanExchangeToken())

	reportingService := reporting.NewService(
		metaIntegrator,
		cacheRepo,
		credentialsRepo,
		reporting.WithTTLs(cfg.Cache.ShortTTL(), cfg.Cache.LongTTL()),
		reporting.WithMetrics(appMetrics),
	)

	// sem chave o assistente responde 503 em vez de derrubar o servidor
	var answerer assisting.Answerer
	if cfg.Assistant.APIKey != "" {
		answerer = llm.NewClient(cfg.Assistant, appMetrics)
	} else {
		logrus.Warn("ASSISTANT_API_KEY não configurada, assistente desabilitado")
	}
	assistant := assisting.NewService(answerer, cfg.Assistant.MaxTokens, appMetrics)

	cacheSweepService := scheduler.NewCacheSweepService(cacheRepo, cfg.CacheSweep, appMetrics)
	if err := cacheSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de cache")
	} else {
		logrus.Info("Agendador de limpeza de cache iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportingService,
		accountService,
		authenticator,
		assistant,
		cacheSweepService,
		appMetrics,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// openDatabase abre o banco que guarda usuários e credenciais. Com
// CACHE_BACKEND=sqlite tudo fica no arquivo local; nos demais casos o
// postgres é usado, inclusive quando o cache está no redis.
func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, string) {
	if cfg.Cache.Backend == config.CacheBackendSQLite {
		db, err := sqlite.NewConnection(ctx, cfg.Cache.SQLitePath)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao abrir o SQLite")
		}
		return db, repository.DialectSQLite
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn.DB, repository.DialectPostgres
}

func cacheRepository(ctx context.Context, cfg *config.Config, db *sql.DB, dialect string) repository.CacheRepository {
	if cfg.Cache.Backend != config.CacheBackendRedis {
		logrus.WithField("backend", dialect).Info("Cache de relatórios no banco SQL")
		return repository.NewCacheRepository(db, dialect)
	}

	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.Info("Cache de relatórios no Redis")
	return repository.NewRedisCacheRepository(client)
}
