package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/database/sqlite"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/config"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/middleware"
)

type options struct {
	dialect  string
	email    string
	name     string
	lastname string
	password string
	admin    bool
}

func parseOptions() options {
	var opts options

	flag.StringVar(&opts.dialect, "dialect", "", "postgres ou sqlite (padrão: derivado de CACHE_BACKEND)")
	flag.StringVar(&opts.email, "email", "", "email do usuário a criar após a migração")
	flag.StringVar(&opts.name, "name", "", "nome do usuário")
	flag.StringVar(&opts.lastname, "lastname", "", "sobrenome do usuário")
	flag.StringVar(&opts.password, "password", os.Getenv("SEED_PASSWORD"), "senha do usuário (ou SEED_PASSWORD)")
	flag.BoolVar(&opts.admin, "admin", false, "cria o usuário como administrador")
	flag.Parse()

	return opts
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	opts := parseOptions()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("script: configuração inválida")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, dialect := open(ctx, cfg, opts.dialect)
	defer db.Close()

	startTime := time.Now()
	if err := migration.Up(ctx, db, dialect); err != nil {
		logrus.WithError(err).Fatal("script: migração falhou")
	}
	logrus.Infof("Migração concluída em %v", time.Since(startTime))

	if opts.email == "" {
		return
	}

	seedUser(ctx, cfg, db, dialect, opts)
}

func open(ctx context.Context, cfg *config.Config, dialect string) (*sql.DB, string) {
	if dialect == "" {
		dialect = repository.DialectPostgres
		if cfg.Cache.Backend == config.CacheBackendSQLite {
			dialect = repository.DialectSQLite
		}
	}

	switch dialect {
	case repository.DialectSQLite:
		db, err := sqlite.NewConnection(ctx, cfg.Cache.SQLitePath)
		if err != nil {
			logrus.WithError(err).Fatal("script: erro ao abrir o SQLite")
		}
		return db, dialect

	case repository.DialectPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			logrus.WithError(err).Fatal("script: erro ao conectar ao PostgreSQL")
		}
		return conn.DB, dialect

	default:
		logrus.Fatalf("script: dialeto desconhecido %q", dialect)
		return nil, ""
	}
}

// seedUser cria o usuário pelo mesmo caminho do cadastro, com as mesmas regras de senha
func seedUser(ctx context.Context, cfg *config.Config, db *sql.DB, dialect string, opts options) {
	authenticator := authenticating.NewService(repository.NewUserRepository(db, dialect), cfg.SecretKey)

	roleID := middleware.RoleClient
	if opts.admin {
		roleID = middleware.RoleAdmin
	}

	user, err := authenticator.CreateUser(ctx, &domain.User{
		Name:         opts.name,
		Lastname:     opts.lastname,
		Email:        opts.email,
		PasswordHash: opts.password,
		RoleID:       roleID,
	})
	if err != nil {
		logrus.WithError(err).Fatal("script: erro ao criar usuário")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
		"role_id": user.RoleID,
	}).Info("script: usuário criado")
}
