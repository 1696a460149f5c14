package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Backends de cache suportados
const (
	CacheBackendPostgres = "postgres"
	CacheBackendSQLite   = "sqlite"
	CacheBackendRedis    = "redis"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Cache      Cache      `mapstructure:",squash"`
	Redis      Redis      `mapstructure:",squash"`
	Meta       Meta       `mapstructure:",squash"`
	Assistant  Assistant  `mapstructure:",squash"`
	CacheSweep CacheSweep `mapstructure:",squash"`
	SecretKey  string     `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Cache struct {
	Backend         string `mapstructure:"cache_backend"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	ShortTTLMinutes int    `mapstructure:"cache_short_ttl_minutes"`
	LongTTLMinutes  int    `mapstructure:"cache_long_ttl_minutes"`
}

// ShortTTL cobre insights, métricas, rankings, dashboard e campanhas
func (c Cache) ShortTTL() time.Duration {
	return time.Duration(c.ShortTTLMinutes) * time.Minute
}

// LongTTL cobre metadados de criativos
func (c Cache) LongTTL() time.Duration {
	return time.Duration(c.LongTTLMinutes) * time.Minute
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Meta struct {
	BaseURL        string        `mapstructure:"meta_base_url"`
	URL            string        `mapstructure:"-"`
	Version        string        `mapstructure:"meta_version"`
	AppID          string        `mapstructure:"meta_app_id"`
	AppSecret      string        `mapstructure:"meta_app_secret"`
	RequestTimeout time.Duration `mapstructure:"meta_request_timeout"`
	MaxPages       int           `mapstructure:"meta_max_pages"`
}

// CanExchangeToken indica se há app configurado para trocar tokens de longa duração
func (m Meta) CanExchangeToken() bool {
	return m.AppID != "" && m.AppSecret != ""
}

type Assistant struct {
	URL       string        `mapstructure:"assistant_url"`
	APIKey    string        `mapstructure:"assistant_api_key"`
	Model     string        `mapstructure:"assistant_model"`
	MaxTokens int           `mapstructure:"assistant_max_tokens"`
	Timeout   time.Duration `mapstructure:"assistant_timeout"`
}

type App struct {
	LogLevel       string   `mapstructure:"log_level"`
	LogFile        string   `mapstructure:"log_file"`
	MetricsEnabled bool     `mapstructure:"metrics_enabled"`
	CorsOrigins    []string `mapstructure:"cors_allowed_origins"`
}

type CacheSweep struct {
	CronSchedule string `mapstructure:"cache_sweep_cron"`
	Enabled      bool   `mapstructure:"cache_sweep_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/meta_ads?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("CACHE_BACKEND", CacheBackendPostgres)
	viper.SetDefault("SQLITE_PATH", "meta_ads.db")
	viper.SetDefault("CACHE_SHORT_TTL_MINUTES", 30)  // insights, métricas, rankings
	viper.SetDefault("CACHE_LONG_TTL_MINUTES", 1440) // criativos

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v24.0")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")
	viper.SetDefault("META_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("META_MAX_PAGES", 20)

	viper.SetDefault("ASSISTANT_URL", "https://api.openai.com/v1")
	viper.SetDefault("ASSISTANT_API_KEY", "")
	viper.SetDefault("ASSISTANT_MODEL", "gpt-4o-mini")
	viper.SetDefault("ASSISTANT_MAX_TOKENS", 1000)
	viper.SetDefault("ASSISTANT_TIMEOUT", "60s")

	viper.SetDefault("CACHE_SWEEP_CRON", "*/15 * * * *") // a cada 15 minutos
	viper.SetDefault("CACHE_SWEEP_ENABLED", true)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate rejeita combinações que impediriam o servidor de subir
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendPostgres, CacheBackendSQLite, CacheBackendRedis:
	default:
		return fmt.Errorf("config: CACHE_BACKEND inválido: %q", c.Cache.Backend)
	}

	if c.Cache.ShortTTLMinutes <= 0 || c.Cache.LongTTLMinutes <= 0 {
		return fmt.Errorf("config: TTLs de cache devem ser positivos")
	}

	if c.Meta.MaxPages <= 0 {
		return fmt.Errorf("config: META_MAX_PAGES deve ser positivo")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
