package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Capacity CapacityConfig
	Planning PlanningConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig describes how access tokens issued by the host application are verified.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CapacityConfig tunes the shift capacity search.
type CapacityConfig struct {
	HorizonDays        int
	DefaultTimezone    string
	DefaultLocale      string
	CacheEnabled       bool
	WorkCenterCacheTTL time.Duration
}

// PlanningConfig controls the asynchronous planning worker pool.
type PlanningConfig struct {
	AsyncEnabled      bool
	WorkerConcurrency int
	WorkerRetries     int
	RetryDelay        time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:   v.GetString("JWT_SECRET"),
		Issuer:   v.GetString("JWT_ISSUER"),
		Audience: splitAndTrim(v.GetString("JWT_AUDIENCE")),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	horizon := v.GetInt("CAPACITY_HORIZON_DAYS")
	if horizon <= 0 {
		horizon = 90
	}
	cfg.Capacity = CapacityConfig{
		HorizonDays:        horizon,
		DefaultTimezone:    v.GetString("CAPACITY_DEFAULT_TZ"),
		DefaultLocale:      v.GetString("CAPACITY_DEFAULT_LOCALE"),
		CacheEnabled:       v.GetBool("CAPACITY_CACHE_ENABLED"),
		WorkCenterCacheTTL: parseDuration(v.GetString("CAPACITY_WORKCENTER_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Planning = PlanningConfig{
		AsyncEnabled:      v.GetBool("PLANNING_ASYNC_ENABLED"),
		WorkerConcurrency: v.GetInt("PLANNING_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("PLANNING_WORKER_RETRIES"),
		RetryDelay:        parseDuration(v.GetString("PLANNING_RETRY_DELAY"), 2*time.Second),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "mrp_capacity")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("JWT_AUDIENCE", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CAPACITY_HORIZON_DAYS", 90)
	v.SetDefault("CAPACITY_DEFAULT_TZ", "UTC")
	v.SetDefault("CAPACITY_DEFAULT_LOCALE", "en")
	v.SetDefault("CAPACITY_CACHE_ENABLED", false)
	v.SetDefault("CAPACITY_WORKCENTER_CACHE_TTL", "5m")

	v.SetDefault("PLANNING_ASYNC_ENABLED", false)
	v.SetDefault("PLANNING_WORKER_CONCURRENCY", 2)
	v.SetDefault("PLANNING_WORKER_RETRIES", 3)
	v.SetDefault("PLANNING_RETRY_DELAY", "2s")
}

// isMissingFile reports whether viper failed only because the .env file is absent;
// SetConfigFile surfaces that as a filesystem error rather than ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such file or directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
