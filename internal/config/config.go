package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
	Prefs    PrefsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type UpstreamConfig struct {
	BaseURL             string
	DefaultJurisdiction string
	PerPage             int
	InteractiveTimeout  time.Duration
	BulkTimeout         time.Duration
	ReconcileTimeout    time.Duration
	UserId              string
}

type CacheConfig struct {
	RequestTTL time.Duration
}

type PrefsConfig struct {
	FilePath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Upstream: UpstreamConfig{
			BaseURL:             getEnv("UPSTREAM_BASE_URL", "http://localhost:8080/api"),
			DefaultJurisdiction: getEnv("DEFAULT_JURISDICTION", "CA"),
			PerPage:             getEnvAsInt("CATALOG_PER_PAGE", 20),
			InteractiveTimeout:  getEnvAsDuration("UPSTREAM_INTERACTIVE_TIMEOUT", 2*time.Minute),
			BulkTimeout:         getEnvAsDuration("UPSTREAM_BULK_TIMEOUT", 10*time.Minute),
			ReconcileTimeout:    getEnvAsDuration("UPSTREAM_RECONCILE_TIMEOUT", 15*time.Minute),
			UserId:              getEnv("UPSTREAM_USER_ID", ""),
		},
		Cache: CacheConfig{
			RequestTTL: getEnvAsDuration("REQUEST_CACHE_TTL", time.Second),
		},
		Prefs: PrefsConfig{
			FilePath: getEnv("PREFS_FILE_PATH", "prefs.json"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
