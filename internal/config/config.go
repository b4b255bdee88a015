package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RiotAPIKey    string
	DefaultRegion string
	DBPath        string
	ServerPort    string
	LogLevel      string
	SyncWorkers   int
	QueueSize     int

	// provider request budgets, enforced per API key
	RequestsPerSecond     int
	RequestsPerTwoMinutes int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RiotAPIKey:            getEnv("RIOT_API_KEY", ""),
		DefaultRegion:         getEnv("DEFAULT_REGION", "BR"),
		DBPath:                getEnv("DB_PATH", "lolsync.db"),
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		SyncWorkers:           getEnvInt("SYNC_WORKERS", 4),
		QueueSize:             getEnvInt("SYNC_QUEUE_SIZE", 256),
		RequestsPerSecond:     getEnvInt("RIOT_REQUESTS_PER_SECOND", 20),
		RequestsPerTwoMinutes: getEnvInt("RIOT_REQUESTS_PER_TWO_MINUTES", 100),
	}

	if cfg.RiotAPIKey == "" {
		// the process still serves /healthz and /metrics; every provider
		// call fails fast with a not-configured error until a key is set
		logger.Warn().Msg("RIOT_API_KEY is not set, provider calls will fail")
	}

	logger.Info().
		Str("default_region", cfg.DefaultRegion).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int("sync_workers", cfg.SyncWorkers).
		Int("requests_per_second", cfg.RequestsPerSecond).
		Int("requests_per_two_minutes", cfg.RequestsPerTwoMinutes).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
