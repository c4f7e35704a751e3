package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreBackendSQL    = "sql"
	StoreBackendRedis  = "redis"
	StoreBackendMemory = "memory"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string

	// Record store (default: sql on sqlite)
	StoreBackend string
	DBDriver     string
	DBConnection string

	// Redis: shared record store and cross-process change sync
	RedisURL       string
	RedisKeyPrefix string
	SyncChannel    string

	// Generation (Gemini). Empty key keeps the portal on offline fallbacks.
	GeminiAPIKey      string
	GeminiModel       string
	GeminiBaseURL     string
	GenerationTimeout time.Duration

	// Content
	SeedContent bool

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible, optional). Without a bucket, media
	// payload references are stored inline.
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration
	MaxMediaSize    int64
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "ZUCA Portal"),
		AppEnv:  envString("APP_ENV", "development"),

		// Record store
		StoreBackend: envString("STORE_BACKEND", StoreBackendSQL),
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/portal.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"),

		// Redis
		RedisURL:       envString("REDIS_URL", ""),
		RedisKeyPrefix: envString("REDIS_KEY_PREFIX", "zuca:"),
		SyncChannel:    envString("SYNC_CHANNEL", "zuca:storage_sync"),

		// Generation
		GeminiAPIKey:      envString("GEMINI_API_KEY", ""),
		GeminiModel:       envString("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:     envString("GEMINI_BASE_URL", ""),
		GenerationTimeout: envDuration("GENERATION_TIMEOUT", 20*time.Second),

		// Content
		SeedContent: envBool("SEED_CONTENT", true),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 168*time.Hour), // 7 days
		MaxMediaSize:    int64(envInt("MAX_MEDIA_SIZE_MB", 25)) << 20,
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures production deployments persist records durably.
func validateProduction(cfg *Config) {
	if cfg.StoreBackend == StoreBackendMemory {
		slog.Error("production deployment requires a durable record store",
			"store_backend", cfg.StoreBackend,
			"hint", "set STORE_BACKEND=sql or STORE_BACKEND=redis")
		os.Exit(1)
	}
	if cfg.StoreBackend == StoreBackendRedis && cfg.RedisURL == "" {
		slog.Error("redis record store requires REDIS_URL")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GenerationEnabled reports whether a remote generator is configured.
func (c *Config) GenerationEnabled() bool {
	return c.GeminiAPIKey != ""
}

// MediaStorageEnabled reports whether media payloads go to object storage.
func (c *Config) MediaStorageEnabled() bool {
	return c.S3Bucket != ""
}

// SyncEnabled reports whether changes are shared with other processes.
func (c *Config) SyncEnabled() bool {
	return c.RedisURL != ""
}
