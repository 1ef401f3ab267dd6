package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/trigger/pkg/httpx"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"
)

type Config struct {
	AccessToken  string          // Optional: bearer token required on /v1/* (default: open)
	StrictLimit  httpx.RateLimit // Optional: budget for calls reaching the trigger API (default: 10/min, burst 5)
	LenientLimit httpx.RateLimit // Optional: budget for local reads (default: 120/min, burst 120)
	TrustProxy   bool            // Optional: rate limit on X-Forwarded-For / X-Real-IP (default: false)

	StoreDriver   string // Optional: config store backend (sqlite, redis) (default: sqlite)
	DatabaseFile  string // Optional: path to SQLite database file (default: ./trigger.db)
	RedisAddr     string // Optional: redis address for the redis driver (default: localhost:6379)
	RedisPassword string // Optional
	RedisDB       int    // Optional: redis logical database (default: 0)
	MasterKeyPath string // Optional: master key file; when set stored settings are encrypted

	SeedConfigFile    string        // Optional: JSON file with the first-start API configuration
	TokenExpiryMargin time.Duration // Optional: refresh tokens this long before expiry (default: 60s)
	HTTPClientTimeout time.Duration // Optional: timeout for calls to the trigger API (default: 30s)
	MaxUploadBytes    int64         // Optional: largest accepted CSV (default: 10 MiB)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	SubmissionRetention  time.Duration // Upload history retention (default: 30 days)
}

// LoadConfig reads the environment, after merging a .env file when one
// exists. ENV_FILE overrides the .env location. Variables already set in the
// environment win over the file.
func LoadConfig() Config {
	_ = godotenv.Load(getEnvOrDefault("ENV_FILE", ".env"))

	return Config{
		AccessToken:  os.Getenv("DASHBOARD_ACCESS_TOKEN"),
		StrictLimit:  getEnvRateLimitOrDefault("STRICT", httpx.StrictLimit),
		LenientLimit: getEnvRateLimitOrDefault("LENIENT", httpx.LenientLimit),
		TrustProxy:   getEnvBoolOrDefault("TRUST_PROXY", false),

		StoreDriver:   getEnvOrDefault("STORE_DRIVER", StoreDriverSQLite),
		DatabaseFile:  getEnvOrDefault("DATABASE_FILE", "trigger.db"),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),
		MasterKeyPath: os.Getenv("MASTER_KEY_PATH"),

		SeedConfigFile:    os.Getenv("SEED_CONFIG_FILE"),
		TokenExpiryMargin: getEnvDurationOrDefault("TOKEN_EXPIRY_MARGIN", triggersdk.DefaultExpiryMargin),
		HTTPClientTimeout: getEnvDurationOrDefault("HTTP_CLIENT_TIMEOUT", 30*time.Second),
		MaxUploadBytes:    int64(getEnvIntOrDefault("MAX_UPLOAD_BYTES", 10<<20)),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		SubmissionRetention:  getEnvDurationOrDefault("SUBMISSION_RETENTION", 30*24*time.Hour),
	}
}

// LoadSeedConfig reads the first-start API configuration from a JSON file
// using the same keys the config store persists. Keys absent from the file
// keep their DefaultConfig value. An empty path returns DefaultConfig.
func LoadSeedConfig(path string) (triggersdk.ClientConfig, error) {
	cfg := triggersdk.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("seed config file %q not found", path)
		}
		return cfg, fmt.Errorf("failed to load seed config: %w", err)
	}

	if k.Exists("triggerUrl") {
		cfg.TriggerURL = k.String("triggerUrl")
	}
	if k.Exists("cbisA2aApiUrl") {
		cfg.AuthURL = k.String("cbisA2aApiUrl")
	}
	if k.Exists("appId") {
		cfg.AppID = k.String("appId")
	}
	if k.Exists("appSecret") {
		cfg.AppSecret = k.String("appSecret")
	}
	if k.Exists("demoMode") {
		cfg.DemoMode = k.Bool("demoMode")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

// getEnvRateLimitOrDefault reads RATELIMIT_{profile}_REQUESTS, _WINDOW and
// _BURST. Non-positive values keep the default.
func getEnvRateLimitOrDefault(profile string, defaultValue httpx.RateLimit) httpx.RateLimit {
	limit := defaultValue
	prefix := "RATELIMIT_" + profile + "_"

	if n := getEnvIntOrDefault(prefix+"REQUESTS", 0); n > 0 {
		limit.Requests = n
	}
	if d := getEnvDurationOrDefault(prefix+"WINDOW", 0); d > 0 {
		limit.Window = d
	}
	if n := getEnvIntOrDefault(prefix+"BURST", 0); n > 0 {
		limit.Burst = n
	}
	return limit
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
