package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/trigger/pkg/httpx"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{
		"PORT", "STORE_DRIVER", "DATABASE_FILE", "TOKEN_EXPIRY_MARGIN",
		"MAX_UPLOAD_BYTES", "SUBMISSION_RETENTION", "DASHBOARD_ACCESS_TOKEN", "TRUST_PROXY",
	} {
		unsetEnv(t, key)
	}

	cfg := LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
	require.Equal(t, "trigger.db", cfg.DatabaseFile)
	require.Equal(t, 60*time.Second, cfg.TokenExpiryMargin)
	require.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	require.Equal(t, 30*24*time.Hour, cfg.SubmissionRetention)
	require.Empty(t, cfg.AccessToken)
	require.False(t, cfg.TrustProxy)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("TOKEN_EXPIRY_MARGIN", "2m")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "45")
	t.Setenv("HOUSEKEEPING_INTERVAL", "not-a-duration")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "30")
	t.Setenv("RATELIMIT_STRICT_WINDOW", "30s")
	t.Setenv("RATELIMIT_STRICT_BURST", "-1")

	cfg := LoadConfig()
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, StoreDriverRedis, cfg.StoreDriver)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, 2*time.Minute, cfg.TokenExpiryMargin)
	require.Equal(t, 45*time.Second, cfg.HTTPClientTimeout, "bare integers are seconds")
	require.Equal(t, time.Hour, cfg.HousekeepingInterval, "unparseable values fall back")
	require.True(t, cfg.TrustProxy)
	require.Equal(t, httpx.RateLimit{Requests: 30, Window: 30 * time.Second, Burst: httpx.StrictLimit.Burst}, cfg.StrictLimit)
	require.Equal(t, httpx.LenientLimit, cfg.LenientLimit)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATABASE_FILE=from-file.db\nDASHBOARD_ACCESS_TOKEN=from-file\n"), 0o600))

	t.Setenv("ENV_FILE", envFile)
	unsetEnv(t, "DATABASE_FILE")
	t.Setenv("DASHBOARD_ACCESS_TOKEN", "from-env")

	cfg := LoadConfig()
	require.Equal(t, "from-file.db", cfg.DatabaseFile)
	require.Equal(t, "from-env", cfg.AccessToken, "the environment wins over the file")
}

func TestLoadSeedConfig(t *testing.T) {
	t.Run("empty path gives defaults", func(t *testing.T) {
		cfg, err := LoadSeedConfig("")
		require.NoError(t, err)
		require.Equal(t, triggersdk.DefaultConfig(), cfg)
	})

	t.Run("file overrides present keys only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"triggerUrl": "https://trigger.internal",
			"appId": "seeded-app",
			"demoMode": false
		}`), 0o600))

		cfg, err := LoadSeedConfig(path)
		require.NoError(t, err)
		require.Equal(t, "https://trigger.internal", cfg.TriggerURL)
		require.Equal(t, "seeded-app", cfg.AppID)
		require.False(t, cfg.DemoMode)
		require.Equal(t, triggersdk.DefaultConfig().AuthURL, cfg.AuthURL)
		require.Equal(t, triggersdk.DefaultConfig().AppSecret, cfg.AppSecret)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeedConfig(filepath.Join(t.TempDir(), "nope.json"))
		require.ErrorContains(t, err, "not found")
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"appId":`), 0o600))

		_, err := LoadSeedConfig(path)
		require.ErrorContains(t, err, "failed to load seed config")
	})
}
