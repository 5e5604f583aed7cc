package aegisweb

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig()
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, EnvDevelopment, cfg.AppEnv)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.True(t, cfg.AnalyticsEnabled)
	assert.Equal(t, "data/analytics.db", cfg.AnalyticsDatabasePath)
	assert.Equal(t, 365, cfg.AnalyticsRetentionDays)
	assert.Equal(t, 60, cfg.APIRateLimit)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aegisweb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":8080"
app_env: staging
analytics_enabled: false
api_rate_limit: 10
shutdown_timeout: 3s
`), 0o644))

	cfg, err := LoadServerConfig(path, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, EnvStaging, cfg.AppEnv)
	assert.False(t, cfg.AnalyticsEnabled)
	assert.Equal(t, 10, cfg.APIRateLimit)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "public", cfg.StaticDir)
}

func TestLoadServerConfigEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aegisweb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":8080\"\n"), 0o644))

	cfg, err := LoadServerConfig(path, envMap(map[string]string{
		envAddr:               ":9090",
		envAppEnv:             EnvProduction,
		envAnalyticsEnabled:   "false",
		envAnalyticsRetention: "30",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.Production())
	assert.False(t, cfg.AnalyticsEnabled)
	assert.Equal(t, 30, cfg.AnalyticsRetentionDays)
}

func TestLoadServerConfigErrors(t *testing.T) {
	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.yaml"), envMap(nil))
	assert.Error(t, err)

	_, err = LoadServerConfig("", envMap(map[string]string{envAppEnv: "qa"}))
	assert.ErrorContains(t, err, "unknown app env")

	_, err = LoadServerConfig("", envMap(map[string]string{envAnalyticsEnabled: "maybe"}))
	assert.ErrorContains(t, err, envAnalyticsEnabled)

	_, err = LoadServerConfig("", envMap(map[string]string{envAPIRateLimit: "ten"}))
	assert.ErrorContains(t, err, envAPIRateLimit)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("addr: [unclosed"), 0o644))
	_, err = LoadServerConfig(bad, envMap(nil))
	assert.ErrorContains(t, err, "parse config")
}

func TestEnvOr(t *testing.T) {
	t.Setenv("AEGISWEB_TEST_VALUE", "set")
	assert.Equal(t, "set", EnvOr("AEGISWEB_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", EnvOr("AEGISWEB_TEST_UNSET", "fallback"))
}
