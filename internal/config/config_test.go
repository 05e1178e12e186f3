package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	return tmp
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.Database.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Duration(0), cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 40, cfg.HTTP.RateLimitBurst)
	assert.Equal(t, int64(1<<20), cfg.HTTP.MaxBodyBytes)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("BOOKCATALOG_SERVER_ADDR", ":9090")
	t.Setenv("BOOKCATALOG_AUTH_JWTSECRET", "s3cret")
	t.Setenv("BOOKCATALOG_AUTH_TOKENTTL", "2h")
	t.Setenv("BOOKCATALOG_CACHE_BACKEND", "redis")
	t.Setenv("BOOKCATALOG_CACHE_REDIS_ADDR", "cache:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
}

func TestLoad_DotEnvDoesNotOverrideExistingEnv(t *testing.T) {
	tmp := chdirTemp(t)
	content := "BOOKCATALOG_LOG_LEVEL=debug\nBOOKCATALOG_SERVER_ADDR=:7000\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte(content), 0o644))

	t.Setenv("BOOKCATALOG_SERVER_ADDR", ":9000")
	t.Cleanup(func() { _ = os.Unsetenv("BOOKCATALOG_LOG_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	tmp := chdirTemp(t)
	content := "log:\n  level: warn\ncache:\n  backend: none\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.Cache.Backend = CacheMemory
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	cfg.Auth.JWTSecret = "secret"
	assert.NoError(t, cfg.Validate())

	cfg.Cache.Backend = "memcached"
	assert.Error(t, cfg.Validate())
}
