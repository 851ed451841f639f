package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "spread-pickem-api", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel)
	assert.Equal(t, game.Scope{Season: 2025, WeekType: game.WeekTypePreseason, Week: 1}, cfg.DefaultScope)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 4, cfg.RecomputeWorkers)
	assert.Equal(t, "spread-pickem", cfg.AuthJWTIssuer)
	assert.Equal(t, 5, cfg.SubmitRateLimitBurst)
	assert.Equal(t, cfg.ServiceName, cfg.PyroscopeAppName)
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("memory", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", " Memory ")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, StorageMemory, cfg.StorageDriver)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_AdminKeyRequiredInProd(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("ADMIN_KEY", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("ADMIN_KEY", "secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.AdminKey)
}

func TestLoad_DefaultScope(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("custom", func(t *testing.T) {
		t.Setenv("DEFAULT_SEASON", "2026")
		t.Setenv("DEFAULT_WEEK_TYPE", "regular")
		t.Setenv("DEFAULT_WEEK", "7")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "2026:regular:7", cfg.DefaultScope.Key())
	})

	t.Run("unknown week type", func(t *testing.T) {
		t.Setenv("DEFAULT_WEEK_TYPE", "postseason")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("week out of range", func(t *testing.T) {
		t.Setenv("DEFAULT_WEEK", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_SubmitRateLimit(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cases := []struct {
		name  string
		rps   string
		burst string
		ok    bool
	}{
		{name: "disabled", rps: "0", burst: "1", ok: true},
		{name: "negative rps", rps: "-1", burst: "1"},
		{name: "bad rps", rps: "fast", burst: "1"},
		{name: "zero burst", rps: "1", burst: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SUBMIT_RATE_LIMIT_RPS", tc.rps)
			t.Setenv("SUBMIT_RATE_LIMIT_BURST", tc.burst)
			_, err := Load()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://token@api.uptrace.dev?grpc=4317", cfg.UptraceDSN)
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example.com", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})

	t.Run("non positive ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "-1s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative CACHE_TTL")
		}
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SPREAD_PICKEM_TEST_KEY=from-file\nSPREAD_PICKEM_TEST_SET=from-file\n"), 0o600))

	t.Setenv("SPREAD_PICKEM_TEST_SET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("SPREAD_PICKEM_TEST_KEY") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("SPREAD_PICKEM_TEST_KEY"))
	assert.Equal(t, "from-env", os.Getenv("SPREAD_PICKEM_TEST_SET"))
}
