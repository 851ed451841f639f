package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/spread-pickem/internal/config"
	"github.com/riskibarqy/spread-pickem/internal/infrastructure/schedule"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:               config.EnvDev,
		ServiceName:          "spread-pickem-api",
		HTTPAddr:             ":0",
		ReadTimeout:          time.Second,
		WriteTimeout:         time.Second,
		StorageDriver:        config.StorageMemory,
		CacheEnabled:         true,
		CacheTTL:             time.Minute,
		CORSAllowedOrigins:   []string{"*"},
		AdminKey:             "admin",
		SubmitRateLimitBurst: 1,
		DefaultScope:         schedule.DefaultScope(),
		RecomputeWorkers:     2,
	}
}

func TestBuild_MemorySeedsDefaultSlate(t *testing.T) {
	c, err := Build(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	defer c.Close()

	scope := schedule.DefaultScope()
	games, err := c.Games.ListByScope(context.Background(), &scope)
	require.NoError(t, err)
	assert.Len(t, games, len(schedule.Default()))
	assert.Nil(t, c.Verifier)
}

func TestBuild_WithJWTSecret(t *testing.T) {
	cfg := memoryConfig()
	cfg.AuthJWTSecret = "secret"
	cfg.AuthJWTIssuer = "spread-pickem"

	c, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, c.Verifier)

	token, err := c.Verifier.Issue("Dana", time.Hour)
	require.NoError(t, err)
	principal, err := c.Verifier.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "Dana", principal.Handle)
}

func TestBuild_UnknownStorage(t *testing.T) {
	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"

	_, err := Build(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestContainer_NewHTTPServer(t *testing.T) {
	c, err := Build(context.Background(), memoryConfig(), nil)
	require.NoError(t, err)

	srv, err := c.NewHTTPServer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/games", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"home_team"`)

	c.Config.HTTPAddr = ""
	_, err = c.NewHTTPServer()
	assert.Error(t, err)
}
