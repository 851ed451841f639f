package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/spread-pickem/internal/config"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	cfg := config.Config{
		ServiceName:    "spread-pickem-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	rt := Start(cfg, logging.NewNop())
	require.NotNil(t, rt)
	assert.Nil(t, rt.pprofServer)
	assert.NoError(t, rt.Shutdown(context.Background()))
}

func TestInitUptrace_EnabledWithoutDSN(t *testing.T) {
	shutdown, err := InitUptrace(config.Config{UptraceEnabled: true}, nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestRuntime_NilShutdown(t *testing.T) {
	var rt *Runtime
	assert.NoError(t, rt.Shutdown(context.Background()))
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
