package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/pl-predictor/internal/config"
	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
)

func TestInitUptrace_DisabledIsNoop(t *testing.T) {
	cfg := config.Config{
		ServiceName:    "pl-predictor-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitUptrace_EnabledWithoutDSNIsNoop(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "  "}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStart_AllDisabled(t *testing.T) {
	stack, err := Start(config.Config{AppEnv: config.EnvDev}, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, stack)
	assert.Nil(t, stack.pprofServer)
	assert.NoError(t, stack.Shutdown(context.Background()))

	var nilStack *Stack
	assert.NoError(t, nilStack.Shutdown(context.Background()))
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	newPprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutine")
}
