package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/riskibarqy/spread-pickem/internal/config"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
)

// Runtime holds the started telemetry components of one process.
type Runtime struct {
	logger        *logging.Logger
	stopUptrace   func(context.Context) error
	stopPyroscope func() error
	pprofServer   *http.Server
}

// Start brings up tracing, profiling and the pprof listener according to cfg.
// Components that fail to start are logged and skipped so the API can still
// serve traffic.
func Start(cfg config.Config, logger *logging.Logger) *Runtime {
	if logger == nil {
		logger = logging.Default()
	}

	rt := &Runtime{logger: logger}

	stopUptrace, err := InitUptrace(cfg, logger)
	if err != nil {
		logger.Warn("uptrace init failed", "error", err)
	} else {
		rt.stopUptrace = stopUptrace
	}

	stopPyroscope, err := InitPyroscope(cfg, logger)
	if err != nil {
		logger.Warn("pyroscope init failed", "error", err)
	} else {
		rt.stopPyroscope = stopPyroscope
	}

	rt.pprofServer = StartPprofServer(cfg, logger)
	return rt
}

// Shutdown flushes exporters and stops the profiling listeners.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var errs []error
	if err := StopPprofServer(ctx, r.pprofServer, r.logger); err != nil {
		errs = append(errs, err)
	}
	if r.stopPyroscope != nil {
		if err := r.stopPyroscope(); err != nil {
			errs = append(errs, err)
		}
	}
	if r.stopUptrace != nil {
		if err := r.stopUptrace(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
