package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/riskibarqy/pl-predictor/internal/config"
	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
)

// Stack holds the running tracing, profiling and pprof components.
type Stack struct {
	logger          *logging.Logger
	tracingShutdown func(context.Context) error
	profilerStop    func() error
	pprofServer     *http.Server
}

// Start brings up every enabled component. On failure anything already
// started is torn down before returning.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("observability")

	tracingShutdown, err := InitUptrace(cfg, logger)
	if err != nil {
		return nil, err
	}
	profilerStop, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = tracingShutdown(context.Background())
		return nil, err
	}

	return &Stack{
		logger:          logger,
		tracingShutdown: tracingShutdown,
		profilerStop:    profilerStop,
		pprofServer:     StartPprofServer(cfg, logger),
	}, nil
}

// Shutdown stops components in reverse start order and joins their errors.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if err := stopPprofServer(ctx, s.pprofServer); err != nil {
		errs = append(errs, err)
	}
	if s.profilerStop != nil {
		if err := s.profilerStop(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.tracingShutdown != nil {
		if err := s.tracingShutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		s.logger.Warn("observability shutdown incomplete", "error", errors.Join(errs...))
	}
	return errors.Join(errs...)
}
