package httpapi

import (
	"net/http"

	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	verifier SessionVerifier,
	logger *logging.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerSessionRoutes(mux, handler)
	registerPeopleRoutes(mux, handler, verifier)
	registerGameweekRoutes(mux, handler, verifier)
	registerSyncRoutes(mux, handler, verifier)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered",
					"panic", rec,
					"request_id", requestIDFromContext(ctx),
					"path", r.URL.Path,
				)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
