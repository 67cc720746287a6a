package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/pl-predictor/internal/infrastructure/session"
	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
	"github.com/riskibarqy/pl-predictor/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// SessionManager issues and verifies login sessions.
type SessionManager interface {
	SessionVerifier
	Login(ctx context.Context, username, password string) (string, session.Principal, error)
	TTL() time.Duration
}

type Handler struct {
	personService      *usecase.PersonService
	fixtureService     *usecase.FixtureService
	syncService        *usecase.SyncService
	predictionService  *usecase.PredictionService
	leaderboardService *usecase.LeaderboardService
	sessions           SessionManager
	secureCookies      bool
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	personService *usecase.PersonService,
	fixtureService *usecase.FixtureService,
	syncService *usecase.SyncService,
	predictionService *usecase.PredictionService,
	leaderboardService *usecase.LeaderboardService,
	sessions SessionManager,
	secureCookies bool,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		personService:      personService,
		fixtureService:     fixtureService,
		syncService:        syncService,
		predictionService:  predictionService,
		leaderboardService: leaderboardService,
		sessions:           sessions,
		secureCookies:      secureCookies,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func gameweekFromPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("gameweek"))
	gameweek, err := strconv.Atoi(raw)
	if err != nil || gameweek <= 0 {
		return 0, fmt.Errorf("%w: gameweek must be a positive integer, got %q", usecase.ErrInvalidInput, raw)
	}
	return gameweek, nil
}

// logFailure keeps client errors at warn so 5xx stand out.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}
