package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
	"github.com/riskibarqy/spread-pickem/internal/usecase"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	gameService        *usecase.GameService
	pickService        *usecase.PickService
	leaderboardService *usecase.LeaderboardService
	defaultScope       game.Scope
	defaultSlate       []usecase.SeedGame
	logger             *logging.Logger
	validator          *validator.Validate
	now                func() time.Time
}

// NewHandler wires the HTTP handlers. defaultScope fills missing scope query
// parameters and defaultSlate is seeded when a seed request lists no games.
func NewHandler(
	gameService *usecase.GameService,
	pickService *usecase.PickService,
	leaderboardService *usecase.LeaderboardService,
	defaultScope game.Scope,
	defaultSlate []usecase.SeedGame,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameService:        gameService,
		pickService:        pickService,
		leaderboardService: leaderboardService,
		defaultScope:       defaultScope,
		defaultSlate:       defaultSlate,
		logger:             logger,
		validator:          validator.New(),
		now:                time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a bounded body. An empty body leaves target untouched
// when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any, allowEmpty bool) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// scopeFromQuery reads season, week_type and week. Missing values fall back
// to the configured default scope.
func (h *Handler) scopeFromQuery(query url.Values) (game.Scope, error) {
	scope := h.defaultScope

	if raw := strings.TrimSpace(query.Get("season")); raw != "" {
		season, err := strconv.Atoi(raw)
		if err != nil {
			return game.Scope{}, fmt.Errorf("%w: season must be a number", usecase.ErrInvalidInput)
		}
		scope.Season = season
	}
	if raw := strings.TrimSpace(query.Get("week_type")); raw != "" {
		weekType, err := game.ParseWeekType(raw)
		if err != nil {
			return game.Scope{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		scope.WeekType = weekType
	}
	if raw := strings.TrimSpace(query.Get("week")); raw != "" {
		week, err := strconv.Atoi(raw)
		if err != nil {
			return game.Scope{}, fmt.Errorf("%w: week must be a number", usecase.ErrInvalidInput)
		}
		scope.Week = week
	}

	if err := scope.Validate(); err != nil {
		return game.Scope{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return scope, nil
}

func hasScopeQuery(query url.Values) bool {
	for _, key := range []string{"season", "week_type", "week"} {
		if strings.TrimSpace(query.Get(key)) != "" {
			return true
		}
	}
	return false
}
