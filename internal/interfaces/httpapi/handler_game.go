package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/usecase"
)

// ListGames returns games of one scope, or every game when no scope
// parameter is given.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	query := r.URL.Query()
	var scope *game.Scope
	if hasScopeQuery(query) {
		s, err := h.scopeFromQuery(query)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		scope = &s
	}

	items, err := h.gameService.ListByScope(ctx, scope)
	if err != nil {
		h.logger.ErrorContext(ctx, "list games failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gamesToDTO(items, h.now()))
}

// SeedGames inserts a schedule. Existing game ids are left untouched. An
// empty game list seeds the built-in slate.
func (h *Handler) SeedGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeedGames")
	defer span.End()

	var req seedGamesRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	seeds := h.defaultSlate
	if len(req.Games) > 0 {
		seeds = make([]usecase.SeedGame, 0, len(req.Games))
		for i, item := range req.Games {
			seed, err := item.toSeed()
			if err != nil {
				writeError(ctx, w, fmt.Errorf("%w: games[%d]: %v", usecase.ErrInvalidInput, i, err))
				return
			}
			seeds = append(seeds, seed)
		}
	}
	if len(seeds) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: no games to seed", usecase.ErrInvalidInput))
		return
	}

	items, err := h.gameService.Seed(ctx, seeds)
	if err != nil {
		h.logger.WarnContext(ctx, "seed games failed", "count", len(seeds), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gamesToDTO(items, h.now()))
}

func (req seedGameRequest) toSeed() (usecase.SeedGame, error) {
	weekType, err := game.ParseWeekType(req.WeekType)
	if err != nil {
		return usecase.SeedGame{}, err
	}
	gameTime, err := time.Parse(time.RFC3339, strings.TrimSpace(req.GameTime))
	if err != nil {
		return usecase.SeedGame{}, fmt.Errorf("game_time: %w", err)
	}

	return usecase.SeedGame{
		ID:             strings.TrimSpace(req.ID),
		Scope:          game.Scope{Season: req.Season, WeekType: weekType, Week: req.Week},
		HomeTeam:       req.HomeTeam,
		AwayTeam:       req.AwayTeam,
		OriginalSpread: req.OriginalSpread,
		GameTime:       gameTime,
	}, nil
}

// ReportScore records a final score, grades the game's picks and returns the
// refreshed leaderboard of its scope.
func (h *Handler) ReportScore(w http.ResponseWriter, r *http.Request) {
	gameID := strings.TrimSpace(r.PathValue("gameID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReportScore", attribute.String("pickem.game_id", gameID))
	defer span.End()

	var req reportScoreRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.gameService.ReportScore(ctx, usecase.ReportScoreInput{
		GameID:    gameID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "report score failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reportScoreResponse{
		Game:        gameToDTO(result.Game, h.now()),
		GradedPicks: result.GradedPicks,
		Leaderboard: leaderboardToDTO(result.Game.Scope(), result.Leaderboard),
	})
}
