package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/usecase"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	scope, err := h.scopeFromQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	span.SetAttributes(scopeAttrs(scope)...)
	entries, err := h.leaderboardService.List(ctx, scope)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leaderboard failed", "scope", scope.Key(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(scope, entries))
}

// RecomputeLeaderboard rebuilds one scope from pick state, or every scope
// when all=true.
func (h *Handler) RecomputeLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeLeaderboard")
	defer span.End()

	query := r.URL.Query()
	if all, _ := strconv.ParseBool(query.Get("all")); all {
		results, err := h.leaderboardService.RecomputeAll(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "recompute all leaderboards failed", "error", err)
		}
		if err != nil && len(results) == 0 {
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, recomputeResultsToDTO(results))
		return
	}

	var req recomputeRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	scope := h.defaultScope
	if req.Season != 0 || req.WeekType != "" || req.Week != 0 {
		weekType, err := game.ParseWeekType(req.WeekType)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}
		scope = game.Scope{Season: req.Season, WeekType: weekType, Week: req.Week}
	} else if hasScopeQuery(query) {
		s, err := h.scopeFromQuery(query)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		scope = s
	}

	span.SetAttributes(scopeAttrs(scope)...)
	entries, err := h.leaderboardService.Recompute(ctx, scope)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute leaderboard failed", "scope", scope.Key(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(scope, entries))
}
