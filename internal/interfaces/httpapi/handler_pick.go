package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/usecase"
)

// SubmitPicks replaces the caller's picks on every game in the payload. A
// verified bearer token decides the handle; otherwise username is used.
func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	var req submitPicksRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	handle := req.Username
	if principal, ok := principalFromContext(ctx); ok {
		handle = principal.Handle
	}

	picks := make([]usecase.PickInput, 0, len(req.Picks))
	for _, item := range req.Picks {
		picks = append(picks, usecase.PickInput{GameID: item.GameID, PickedTeam: item.PickedTeam})
	}

	result, err := h.pickService.Submit(ctx, usecase.SubmitPicksInput{Handle: handle, Picks: picks})
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "handle", strings.TrimSpace(handle), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submitPicksResponse{
		ParticipantID: result.Participant.ID,
		Username:      result.Participant.Handle,
		Count:         result.Count,
	})
}

// ListParticipantPicks returns one participant's picks with results. Scope
// query parameters default to the configured week; all=true lists every
// scope.
func (h *Handler) ListParticipantPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListParticipantPicks")
	defer span.End()

	handle := strings.TrimSpace(r.PathValue("handle"))
	query := r.URL.Query()

	var scope *game.Scope
	all, _ := strconv.ParseBool(query.Get("all"))
	if !all {
		s, err := h.scopeFromQuery(query)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		scope = &s
	}

	result, err := h.pickService.ListParticipantPicks(ctx, handle, scope)
	if err != nil {
		h.logger.WarnContext(ctx, "list participant picks failed", "handle", handle, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantPicksToDTO(result, scope, h.now()))
}
