package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/pick"
)

type pickKey struct {
	participantID string
	gameID        string
}

// PickRepository keeps picks keyed by (participant, game). It reads game
// state from the GameRepository it is built with.
type PickRepository struct {
	mu    sync.RWMutex
	games *GameRepository
	picks map[pickKey]pick.Pick
}

func NewPickRepository(games *GameRepository) *PickRepository {
	return &PickRepository{
		games: games,
		picks: make(map[pickKey]pick.Pick),
	}
}

func (r *PickRepository) ListByGame(_ context.Context, gameID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for key, item := range r.picks {
		if key.gameID == gameID {
			out = append(out, clonePick(item))
		}
	}
	sortPicks(out)
	return out, nil
}

func (r *PickRepository) ListByParticipant(_ context.Context, participantID string, scope *game.Scope) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var gameIDs []string
	for key := range r.picks {
		if key.participantID == participantID {
			gameIDs = append(gameIDs, key.gameID)
		}
	}
	games := r.games.snapshot(gameIDs)

	out := make([]pick.Pick, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		g, ok := games[gameID]
		if !ok {
			continue
		}
		if scope != nil && g.Scope() != *scope {
			continue
		}
		out = append(out, clonePick(r.picks[pickKey{participantID: participantID, gameID: gameID}]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := games[out[i].GameID], games[out[j].GameID]
		if !a.GameTime.Equal(b.GameTime) {
			return a.GameTime.Before(b.GameTime)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *PickRepository) ListByScope(ctx context.Context, scope game.Scope) ([]pick.ScopedPick, error) {
	scopeGames, err := r.games.ListByScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	complete := make(map[string]bool, len(scopeGames))
	for _, g := range scopeGames {
		complete[g.ID] = g.IsComplete
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.ScopedPick, 0)
	for key, item := range r.picks {
		isComplete, inScope := complete[key.gameID]
		if !inScope {
			continue
		}
		out = append(out, pick.ScopedPick{Pick: clonePick(item), GameComplete: isComplete})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ParticipantID != out[j].ParticipantID {
			return out[i].ParticipantID < out[j].ParticipantID
		}
		return out[i].GameID < out[j].GameID
	})
	return out, nil
}

// RecordFinal grades against a completed copy of the game before writing
// either, so a failure leaves both the game and its picks unchanged.
func (r *PickRepository) RecordFinal(_ context.Context, gameID string, homeScore, awayScore int) (game.Game, []pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	completed, ok := r.games.snapshot([]string{gameID})[gameID]
	if !ok {
		return game.Game{}, nil, game.ErrNotFound
	}
	completed.HomeScore = &homeScore
	completed.AwayScore = &awayScore
	completed.IsComplete = true

	current := make([]pick.Pick, 0)
	for key, item := range r.picks {
		if key.gameID == gameID {
			current = append(current, clonePick(item))
		}
	}
	sortPicks(current)

	graded, ok := pick.Grade(completed, current)
	if !ok {
		return game.Game{}, nil, fmt.Errorf("game %s has no final score", gameID)
	}
	if err := r.games.complete(completed); err != nil {
		return game.Game{}, nil, err
	}
	for _, item := range graded {
		r.picks[pickKey{participantID: item.ParticipantID, gameID: gameID}] = clonePick(item)
	}
	return cloneGame(completed), graded, nil
}

func (r *PickRepository) ReplaceForGames(_ context.Context, participantID string, picks []pick.Pick, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	gameIDs := make([]string, 0, len(picks))
	for _, item := range picks {
		gameIDs = append(gameIDs, item.GameID)
	}
	games := r.games.snapshot(gameIDs)

	referenced := make([]game.Game, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		g, ok := games[gameID]
		if !ok {
			return 0, fmt.Errorf("%w: %s", game.ErrNotFound, gameID)
		}
		referenced = append(referenced, g)
	}
	if err := pick.CheckDeadlines(referenced, now); err != nil {
		return 0, err
	}

	for _, item := range picks {
		key := pickKey{participantID: participantID, gameID: item.GameID}
		delete(r.picks, key)
	}
	for _, item := range picks {
		item.ParticipantID = participantID
		r.picks[pickKey{participantID: participantID, gameID: item.GameID}] = clonePick(item)
	}
	return len(picks), nil
}

func clonePick(item pick.Pick) pick.Pick {
	if item.IsCorrect != nil {
		v := *item.IsCorrect
		item.IsCorrect = &v
	}
	if item.Points != nil {
		v := *item.Points
		item.Points = &v
	}
	return item
}

func sortPicks(items []pick.Pick) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ParticipantID != items[j].ParticipantID {
			return items[i].ParticipantID < items[j].ParticipantID
		}
		return items[i].GameID < items[j].GameID
	})
}
