package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	games map[string]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	byID := make(map[string]game.Game, len(games))
	for _, item := range games {
		byID[item.ID] = cloneGame(item)
	}
	return &GameRepository{games: byID}
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.games[gameID]
	if !ok {
		return game.Game{}, false, nil
	}
	return cloneGame(item), true, nil
}

func (r *GameRepository) ListByIDs(_ context.Context, gameIDs []string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(gameIDs))
	seen := make(map[string]struct{}, len(gameIDs))
	for _, gameID := range gameIDs {
		if _, dup := seen[gameID]; dup {
			continue
		}
		seen[gameID] = struct{}{}
		if item, ok := r.games[gameID]; ok {
			out = append(out, cloneGame(item))
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) ListByScope(_ context.Context, scope game.Scope) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.games {
		if item.Scope() == scope {
			out = append(out, cloneGame(item))
		}
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) ListAll(_ context.Context) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.games))
	for _, item := range r.games {
		out = append(out, cloneGame(item))
	}
	sortGames(out)
	return out, nil
}

func (r *GameRepository) ListScopes(_ context.Context) ([]game.Scope, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[game.Scope]struct{})
	out := make([]game.Scope, 0)
	for _, item := range r.games {
		scope := item.Scope()
		if _, ok := seen[scope]; ok {
			continue
		}
		seen[scope] = struct{}{}
		out = append(out, scope)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key() < out[j].Key()
	})
	return out, nil
}

func (r *GameRepository) Upsert(_ context.Context, item game.Game) (game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.games[item.ID]; ok {
		return cloneGame(existing), nil
	}
	r.games[item.ID] = cloneGame(item)
	return cloneGame(item), nil
}

// complete stores the final score of an already graded game. The pick
// repository calls it while holding its own lock.
func (r *GameRepository) complete(item game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.games[item.ID]
	if !ok {
		return game.ErrNotFound
	}
	stored.HomeScore = item.HomeScore
	stored.AwayScore = item.AwayScore
	stored.IsComplete = item.IsComplete
	r.games[item.ID] = cloneGame(stored)
	return nil
}

// snapshot returns games by id under a read lock for the pick repository's
// deadline re-check.
func (r *GameRepository) snapshot(gameIDs []string) map[string]game.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]game.Game, len(gameIDs))
	for _, gameID := range gameIDs {
		if item, ok := r.games[gameID]; ok {
			out[gameID] = cloneGame(item)
		}
	}
	return out
}

func cloneGame(item game.Game) game.Game {
	if item.HomeScore != nil {
		v := *item.HomeScore
		item.HomeScore = &v
	}
	if item.AwayScore != nil {
		v := *item.AwayScore
		item.AwayScore = &v
	}
	return item
}

func sortGames(items []game.Game) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].GameTime.Equal(items[j].GameTime) {
			return items[i].GameTime.Before(items[j].GameTime)
		}
		return items[i].ID < items[j].ID
	})
}
