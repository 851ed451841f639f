package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/leaderboard"
)

type LeaderboardRepository struct {
	mu      sync.RWMutex
	byScope map[game.Scope][]leaderboard.Entry
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{byScope: make(map[game.Scope][]leaderboard.Entry)}
}

func (r *LeaderboardRepository) ListByScope(_ context.Context, scope game.Scope) ([]leaderboard.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byScope[scope]
	out := make([]leaderboard.Entry, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *LeaderboardRepository) ReplaceScope(_ context.Context, scope game.Scope, entries []leaderboard.Entry) error {
	items := make([]leaderboard.Entry, 0, len(entries))
	items = append(items, entries...)
	leaderboard.Rank(items)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(items) == 0 {
		delete(r.byScope, scope)
		return nil
	}
	r.byScope[scope] = items
	return nil
}
