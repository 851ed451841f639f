package leaderboard

import (
	"context"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
)

type Repository interface {
	// ListByScope returns entries ordered by rank.
	ListByScope(ctx context.Context, scope game.Scope) ([]Entry, error)
	// ReplaceScope swaps every entry of the scope for the given set.
	ReplaceScope(ctx context.Context, scope game.Scope, entries []Entry) error
}
