package game

import "context"

// Repository exposes game persistence.
type Repository interface {
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	ListByIDs(ctx context.Context, gameIDs []string) ([]Game, error)
	ListByScope(ctx context.Context, scope Scope) ([]Game, error)
	ListAll(ctx context.Context) ([]Game, error)
	ListScopes(ctx context.Context) ([]Scope, error)
	// Upsert inserts the game when absent and leaves an existing row untouched.
	Upsert(ctx context.Context, item Game) (Game, error)
}
