package pick

import (
	"context"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
)

type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]Pick, error)
	// ListByParticipant returns picks ordered by game time; scope nil means all scopes.
	ListByParticipant(ctx context.Context, participantID string, scope *game.Scope) ([]Pick, error)
	ListByScope(ctx context.Context, scope game.Scope) ([]ScopedPick, error)
	// RecordFinal stores the final score, marks the game complete and grades
	// every pick on it in one transaction. It returns game.ErrNotFound for an
	// unknown game and leaves nothing changed on any error.
	RecordFinal(ctx context.Context, gameID string, homeScore, awayScore int) (game.Game, []Pick, error)
	// ReplaceForGames deletes the participant's picks on the given games and
	// inserts the new ones in one transaction. It re-checks every game's
	// deadline against now inside that transaction and returns a
	// *GameStartedError without changing anything when one has passed.
	ReplaceForGames(ctx context.Context, participantID string, picks []Pick, now time.Time) (int, error)
}
