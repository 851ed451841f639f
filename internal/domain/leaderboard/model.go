package leaderboard

import (
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
)

// Entry is one participant's cached standing for a scope. It is derived
// from pick state and rebuilt on every recompute.
type Entry struct {
	ParticipantID string
	Handle        string
	Scope         game.Scope
	TotalPicks    int
	CorrectPicks  int
	Ties          int
	TotalPoints   float64
	WinPercentage float64
	Rank          int
	UpdatedAt     time.Time
}

func (e Entry) IncorrectPicks() int {
	return e.TotalPicks - e.CorrectPicks - e.Ties
}
