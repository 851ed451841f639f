package pick

import (
	"math"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
)

const (
	PointsWin  = 1.0
	PointsPush = 0.5
	PointsLoss = 0.0
)

// pushTolerance absorbs float noise from fractional spreads.
const pushTolerance = 1e-9

// Result is the graded state of one pick.
type Result struct {
	IsCorrect bool
	Points    float64
}

// SpreadResult is the home margin adjusted by the graded spread. Positive
// means the home side covered, negative the away side, zero is a push.
func SpreadResult(homeScore, awayScore int, modifiedSpread float64) float64 {
	return float64(homeScore-awayScore) + modifiedSpread
}

// Evaluate grades one side against a spread result. A push is never
// correct but still earns half a point.
func Evaluate(spreadResult float64, team Team) Result {
	if math.Abs(spreadResult) < pushTolerance {
		return Result{IsCorrect: false, Points: PointsPush}
	}

	var correct bool
	if team == TeamHome {
		correct = spreadResult > 0
	} else {
		correct = spreadResult < 0
	}
	if correct {
		return Result{IsCorrect: true, Points: PointsWin}
	}
	return Result{IsCorrect: false, Points: PointsLoss}
}

// Grade applies the game's final result to every pick made on it. It
// returns ok=false without touching anything when the game has no final
// score. Grading only depends on the final score and the picked side, so
// running it again reproduces the same values.
func Grade(g game.Game, picks []Pick) ([]Pick, bool) {
	home, away, ok := g.Final()
	if !ok {
		return nil, false
	}

	spreadResult := SpreadResult(home, away, g.ModifiedSpread)
	out := make([]Pick, 0, len(picks))
	for _, p := range picks {
		if p.GameID != g.ID {
			continue
		}
		res := Evaluate(spreadResult, p.PickedTeam)
		isCorrect := res.IsCorrect
		points := res.Points
		p.IsCorrect = &isCorrect
		p.Points = &points
		out = append(out, p)
	}

	return out, true
}
