package pick

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
)

var (
	ErrUnknownTeam   = errors.New("unknown picked team")
	ErrGameStarted   = errors.New("game already started")
	ErrDuplicateGame = errors.New("duplicate game in submission")
)

type Team string

const (
	TeamHome Team = "home"
	TeamAway Team = "away"
)

func ParseTeam(value string) (Team, error) {
	switch Team(strings.ToLower(strings.TrimSpace(value))) {
	case TeamHome:
		return TeamHome, nil
	case TeamAway:
		return TeamAway, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTeam, value)
	}
}

// Pick is one participant's side on one game. IsCorrect and Points stay
// nil until the game is graded and are always set together.
type Pick struct {
	ID            string
	ParticipantID string
	GameID        string
	PickedTeam    Team
	IsCorrect     *bool
	Points        *float64
	CreatedAt     time.Time
}

func (p Pick) Graded() bool {
	return p.IsCorrect != nil && p.Points != nil
}

// ScopedPick is a pick joined with the completion state of its game.
type ScopedPick struct {
	Pick
	GameComplete bool
}

type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomePush    Outcome = "push"
)

func (p Pick) Outcome() Outcome {
	if !p.Graded() {
		return OutcomePending
	}
	switch {
	case *p.IsCorrect:
		return OutcomeWin
	case *p.Points == PointsPush:
		return OutcomePush
	default:
		return OutcomeLoss
	}
}

// GameStartedError lists every game in a submission whose deadline passed.
type GameStartedError struct {
	Games []game.Game
}

func (e *GameStartedError) Error() string {
	matchups := make([]string, 0, len(e.Games))
	for _, g := range e.Games {
		matchups = append(matchups, g.Matchup())
	}
	return "cannot submit picks for games that have already started: " + strings.Join(matchups, ", ")
}

func (e *GameStartedError) Unwrap() error {
	return ErrGameStarted
}

// CheckDeadlines returns a GameStartedError naming each closed game. A game
// with a reported score is closed even if its kickoff is still ahead.
func CheckDeadlines(games []game.Game, now time.Time) error {
	var started []game.Game
	for _, g := range games {
		if g.Closed(now) {
			started = append(started, g)
		}
	}
	if len(started) == 0 {
		return nil
	}
	return &GameStartedError{Games: started}
}
