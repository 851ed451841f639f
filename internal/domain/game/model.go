package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// HomeAdvantage is the fixed number of points credited to the home side
// when a published spread is converted into the graded spread.
const HomeAdvantage = 6.0

var (
	ErrUnknownWeekType = errors.New("unknown week type")
	ErrInvalidScope    = errors.New("invalid scope")
	ErrNotFound        = errors.New("game not found")
)

type WeekType string

const (
	WeekTypePreseason WeekType = "preseason"
	WeekTypeRegular   WeekType = "regular"
	WeekTypePlayoffs  WeekType = "playoffs"
)

func ParseWeekType(value string) (WeekType, error) {
	switch WeekType(strings.ToLower(strings.TrimSpace(value))) {
	case WeekTypePreseason:
		return WeekTypePreseason, nil
	case WeekTypeRegular:
		return WeekTypeRegular, nil
	case WeekTypePlayoffs:
		return WeekTypePlayoffs, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWeekType, value)
	}
}

// Scope identifies one leaderboard's universe of games.
type Scope struct {
	Season   int
	WeekType WeekType
	Week     int
}

func (s Scope) Validate() error {
	if s.Season <= 0 {
		return fmt.Errorf("%w: season must be > 0", ErrInvalidScope)
	}
	if _, err := ParseWeekType(string(s.WeekType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScope, err)
	}
	if s.Week <= 0 {
		return fmt.Errorf("%w: week must be > 0", ErrInvalidScope)
	}
	return nil
}

// Key is a stable string form used for locks and cache keys.
func (s Scope) Key() string {
	return fmt.Sprintf("%d:%s:%d", s.Season, s.WeekType, s.Week)
}

func (s Scope) String() string {
	return fmt.Sprintf("%d %s week %d", s.Season, s.WeekType, s.Week)
}

// Game is one spread-adjusted matchup. OriginalSpread is home-relative,
// negative meaning the home team is favored.
type Game struct {
	ID             string
	Season         int
	WeekType       WeekType
	Week           int
	HomeTeam       string
	AwayTeam       string
	OriginalSpread float64
	ModifiedSpread float64
	GameTime       time.Time
	HomeScore      *int
	AwayScore      *int
	IsComplete     bool
}

// ModifiedSpread shifts a published spread by HomeAdvantage in the home
// team's favor.
func ModifiedSpread(originalSpread float64) float64 {
	return originalSpread - HomeAdvantage
}

// NewScheduled builds a not-yet-played game and fixes its graded spread.
func NewScheduled(id string, scope Scope, homeTeam, awayTeam string, originalSpread float64, gameTime time.Time) Game {
	return Game{
		ID:             id,
		Season:         scope.Season,
		WeekType:       scope.WeekType,
		Week:           scope.Week,
		HomeTeam:       strings.TrimSpace(homeTeam),
		AwayTeam:       strings.TrimSpace(awayTeam),
		OriginalSpread: originalSpread,
		ModifiedSpread: ModifiedSpread(originalSpread),
		GameTime:       gameTime.UTC(),
	}
}

func (g Game) Scope() Scope {
	return Scope{Season: g.Season, WeekType: g.WeekType, Week: g.Week}
}

// Started reports whether the pick deadline has passed. A game starting
// exactly at now counts as started.
func (g Game) Started(now time.Time) bool {
	return !g.GameTime.After(now)
}

// Closed reports whether picks on the game are locked: it has started or a
// final score is already on record.
func (g Game) Closed(now time.Time) bool {
	return g.IsComplete || g.Started(now)
}

// Final returns the final score once the game is complete.
func (g Game) Final() (home, away int, ok bool) {
	if !g.IsComplete || g.HomeScore == nil || g.AwayScore == nil {
		return 0, 0, false
	}
	return *g.HomeScore, *g.AwayScore, true
}

func (g Game) Matchup() string {
	return g.AwayTeam + " @ " + g.HomeTeam
}
