package schedule

import (
	"fmt"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/usecase"
)

var (
	eastern  = time.FixedZone("EDT", -4*60*60)
	central  = time.FixedZone("CDT", -5*60*60)
	pacific  = time.FixedZone("PDT", -7*60*60)
	defScope = game.Scope{Season: 2025, WeekType: game.WeekTypePreseason, Week: 1}
)

type slateGame struct {
	home, away string
	spread     float64
	kickoff    time.Time
}

func kickoff(day, hour, minute int, loc *time.Location) time.Time {
	return time.Date(2025, time.August, day, hour, minute, 0, 0, loc)
}

var preseasonWeek1 = []slateGame{
	{"Baltimore Ravens", "Indianapolis Colts", 4, kickoff(7, 20, 0, eastern)},
	{"Philadelphia Eagles", "Cincinnati Bengals", 3.5, kickoff(7, 20, 0, eastern)},
	{"Seattle Seahawks", "Las Vegas Raiders", 1.5, kickoff(7, 22, 0, pacific)},
	{"Atlanta Falcons", "Detroit Lions", 3, kickoff(8, 19, 30, eastern)},
	{"Carolina Panthers", "Cleveland Browns", -2.5, kickoff(8, 19, 30, eastern)},
	{"New England Patriots", "Washington Commanders", -2.5, kickoff(8, 19, 30, eastern)},
	{"Buffalo Bills", "New York Giants", -2.5, kickoff(9, 13, 0, eastern)},
	{"Minnesota Vikings", "Houston Texans", -2.5, kickoff(9, 13, 0, central)},
	{"Jacksonville Jaguars", "Pittsburgh Steelers", -1.5, kickoff(9, 19, 30, eastern)},
	{"Los Angeles Rams", "Dallas Cowboys", 3, kickoff(9, 16, 0, pacific)},
	{"Tampa Bay Buccaneers", "Tennessee Titans", 1.5, kickoff(9, 19, 30, eastern)},
	{"Arizona Cardinals", "Kansas City Chiefs", 1.5, kickoff(9, 17, 0, pacific)},
	{"Green Bay Packers", "New York Jets", -1.5, kickoff(9, 20, 0, central)},
	{"San Francisco 49ers", "Denver Broncos", 3, kickoff(9, 20, 0, pacific)},
	{"Chicago Bears", "Miami Dolphins", -2.5, kickoff(10, 13, 0, central)},
	{"Los Angeles Chargers", "New Orleans Saints", 2.5, kickoff(10, 16, 0, pacific)},
}

// DefaultScope is the week the built-in slate covers.
func DefaultScope() game.Scope {
	return defScope
}

// Default returns the 2025 preseason week 1 slate with ids game-1..game-16.
func Default() []usecase.SeedGame {
	out := make([]usecase.SeedGame, 0, len(preseasonWeek1))
	for i, item := range preseasonWeek1 {
		out = append(out, usecase.SeedGame{
			ID:             fmt.Sprintf("game-%d", i+1),
			Scope:          defScope,
			HomeTeam:       item.home,
			AwayTeam:       item.away,
			OriginalSpread: item.spread,
			GameTime:       item.kickoff.UTC(),
		})
	}
	return out
}
