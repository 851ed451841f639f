package schedule

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/usecase"
)

var errInvalidSchedule = crerr.New("invalid schedule")

// Entry is one row of a schedule file. Spreads are home-relative, negative
// meaning the home team is favored.
type Entry struct {
	ID             string  `json:"id,omitempty"`
	Season         int     `json:"season"`
	WeekType       string  `json:"week_type"`
	Week           int     `json:"week"`
	HomeTeam       string  `json:"home_team"`
	AwayTeam       string  `json:"away_team"`
	OriginalSpread float64 `json:"original_spread"`
	GameTime       string  `json:"game_time"`
}

func LoadFile(path string) ([]usecase.SeedGame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open schedule %s", path)
	}
	defer f.Close()

	out, err := Decode(f)
	if err != nil {
		return nil, crerr.Wrapf(err, "load schedule %s", path)
	}
	return out, nil
}

// Decode reads a JSON array of entries.
func Decode(r io.Reader) ([]usecase.SeedGame, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, crerr.Wrap(err, "read schedule")
	}

	var entries []Entry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, crerr.Wrap(err, "decode schedule")
	}
	if len(entries) == 0 {
		return nil, crerr.Wrap(errInvalidSchedule, "schedule has no games")
	}

	out := make([]usecase.SeedGame, 0, len(entries))
	for i, item := range entries {
		seed, err := item.toSeed()
		if err != nil {
			return nil, crerr.Wrapf(err, "entry %d", i)
		}
		out = append(out, seed)
	}
	return out, nil
}

func (e Entry) toSeed() (usecase.SeedGame, error) {
	weekType, err := game.ParseWeekType(e.WeekType)
	if err != nil {
		return usecase.SeedGame{}, crerr.Mark(err, errInvalidSchedule)
	}
	gameTime, err := time.Parse(time.RFC3339, strings.TrimSpace(e.GameTime))
	if err != nil {
		return usecase.SeedGame{}, crerr.Mark(crerr.Wrapf(err, "game_time %q", e.GameTime), errInvalidSchedule)
	}

	return usecase.SeedGame{
		ID:             strings.TrimSpace(e.ID),
		Scope:          game.Scope{Season: e.Season, WeekType: weekType, Week: e.Week},
		HomeTeam:       e.HomeTeam,
		AwayTeam:       e.AwayTeam,
		OriginalSpread: e.OriginalSpread,
		GameTime:       gameTime.UTC(),
	}, nil
}

// IsInvalid reports whether err came from a malformed schedule rather than
// an I/O failure.
func IsInvalid(err error) bool {
	return crerr.Is(err, errInvalidSchedule)
}
