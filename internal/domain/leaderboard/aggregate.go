package leaderboard

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/pick"
)

// Tally holds the graded counts for one participant.
type Tally struct {
	TotalPicks   int
	CorrectPicks int
	Ties         int
	TotalPoints  float64
}

// Add counts one pick. Picks whose game is not complete are ignored, so
// TotalPicks is always the number of graded picks.
func (t *Tally) Add(p pick.Pick, gameComplete bool) {
	if !gameComplete {
		return
	}
	t.TotalPicks++
	if p.Points == nil {
		return
	}
	switch *p.Points {
	case pick.PointsWin:
		t.CorrectPicks++
	case pick.PointsPush:
		t.Ties++
	}
	t.TotalPoints += *p.Points
}

func (t Tally) WinPercentage() float64 {
	if t.TotalPicks == 0 {
		return 0
	}
	return float64(t.CorrectPicks) / float64(t.TotalPicks) * 100
}

// Aggregate projects scope picks into ranked entries. handles maps
// participant id to display handle for ordering. Every participant with at
// least one pick in scope gets an entry, graded or not.
func Aggregate(scope game.Scope, picks []pick.ScopedPick, handles map[string]string, now time.Time) []Entry {
	tallies := make(map[string]*Tally)
	order := make([]string, 0)
	for _, item := range picks {
		t, exists := tallies[item.ParticipantID]
		if !exists {
			t = &Tally{}
			tallies[item.ParticipantID] = t
			order = append(order, item.ParticipantID)
		}
		t.Add(item.Pick, item.GameComplete)
	}

	entries := make([]Entry, 0, len(order))
	for _, participantID := range order {
		t := tallies[participantID]
		entries = append(entries, Entry{
			ParticipantID: participantID,
			Handle:        handles[participantID],
			Scope:         scope,
			TotalPicks:    t.TotalPicks,
			CorrectPicks:  t.CorrectPicks,
			Ties:          t.Ties,
			TotalPoints:   t.TotalPoints,
			WinPercentage: t.WinPercentage(),
			UpdatedAt:     now,
		})
	}

	Rank(entries)
	return entries
}

// Rank sorts entries in place and assigns sequential 1-based ranks.
// Order: points desc, outright wins desc, handle asc, participant id asc.
func Rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.CorrectPicks != b.CorrectPicks {
			return a.CorrectPicks > b.CorrectPicks
		}
		ah, bh := strings.ToLower(a.Handle), strings.ToLower(b.Handle)
		if ah != bh {
			return ah < bh
		}
		return a.ParticipantID < b.ParticipantID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
