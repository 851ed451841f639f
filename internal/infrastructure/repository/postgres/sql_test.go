package postgres

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/pick"
)

func TestGameFromRow(t *testing.T) {
	kickoff := time.Date(2025, 8, 7, 19, 0, 0, 0, time.FixedZone("EDT", -4*3600))
	row := gameTableModel{
		ID:             "game-1",
		Season:         2025,
		WeekType:       "preseason",
		Week:           1,
		HomeTeam:       "Cincinnati Bengals",
		AwayTeam:       "Philadelphia Eagles",
		OriginalSpread: -1,
		ModifiedSpread: -7,
		GameTime:       kickoff,
		HomeScore:      sql.NullInt64{Int64: 27, Valid: true},
		AwayScore:      sql.NullInt64{},
	}

	got := gameFromRow(row)
	if got.GameTime.Location() != time.UTC || !got.GameTime.Equal(kickoff) {
		t.Fatalf("expected UTC game time, got %v", got.GameTime)
	}
	if got.HomeScore == nil || *got.HomeScore != 27 {
		t.Fatalf("unexpected home score %v", got.HomeScore)
	}
	if got.AwayScore != nil {
		t.Fatalf("expected nil away score")
	}
	if got.Scope() != (game.Scope{Season: 2025, WeekType: game.WeekTypePreseason, Week: 1}) {
		t.Fatalf("unexpected scope %+v", got.Scope())
	}
	if _, _, ok := got.Final(); ok {
		t.Fatalf("game with a missing score must not be final")
	}
}

func TestPickFromRow(t *testing.T) {
	t.Run("ungraded", func(t *testing.T) {
		got := pickFromRow(pickTableModel{ID: "p1", PickedTeam: "away"})
		if got.Graded() || got.Outcome() != pick.OutcomePending {
			t.Fatalf("expected pending pick, got %+v", got)
		}
	})

	t.Run("push", func(t *testing.T) {
		got := pickFromRow(pickTableModel{
			ID:         "p2",
			PickedTeam: "home",
			IsCorrect:  sql.NullBool{Bool: false, Valid: true},
			Points:     sql.NullFloat64{Float64: 0.5, Valid: true},
		})
		if got.Outcome() != pick.OutcomePush {
			t.Fatalf("expected push, got %s", got.Outcome())
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows to be not found")
	}
	if isNotFound(sql.ErrConnDone) {
		t.Fatalf("expected ErrConnDone to be a real error")
	}
}

func TestBuildReplacePicksInsert_UpsertsOnParticipantGame(t *testing.T) {
	created := time.Date(2025, 8, 7, 12, 0, 0, 0, time.UTC)
	query, args, err := buildReplacePicksInsert([]pickInsertModel{
		{ID: "pick_1", ParticipantID: "usr_1", GameID: "game-1", PickedTeam: "home", CreatedAt: created},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(query, "ON CONFLICT (participant_id, game_id) DO UPDATE SET") {
		t.Fatalf("a concurrent insert for the same game must replace, got %s", query)
	}
	if !strings.Contains(query, "is_correct = NULL, points = NULL") {
		t.Fatalf("a replaced pick must drop any stale grade, got %s", query)
	}
	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(args))
	}
}

func TestBuildCompleteGameQuery(t *testing.T) {
	query, args, err := buildCompleteGameQuery("game-1", 27, 17)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasPrefix(query, "UPDATE games SET") || !strings.Contains(query, "RETURNING id,") {
		t.Fatalf("unexpected query %s", query)
	}
	if len(args) != 4 || args[0] != 27 || args[1] != 17 || args[2] != true || args[3] != "game-1" {
		t.Fatalf("unexpected args %v", args)
	}
}
