package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("participant_id", "COUNT(*)").
		From("picks").
		Where(Eq("game_id", "game-1")).
		GroupBy("participant_id").
		OrderBy("participant_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT participant_id, COUNT(*) FROM picks WHERE game_id = $1 GROUP BY participant_id ORDER BY participant_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "game-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("participants").
		Columns("id", "handle").
		Values("u1", "alice").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO participants (id, handle) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != "alice" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("games").
		Set("home_score", 24).
		SetExpr("updated_at", "NOW()").
		SetExpr("version", "version + ?", 1).
		Where(Eq("id", "game-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE games SET home_score = $1, updated_at = NOW(), version = version + $2 WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 24 || args[1] != 1 || args[2] != "game-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderJoinAndLock(t *testing.T) {
	query, args, err := Select("p.id", "g.is_complete").
		From("picks p").
		Join("JOIN games g ON g.id = p.game_id").
		Where(Eq("g.season", 2025), InStrings("p.game_id", []string{"game-1", "game-2"})).
		OrderBy("p.id").
		Suffix("FOR UPDATE OF g").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT p.id, g.is_complete FROM picks p JOIN games g ON g.id = p.game_id WHERE g.season = $1 AND p.game_id IN ($2, $3) ORDER BY p.id FOR UPDATE OF g"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != "game-2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInStringsEmptyMatchesNothing(t *testing.T) {
	query, _, err := Select("id").From("games").Where(InStrings("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM games WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("picks").
		Where(Eq("participant_id", "u1"), InStrings("game_id", []string{"game-1"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM picks WHERE participant_id = $1 AND game_id IN ($2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("picks").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

type testRow struct {
	ID     string  `db:"id"`
	Points float64 `db:"points"`
}

func TestInsertModels(t *testing.T) {
	query, args, err := InsertModels("picks", []testRow{{ID: "a", Points: 1}, {ID: "b", Points: 0.5}}, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO picks (id, points) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != 0.5 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
