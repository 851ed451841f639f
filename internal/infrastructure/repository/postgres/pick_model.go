package postgres

import (
	"database/sql"
	"time"
)

type pickTableModel struct {
	ID            string          `db:"id"`
	ParticipantID string          `db:"participant_id"`
	GameID        string          `db:"game_id"`
	PickedTeam    string          `db:"picked_team"`
	IsCorrect     sql.NullBool    `db:"is_correct"`
	Points        sql.NullFloat64 `db:"points"`
	CreatedAt     time.Time       `db:"created_at"`
}

type scopedPickRow struct {
	pickTableModel
	GameComplete bool `db:"game_complete"`
}

type pickInsertModel struct {
	ID            string    `db:"id"`
	ParticipantID string    `db:"participant_id"`
	GameID        string    `db:"game_id"`
	PickedTeam    string    `db:"picked_team"`
	CreatedAt     time.Time `db:"created_at"`
}

type pickDeadlineRow struct {
	ID         string    `db:"id"`
	HomeTeam   string    `db:"home_team"`
	AwayTeam   string    `db:"away_team"`
	GameTime   time.Time `db:"game_time"`
	IsComplete bool      `db:"is_complete"`
}
