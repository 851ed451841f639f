package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID             string        `db:"id"`
	Season         int           `db:"season"`
	WeekType       string        `db:"week_type"`
	Week           int           `db:"week"`
	HomeTeam       string        `db:"home_team"`
	AwayTeam       string        `db:"away_team"`
	OriginalSpread float64       `db:"original_spread"`
	ModifiedSpread float64       `db:"modified_spread"`
	GameTime       time.Time     `db:"game_time"`
	HomeScore      sql.NullInt64 `db:"home_score"`
	AwayScore      sql.NullInt64 `db:"away_score"`
	IsComplete     bool          `db:"is_complete"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

type gameInsertModel struct {
	ID             string    `db:"id"`
	Season         int       `db:"season"`
	WeekType       string    `db:"week_type"`
	Week           int       `db:"week"`
	HomeTeam       string    `db:"home_team"`
	AwayTeam       string    `db:"away_team"`
	OriginalSpread float64   `db:"original_spread"`
	ModifiedSpread float64   `db:"modified_spread"`
	GameTime       time.Time `db:"game_time"`
}

type scopeRow struct {
	Season   int    `db:"season"`
	WeekType string `db:"week_type"`
	Week     int    `db:"week"`
}
