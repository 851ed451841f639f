package postgres

import "time"

type leaderboardEntryTableModel struct {
	ParticipantID string    `db:"participant_id"`
	Handle        string    `db:"handle"`
	Season        int       `db:"season"`
	WeekType      string    `db:"week_type"`
	Week          int       `db:"week"`
	TotalPicks    int       `db:"total_picks"`
	CorrectPicks  int       `db:"correct_picks"`
	Ties          int       `db:"ties"`
	TotalPoints   float64   `db:"total_points"`
	WinPercentage float64   `db:"win_percentage"`
	Rank          int       `db:"rank"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type leaderboardEntryInsertModel struct {
	ParticipantID string    `db:"participant_id"`
	Season        int       `db:"season"`
	WeekType      string    `db:"week_type"`
	Week          int       `db:"week"`
	TotalPicks    int       `db:"total_picks"`
	CorrectPicks  int       `db:"correct_picks"`
	Ties          int       `db:"ties"`
	TotalPoints   float64   `db:"total_points"`
	WinPercentage float64   `db:"win_percentage"`
	Rank          int       `db:"rank"`
	UpdatedAt     time.Time `db:"updated_at"`
}
