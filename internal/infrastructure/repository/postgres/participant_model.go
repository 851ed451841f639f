package postgres

import "time"

type participantTableModel struct {
	ID        string    `db:"id"`
	Handle    string    `db:"handle"`
	HandleKey string    `db:"handle_key"`
	CreatedAt time.Time `db:"created_at"`
}
