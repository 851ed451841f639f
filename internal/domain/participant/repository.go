package participant

import "context"

type Repository interface {
	GetByID(ctx context.Context, participantID string) (Participant, bool, error)
	// GetByHandle matches handles case-insensitively.
	GetByHandle(ctx context.Context, handle string) (Participant, bool, error)
	ListByIDs(ctx context.Context, participantIDs []string) ([]Participant, error)
	// Create inserts a participant. When the handle already exists it returns
	// the stored participant instead.
	Create(ctx context.Context, item Participant) (Participant, error)
}
