package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/spread-pickem/internal/domain/participant"
	qb "github.com/riskibarqy/spread-pickem/internal/platform/querybuilder"
)

const participantsTable = "participants"

var participantColumns = []string{"id", "handle", "handle_key", "created_at"}

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) GetByID(ctx context.Context, participantID string) (participant.Participant, bool, error) {
	return r.getOne(ctx, "get participant by id", qb.Eq("id", participantID))
}

func (r *ParticipantRepository) GetByHandle(ctx context.Context, handle string) (participant.Participant, bool, error) {
	return r.getOne(ctx, "get participant by handle", qb.Eq("handle_key", participant.HandleKey(handle)))
}

func (r *ParticipantRepository) getOne(ctx context.Context, op string, condition qb.Condition) (participant.Participant, bool, error) {
	query, args, err := qb.Select(participantColumns...).From(participantsTable).
		Where(condition).
		Limit(1).
		ToSQL()
	if err != nil {
		return participant.Participant{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participant.Participant{}, false, nil
		}
		return participant.Participant{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return participantFromRow(row), true, nil
}

func (r *ParticipantRepository) ListByIDs(ctx context.Context, participantIDs []string) ([]participant.Participant, error) {
	if len(participantIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select(participantColumns...).From(participantsTable).
		Where(qb.InStrings("id", participantIDs)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participantFromRow(row))
	}
	return out, nil
}

// Create inserts the participant unless its handle is taken, then returns
// whichever row owns the handle.
func (r *ParticipantRepository) Create(ctx context.Context, item participant.Participant) (participant.Participant, error) {
	insertModel := participantTableModel{
		ID:        item.ID,
		Handle:    item.Handle,
		HandleKey: participant.HandleKey(item.Handle),
		CreatedAt: item.CreatedAt.UTC(),
	}
	query, args, err := qb.InsertModel(participantsTable, insertModel, "ON CONFLICT (handle_key) DO NOTHING")
	if err != nil {
		return participant.Participant{}, fmt.Errorf("build create participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return participant.Participant{}, fmt.Errorf("create participant handle=%s: %w", item.Handle, err)
	}

	stored, exists, err := r.GetByHandle(ctx, item.Handle)
	if err != nil {
		return participant.Participant{}, err
	}
	if !exists {
		return participant.Participant{}, fmt.Errorf("create participant handle=%s: row missing after insert", item.Handle)
	}
	return stored, nil
}

func participantFromRow(row participantTableModel) participant.Participant {
	return participant.Participant{
		ID:        row.ID,
		Handle:    row.Handle,
		CreatedAt: utc(row.CreatedAt),
	}
}
