package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/spread-pickem/internal/domain/participant"
)

type ParticipantRepository struct {
	mu       sync.RWMutex
	byID     map[string]participant.Participant
	byHandle map[string]string
}

func NewParticipantRepository() *ParticipantRepository {
	return &ParticipantRepository{
		byID:     make(map[string]participant.Participant),
		byHandle: make(map[string]string),
	}
}

func (r *ParticipantRepository) GetByID(_ context.Context, participantID string) (participant.Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[participantID]
	return item, ok, nil
}

func (r *ParticipantRepository) GetByHandle(_ context.Context, handle string) (participant.Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	participantID, ok := r.byHandle[participant.HandleKey(handle)]
	if !ok {
		return participant.Participant{}, false, nil
	}
	return r.byID[participantID], true, nil
}

func (r *ParticipantRepository) ListByIDs(_ context.Context, participantIDs []string) ([]participant.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participant.Participant, 0, len(participantIDs))
	for _, participantID := range participantIDs {
		if item, ok := r.byID[participantID]; ok {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ParticipantRepository) Create(_ context.Context, item participant.Participant) (participant.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := participant.HandleKey(item.Handle)
	if participantID, ok := r.byHandle[key]; ok {
		return r.byID[participantID], nil
	}
	r.byID[item.ID] = item
	r.byHandle[key] = item.ID
	return item, nil
}
