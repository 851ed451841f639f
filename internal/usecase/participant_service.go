package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/participant"
	idgen "github.com/riskibarqy/spread-pickem/internal/platform/id"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
)

// ParticipantService resolves external handles to participants. Both a
// self-declared username and an authenticated token subject end up here.
type ParticipantService struct {
	repo   participant.Repository
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewParticipantService(repo participant.Repository, idGen idgen.Generator, logger *logging.Logger) *ParticipantService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ParticipantService{
		repo:   repo,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ParticipantService) ResolveOrCreate(ctx context.Context, handle string) (participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipantService.ResolveOrCreate")
	defer span.End()

	handle, err := participant.NormalizeHandle(handle)
	if err != nil {
		return participant.Participant{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, exists, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		return participant.Participant{}, fmt.Errorf("get participant by handle: %w", err)
	}
	if exists {
		return item, nil
	}

	participantID, err := s.idGen.NewID()
	if err != nil {
		return participant.Participant{}, fmt.Errorf("generate participant id: %w", err)
	}

	created, err := s.repo.Create(ctx, participant.Participant{
		ID:        participantID,
		Handle:    handle,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return participant.Participant{}, fmt.Errorf("create participant: %w", err)
	}
	if created.ID == participantID {
		s.logger.InfoContext(ctx, "participant created", "participant_id", created.ID, "handle", created.Handle)
	}

	return created, nil
}

func (s *ParticipantService) GetByHandle(ctx context.Context, handle string) (participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipantService.GetByHandle")
	defer span.End()

	handle, err := participant.NormalizeHandle(handle)
	if err != nil {
		return participant.Participant{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, exists, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		return participant.Participant{}, fmt.Errorf("get participant by handle: %w", err)
	}
	if !exists {
		return participant.Participant{}, fmt.Errorf("%w: participant=%s", ErrNotFound, handle)
	}

	return item, nil
}
