package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/leaderboard"
	"github.com/riskibarqy/spread-pickem/internal/domain/participant"
	"github.com/riskibarqy/spread-pickem/internal/domain/pick"
	idgen "github.com/riskibarqy/spread-pickem/internal/platform/id"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
)

type PickInput struct {
	GameID     string
	PickedTeam string
}

// SubmitPicksInput replaces the participant's picks on exactly the games it
// names. Games not mentioned keep their existing picks.
type SubmitPicksInput struct {
	Handle string
	Picks  []PickInput
}

type SubmitPicksResult struct {
	Participant participant.Participant
	Count       int
}

type PickView struct {
	Pick    pick.Pick
	Game    game.Game
	Outcome pick.Outcome
}

// PickSummary counts a participant's picks. WinPercentage divides by
// CompletedGames, the same denominator the leaderboard uses.
type PickSummary struct {
	TotalPoints    float64
	CorrectPicks   int
	IncorrectPicks int
	Ties           int
	PendingGames   int
	TotalPicks     int
	CompletedGames int
	WinPercentage  float64
}

type ParticipantPicks struct {
	Participant participant.Participant
	Picks       []PickView
	Summary     PickSummary
}

type PickService struct {
	gameRepo     game.Repository
	pickRepo     pick.Repository
	participants *ParticipantService
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewPickService(
	gameRepo game.Repository,
	pickRepo pick.Repository,
	participants *ParticipantService,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PickService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PickService{
		gameRepo:     gameRepo,
		pickRepo:     pickRepo,
		participants: participants,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *PickService) Submit(ctx context.Context, input SubmitPicksInput) (SubmitPicksResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Submit")
	defer span.End()

	handle, err := participant.NormalizeHandle(input.Handle)
	if err != nil {
		return SubmitPicksResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(input.Picks) == 0 {
		return SubmitPicksResult{}, fmt.Errorf("%w: at least one pick is required", ErrInvalidInput)
	}

	gameIDs := make([]string, 0, len(input.Picks))
	teams := make(map[string]pick.Team, len(input.Picks))
	for i, item := range input.Picks {
		gameID := strings.TrimSpace(item.GameID)
		if gameID == "" {
			return SubmitPicksResult{}, fmt.Errorf("%w: picks[%d]: game id is required", ErrInvalidInput, i)
		}
		team, err := pick.ParseTeam(item.PickedTeam)
		if err != nil {
			return SubmitPicksResult{}, fmt.Errorf("%w: picks[%d]: %v", ErrInvalidInput, i, err)
		}
		if _, dup := teams[gameID]; dup {
			return SubmitPicksResult{}, fmt.Errorf("%w: picks[%d]: %v: %s", ErrInvalidInput, i, pick.ErrDuplicateGame, gameID)
		}
		teams[gameID] = team
		gameIDs = append(gameIDs, gameID)
	}

	games, err := s.gameRepo.ListByIDs(ctx, gameIDs)
	if err != nil {
		return SubmitPicksResult{}, fmt.Errorf("list games: %w", err)
	}
	if missing := missingGameIDs(gameIDs, games); len(missing) > 0 {
		return SubmitPicksResult{}, fmt.Errorf("%w: unknown games: %s", ErrNotFound, strings.Join(missing, ", "))
	}

	now := s.now().UTC()
	if err := pick.CheckDeadlines(games, now); err != nil {
		return SubmitPicksResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	p, err := s.participants.ResolveOrCreate(ctx, handle)
	if err != nil {
		return SubmitPicksResult{}, err
	}

	picks := make([]pick.Pick, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		pickID, err := s.idGen.NewID()
		if err != nil {
			return SubmitPicksResult{}, fmt.Errorf("generate pick id: %w", err)
		}
		picks = append(picks, pick.Pick{
			ID:            pickID,
			ParticipantID: p.ID,
			GameID:        gameID,
			PickedTeam:    teams[gameID],
			CreatedAt:     now,
		})
	}

	count, err := s.pickRepo.ReplaceForGames(ctx, p.ID, picks, now)
	if err != nil {
		if errors.Is(err, pick.ErrGameStarted) {
			return SubmitPicksResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return SubmitPicksResult{}, fmt.Errorf("replace picks: %w", err)
	}

	s.logger.InfoContext(ctx, "picks submitted",
		"participant_id", p.ID,
		"handle", p.Handle,
		"count", count,
	)

	return SubmitPicksResult{Participant: p, Count: count}, nil
}

// ListParticipantPicks returns the participant's picks in scope, each with
// its game and result, plus summary counts. A nil scope means every scope.
func (s *PickService) ListParticipantPicks(ctx context.Context, handle string, scope *game.Scope) (ParticipantPicks, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListParticipantPicks")
	defer span.End()

	if scope != nil {
		if err := scope.Validate(); err != nil {
			return ParticipantPicks{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	p, err := s.participants.GetByHandle(ctx, handle)
	if err != nil {
		return ParticipantPicks{}, err
	}

	picks, err := s.pickRepo.ListByParticipant(ctx, p.ID, scope)
	if err != nil {
		return ParticipantPicks{}, fmt.Errorf("list picks participant=%s: %w", p.ID, err)
	}

	gameIDs := make([]string, 0, len(picks))
	for _, item := range picks {
		gameIDs = append(gameIDs, item.GameID)
	}
	games, err := s.gameRepo.ListByIDs(ctx, gameIDs)
	if err != nil {
		return ParticipantPicks{}, fmt.Errorf("list games: %w", err)
	}
	gamesByID := make(map[string]game.Game, len(games))
	for _, g := range games {
		gamesByID[g.ID] = g
	}

	views := make([]PickView, 0, len(picks))
	var tally leaderboard.Tally
	for _, item := range picks {
		g, ok := gamesByID[item.GameID]
		if !ok {
			s.logger.WarnContext(ctx, "pick references missing game", "pick_id", item.ID, "game_id", item.GameID)
			continue
		}
		tally.Add(item, g.IsComplete)
		views = append(views, PickView{Pick: item, Game: g, Outcome: item.Outcome()})
	}
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].Game, views[j].Game
		if !a.GameTime.Equal(b.GameTime) {
			return a.GameTime.Before(b.GameTime)
		}
		return a.ID < b.ID
	})

	return ParticipantPicks{
		Participant: p,
		Picks:       views,
		Summary: PickSummary{
			TotalPoints:    tally.TotalPoints,
			CorrectPicks:   tally.CorrectPicks,
			IncorrectPicks: tally.TotalPicks - tally.CorrectPicks - tally.Ties,
			Ties:           tally.Ties,
			PendingGames:   len(views) - tally.TotalPicks,
			TotalPicks:     len(views),
			CompletedGames: tally.TotalPicks,
			WinPercentage:  tally.WinPercentage(),
		},
	}, nil
}

func missingGameIDs(requested []string, found []game.Game) []string {
	present := make(map[string]struct{}, len(found))
	for _, g := range found {
		present[g.ID] = struct{}{}
	}
	var missing []string
	for _, gameID := range requested {
		if _, ok := present[gameID]; !ok {
			missing = append(missing, gameID)
		}
	}
	return missing
}
