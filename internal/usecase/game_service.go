package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/leaderboard"
	"github.com/riskibarqy/spread-pickem/internal/domain/pick"
	idgen "github.com/riskibarqy/spread-pickem/internal/platform/id"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultSeedWorkers = 8

// SeedGame is one scheduled matchup as published. OriginalSpread is
// home-relative; the graded spread is derived when the game is stored.
type SeedGame struct {
	ID             string
	Scope          game.Scope
	HomeTeam       string
	AwayTeam       string
	OriginalSpread float64
	GameTime       time.Time
}

type ReportScoreInput struct {
	GameID    string
	HomeScore int
	AwayScore int
}

type ReportScoreResult struct {
	Game        game.Game
	GradedPicks int
	Leaderboard []leaderboard.Entry
}

type GameService struct {
	gameRepo    game.Repository
	pickRepo    pick.Repository
	leaderboard *LeaderboardService
	idGen       idgen.Generator
	seedWorkers int
	logger      *logging.Logger
}

func NewGameService(
	gameRepo game.Repository,
	pickRepo pick.Repository,
	leaderboardService *LeaderboardService,
	idGen idgen.Generator,
	logger *logging.Logger,
) *GameService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GameService{
		gameRepo:    gameRepo,
		pickRepo:    pickRepo,
		leaderboard: leaderboardService,
		idGen:       idGen,
		seedWorkers: defaultSeedWorkers,
		logger:      logger,
	}
}

// ListByScope returns games ordered by kickoff. A nil scope lists everything.
func (s *GameService) ListByScope(ctx context.Context, scope *game.Scope) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListByScope")
	defer span.End()

	if scope == nil {
		items, err := s.gameRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		return items, nil
	}

	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	items, err := s.gameRepo.ListByScope(ctx, *scope)
	if err != nil {
		return nil, fmt.Errorf("list games scope=%s: %w", scope.Key(), err)
	}
	return items, nil
}

func (s *GameService) Get(ctx context.Context, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Get", gameAttr(gameID))
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	item, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}
	return item, nil
}

// Seed stores scheduled games. Existing games keep their stored state, so
// seeding the same slate twice never clears a reported score.
func (s *GameService) Seed(ctx context.Context, items []SeedGame) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Seed")
	defer span.End()

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one game is required", ErrInvalidInput)
	}

	games := make([]game.Game, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		g, err := s.scheduled(item)
		if err != nil {
			return nil, fmt.Errorf("%w: games[%d]: %v", ErrInvalidInput, i, err)
		}
		if _, dup := seen[g.ID]; dup {
			return nil, fmt.Errorf("%w: games[%d]: duplicate game id %s", ErrInvalidInput, i, g.ID)
		}
		seen[g.ID] = struct{}{}
		games = append(games, g)
	}

	p := pool.NewWithResults[game.Game]().
		WithContext(ctx).
		WithMaxGoroutines(s.seedWorkers).
		WithCancelOnError()
	for _, g := range games {
		g := g
		p.Go(func(ctx context.Context) (game.Game, error) {
			stored, err := s.gameRepo.Upsert(ctx, g)
			if err != nil {
				return game.Game{}, fmt.Errorf("upsert game %s: %w", g.ID, err)
			}
			return stored, nil
		})
	}

	stored, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sortGames(stored)

	s.logger.InfoContext(ctx, "games seeded", "count", len(stored))
	return stored, nil
}

func (s *GameService) scheduled(item SeedGame) (game.Game, error) {
	if err := item.Scope.Validate(); err != nil {
		return game.Game{}, err
	}
	home := strings.TrimSpace(item.HomeTeam)
	away := strings.TrimSpace(item.AwayTeam)
	if home == "" || away == "" {
		return game.Game{}, errors.New("home and away teams are required")
	}
	if strings.EqualFold(home, away) {
		return game.Game{}, errors.New("home and away teams must differ")
	}
	if math.IsNaN(item.OriginalSpread) || math.IsInf(item.OriginalSpread, 0) {
		return game.Game{}, errors.New("spread must be a finite number")
	}
	if item.GameTime.IsZero() {
		return game.Game{}, errors.New("game time is required")
	}

	gameID := strings.TrimSpace(item.ID)
	if gameID == "" {
		generated, err := s.idGen.NewID()
		if err != nil {
			return game.Game{}, fmt.Errorf("generate game id: %w", err)
		}
		gameID = generated
	}

	return game.NewScheduled(gameID, item.Scope, home, away, item.OriginalSpread, item.GameTime), nil
}

// ReportScore records a final score and grades every pick on the game in
// one repository transaction, then recomputes the game's scope. Reporting
// the same score again regrades to the same result.
func (s *GameService) ReportScore(ctx context.Context, input ReportScoreInput) (ReportScoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ReportScore", gameAttr(input.GameID))
	defer span.End()

	input.GameID = strings.TrimSpace(input.GameID)
	if input.GameID == "" {
		return ReportScoreResult{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return ReportScoreResult{}, fmt.Errorf("%w: scores must be non-negative", ErrInvalidInput)
	}

	updated, graded, err := s.pickRepo.RecordFinal(ctx, input.GameID, input.HomeScore, input.AwayScore)
	if err != nil {
		if errors.Is(err, game.ErrNotFound) {
			return ReportScoreResult{}, fmt.Errorf("%w: game=%s", ErrNotFound, input.GameID)
		}
		return ReportScoreResult{}, fmt.Errorf("record final game=%s: %w", input.GameID, err)
	}

	// The leaderboard is a projection of the committed grades; a failed
	// recompute here is repaired by the next recompute of the scope.
	entries, err := s.leaderboard.Recompute(ctx, updated.Scope())
	if err != nil {
		return ReportScoreResult{}, fmt.Errorf("recompute leaderboard: %w", err)
	}

	s.logger.InfoContext(ctx, "game score reported",
		"game_id", updated.ID,
		"home_score", input.HomeScore,
		"away_score", input.AwayScore,
		"graded_picks", len(graded),
	)

	return ReportScoreResult{
		Game:        updated,
		GradedPicks: len(graded),
		Leaderboard: entries,
	}, nil
}

func sortGames(items []game.Game) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].GameTime.Equal(items[j].GameTime) {
			return items[i].GameTime.Before(items[j].GameTime)
		}
		return items[i].ID < items[j].ID
	})
}
