package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/leaderboard"
	"github.com/riskibarqy/spread-pickem/internal/domain/participant"
	"github.com/riskibarqy/spread-pickem/internal/domain/pick"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
	"github.com/riskibarqy/spread-pickem/internal/platform/resilience"
)

const defaultRecomputeWorkers = 4

type RecomputeResult struct {
	Scope      game.Scope `json:"-"`
	Entries    int        `json:"entries"`
	DurationMs int64      `json:"duration_ms"`
	Error      string     `json:"error,omitempty"`
}

type LeaderboardService struct {
	gameRepo        game.Repository
	pickRepo        pick.Repository
	participantRepo participant.Repository
	entryRepo       leaderboard.Repository
	workers         int
	logger          *logging.Logger
	now             func() time.Time

	scopeLocks resilience.KeyedMutex
}

func NewLeaderboardService(
	gameRepo game.Repository,
	pickRepo pick.Repository,
	participantRepo participant.Repository,
	entryRepo leaderboard.Repository,
	workers int,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultRecomputeWorkers
	}

	return &LeaderboardService{
		gameRepo:        gameRepo,
		pickRepo:        pickRepo,
		participantRepo: participantRepo,
		entryRepo:       entryRepo,
		workers:         workers,
		logger:          logger,
		now:             time.Now,
	}
}

// Recompute rebuilds every entry of scope from current pick state. Calls for
// the same scope run one after another, so the last stored board is always
// built from a read taken after every earlier grading write.
func (s *LeaderboardService) Recompute(ctx context.Context, scope game.Scope) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Recompute", scopeAttr(scope))
	defer span.End()

	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	unlock, err := s.scopeLocks.Lock(ctx, scope.Key())
	if err != nil {
		return nil, fmt.Errorf("lock scope %s: %w", scope.Key(), err)
	}
	defer unlock()

	entries, err := s.project(ctx, scope)
	if err != nil {
		return nil, err
	}
	if err := s.entryRepo.ReplaceScope(ctx, scope, entries); err != nil {
		return nil, fmt.Errorf("replace leaderboard scope=%s: %w", scope.Key(), err)
	}

	s.logger.InfoContext(ctx, "leaderboard recomputed",
		"scope", scope.Key(),
		"entries", len(entries),
	)
	return entries, nil
}

// List returns the stored board for scope. Before any game in scope is
// graded nothing is stored, so the live projection is returned instead.
func (s *LeaderboardService) List(ctx context.Context, scope game.Scope) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.List", scopeAttr(scope))
	defer span.End()

	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	entries, err := s.entryRepo.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard scope=%s: %w", scope.Key(), err)
	}
	if len(entries) > 0 {
		return entries, nil
	}

	return s.project(ctx, scope)
}

// RecomputeAll recomputes every scope that has games.
func (s *LeaderboardService) RecomputeAll(ctx context.Context) ([]RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.RecomputeAll")
	defer span.End()

	scopes, err := s.gameRepo.ListScopes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scopes: %w", err)
	}
	if len(scopes) == 0 {
		return nil, nil
	}

	workerCount := s.workers
	if workerCount > len(scopes) {
		workerCount = len(scopes)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		results = make([]RecomputeResult, 0, len(scopes))
		errs    []error
		workers sync.WaitGroup
	)
	for _, scope := range scopes {
		scope := scope
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			entries, err := s.Recompute(ctx, scope)
			row := RecomputeResult{
				Scope:      scope,
				Entries:    len(entries),
				DurationMs: time.Since(start).Milliseconds(),
			}
			if err != nil {
				row.Error = err.Error()
				s.logger.WarnContext(ctx, "recompute scope failed", "scope", scope.Key(), "error", err)
			}

			mu.Lock()
			results = append(results, row)
			if err != nil {
				errs = append(errs, fmt.Errorf("scope %s: %w", scope.Key(), err))
			}
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Scope.Key() < results[j].Scope.Key()
	})
	return results, errors.Join(errs...)
}

func (s *LeaderboardService) project(ctx context.Context, scope game.Scope) ([]leaderboard.Entry, error) {
	picks, err := s.pickRepo.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list picks scope=%s: %w", scope.Key(), err)
	}

	handles, err := s.handles(ctx, picks)
	if err != nil {
		return nil, err
	}

	return leaderboard.Aggregate(scope, picks, handles, s.now().UTC()), nil
}

func (s *LeaderboardService) handles(ctx context.Context, picks []pick.ScopedPick) (map[string]string, error) {
	seen := make(map[string]struct{}, len(picks))
	ids := make([]string, 0)
	for _, item := range picks {
		if _, ok := seen[item.ParticipantID]; ok {
			continue
		}
		seen[item.ParticipantID] = struct{}{}
		ids = append(ids, item.ParticipantID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	participants, err := s.participantRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	out := make(map[string]string, len(participants))
	for _, p := range participants {
		out[p.ID] = p.Handle
	}
	return out, nil
}
