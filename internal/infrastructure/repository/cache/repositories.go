package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/leaderboard"
	"github.com/riskibarqy/spread-pickem/internal/domain/participant"
	"github.com/riskibarqy/spread-pickem/internal/domain/pick"
	basecache "github.com/riskibarqy/spread-pickem/internal/platform/cache"
)

const (
	gamePrefix        = "game:"
	leaderboardPrefix = "leaderboard:"
	participantPrefix = "participant:"
)

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	key := gamePrefix + "id:" + gameID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return cachedGameByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}

	cached, _ := v.(cachedGameByID)
	return cached.value, cached.exists, nil
}

type cachedGameByID struct {
	value  game.Game
	exists bool
}

func (r *GameRepository) ListByIDs(ctx context.Context, gameIDs []string) ([]game.Game, error) {
	ids := append([]string(nil), gameIDs...)
	sort.Strings(ids)
	key := gamePrefix + "ids:" + strings.Join(ids, ",")
	return r.loadList(ctx, key, func(ctx context.Context) ([]game.Game, error) {
		return r.next.ListByIDs(ctx, gameIDs)
	})
}

func (r *GameRepository) ListByScope(ctx context.Context, scope game.Scope) ([]game.Game, error) {
	return r.loadList(ctx, gamePrefix+"scope:"+scope.Key(), func(ctx context.Context) ([]game.Game, error) {
		return r.next.ListByScope(ctx, scope)
	})
}

func (r *GameRepository) ListAll(ctx context.Context) ([]game.Game, error) {
	return r.loadList(ctx, gamePrefix+"all", r.next.ListAll)
}

func (r *GameRepository) ListScopes(ctx context.Context) ([]game.Scope, error) {
	v, err := r.cache.GetOrLoad(ctx, gamePrefix+"scopes", func(ctx context.Context) (any, error) {
		items, err := r.next.ListScopes(ctx)
		if err != nil {
			return nil, err
		}
		return append([]game.Scope(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Scope)
	return append([]game.Scope(nil), items...), nil
}

func (r *GameRepository) Upsert(ctx context.Context, item game.Game) (game.Game, error) {
	out, err := r.next.Upsert(ctx, item)
	if err != nil {
		return game.Game{}, err
	}
	r.cache.DeletePrefix(ctx, gamePrefix)
	return out, nil
}

func (r *GameRepository) loadList(ctx context.Context, key string, load func(context.Context) ([]game.Game, error)) ([]game.Game, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return append([]game.Game(nil), items...), nil
}

// PickRepository passes pick reads through uncached. Recording a final
// score changes game rows, so it drops every cached game read.
type PickRepository struct {
	pick.Repository
	cache *basecache.Store
}

func NewPickRepository(next pick.Repository, cache *basecache.Store) *PickRepository {
	return &PickRepository{Repository: next, cache: cache}
}

func (r *PickRepository) RecordFinal(ctx context.Context, gameID string, homeScore, awayScore int) (game.Game, []pick.Pick, error) {
	completed, graded, err := r.Repository.RecordFinal(ctx, gameID, homeScore, awayScore)
	if err != nil {
		return game.Game{}, nil, err
	}
	r.cache.DeletePrefix(ctx, gamePrefix)
	return completed, graded, nil
}

type LeaderboardRepository struct {
	next  leaderboard.Repository
	cache *basecache.Store
}

func NewLeaderboardRepository(next leaderboard.Repository, cache *basecache.Store) *LeaderboardRepository {
	return &LeaderboardRepository{next: next, cache: cache}
}

func (r *LeaderboardRepository) ListByScope(ctx context.Context, scope game.Scope) ([]leaderboard.Entry, error) {
	v, err := r.cache.GetOrLoad(ctx, leaderboardKey(scope), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByScope(ctx, scope)
		if err != nil {
			return nil, err
		}
		return append([]leaderboard.Entry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]leaderboard.Entry)
	return append([]leaderboard.Entry(nil), items...), nil
}

func (r *LeaderboardRepository) ReplaceScope(ctx context.Context, scope game.Scope, entries []leaderboard.Entry) error {
	if err := r.next.ReplaceScope(ctx, scope, entries); err != nil {
		return err
	}
	r.cache.Delete(ctx, leaderboardKey(scope))
	return nil
}

func leaderboardKey(scope game.Scope) string {
	return leaderboardPrefix + scope.Key()
}

type ParticipantRepository struct {
	next  participant.Repository
	cache *basecache.Store
}

func NewParticipantRepository(next participant.Repository, cache *basecache.Store) *ParticipantRepository {
	return &ParticipantRepository{next: next, cache: cache}
}

func (r *ParticipantRepository) GetByID(ctx context.Context, participantID string) (participant.Participant, bool, error) {
	return r.loadOne(ctx, participantPrefix+"id:"+participantID, func(ctx context.Context) (participant.Participant, bool, error) {
		return r.next.GetByID(ctx, participantID)
	})
}

func (r *ParticipantRepository) GetByHandle(ctx context.Context, handle string) (participant.Participant, bool, error) {
	return r.loadOne(ctx, participantHandleKey(handle), func(ctx context.Context) (participant.Participant, bool, error) {
		return r.next.GetByHandle(ctx, handle)
	})
}

// ListByIDs is not cached; leaderboard projection is the only caller and
// it already runs under the recompute lock.
func (r *ParticipantRepository) ListByIDs(ctx context.Context, participantIDs []string) ([]participant.Participant, error) {
	return r.next.ListByIDs(ctx, participantIDs)
}

func (r *ParticipantRepository) Create(ctx context.Context, item participant.Participant) (participant.Participant, error) {
	out, err := r.next.Create(ctx, item)
	if err != nil {
		return participant.Participant{}, err
	}
	r.cache.Delete(ctx, participantHandleKey(item.Handle))
	r.cache.Delete(ctx, participantPrefix+"id:"+out.ID)
	return out, nil
}

func (r *ParticipantRepository) loadOne(
	ctx context.Context,
	key string,
	load func(context.Context) (participant.Participant, bool, error),
) (participant.Participant, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return cachedParticipant{value: item, exists: exists}, nil
	})
	if err != nil {
		return participant.Participant{}, false, err
	}

	cached, _ := v.(cachedParticipant)
	return cached.value, cached.exists, nil
}

type cachedParticipant struct {
	value  participant.Participant
	exists bool
}

func participantHandleKey(handle string) string {
	return participantPrefix + "handle:" + participant.HandleKey(handle)
}
