package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	qb "github.com/riskibarqy/spread-pickem/internal/platform/querybuilder"
)

const gamesTable = "games"

var gameColumns = []string{
	"id", "season", "week_type", "week", "home_team", "away_team",
	"original_spread", "modified_spread", "game_time",
	"home_score", "away_score", "is_complete", "created_at", "updated_at",
}

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select(gameColumns...).From(gamesTable).
		Where(qb.Eq("id", gameID)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game id=%s: %w", gameID, err)
	}
	return gameFromRow(row), true, nil
}

func (r *GameRepository) ListByIDs(ctx context.Context, gameIDs []string) ([]game.Game, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, "list games by ids", qb.InStrings("id", gameIDs))
}

func (r *GameRepository) ListByScope(ctx context.Context, scope game.Scope) ([]game.Game, error) {
	return r.list(ctx, "list games by scope",
		qb.Eq("season", scope.Season),
		qb.Eq("week_type", string(scope.WeekType)),
		qb.Eq("week", scope.Week),
	)
}

func (r *GameRepository) ListAll(ctx context.Context) ([]game.Game, error) {
	return r.list(ctx, "list games")
}

func (r *GameRepository) list(ctx context.Context, op string, conditions ...qb.Condition) ([]game.Game, error) {
	query, args, err := qb.Select(gameColumns...).From(gamesTable).
		Where(conditions...).
		OrderBy("game_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *GameRepository) ListScopes(ctx context.Context) ([]game.Scope, error) {
	query, args, err := qb.Select("season", "week_type", "week").From(gamesTable).
		GroupBy("season", "week_type", "week").
		OrderBy("season", "week_type", "week").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scopes query: %w", err)
	}

	var rows []scopeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scopes: %w", err)
	}

	out := make([]game.Scope, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.Scope{Season: row.Season, WeekType: game.WeekType(row.WeekType), Week: row.Week})
	}
	return out, nil
}

func (r *GameRepository) Upsert(ctx context.Context, item game.Game) (game.Game, error) {
	insertModel := gameInsertModel{
		ID:             item.ID,
		Season:         item.Season,
		WeekType:       string(item.WeekType),
		Week:           item.Week,
		HomeTeam:       item.HomeTeam,
		AwayTeam:       item.AwayTeam,
		OriginalSpread: item.OriginalSpread,
		ModifiedSpread: item.ModifiedSpread,
		GameTime:       item.GameTime.UTC(),
	}
	query, args, err := qb.InsertModel(gamesTable, insertModel, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return game.Game{}, fmt.Errorf("build upsert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return game.Game{}, fmt.Errorf("upsert game id=%s: %w", item.ID, err)
	}

	stored, exists, err := r.GetByID(ctx, item.ID)
	if err != nil {
		return game.Game{}, err
	}
	if !exists {
		return game.Game{}, fmt.Errorf("upsert game id=%s: row missing after insert", item.ID)
	}
	return stored, nil
}

// buildCompleteGameQuery stores a final score and returns the updated row.
func buildCompleteGameQuery(gameID string, homeScore, awayScore int) (string, []any, error) {
	return qb.Update(gamesTable).
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Set("is_complete", true).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", gameID)).
		Suffix("RETURNING " + strings.Join(gameColumns, ", ")).
		ToSQL()
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:             row.ID,
		Season:         row.Season,
		WeekType:       game.WeekType(row.WeekType),
		Week:           row.Week,
		HomeTeam:       row.HomeTeam,
		AwayTeam:       row.AwayTeam,
		OriginalSpread: row.OriginalSpread,
		ModifiedSpread: row.ModifiedSpread,
		GameTime:       utc(row.GameTime),
		HomeScore:      nullInt64ToIntPtr(row.HomeScore),
		AwayScore:      nullInt64ToIntPtr(row.AwayScore),
		IsComplete:     row.IsComplete,
	}
}
