package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/leaderboard"
	qb "github.com/riskibarqy/spread-pickem/internal/platform/querybuilder"
)

const leaderboardTable = "leaderboard_entries"

type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) ListByScope(ctx context.Context, scope game.Scope) ([]leaderboard.Entry, error) {
	query, args, err := qb.Select(
		"l.participant_id", "pt.handle", "l.season", "l.week_type", "l.week",
		"l.total_picks", "l.correct_picks", "l.ties", "l.total_points", "l.win_percentage",
		"l.rank", "l.updated_at",
	).From(leaderboardTable+" l").
		Join("JOIN participants pt ON pt.id = l.participant_id").
		Where(scopeConditions("l", scope)...).
		OrderBy("l.rank", "pt.handle_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leaderboard query: %w", err)
	}

	var rows []leaderboardEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leaderboard scope=%s: %w", scope.Key(), err)
	}

	out := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboard.Entry{
			ParticipantID: row.ParticipantID,
			Handle:        row.Handle,
			Scope:         game.Scope{Season: row.Season, WeekType: game.WeekType(row.WeekType), Week: row.Week},
			TotalPicks:    row.TotalPicks,
			CorrectPicks:  row.CorrectPicks,
			Ties:          row.Ties,
			TotalPoints:   row.TotalPoints,
			WinPercentage: row.WinPercentage,
			Rank:          row.Rank,
			UpdatedAt:     utc(row.UpdatedAt),
		})
	}
	return out, nil
}

// ReplaceScope swaps the whole scope in one transaction, which also drops
// participants that no longer have picks in it.
func (r *LeaderboardRepository) ReplaceScope(ctx context.Context, scope game.Scope, entries []leaderboard.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace leaderboard: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom(leaderboardTable).
		Where(
			qb.Eq("season", scope.Season),
			qb.Eq("week_type", string(scope.WeekType)),
			qb.Eq("week", scope.Week),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear leaderboard query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear leaderboard scope=%s: %w", scope.Key(), err)
	}

	if len(entries) > 0 {
		rows := make([]leaderboardEntryInsertModel, 0, len(entries))
		for _, item := range entries {
			rows = append(rows, leaderboardEntryInsertModel{
				ParticipantID: item.ParticipantID,
				Season:        scope.Season,
				WeekType:      string(scope.WeekType),
				Week:          scope.Week,
				TotalPicks:    item.TotalPicks,
				CorrectPicks:  item.CorrectPicks,
				Ties:          item.Ties,
				TotalPoints:   item.TotalPoints,
				WinPercentage: item.WinPercentage,
				Rank:          item.Rank,
				UpdatedAt:     item.UpdatedAt.UTC(),
			})
		}
		query, args, err := qb.InsertModels(leaderboardTable, rows, "")
		if err != nil {
			return fmt.Errorf("build insert leaderboard query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert leaderboard scope=%s: %w", scope.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace leaderboard tx: %w", err)
	}
	return nil
}
