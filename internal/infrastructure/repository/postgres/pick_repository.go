package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/pick"
	qb "github.com/riskibarqy/spread-pickem/internal/platform/querybuilder"
)

const picksTable = "picks"

var pickColumns = []string{
	"p.id", "p.participant_id", "p.game_id", "p.picked_team", "p.is_correct", "p.points", "p.created_at",
}

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) ListByGame(ctx context.Context, gameID string) ([]pick.Pick, error) {
	query, args, err := qb.Select(pickColumns...).From(picksTable+" p").
		Where(qb.Eq("p.game_id", gameID)).
		OrderBy("p.participant_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks by game query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks by game=%s: %w", gameID, err)
	}
	return picksFromRows(rows), nil
}

func (r *PickRepository) ListByParticipant(ctx context.Context, participantID string, scope *game.Scope) ([]pick.Pick, error) {
	conditions := []qb.Condition{qb.Eq("p.participant_id", participantID)}
	if scope != nil {
		conditions = append(conditions, scopeConditions("g", *scope)...)
	}

	query, args, err := qb.Select(pickColumns...).From(picksTable+" p").
		Join("JOIN games g ON g.id = p.game_id").
		Where(conditions...).
		OrderBy("g.game_time", "g.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks by participant query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks by participant=%s: %w", participantID, err)
	}
	return picksFromRows(rows), nil
}

func (r *PickRepository) ListByScope(ctx context.Context, scope game.Scope) ([]pick.ScopedPick, error) {
	columns := append(append([]string(nil), pickColumns...), "g.is_complete AS game_complete")
	query, args, err := qb.Select(columns...).From(picksTable+" p").
		Join("JOIN games g ON g.id = p.game_id").
		Where(scopeConditions("g", scope)...).
		OrderBy("p.participant_id", "p.game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks by scope query: %w", err)
	}

	var rows []scopedPickRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks by scope=%s: %w", scope.Key(), err)
	}

	out := make([]pick.ScopedPick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.ScopedPick{Pick: pickFromRow(row.pickTableModel), GameComplete: row.GameComplete})
	}
	return out, nil
}

// RecordFinal updates the game row first, which holds its row lock until
// commit, so a concurrent ReplaceForGames waits and then sees the game closed.
func (r *PickRepository) RecordFinal(ctx context.Context, gameID string, homeScore, awayScore int) (game.Game, []pick.Pick, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("begin tx record final: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateQuery, updateArgs, err := buildCompleteGameQuery(gameID, homeScore, awayScore)
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("build update game score query: %w", err)
	}
	var gameRow gameTableModel
	if err := tx.GetContext(ctx, &gameRow, updateQuery, updateArgs...); err != nil {
		if isNotFound(err) {
			return game.Game{}, nil, game.ErrNotFound
		}
		return game.Game{}, nil, fmt.Errorf("update game score id=%s: %w", gameID, err)
	}
	completed := gameFromRow(gameRow)

	listQuery, listArgs, err := qb.Select(pickColumns...).From(picksTable+" p").
		Where(qb.Eq("p.game_id", gameID)).
		OrderBy("p.participant_id").
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return game.Game{}, nil, fmt.Errorf("build list picks by game query: %w", err)
	}
	var rows []pickTableModel
	if err := tx.SelectContext(ctx, &rows, listQuery, listArgs...); err != nil {
		return game.Game{}, nil, fmt.Errorf("list picks by game=%s: %w", gameID, err)
	}

	graded, ok := pick.Grade(completed, picksFromRows(rows))
	if !ok {
		return game.Game{}, nil, fmt.Errorf("game %s has no final score after update", gameID)
	}
	for _, item := range graded {
		query, args, err := qb.Update(picksTable).
			Set("is_correct", item.IsCorrect).
			Set("points", item.Points).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", item.ID), qb.Eq("game_id", gameID)).
			ToSQL()
		if err != nil {
			return game.Game{}, nil, fmt.Errorf("build save grade query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return game.Game{}, nil, fmt.Errorf("save grade pick=%s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return game.Game{}, nil, fmt.Errorf("commit record final tx: %w", err)
	}
	return completed, graded, nil
}

// ReplaceForGames locks the referenced game rows before checking deadlines so
// the check and the write share one transaction.
func (r *PickRepository) ReplaceForGames(ctx context.Context, participantID string, picks []pick.Pick, now time.Time) (int, error) {
	if len(picks) == 0 {
		return 0, nil
	}

	gameIDs := make([]string, 0, len(picks))
	for _, item := range picks {
		gameIDs = append(gameIDs, item.GameID)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx replace picks: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("id", "home_team", "away_team", "game_time", "is_complete").From(gamesTable).
		Where(qb.InStrings("id", gameIDs)).
		OrderBy("id").
		Suffix("FOR SHARE").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build lock games query: %w", err)
	}
	var locked []pickDeadlineRow
	if err := tx.SelectContext(ctx, &locked, lockQuery, lockArgs...); err != nil {
		return 0, fmt.Errorf("lock games: %w", err)
	}

	byID := make(map[string]pickDeadlineRow, len(locked))
	for _, row := range locked {
		byID[row.ID] = row
	}
	referenced := make([]game.Game, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		row, ok := byID[gameID]
		if !ok {
			return 0, fmt.Errorf("%w: %s", game.ErrNotFound, gameID)
		}
		referenced = append(referenced, game.Game{
			ID:         row.ID,
			HomeTeam:   row.HomeTeam,
			AwayTeam:   row.AwayTeam,
			GameTime:   utc(row.GameTime),
			IsComplete: row.IsComplete,
		})
	}
	if err := pick.CheckDeadlines(referenced, now); err != nil {
		return 0, err
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom(picksTable).
		Where(qb.Eq("participant_id", participantID), qb.InStrings("game_id", gameIDs)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete picks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return 0, fmt.Errorf("delete picks participant=%s: %w", participantID, err)
	}

	rows := make([]pickInsertModel, 0, len(picks))
	for _, item := range picks {
		rows = append(rows, pickInsertModel{
			ID:            item.ID,
			ParticipantID: participantID,
			GameID:        item.GameID,
			PickedTeam:    string(item.PickedTeam),
			CreatedAt:     item.CreatedAt.UTC(),
		})
	}
	insertQuery, insertArgs, err := buildReplacePicksInsert(rows)
	if err != nil {
		return 0, fmt.Errorf("build insert picks query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return 0, fmt.Errorf("insert picks participant=%s: %w", participantID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace picks tx: %w", err)
	}
	return len(rows), nil
}

// replacePicksConflict turns a concurrent insert for the same participant and
// game into a replace. The delete above sees no row while the other
// transaction is uncommitted, so the unique constraint is what serializes.
const replacePicksConflict = "ON CONFLICT (participant_id, game_id) DO UPDATE SET " +
	"id = EXCLUDED.id, picked_team = EXCLUDED.picked_team, created_at = EXCLUDED.created_at, " +
	"is_correct = NULL, points = NULL, updated_at = NOW()"

func buildReplacePicksInsert(rows []pickInsertModel) (string, []any, error) {
	return qb.InsertModels(picksTable, rows, replacePicksConflict)
}

func scopeConditions(alias string, scope game.Scope) []qb.Condition {
	return []qb.Condition{
		qb.Eq(alias+".season", scope.Season),
		qb.Eq(alias+".week_type", string(scope.WeekType)),
		qb.Eq(alias+".week", scope.Week),
	}
}

func picksFromRows(rows []pickTableModel) []pick.Pick {
	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		ID:            row.ID,
		ParticipantID: row.ParticipantID,
		GameID:        row.GameID,
		PickedTeam:    pick.Team(row.PickedTeam),
		IsCorrect:     nullBoolToBoolPtr(row.IsCorrect),
		Points:        nullFloat64ToFloat64Ptr(row.Points),
		CreatedAt:     utc(row.CreatedAt),
	}
}
