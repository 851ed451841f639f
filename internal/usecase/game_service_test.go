package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameService_SeedDerivesModifiedSpreadAndKeepsExisting(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testKickoff.Add(-time.Hour))

	_, err := env.gameService.ReportScore(ctx, ReportScoreInput{GameID: "game-1", HomeScore: 21, AwayScore: 14})
	require.NoError(t, err)

	week2 := game.Scope{Season: 2025, WeekType: game.WeekTypePreseason, Week: 2}
	stored, err := env.gameService.Seed(ctx, []SeedGame{
		{ID: "game-1", Scope: testScope, HomeTeam: "Cincinnati Bengals", AwayTeam: "Philadelphia Eagles", OriginalSpread: -1, GameTime: testKickoff},
		{Scope: week2, HomeTeam: "Miami Dolphins", AwayTeam: "Detroit Lions", OriginalSpread: 3, GameTime: testKickoff.Add(7 * 24 * time.Hour)},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, "game-1", stored[0].ID)
	assert.True(t, stored[0].IsComplete, "re-seeding must keep reported scores")

	assert.Equal(t, "seeded-1", stored[1].ID)
	assert.Equal(t, 3.0, stored[1].OriginalSpread)
	assert.Equal(t, -3.0, stored[1].ModifiedSpread)
	assert.Equal(t, week2, stored[1].Scope())
}

func TestGameService_SeedValidation(t *testing.T) {
	env := newTestEnv(t, testKickoff)

	cases := map[string]SeedGame{
		"missing team": {Scope: testScope, HomeTeam: "A", GameTime: testKickoff},
		"same team":    {Scope: testScope, HomeTeam: "A", AwayTeam: "a", GameTime: testKickoff},
		"bad scope":    {Scope: game.Scope{Season: 2025, WeekType: "bowl", Week: 1}, HomeTeam: "A", AwayTeam: "B", GameTime: testKickoff},
		"no time":      {Scope: testScope, HomeTeam: "A", AwayTeam: "B"},
	}
	for name, item := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.gameService.Seed(context.Background(), []SeedGame{item})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := env.gameService.Seed(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGameService_ReportScoreGradesAndRanks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testKickoff.Add(-time.Hour))

	for handle, team := range map[string]string{"home-fan": "home", "away-fan": "away"} {
		_, err := env.pickService.Submit(ctx, SubmitPicksInput{Handle: handle, Picks: pickInputs("game-1", team)})
		require.NoError(t, err)
	}

	// modified spread -7; home wins by 10 -> spread result 3, home covers
	result, err := env.gameService.ReportScore(ctx, ReportScoreInput{GameID: "game-1", HomeScore: 27, AwayScore: 17})
	require.NoError(t, err)

	assert.True(t, result.Game.IsComplete)
	assert.Equal(t, 2, result.GradedPicks)
	require.Len(t, result.Leaderboard, 2)
	assert.Equal(t, "home-fan", result.Leaderboard[0].Handle)
	assert.Equal(t, 1, result.Leaderboard[0].Rank)
	assert.Equal(t, 1.0, result.Leaderboard[0].TotalPoints)
	assert.Equal(t, 100.0, result.Leaderboard[0].WinPercentage)
	assert.Equal(t, "away-fan", result.Leaderboard[1].Handle)
	assert.Equal(t, 0.0, result.Leaderboard[1].TotalPoints)

	stored, err := env.entries.ListByScope(ctx, testScope)
	require.NoError(t, err)
	assert.Equal(t, result.Leaderboard, stored)
}

func TestGameService_ReportScorePush(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testKickoff.Add(-time.Hour))

	for handle, team := range map[string]string{"h": "home", "a": "away"} {
		_, err := env.pickService.Submit(ctx, SubmitPicksInput{Handle: handle, Picks: pickInputs("game-1", team)})
		require.NoError(t, err)
	}

	// modified spread -7; home by 7 is a push
	_, err := env.gameService.ReportScore(ctx, ReportScoreInput{GameID: "game-1", HomeScore: 24, AwayScore: 17})
	require.NoError(t, err)

	graded, err := env.picks.ListByGame(ctx, "game-1")
	require.NoError(t, err)
	require.Len(t, graded, 2)
	for _, item := range graded {
		require.True(t, item.Graded())
		assert.False(t, *item.IsCorrect)
		assert.Equal(t, 0.5, *item.Points)
	}
}

func TestGameService_ReportScoreCorrectionRegrades(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testKickoff.Add(-time.Hour))

	_, err := env.pickService.Submit(ctx, SubmitPicksInput{Handle: "fay", Picks: pickInputs("game-1", "home")})
	require.NoError(t, err)

	_, err = env.gameService.ReportScore(ctx, ReportScoreInput{GameID: "game-1", HomeScore: 30, AwayScore: 10})
	require.NoError(t, err)
	corrected, err := env.gameService.ReportScore(ctx, ReportScoreInput{GameID: "game-1", HomeScore: 10, AwayScore: 30})
	require.NoError(t, err)

	require.Len(t, corrected.Leaderboard, 1)
	assert.Equal(t, 0.0, corrected.Leaderboard[0].TotalPoints)
	assert.Equal(t, 1, corrected.Leaderboard[0].TotalPicks)
}

func TestGameService_ReportScoreErrors(t *testing.T) {
	env := newTestEnv(t, testKickoff)

	_, err := env.gameService.ReportScore(context.Background(), ReportScoreInput{GameID: "game-404", HomeScore: 1, AwayScore: 0})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.gameService.ReportScore(context.Background(), ReportScoreInput{GameID: "game-1", HomeScore: -1, AwayScore: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGameService_ConcurrentReportsConverge(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testKickoff.Add(-2*time.Hour))

	for i := 0; i < 6; i++ {
		_, err := env.pickService.Submit(ctx, SubmitPicksInput{
			Handle: fmt.Sprintf("player-%d", i),
			Picks:  pickInputs("game-1", []string{"home", "away"}[i%2], "game-2", []string{"away", "home"}[i%3%2]),
		})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for _, in := range []ReportScoreInput{
		{GameID: "game-1", HomeScore: 31, AwayScore: 3},
		{GameID: "game-2", HomeScore: 10, AwayScore: 13},
	} {
		in := in
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.gameService.ReportScore(ctx, in)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := env.entries.ListByScope(ctx, testScope)
	require.NoError(t, err)

	fresh, err := env.leaderboardService.Recompute(ctx, testScope)
	require.NoError(t, err)
	assert.Equal(t, fresh, stored, "stored board must reflect both grading writes")
	for _, e := range stored {
		assert.Equal(t, 2, e.TotalPicks)
	}
}
