package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/pick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickService_SubmitReplacesOnlyNamedGames(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testKickoff.Add(-2*time.Hour))

	first, err := env.pickService.Submit(ctx, SubmitPicksInput{
		Handle: "alice",
		Picks:  pickInputs("game-1", "home", "game-2", "away"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, "alice", first.Participant.Handle)

	second, err := env.pickService.Submit(ctx, SubmitPicksInput{
		Handle: "ALICE",
		Picks:  pickInputs("game-2", "home"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.Participant.ID, second.Participant.ID, "handles are case-insensitive")

	stored, err := env.picks.ListByParticipant(ctx, first.Participant.ID, nil)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, pick.TeamHome, stored[0].PickedTeam)
	assert.Equal(t, "game-2", stored[1].GameID)
	assert.Equal(t, pick.TeamHome, stored[1].PickedTeam)
}

func TestPickService_SubmitRejectsStartedGamesWithoutMutation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testKickoff.Add(-2*time.Hour))

	before, err := env.pickService.Submit(ctx, SubmitPicksInput{
		Handle: "bob",
		Picks:  pickInputs("game-3", "away"),
	})
	require.NoError(t, err)

	// game-1 kicks off exactly at the submission instant
	env.pickService.now = func() time.Time { return testKickoff }
	_, err = env.pickService.Submit(ctx, SubmitPicksInput{
		Handle: "bob",
		Picks:  pickInputs("game-3", "home", "game-1", "home"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, pick.ErrGameStarted)
	assert.Contains(t, err.Error(), "Philadelphia Eagles @ Cincinnati Bengals")

	var started *pick.GameStartedError
	require.True(t, errors.As(err, &started))
	require.Len(t, started.Games, 1)
	assert.Equal(t, "game-1", started.Games[0].ID)

	stored, err := env.picks.ListByParticipant(ctx, before.Participant.ID, nil)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "game-3", stored[0].GameID)
	assert.Equal(t, pick.TeamAway, stored[0].PickedTeam)
}

func TestPickService_SubmitValidation(t *testing.T) {
	cases := []struct {
		name  string
		input SubmitPicksInput
	}{
		{name: "empty list", input: SubmitPicksInput{Handle: "carol"}},
		{name: "blank handle", input: SubmitPicksInput{Handle: "  ", Picks: pickInputs("game-1", "home")}},
		{name: "long handle", input: SubmitPicksInput{Handle: strings.Repeat("x", 51), Picks: pickInputs("game-1", "home")}},
		{name: "blank game id", input: SubmitPicksInput{Handle: "carol", Picks: pickInputs(" ", "home")}},
		{name: "bad team", input: SubmitPicksInput{Handle: "carol", Picks: pickInputs("game-1", "draw")}},
		{name: "duplicate game", input: SubmitPicksInput{Handle: "carol", Picks: pickInputs("game-1", "home", "game-1", "away")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t, testKickoff.Add(-time.Hour))

			_, err := env.pickService.Submit(ctx, tc.input)
			assert.ErrorIs(t, err, ErrInvalidInput)

			_, exists, lookupErr := env.participants.GetByHandle(ctx, "carol")
			require.NoError(t, lookupErr)
			assert.False(t, exists, "participant must not be created on rejected submissions")
		})
	}
}

func TestPickService_SubmitUnknownGame(t *testing.T) {
	env := newTestEnv(t, testKickoff.Add(-time.Hour))

	_, err := env.pickService.Submit(context.Background(), SubmitPicksInput{
		Handle: "dave",
		Picks:  pickInputs("game-1", "home", "game-404", "away"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "game-404")
}

func TestPickService_ListParticipantPicksSummary(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testKickoff.Add(-time.Hour))

	_, err := env.pickService.Submit(ctx, SubmitPicksInput{
		Handle: "erin",
		Picks:  pickInputs("game-1", "home", "game-2", "away", "game-3", "home"),
	})
	require.NoError(t, err)

	// game-1: 20-17 home with modified spread -7 -> away covers
	_, err = env.gameService.ReportScore(ctx, ReportScoreInput{GameID: "game-1", HomeScore: 20, AwayScore: 17})
	require.NoError(t, err)
	// game-2: modified -8.5, away wins by 2 -> away covers
	_, err = env.gameService.ReportScore(ctx, ReportScoreInput{GameID: "game-2", HomeScore: 14, AwayScore: 16})
	require.NoError(t, err)

	got, err := env.pickService.ListParticipantPicks(ctx, "Erin", &testScope)
	require.NoError(t, err)
	require.Len(t, got.Picks, 3)

	assert.Equal(t, pick.OutcomeLoss, got.Picks[0].Outcome)
	assert.Equal(t, pick.OutcomeWin, got.Picks[1].Outcome)
	assert.Equal(t, pick.OutcomePending, got.Picks[2].Outcome)

	assert.Equal(t, PickSummary{
		TotalPoints:    1,
		CorrectPicks:   1,
		IncorrectPicks: 1,
		Ties:           0,
		PendingGames:   1,
		TotalPicks:     3,
		CompletedGames: 2,
		WinPercentage:  50,
	}, got.Summary)
}

func TestPickService_ListParticipantPicksUnknownHandle(t *testing.T) {
	env := newTestEnv(t, testKickoff.Add(-time.Hour))

	_, err := env.pickService.ListParticipantPicks(context.Background(), "nobody", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPickService_SubmitAfterEarlyScoreIsRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testKickoff.Add(-time.Hour))

	_, err := env.pickService.Submit(ctx, SubmitPicksInput{Handle: "gus", Picks: pickInputs("game-1", "home")})
	require.NoError(t, err)

	// kickoff is still an hour away when the final score lands
	_, err = env.gameService.ReportScore(ctx, ReportScoreInput{GameID: "game-1", HomeScore: 27, AwayScore: 17})
	require.NoError(t, err)

	for _, handle := range []string{"late", "gus"} {
		_, err = env.pickService.Submit(ctx, SubmitPicksInput{Handle: handle, Picks: pickInputs("game-1", "away")})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, pick.ErrGameStarted)
	}

	stored, err := env.picks.ListByGame(ctx, "game-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, pick.TeamHome, stored[0].PickedTeam)
	require.True(t, stored[0].Graded())

	board, err := env.leaderboardService.Recompute(ctx, testScope)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "gus", board[0].Handle)
	assert.Equal(t, 1.0, board[0].TotalPoints)
	assert.Equal(t, 100.0, board[0].WinPercentage)
}
