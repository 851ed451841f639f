package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/leaderboard"
	"github.com/riskibarqy/spread-pickem/internal/domain/participant"
	"github.com/riskibarqy/spread-pickem/internal/domain/pick"
	gamemock "github.com/riskibarqy/spread-pickem/internal/mocks/domain/game"
	leaderboardmock "github.com/riskibarqy/spread-pickem/internal/mocks/domain/leaderboard"
	participantmock "github.com/riskibarqy/spread-pickem/internal/mocks/domain/participant"
	pickmock "github.com/riskibarqy/spread-pickem/internal/mocks/domain/pick"
	"github.com/stretchr/testify/mock"
)

func gradedScopedPick(participantID, gameID string, points float64) pick.ScopedPick {
	correct := points == pick.PointsWin
	return pick.ScopedPick{
		Pick: pick.Pick{
			ParticipantID: participantID,
			GameID:        gameID,
			PickedTeam:    pick.TeamHome,
			IsCorrect:     &correct,
			Points:        &points,
		},
		GameComplete: true,
	}
}

func TestLeaderboardService_Recompute_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gameRepo := gamemock.NewRepository(t)
	pickRepo := pickmock.NewRepository(t)
	participantRepo := participantmock.NewRepository(t)
	entryRepo := leaderboardmock.NewRepository(t)

	service := NewLeaderboardService(gameRepo, pickRepo, participantRepo, entryRepo, 1, nil)
	now := time.Date(2025, 8, 8, 3, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	pickRepo.
		On("ListByScope", mock.Anything, testScope).
		Return([]pick.ScopedPick{
			gradedScopedPick("p-zoe", "game-1", pick.PointsWin),
			gradedScopedPick("p-amy", "game-1", pick.PointsWin),
			gradedScopedPick("p-amy", "game-2", pick.PointsPush),
		}, nil).
		Once()
	participantRepo.
		On("ListByIDs", mock.Anything, []string{"p-zoe", "p-amy"}).
		Return([]participant.Participant{{ID: "p-amy", Handle: "amy"}, {ID: "p-zoe", Handle: "zoe"}}, nil).
		Once()
	entryRepo.
		On("ReplaceScope", mock.Anything, testScope, mock.MatchedBy(func(entries []leaderboard.Entry) bool {
			return len(entries) == 2 &&
				entries[0].Handle == "amy" && entries[0].Rank == 1 && entries[0].TotalPoints == 1.5 &&
				entries[1].Handle == "zoe" && entries[1].Rank == 2 &&
				entries[0].UpdatedAt.Equal(now)
		})).
		Return(nil).
		Once()

	got, err := service.Recompute(ctx, testScope)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if len(got) != 2 || got[0].ParticipantID != "p-amy" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestLeaderboardService_Recompute_StoreFailureUsingMockery(t *testing.T) {
	t.Parallel()

	pickRepo := pickmock.NewRepository(t)
	entryRepo := leaderboardmock.NewRepository(t)
	service := NewLeaderboardService(gamemock.NewRepository(t), pickRepo, participantmock.NewRepository(t), entryRepo, 1, nil)

	pickRepo.On("ListByScope", mock.Anything, testScope).Return([]pick.ScopedPick{}, nil).Once()
	entryRepo.On("ReplaceScope", mock.Anything, testScope, mock.Anything).Return(errors.New("db down")).Once()

	if _, err := service.Recompute(context.Background(), testScope); err == nil {
		t.Fatalf("expected error when the store fails")
	}
}

func TestLeaderboardService_List_FallsBackToLiveProjectionUsingMockery(t *testing.T) {
	t.Parallel()

	pickRepo := pickmock.NewRepository(t)
	participantRepo := participantmock.NewRepository(t)
	entryRepo := leaderboardmock.NewRepository(t)
	service := NewLeaderboardService(gamemock.NewRepository(t), pickRepo, participantRepo, entryRepo, 1, nil)

	entryRepo.On("ListByScope", mock.Anything, testScope).Return([]leaderboard.Entry{}, nil).Once()
	pickRepo.
		On("ListByScope", mock.Anything, testScope).
		Return([]pick.ScopedPick{{Pick: pick.Pick{ParticipantID: "p-1", GameID: "game-3", PickedTeam: pick.TeamAway}}}, nil).
		Once()
	participantRepo.
		On("ListByIDs", mock.Anything, []string{"p-1"}).
		Return([]participant.Participant{{ID: "p-1", Handle: "early-bird"}}, nil).
		Once()

	got, err := service.List(context.Background(), testScope)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Handle != "early-bird" || got[0].TotalPicks != 0 || got[0].Rank != 1 {
		t.Fatalf("unexpected live board: %+v", got)
	}
}

func TestLeaderboardService_List_InvalidScope(t *testing.T) {
	t.Parallel()

	service := NewLeaderboardService(nil, nil, nil, nil, 1, nil)
	_, err := service.List(context.Background(), game.Scope{Season: 2025, WeekType: "bowl", Week: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeaderboardService_RecomputeAll_UsingMockery(t *testing.T) {
	t.Parallel()

	gameRepo := gamemock.NewRepository(t)
	pickRepo := pickmock.NewRepository(t)
	entryRepo := leaderboardmock.NewRepository(t)
	service := NewLeaderboardService(gameRepo, pickRepo, participantmock.NewRepository(t), entryRepo, 2, nil)

	week2 := game.Scope{Season: 2025, WeekType: game.WeekTypePreseason, Week: 2}
	gameRepo.On("ListScopes", mock.Anything).Return([]game.Scope{week2, testScope}, nil).Once()
	pickRepo.On("ListByScope", mock.Anything, testScope).Return([]pick.ScopedPick{}, nil).Once()
	pickRepo.On("ListByScope", mock.Anything, week2).Return(nil, errors.New("timeout")).Once()
	entryRepo.On("ReplaceScope", mock.Anything, testScope, mock.Anything).Return(nil).Once()

	results, err := service.RecomputeAll(context.Background())
	if err == nil {
		t.Fatalf("expected joined error for the failed scope")
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Scope != testScope || results[0].Error != "" {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].Scope != week2 || results[1].Error == "" {
		t.Fatalf("unexpected second result: %+v", results[1])
	}
}
