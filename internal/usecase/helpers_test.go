package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/spread-pickem/internal/platform/id"
)

var (
	testScope   = game.Scope{Season: 2025, WeekType: game.WeekTypePreseason, Week: 1}
	testKickoff = time.Date(2025, 8, 7, 23, 0, 0, 0, time.UTC)
)

type testEnv struct {
	games        *memory.GameRepository
	picks        *memory.PickRepository
	entries      *memory.LeaderboardRepository
	participants *memory.ParticipantRepository

	participantService *ParticipantService
	leaderboardService *LeaderboardService
	gameService        *GameService
	pickService        *PickService
}

// newTestEnv wires every service on memory repositories with a clock fixed
// at now. game-1 kicks off at testKickoff, game-2 an hour later and game-3
// a day later; all are in testScope.
func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	games := memory.NewGameRepository([]game.Game{
		game.NewScheduled("game-1", testScope, "Cincinnati Bengals", "Philadelphia Eagles", -1, testKickoff),
		game.NewScheduled("game-2", testScope, "Baltimore Ravens", "Indianapolis Colts", -2.5, testKickoff.Add(time.Hour)),
		game.NewScheduled("game-3", testScope, "New England Patriots", "Washington Commanders", 1.5, testKickoff.Add(24*time.Hour)),
	})
	picks := memory.NewPickRepository(games)
	entries := memory.NewLeaderboardRepository()
	participants := memory.NewParticipantRepository()

	clock := func() time.Time { return now }

	participantService := NewParticipantService(participants, idgen.NewSequenceGenerator("participant"), nil)
	participantService.now = clock
	leaderboardService := NewLeaderboardService(games, picks, participants, entries, 2, nil)
	leaderboardService.now = clock
	gameService := NewGameService(games, picks, leaderboardService, idgen.NewSequenceGenerator("seeded"), nil)
	pickService := NewPickService(games, picks, participantService, idgen.NewSequenceGenerator("pick"), nil)
	pickService.now = clock

	return &testEnv{
		games:              games,
		picks:              picks,
		entries:            entries,
		participants:       participants,
		participantService: participantService,
		leaderboardService: leaderboardService,
		gameService:        gameService,
		pickService:        pickService,
	}
}

func pickInputs(pairs ...string) []PickInput {
	out := make([]PickInput, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, PickInput{GameID: pairs[i], PickedTeam: pairs[i+1]})
	}
	return out
}
