package httpapi

import (
	"time"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/leaderboard"
	"github.com/riskibarqy/spread-pickem/internal/usecase"
)

type submitPicksRequest struct {
	Username string        `json:"username" validate:"omitempty,max=50"`
	Picks    []pickRequest `json:"picks" validate:"required,min=1,dive"`
}

type pickRequest struct {
	GameID     string `json:"game_id" validate:"required"`
	PickedTeam string `json:"picked_team" validate:"required"`
}

type seedGamesRequest struct {
	Games []seedGameRequest `json:"games" validate:"omitempty,dive"`
}

type seedGameRequest struct {
	ID             string  `json:"id" validate:"omitempty,max=64"`
	Season         int     `json:"season" validate:"required,gt=0"`
	WeekType       string  `json:"week_type" validate:"required,oneof=preseason regular playoffs"`
	Week           int     `json:"week" validate:"required,gt=0"`
	HomeTeam       string  `json:"home_team" validate:"required,max=100"`
	AwayTeam       string  `json:"away_team" validate:"required,max=100"`
	OriginalSpread float64 `json:"original_spread"`
	GameTime       string  `json:"game_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type reportScoreRequest struct {
	HomeScore *int `json:"home_score" validate:"required,min=0"`
	AwayScore *int `json:"away_score" validate:"required,min=0"`
}

type recomputeRequest struct {
	Season   int    `json:"season"`
	WeekType string `json:"week_type"`
	Week     int    `json:"week"`
}

type scopeDTO struct {
	Season   int    `json:"season"`
	WeekType string `json:"week_type"`
	Week     int    `json:"week"`
}

type gameDTO struct {
	ID             string  `json:"id"`
	Season         int     `json:"season"`
	WeekType       string  `json:"week_type"`
	Week           int     `json:"week"`
	HomeTeam       string  `json:"home_team"`
	AwayTeam       string  `json:"away_team"`
	OriginalSpread float64 `json:"original_spread"`
	ModifiedSpread float64 `json:"modified_spread"`
	GameTime       string  `json:"game_time"`
	HomeScore      *int    `json:"home_score,omitempty"`
	AwayScore      *int    `json:"away_score,omitempty"`
	IsComplete     bool    `json:"is_complete"`
	Started        bool    `json:"started"`
}

type submitPicksResponse struct {
	ParticipantID string `json:"participant_id"`
	Username      string `json:"username"`
	Count         int    `json:"count"`
}

type participantDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type pickDTO struct {
	ID         string   `json:"id"`
	GameID     string   `json:"game_id"`
	PickedTeam string   `json:"picked_team"`
	IsCorrect  *bool    `json:"is_correct"`
	Points     *float64 `json:"points"`
	Outcome    string   `json:"outcome"`
	Game       gameDTO  `json:"game"`
}

type pickSummaryDTO struct {
	TotalPoints    float64 `json:"total_points"`
	CorrectPicks   int     `json:"correct_picks"`
	IncorrectPicks int     `json:"incorrect_picks"`
	Ties           int     `json:"ties"`
	PendingGames   int     `json:"pending_games"`
	TotalPicks     int     `json:"total_picks"`
	CompletedGames int     `json:"completed_games"`
	WinPercentage  float64 `json:"win_percentage"`
}

type participantPicksDTO struct {
	Participant participantDTO `json:"participant"`
	Scope       *scopeDTO      `json:"scope,omitempty"`
	Picks       []pickDTO      `json:"picks"`
	Summary     pickSummaryDTO `json:"summary"`
}

type leaderboardEntryDTO struct {
	Rank           int     `json:"rank"`
	ParticipantID  string  `json:"participant_id"`
	Username       string  `json:"username"`
	TotalPicks     int     `json:"total_picks"`
	CorrectPicks   int     `json:"correct_picks"`
	IncorrectPicks int     `json:"incorrect_picks"`
	Ties           int     `json:"ties"`
	TotalPoints    float64 `json:"total_points"`
	WinPercentage  float64 `json:"win_percentage"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

type leaderboardDTO struct {
	Scope   scopeDTO              `json:"scope"`
	Entries []leaderboardEntryDTO `json:"entries"`
}

type reportScoreResponse struct {
	Game        gameDTO        `json:"game"`
	GradedPicks int            `json:"graded_picks"`
	Leaderboard leaderboardDTO `json:"leaderboard"`
}

type recomputeResultDTO struct {
	Scope      scopeDTO `json:"scope"`
	Entries    int      `json:"entries"`
	DurationMs int64    `json:"duration_ms"`
	Error      string   `json:"error,omitempty"`
}

func scopeToDTO(s game.Scope) scopeDTO {
	return scopeDTO{Season: s.Season, WeekType: string(s.WeekType), Week: s.Week}
}

func gameToDTO(g game.Game, now time.Time) gameDTO {
	return gameDTO{
		ID:             g.ID,
		Season:         g.Season,
		WeekType:       string(g.WeekType),
		Week:           g.Week,
		HomeTeam:       g.HomeTeam,
		AwayTeam:       g.AwayTeam,
		OriginalSpread: g.OriginalSpread,
		ModifiedSpread: g.ModifiedSpread,
		GameTime:       g.GameTime.UTC().Format(time.RFC3339),
		HomeScore:      g.HomeScore,
		AwayScore:      g.AwayScore,
		IsComplete:     g.IsComplete,
		Started:        g.Started(now),
	}
}

func gamesToDTO(items []game.Game, now time.Time) []gameDTO {
	out := make([]gameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameToDTO(item, now))
	}
	return out
}

func pickViewToDTO(v usecase.PickView, now time.Time) pickDTO {
	return pickDTO{
		ID:         v.Pick.ID,
		GameID:     v.Pick.GameID,
		PickedTeam: string(v.Pick.PickedTeam),
		IsCorrect:  v.Pick.IsCorrect,
		Points:     v.Pick.Points,
		Outcome:    string(v.Outcome),
		Game:       gameToDTO(v.Game, now),
	}
}

func participantPicksToDTO(v usecase.ParticipantPicks, scope *game.Scope, now time.Time) participantPicksDTO {
	picks := make([]pickDTO, 0, len(v.Picks))
	for _, item := range v.Picks {
		picks = append(picks, pickViewToDTO(item, now))
	}

	out := participantPicksDTO{
		Participant: participantDTO{ID: v.Participant.ID, Username: v.Participant.Handle},
		Picks:       picks,
		Summary: pickSummaryDTO{
			TotalPoints:    v.Summary.TotalPoints,
			CorrectPicks:   v.Summary.CorrectPicks,
			IncorrectPicks: v.Summary.IncorrectPicks,
			Ties:           v.Summary.Ties,
			PendingGames:   v.Summary.PendingGames,
			TotalPicks:     v.Summary.TotalPicks,
			CompletedGames: v.Summary.CompletedGames,
			WinPercentage:  v.Summary.WinPercentage,
		},
	}
	if scope != nil {
		s := scopeToDTO(*scope)
		out.Scope = &s
	}
	return out
}

func leaderboardToDTO(scope game.Scope, entries []leaderboard.Entry) leaderboardDTO {
	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		item := leaderboardEntryDTO{
			Rank:           e.Rank,
			ParticipantID:  e.ParticipantID,
			Username:       e.Handle,
			TotalPicks:     e.TotalPicks,
			CorrectPicks:   e.CorrectPicks,
			IncorrectPicks: e.IncorrectPicks(),
			Ties:           e.Ties,
			TotalPoints:    e.TotalPoints,
			WinPercentage:  e.WinPercentage,
		}
		if !e.UpdatedAt.IsZero() {
			item.UpdatedAt = e.UpdatedAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	return leaderboardDTO{Scope: scopeToDTO(scope), Entries: items}
}

func recomputeResultsToDTO(results []usecase.RecomputeResult) []recomputeResultDTO {
	out := make([]recomputeResultDTO, 0, len(results))
	for _, r := range results {
		out = append(out, recomputeResultDTO{
			Scope:      scopeToDTO(r.Scope),
			Entries:    r.Entries,
			DurationMs: r.DurationMs,
			Error:      r.Error,
		})
	}
	return out
}
