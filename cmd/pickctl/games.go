package main

import (
	"context"
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/spread-pickem/internal/app"
	"github.com/riskibarqy/spread-pickem/internal/infrastructure/schedule"
	"github.com/riskibarqy/spread-pickem/internal/usecase"
)

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a schedule; the built-in preseason slate when --file is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds := schedule.Default()
			if file != "" {
				loaded, err := schedule.LoadFile(file)
				if err != nil {
					return crerr.Wrapf(err, "load schedule %s", file)
				}
				seeds = loaded
			}

			return withContainer(func(ctx context.Context, c *app.Container) error {
				games, err := c.Games.Seed(ctx, seeds)
				if err != nil {
					return crerr.Wrap(err, "seed games")
				}
				logger.Info("schedule seeded", "requested", len(seeds), "games", len(games))
				warnAPICache()
				return printJSON(cmd, games)
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON schedule file")
	return cmd
}

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <game-id> <home-score> <away-score>",
		Short: "Record a final score, grade its picks and refresh the leaderboard",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := parseScore(args[1])
			if err != nil {
				return crerr.Wrap(err, "home score")
			}
			away, err := parseScore(args[2])
			if err != nil {
				return crerr.Wrap(err, "away score")
			}

			return withContainer(func(ctx context.Context, c *app.Container) error {
				result, err := c.Games.ReportScore(ctx, usecase.ReportScoreInput{
					GameID:    args[0],
					HomeScore: home,
					AwayScore: away,
				})
				if err != nil {
					return crerr.Wrapf(err, "report score for %s", args[0])
				}
				logger.Info("score recorded",
					"game_id", result.Game.ID,
					"graded_picks", result.GradedPicks,
					"entries", len(result.Leaderboard),
				)
				warnAPICache()
				return printJSON(cmd, result)
			})
		},
	}
}

func parseScore(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, crerr.Wrapf(err, "invalid score %q", raw)
	}
	if value < 0 {
		return 0, crerr.Newf("score must be >= 0, got %d", value)
	}
	return value, nil
}
