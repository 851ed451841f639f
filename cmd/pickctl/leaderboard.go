package main

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/spread-pickem/internal/app"
	"github.com/riskibarqy/spread-pickem/internal/domain/game"
)

type scopeFlags struct {
	season   int
	weekType string
	week     int
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.season, "season", 0, "season year (default from DEFAULT_SEASON)")
	cmd.Flags().StringVar(&f.weekType, "week-type", "", "preseason, regular or playoffs (default from DEFAULT_WEEK_TYPE)")
	cmd.Flags().IntVar(&f.week, "week", 0, "week number (default from DEFAULT_WEEK)")
}

// resolve fills unset flags from fallback.
func (f *scopeFlags) resolve(fallback game.Scope) (game.Scope, error) {
	scope := fallback
	if f.season != 0 {
		scope.Season = f.season
	}
	if f.weekType != "" {
		weekType, err := game.ParseWeekType(f.weekType)
		if err != nil {
			return game.Scope{}, err
		}
		scope.WeekType = weekType
	}
	if f.week != 0 {
		scope.Week = f.week
	}
	if err := scope.Validate(); err != nil {
		return game.Scope{}, err
	}
	return scope, nil
}

func recomputeCmd() *cobra.Command {
	var (
		all   bool
		flags scopeFlags
	)
	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Rebuild a leaderboard from stored picks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(func(ctx context.Context, c *app.Container) error {
				if all {
					results, err := c.Leaderboards.RecomputeAll(ctx)
					if err != nil {
						logger.Warn("recompute all finished with errors", "error", err)
					}
					warnAPICache()
					if printErr := printJSON(cmd, results); printErr != nil {
						return printErr
					}
					return err
				}

				scope, err := flags.resolve(c.Config.DefaultScope)
				if err != nil {
					return crerr.Wrap(err, "scope")
				}
				entries, err := c.Leaderboards.Recompute(ctx, scope)
				if err != nil {
					return crerr.Wrapf(err, "recompute %s", scope.Key())
				}
				logger.Info("leaderboard recomputed", "scope", scope.Key(), "entries", len(entries))
				warnAPICache()
				return printJSON(cmd, entries)
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "recompute every scope that has games")
	flags.register(cmd)
	return cmd
}

func leaderboardCmd() *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the stored leaderboard of a scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(func(ctx context.Context, c *app.Container) error {
				scope, err := flags.resolve(c.Config.DefaultScope)
				if err != nil {
					return crerr.Wrap(err, "scope")
				}
				entries, err := c.Leaderboards.List(ctx, scope)
				if err != nil {
					return crerr.Wrapf(err, "list %s", scope.Key())
				}
				return printJSON(cmd, entries)
			})
		},
	}
	flags.register(cmd)
	return cmd
}
