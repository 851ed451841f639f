// Command pickctl operates a spread pick'em deployment from the shell.
//
// Usage:
//
//	pickctl migrate up
//	pickctl seed --file schedule.json
//	pickctl score game-1 24 17
//	pickctl recompute --all
//	pickctl leaderboard --season 2025 --week-type preseason --week 1
//	pickctl token alice --ttl 24h
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/spread-pickem/internal/app"
	"github.com/riskibarqy/spread-pickem/internal/config"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
)

var logger = logging.NewConsole(logging.LevelInfo, os.Stderr)

// apiStaleFor is how long API processes with caching on may keep serving
// reads that predate a write made here.
var apiStaleFor time.Duration

func main() {
	var envFile string

	root := &cobra.Command{
		Use:           "pickctl",
		Short:         "Spread pick'em operator CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(scoreCmd())
	root.AddCommand(recomputeCmd())
	root.AddCommand(leaderboardCmd())
	root.AddCommand(tokenCmd())

	if err := root.Execute(); err != nil {
		logger.Error("pickctl failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// withContainer loads configuration, wires services and runs fn with a
// context cancelled on SIGINT or SIGTERM.
func withContainer(fn func(ctx context.Context, c *app.Container) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return crerr.Wrap(err, "load config")
	}
	logger = logging.NewConsole(cfg.LogLevel, os.Stderr)
	logging.SetDefault(logger)
	cfg, apiStaleFor = cliConfig(cfg)

	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("memory storage selected, changes are discarded on exit")
	}

	c, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return crerr.Wrap(err, "build app")
	}
	defer c.Close()

	return fn(ctx, c)
}

// cliConfig turns the read-through cache off for this one-shot process and
// returns the TTL the API's own cache may still serve old reads for.
func cliConfig(cfg config.Config) (config.Config, time.Duration) {
	var staleFor time.Duration
	if cfg.CacheEnabled {
		staleFor = cfg.CacheTTL
	}
	cfg.CacheEnabled = false
	return cfg, staleFor
}

// warnAPICache notes after a write that running API processes do not see
// this process's cache invalidations.
func warnAPICache() {
	if apiStaleFor <= 0 {
		return
	}
	logger.Warn("running API processes may serve cached games and leaderboards until their entries expire",
		"max_staleness", apiStaleFor.String(),
	)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode output")
	}
	out = append(out, '\n')
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
