package main

import (
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/spread-pickem/internal/config"
	"github.com/riskibarqy/spread-pickem/internal/infrastructure/auth"
)

func tokenCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <handle>",
		Short: "Issue a bearer token that submits picks as handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return crerr.Wrap(err, "load config")
			}

			verifier, err := auth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer, logger)
			if err != nil {
				return crerr.Wrap(err, "AUTH_JWT_SECRET")
			}
			token, err := verifier.Issue(args[0], ttl)
			if err != nil {
				return crerr.Wrap(err, "issue token")
			}

			_, err = cmd.OutOrStdout().Write([]byte(token + "\n"))
			return err
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 7*24*time.Hour, "token lifetime, 0 for no expiry")
	return cmd
}
