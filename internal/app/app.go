package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/spread-pickem/internal/config"
	"github.com/riskibarqy/spread-pickem/internal/domain/game"
	"github.com/riskibarqy/spread-pickem/internal/domain/leaderboard"
	"github.com/riskibarqy/spread-pickem/internal/domain/participant"
	"github.com/riskibarqy/spread-pickem/internal/domain/pick"
	"github.com/riskibarqy/spread-pickem/internal/infrastructure/auth"
	"github.com/riskibarqy/spread-pickem/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/spread-pickem/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/spread-pickem/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/spread-pickem/internal/infrastructure/schedule"
	"github.com/riskibarqy/spread-pickem/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/spread-pickem/internal/platform/cache"
	idgen "github.com/riskibarqy/spread-pickem/internal/platform/id"
	"github.com/riskibarqy/spread-pickem/internal/platform/logging"
	"github.com/riskibarqy/spread-pickem/internal/usecase"
)

// Container holds the wired services of one process.
type Container struct {
	Config       config.Config
	Games        *usecase.GameService
	Picks        *usecase.PickService
	Leaderboards *usecase.LeaderboardService
	Participants *usecase.ParticipantService
	Verifier     *auth.Verifier

	db     *sqlx.DB
	logger *logging.Logger
}

type repositories struct {
	games        game.Repository
	picks        pick.Repository
	participants participant.Repository
	leaderboards leaderboard.Repository
}

// Build wires storage, caches and services for cfg. The in-memory driver is
// seeded with the built-in preseason slate; postgres only when
// SEED_DEFAULT_SCHEDULE is set.
func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	c := &Container{Config: cfg, logger: logger}

	repos, err := c.openRepositories(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.games = cache.NewGameRepository(repos.games, store)
		repos.picks = cache.NewPickRepository(repos.picks, store)
		repos.participants = cache.NewParticipantRepository(repos.participants, store)
		repos.leaderboards = cache.NewLeaderboardRepository(repos.leaderboards, store)
	}

	c.Participants = usecase.NewParticipantService(repos.participants, idgen.NewRandomGenerator("usr_"), logger)
	c.Leaderboards = usecase.NewLeaderboardService(
		repos.games,
		repos.picks,
		repos.participants,
		repos.leaderboards,
		cfg.RecomputeWorkers,
		logger,
	)
	c.Games = usecase.NewGameService(repos.games, repos.picks, c.Leaderboards, idgen.NewRandomGenerator("game_"), logger)
	c.Picks = usecase.NewPickService(repos.games, repos.picks, c.Participants, idgen.NewRandomGenerator("pick_"), logger)

	if cfg.AuthJWTSecret != "" {
		c.Verifier, err = auth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer, logger)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("build token verifier: %w", err)
		}
	}

	if cfg.StorageDriver == config.StorageMemory || cfg.SeedDefaultSchedule {
		seeded, err := c.Games.Seed(ctx, schedule.Default())
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("seed default schedule: %w", err)
		}
		logger.Info("default schedule seeded", "scope", schedule.DefaultScope().Key(), "games", len(seeded))
	}

	return c, nil
}

func (c *Container) openRepositories(ctx context.Context) (repositories, error) {
	switch c.Config.StorageDriver {
	case config.StorageMemory:
		games := memory.NewGameRepository(nil)
		return repositories{
			games:        games,
			picks:        memory.NewPickRepository(games),
			participants: memory.NewParticipantRepository(),
			leaderboards: memory.NewLeaderboardRepository(),
		}, nil
	case config.StoragePostgres:
		db, err := openDB(ctx, c.Config)
		if err != nil {
			return repositories{}, err
		}
		c.db = db
		c.logger.Info("postgres connected", "db_name", dbNameFromURL(c.Config.DBURL))
		return repositories{
			games:        postgres.NewGameRepository(db),
			picks:        postgres.NewPickRepository(db),
			participants: postgres.NewParticipantRepository(db),
			leaderboards: postgres.NewLeaderboardRepository(db),
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", c.Config.StorageDriver)
	}
}

// NewHTTPServer builds the API server on top of the container's services.
func (c *Container) NewHTTPServer() (*http.Server, error) {
	if c.Config.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(
		c.Games,
		c.Picks,
		c.Leaderboards,
		c.Config.DefaultScope,
		schedule.Default(),
		c.logger,
	)

	// A nil *auth.Verifier must not reach the router as a non-nil interface.
	var verifier httpapi.TokenVerifier
	if c.Verifier != nil {
		verifier = c.Verifier
	}

	router := httpapi.NewRouter(handler, verifier, c.logger, httpapi.RouterConfig{
		ServiceName:        c.Config.ServiceName,
		CORSAllowedOrigins: c.Config.CORSAllowedOrigins,
		AdminKey:           c.Config.AdminKey,
		SubmitRateLimitRPS: c.Config.SubmitRateLimitRPS,
		SubmitRateBurst:    c.Config.SubmitRateLimitBurst,
	})

	return &http.Server{
		Addr:         c.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  c.Config.ReadTimeout,
		WriteTimeout: c.Config.WriteTimeout,
	}, nil
}

func (c *Container) Close() {
	if c == nil || c.db == nil {
		return
	}
	if err := c.db.Close(); err != nil {
		c.logger.Warn("close database failed", "error", err)
	}
}
