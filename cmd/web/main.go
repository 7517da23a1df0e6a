package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/mkarvon/sleuthline/internal/ai"
	"github.com/mkarvon/sleuthline/internal/catalog"
	"github.com/mkarvon/sleuthline/internal/db"
	"github.com/mkarvon/sleuthline/internal/engine"
	"github.com/mkarvon/sleuthline/internal/envstruct"
	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/logging"
	"github.com/mkarvon/sleuthline/internal/pprofserver"
	"github.com/mkarvon/sleuthline/internal/ratelimit"
	"github.com/mkarvon/sleuthline/internal/repositories"
	"github.com/mkarvon/sleuthline/internal/worker"
	"github.com/redis/go-redis/v9"
)

// chatRateLimit is the number of chat messages allowed per owner per minute.
const chatRateLimit = 20

type config struct {
	Addr        string `env:"SLEUTHLINE_ADDR" envDefault:"localhost:4000"`
	PprofPort   string `env:"SLEUTHLINE_PPROF_PORT" envDefault:":6060"`
	SQLiteURL   string `env:"SLEUTHLINE_SQLITE_URL" envDefault:"./sleuthline.sqlite"`
	OpenAIKey   string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIModel string `env:"SLEUTHLINE_OPENAI_MODEL" envDefault:""`
	RedisAddr   string `env:"SLEUTHLINE_REDIS_ADDR" envDefault:""`
}

// narrator generates the colleague's reply from the engine's context
// bundle. Defined here so tests can stub the generation collaborator.
type narrator interface {
	ChatResponse(ctx context.Context, bundle engine.ContextBundle) (string, error)
}

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	cases          *repositories.CaseRepository
	games          *repositories.GameRepository
	evidence       *repositories.EvidenceRepository
	messages       *repositories.MessageRepository
	engine         *engine.Engine
	narrator       narrator
	limiter        *ratelimit.Limiter
	summaries      *worker.SummaryWorker
}

func main() {
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})))

	// Missing .env is fine; the environment may be configured directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Error(err.Error())
		os.Exit(1)
	}

	ctx := context.Background()
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	// pprof listens on localhost so that it's not open to the world.
	pprofserver.Launch(cfg.PprofPort, logger)

	dbs, err := db.NewDB(ctx, cfg.SQLiteURL)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("sqlite_url", cfg.SQLiteURL))
	}
	defer func() {
		if err := dbs.Close(); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close database", errors.SlogError(err))
		}
	}()

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 7 * 24 * time.Hour

	caseRepo := repositories.NewCaseRepository(dbs, logger)
	gameRepo := repositories.NewGameRepository(dbs, logger)
	progressRepo := repositories.NewProgressRepository(dbs, logger)
	evidenceRepo := repositories.NewEvidenceRepository(dbs, logger)
	messageRepo := repositories.NewMessageRepository(dbs, logger)

	catalogService := catalog.NewService(caseRepo, logger)
	aiClient := ai.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, logger)

	summaries := worker.NewSummaryWorker(gameRepo, messageRepo, aiClient, logger)
	go summaries.Start()
	defer summaries.Stop()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}) //nolint:exhaustruct // defaults are fine
	}

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		cases:          caseRepo,
		games:          gameRepo,
		evidence:       evidenceRepo,
		messages:       messageRepo,
		engine:         engine.New(catalogService, caseRepo, progressRepo, evidenceRepo, messageRepo, logger),
		narrator:       aiClient,
		limiter:        ratelimit.New(redisClient, chatRateLimit, time.Minute, logger),
		summaries:      summaries,
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}
