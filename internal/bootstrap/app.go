package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resume-matcher/internal/embed"
	geminiembed "resume-matcher/internal/embed/gemini"
	openaiembed "resume-matcher/internal/embed/openai"
	"resume-matcher/internal/evaluations"
	"resume-matcher/internal/extract"
	"resume-matcher/internal/feedback"
	"resume-matcher/internal/llm"
	geminillm "resume-matcher/internal/llm/gemini"
	openaillm "resume-matcher/internal/llm/openai"
	"resume-matcher/internal/ranking"
	"resume-matcher/internal/rankings"
	"resume-matcher/internal/report"
	"resume-matcher/internal/services/health"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/server"
	"resume-matcher/internal/shared/server/middleware"
	"resume-matcher/internal/shared/storage/db"
	"resume-matcher/internal/shared/storage/object"
	localstore "resume-matcher/internal/shared/storage/object/local"
	s3store "resume-matcher/internal/shared/storage/object/s3"
	"resume-matcher/internal/shared/telemetry"
)

// App holds the process-wide dependencies. Everything here is built once and
// read-only afterwards.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Store              object.ObjectStore
	Redis              *redis.Client
	Embedder           embed.Embedder
	LLM                llm.Client
	Feedback           *feedback.Generator
	Ranker             *ranking.Ranker
	EvaluationsRepo    evaluations.Repo
	RankingsRepo       rankings.Repo
	EvaluationsService *evaluations.Service
	RankingsService    *rankings.Service
	EvaluationHandler  *evaluations.Handler
	RankingHandler     *rankings.Handler
	Health             *health.Service

	closers []io.Closer
}

// Overrides replaces external model clients, mainly for tests and the CLI.
type Overrides struct {
	Embedder embed.Embedder
	LLM      llm.Client
}

// Build prepares all dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	return BuildWith(ctx, cfg, Overrides{})
}

// BuildWith is Build with model clients supplied by the caller.
func BuildWith(ctx context.Context, cfg config.Config, ov Overrides) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	app := &App{Config: cfg}
	ok := false
	defer func() {
		if !ok {
			_ = app.Close()
		}
	}()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil {
		app.DB = sqlDB
		app.closers = append(app.closers, sqlDB)
	}

	if app.Store, err = buildStore(ctx, cfg); err != nil {
		return nil, err
	}

	app.Embedder = ov.Embedder
	if app.Embedder == nil {
		if app.Embedder, err = app.buildEmbedder(ctx); err != nil {
			return nil, err
		}
	}
	if err := app.wrapCache(); err != nil {
		return nil, err
	}

	app.LLM = ov.LLM
	if app.LLM == nil {
		if app.LLM, err = app.buildLLM(ctx); err != nil {
			return nil, err
		}
	}

	app.buildServices()
	app.Health = app.buildHealth()
	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		EvaluationHandler: app.EvaluationHandler,
		RankingHandler:    app.RankingHandler,
		Health:            app.Health,
		RateLimiter:       middleware.NewRateLimiter(nil),
	})

	ok = true
	return app, nil
}

// Close releases clients opened by Build, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database unavailable", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func (a *App) buildEmbedder(ctx context.Context) (embed.Embedder, error) {
	cfg := a.Config
	switch cfg.EmbeddingProvider {
	case "openai":
		return openaiembed.New(cfg.EmbeddingBaseURL, cfg.OpenAIAPIKey, cfg.EmbeddingModel, 0), nil
	case "none":
		return nil, embed.ErrNoEmbedder
	default:
		e, err := geminiembed.New(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, e)
		return e, nil
	}
}

func (a *App) wrapCache() error {
	if strings.TrimSpace(a.Config.RedisURL) == "" {
		return nil
	}
	client, err := embed.NewRedisClient(a.Config.RedisURL)
	if err != nil {
		return err
	}
	a.Redis = client
	a.closers = append(a.closers, client)
	a.Embedder = embed.NewCached(a.Embedder, client, a.Config.EmbeddingCacheTTL)
	return nil
}

func (a *App) buildLLM(ctx context.Context) (llm.Client, error) {
	cfg := a.Config
	switch cfg.FeedbackProvider {
	case "none":
		return llm.Disabled{}, nil
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			telemetry.Warn("bootstrap.feedback_disabled", map[string]any{"provider": "openai", "reason": "OPENAI_API_KEY empty"})
			return llm.Disabled{}, nil
		}
		return openaillm.NewClient(cfg.OpenAIAPIKey, cfg.FeedbackModel, cfg.FeedbackTimeout)
	default:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			telemetry.Warn("bootstrap.feedback_disabled", map[string]any{"provider": "gemini", "reason": "GEMINI_API_KEY empty"})
			return llm.Disabled{}, nil
		}
		c, err := geminillm.NewClient(ctx, cfg.GeminiAPIKey, cfg.FeedbackModel)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, c)
		return c, nil
	}
}

func (a *App) buildServices() {
	if a.DB != nil {
		a.EvaluationsRepo = &evaluations.PGRepo{DB: a.DB}
		a.RankingsRepo = &rankings.PGRepo{DB: a.DB}
	} else {
		a.EvaluationsRepo = evaluations.NewMemoryRepo()
		a.RankingsRepo = rankings.NewMemoryRepo()
	}

	scorer := embed.NewScorer(a.Embedder)
	a.Feedback = feedback.NewGenerator(a.LLM, a.Config.FeedbackTimeout)
	a.Ranker = &ranking.Ranker{
		Extract:     extract.ExtractBytes,
		Scorer:      scorer,
		Concurrency: a.Config.RankConcurrency,
	}

	a.EvaluationsService = &evaluations.Service{
		Repo:     a.EvaluationsRepo,
		Extract:  extract.ExtractBytes,
		Scorer:   scorer,
		Feedback: a.Feedback,
	}
	a.RankingsService = &rankings.Service{
		Repo:    a.RankingsRepo,
		Ranker:  a.Ranker,
		Reports: report.NewWriter(a.Store),
		Store:   a.Store,
	}
	a.EvaluationHandler = evaluations.NewHandler(a.EvaluationsService)
	a.RankingHandler = rankings.NewHandler(a.RankingsService)
}

func (a *App) buildHealth() *health.Service {
	svc := health.NewService()
	if a.DB != nil {
		svc.Add("database", a.DB.PingContext)
	}
	if a.Redis != nil {
		svc.Add("cache", func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		})
	}
	return svc
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
