package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/ai"
	"portfolio-backend/internal/ai/gemini"
	"portfolio-backend/internal/analysis"
	googleauth "portfolio-backend/internal/auth"
	"portfolio-backend/internal/batches"
	"portfolio-backend/internal/pagemeta"
	"portfolio-backend/internal/portfolios"
	"portfolio-backend/internal/queue"
	"portfolio-backend/internal/shared/cache"
	"portfolio-backend/internal/shared/config"
	"portfolio-backend/internal/shared/server"
	"portfolio-backend/internal/shared/storage/db"
	"portfolio-backend/internal/shared/storage/object"
	localstore "portfolio-backend/internal/shared/storage/object/local"
	s3store "portfolio-backend/internal/shared/storage/object/s3"
	"portfolio-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client
	Cache  *cache.ResultCache

	PortfoliosRepo portfolios.Repo
	AnalysisRepo   analysis.Repo
	BatchesRepo    batches.Repo
	UsersRepo      users.Repo

	PortfoliosService *portfolios.Service
	AnalysisService   *analysis.Service
	BatchesService    *batches.Service
	UsersService      *users.Service

	PortfolioHandler *portfolios.Handler
	AnalysisHandler  *analysis.Handler
	BatchHandler     *batches.Handler
	UserHandler      *users.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	resultCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("result cache: %w", err)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
		Cache:  resultCache,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	// Runs left in processing by an earlier crash get failed so their
	// portfolios can be resubmitted.
	if err := app.AnalysisService.ReconcileStuck(ctx); err != nil {
		log.Printf("bootstrap: reconcile stuck analyses: %v", err)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		PortfolioHandler: app.PortfolioHandler,
		AnalysisHandler:  app.AnalysisHandler,
		BatchHandler:     app.BatchHandler,
		UserHandler:      app.UserHandler,
		GoogleAuth:       app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("PB_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.AWSRegion)
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.PortfoliosRepo = &portfolios.PGRepo{DB: app.DB}
		app.AnalysisRepo = &analysis.PGRepo{DB: app.DB}
		app.BatchesRepo = &batches.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.PortfoliosRepo = portfolios.NewMemoryRepo()
		app.AnalysisRepo = analysis.NewMemoryRepo()
		app.BatchesRepo = batches.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	aiClient := ai.Client(nil)
	if app.Config.AIProvider == "gemini" {
		if apiKey := strings.TrimSpace(os.Getenv("GOOGLE_AI_API_KEY")); apiKey != "" {
			client, err := gemini.NewClient(apiKey, app.Config.AIModel)
			if err != nil {
				return err
			}
			aiClient = client
		} else {
			log.Printf("bootstrap: GOOGLE_AI_API_KEY empty; analyses use the heuristic engine")
			aiClient = ai.PlaceholderClient{}
		}
	}

	app.PortfoliosService = &portfolios.Service{
		Store: app.Store,
		Repo:  app.PortfoliosRepo,
	}
	app.AnalysisService = &analysis.Service{
		Repo:       app.AnalysisRepo,
		Portfolios: app.PortfoliosRepo,
		Store:      app.Store,
		AI:         aiClient,
		Model:      app.Config.AIModel,
		Cache:      app.Cache,
		Meta:       pagemeta.NewFetcher(),
		Queue:      app.Queue,
	}
	app.BatchesService = &batches.Service{
		Repo:       app.BatchesRepo,
		Portfolios: app.PortfoliosService,
		Analyses:   app.AnalysisService,
	}
	app.UsersService = users.NewService(app.UsersRepo)

	app.PortfolioHandler = portfolios.NewHandler(app.PortfoliosService, app.Config.MaxUploadMB)
	app.AnalysisHandler = analysis.NewHandler(app.AnalysisService)
	app.BatchHandler = batches.NewHandler(app.BatchesService)
	app.UserHandler = users.NewHandler(app.UsersService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
