package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/credits"
	"resume-builder/internal/llm"
	"resume-builder/internal/llm/openai"
	"resume-builder/internal/payments"
	"resume-builder/internal/rephrase"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
)

// App holds shared dependencies and the HTTP router built from them.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Tokens          *auth.Manager
	LLM             llm.Client
	UsersRepo       users.Repo
	ResumesRepo     resumes.Repo
	PaymentsRepo    payments.Repo
	UsersService    *users.Service
	CreditsService  *credits.Service
	ResumesService  *resumes.Service
	PaymentsService *payments.Service
	RephraseService *rephrase.Service
	UsersHandler    *users.Handler
	ResumesHandler  *resumes.Handler
	CreditsHandler  *credits.Handler
	PaymentsHandler *payments.Handler
	RephraseHandler *rephrase.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if cfg.LogLevel != "" {
		telemetry.SetLevel(cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Tokens: tokens,
		LLM:    llmClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Tokens:          app.Tokens,
		UserHandler:     app.UsersHandler,
		ResumeHandler:   app.ResumesHandler,
		CreditHandler:   app.CreditsHandler,
		PaymentHandler:  app.PaymentsHandler,
		RephraseHandler: app.RephraseHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.UsesMemoryStores() {
			telemetry.Info("bootstrap.memory_stores", map[string]any{"env": cfg.Env})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "openai" || strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		telemetry.Warn("bootstrap.llm_placeholder", map[string]any{"provider": cfg.LLMProvider})
		return llm.PlaceholderClient{}, nil
	}
	client, err := openai.NewClient(openai.Options{
		APIKey:     cfg.OpenAIAPIKey,
		Model:      cfg.LLMModel,
		BaseURL:    cfg.OpenAIBaseURL,
		Timeout:    cfg.OpenAITimeout,
		RetryCount: 2,
	})
	if err != nil {
		return nil, fmt.Errorf("openai client: %w", err)
	}
	return client, nil
}

func buildServices(app *App) {
	var creditSvc *credits.Service
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.PaymentsRepo = &payments.PGRepo{DB: app.DB}
		creditSvc = credits.NewPostgresService(credits.NewPGStore(app.DB))
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.PaymentsRepo = payments.NewMemoryRepo()
		creditSvc = credits.NewService()
	}

	app.CreditsService = creditSvc
	app.UsersService = users.NewService(app.UsersRepo, app.Tokens, creditSvc)
	app.ResumesService = resumes.NewService(app.ResumesRepo)
	app.PaymentsService = payments.NewService(app.PaymentsRepo, creditSvc)
	app.RephraseService = rephrase.NewService(app.LLM, app.Config.RephraseMaxLen)

	limiter := middleware.NewRateLimiter(middleware.RateLimitRule{
		Rate:  app.Config.RephraseRate,
		Burst: app.Config.RephraseBurst,
	}, nil)

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.CreditsHandler = credits.NewHandler(creditSvc)
	app.PaymentsHandler = payments.NewHandler(app.PaymentsService)
	app.RephraseHandler = rephrase.NewHandler(app.RephraseService, limiter)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
}
