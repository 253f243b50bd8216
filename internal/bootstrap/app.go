package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resumevar-backend/internal/analytics"
	"resumevar-backend/internal/authn"
	"resumevar-backend/internal/drafts"
	"resumevar-backend/internal/inbox"
	"resumevar-backend/internal/queue"
	"resumevar-backend/internal/resumes"
	"resumevar-backend/internal/session"
	"resumevar-backend/internal/shared/auth"
	"resumevar-backend/internal/shared/config"
	"resumevar-backend/internal/shared/server"
	"resumevar-backend/internal/shared/storage/db"
	"resumevar-backend/internal/shared/storage/object"
	localstore "resumevar-backend/internal/shared/storage/object/local"
	s3store "resumevar-backend/internal/shared/storage/object/s3"
	"resumevar-backend/internal/shared/telemetry"
	"resumevar-backend/internal/users"
)

// App holds the shared dependencies behind the API and the worker.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Objects object.Store
	Queue   queue.Client

	Sessions *session.Store
	Watcher  *session.Watcher
	Drafts   *drafts.Store

	UsersService     *users.Service
	AuthnService     *authn.Service
	ResumesService   *resumes.Service
	InboxService     *inbox.Service
	AnalyticsService *analytics.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	auth.SetSecret(cfg.JWTSecret)
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	objects, err := buildObjects(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Objects:  objects,
		Queue:    queueClient,
		Sessions: session.NewStore(),
		Drafts:   drafts.NewStore(),
	}
	buildServices(app)

	app.Watcher = session.NewWatcher(app.Sessions, cfg.SessionSweepInterval, func(subject string) {
		telemetry.Info("session.forced_logout", map[string]any{"user_id": subject})
	})

	var google *authn.GoogleService
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		google = authn.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL, cfg.UIRedirectURL, app.AuthnService)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    cfg,
		Sessions:  app.Sessions,
		Authn:     authn.NewHandler(app.AuthnService),
		Google:    google,
		Users:     users.NewHandler(app.UsersService),
		Resumes:   resumes.NewHandler(app.ResumesService),
		Inbox:     inbox.NewHandler(app.InboxService),
		Analytics: analytics.NewHandler(app.AnalyticsService),
		Drafts:    drafts.NewHandler(app.Drafts, app.UsersService, app.UsersService),
	})

	return app, nil
}

func buildServices(app *App) {
	var (
		userRepo       users.Repo
		resumeRepo     resumes.Repo
		inboxRepo      inbox.Repo
		analyticsStore analytics.Store
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		inboxRepo = &inbox.PGRepo{DB: app.DB}
		analyticsStore = &analytics.PGStore{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		inboxRepo = inbox.NewMemoryRepo()
		analyticsStore = analytics.NewMemoryStore()
	}

	app.UsersService = users.NewService(userRepo)

	var recaptcha authn.RecaptchaVerifier
	if app.Config.RecaptchaSecret != "" {
		recaptcha = authn.NewGoogleRecaptcha(app.Config.RecaptchaSecret)
	}
	app.AuthnService = authn.NewService(app.UsersService, app.Sessions, app.Config.SessionTTL, recaptcha)

	app.ResumesService = resumes.NewService(resumeRepo, app.UsersService, app.Objects, app.Queue)
	app.InboxService = inbox.NewService(inboxRepo, app.Queue)
	app.AnalyticsService = analytics.NewService(analyticsStore)
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
	return sqlDB, nil
}

func buildObjects(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return nil, nil
	}
	client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.QueueURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
