package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"careercompass-backend/internal/jobcache"
	"careercompass-backend/internal/jobs"
	"careercompass-backend/internal/profile"
	"careercompass-backend/internal/recommend"
	"careercompass-backend/internal/shared/config"
	"careercompass-backend/internal/shared/server"
	"careercompass-backend/internal/shared/storage/db"
	"careercompass-backend/internal/shared/storage/kv"
	"careercompass-backend/internal/userprofile"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	KV               kv.Store
	Cache            *jobcache.Store
	Sweeper          *jobcache.Sweeper
	Provider         recommend.Client
	ProfilesRepo     userprofile.Repo
	ProfilesService  *userprofile.Service
	RecommendService *recommend.Service
	RecommendHandler *recommend.Handler
	ProfilesHandler  *userprofile.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	kvStore, err := buildKV(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		KV:     kvStore,
		Cache:  jobcache.New(kvStore, nil),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	if spec := strings.TrimSpace(cfg.CacheSweepSpec); spec != "" {
		sweeper, err := jobcache.StartSweeper(spec, kvStore)
		if err != nil {
			return nil, fmt.Errorf("start cache sweeper: %w", err)
		}
		app.Sweeper = sweeper
	}

	app.Router = server.NewRouter(cfg, server.Deps{
		Recommend: app.RecommendHandler,
		Profiles:  app.ProfilesHandler,
	})

	return app, nil
}

// Close releases held resources. Safe to call on a partially built App.
func (a *App) Close() {
	a.Sweeper.Stop()
	if closer, ok := a.KV.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
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
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildKV(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.CacheBackend {
	case "redis":
		store, err := kv.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: redis connect failed; using in-memory cache: %v", err)
				return kv.NewMemory(nil), nil
			}
			return nil, err
		}
		return store, nil
	default:
		return kv.NewMemory(nil), nil
	}
}

func buildServices(app *App) error {
	var profilesRepo userprofile.Repo
	if app.DB != nil {
		profilesRepo = &userprofile.PGRepo{DB: app.DB}
	} else {
		profilesRepo = userprofile.NewMemoryRepo()
	}

	provider, err := buildProvider(app.Config)
	if err != nil {
		return err
	}

	profilesSvc := &userprofile.Service{
		Repo:  profilesRepo,
		Cache: app.Cache,
	}
	recommendSvc := &recommend.Service{
		Cache:      app.Cache,
		Provider:   provider,
		TTLMinutes: app.Config.JobCacheTTLMinutes,
	}

	app.Provider = provider
	app.ProfilesRepo = profilesRepo
	app.ProfilesService = profilesSvc
	app.RecommendService = recommendSvc
	app.RecommendHandler = recommend.NewHandler(recommendSvc, profilesSvc)
	app.ProfilesHandler = userprofile.NewHandler(profilesSvc)

	return nil
}

func buildProvider(cfg config.Config) (recommend.Client, error) {
	if strings.TrimSpace(cfg.JobProviderURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: JOB_PROVIDER_URL empty; recommendation fetches will fail until configured")
			return unconfiguredProvider{}, nil
		}
		return nil, fmt.Errorf("JOB_PROVIDER_URL is required")
	}
	return recommend.NewHTTPClient(cfg.JobProviderURL, cfg.JobProviderAPIKey, 30*time.Second)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type unconfiguredProvider struct{}

func (unconfiguredProvider) FetchRecommendations(ctx context.Context, p profile.Profile) ([]jobs.Recommendation, error) {
	_ = ctx
	_ = p
	return nil, fmt.Errorf("%w: JOB_PROVIDER_URL not configured", recommend.ErrProviderUnavailable)
}
