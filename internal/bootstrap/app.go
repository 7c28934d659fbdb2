package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"campfire/internal/feedback"
	"campfire/internal/history"
	"campfire/internal/llm"
	"campfire/internal/llm/anthropic"
	"campfire/internal/llm/openai"
	"campfire/internal/places"
	"campfire/internal/preferences"
	"campfire/internal/recommend"
	"campfire/internal/restaurants"
	"campfire/internal/services/health"
	"campfire/internal/shared/config"
	"campfire/internal/shared/server"
	"campfire/internal/shared/storage/db"
	"campfire/internal/shared/storage/kv"
	"campfire/internal/shared/telemetry"
	"campfire/internal/users"
	"campfire/internal/webclient"
	"campfire/internal/webui"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Cache  *kv.Store
	Places places.Provider
	LLM    llm.Client

	UsersService       *users.Service
	RestaurantsService *restaurants.Service
	PreferencesService *preferences.Service
	FeedbackService    *feedback.Service
	RecommendService   *recommend.Service

	// Backend is the in-process webclient backend the HTML UI renders from.
	Backend webclient.Backend
}

// Overrides replaces external dependencies, mainly for tests.
type Overrides struct {
	Places places.Provider
	LLM    llm.Client
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(cfg, Overrides{})
}

// BuildWith is Build with some external dependencies supplied by the caller.
func BuildWith(cfg config.Config, o Overrides) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, DB: sqlDB}

	app.Cache, err = kv.Open(cfg.CacheDir)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("open cache: %w", err)
	}

	app.Places = o.Places
	if app.Places == nil {
		app.Places, err = places.New(places.Options{
			Provider:     cfg.PlacesProvider,
			GoogleAPIKey: cfg.GoogleAPIKey,
			YelpAPIKey:   cfg.YelpAPIKey,
			RPS:          cfg.PlacesRPS,
			Cache:        app.Cache,
			CacheTTL:     cfg.CacheTTL,
		})
		if err != nil {
			app.Close()
			return nil, err
		}
	}

	app.LLM = o.LLM
	if app.LLM == nil {
		app.LLM, err = buildLLM(cfg)
		if err != nil {
			app.Close()
			return nil, err
		}
	}

	if err := buildServices(app); err != nil {
		app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		Health:             health.NewService(app.DB),
		PlacesHandler:      places.NewHandler(app.Places),
		RecommendHandler:   recommend.NewHandler(app.RecommendService),
		PreferencesHandler: preferences.NewHandler(app.PreferencesService),
		FeedbackHandler:    feedback.NewHandler(app.FeedbackService),
		WebUI:              webui.NewHandler(app.Backend),
	})
	return app, nil
}

// Close releases the cache and database handles.
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

// buildLLM picks the ranking model. A missing key degrades to the
// placeholder, which makes the recommender use its deterministic ranker.
func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		if strings.TrimSpace(cfg.AnthropicAPIKey) == "" {
			telemetry.Warn("bootstrap.llm.placeholder", map[string]any{"provider": "anthropic", "reason": "ANTHROPIC_API_KEY empty"})
			return llm.PlaceholderClient{}, nil
		}
		c, err := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return llm.WithBreaker(c, "anthropic"), nil
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			telemetry.Warn("bootstrap.llm.placeholder", map[string]any{"provider": "openai", "reason": "OPENAI_API_KEY empty"})
			return llm.PlaceholderClient{}, nil
		}
		c, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		return llm.WithBreaker(c, "openai"), nil
	default:
		return llm.PlaceholderClient{}, nil
	}
}

func buildServices(app *App) error {
	var (
		userRepo       users.Repo
		restaurantRepo restaurants.Repo
		historyRepo    history.Repo
		preferenceRepo preferences.Repo
		feedbackRepo   feedback.Repo
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		restaurantRepo = &restaurants.PGRepo{DB: app.DB}
		historyRepo = &history.PGRepo{DB: app.DB}
		preferenceRepo = &preferences.PGRepo{DB: app.DB}
		feedbackRepo = &feedback.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		restaurantRepo = restaurants.NewMemoryRepo()
		historyRepo = history.NewMemoryRepo()
		preferenceRepo = preferences.NewMemoryRepo()
		feedbackRepo = feedback.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo)
	restaurantSvc := restaurants.NewService(restaurantRepo, app.Places.Name())
	prefSvc := &preferences.Service{
		Repo:        preferenceRepo,
		Users:       userSvc,
		Restaurants: restaurantSvc,
		History:     historyRepo,
	}
	feedbackSvc := feedback.NewService(feedbackRepo, userSvc)
	recommendSvc := &recommend.Service{
		Users:       userSvc,
		Restaurants: restaurantSvc,
		History:     historyRepo,
		Preferences: prefSvc,
		Places:      app.Places,
		LLM:         app.LLM,
		Count:       app.Config.NumRecommendations,
	}

	app.UsersService = userSvc
	app.RestaurantsService = restaurantSvc
	app.PreferencesService = prefSvc
	app.FeedbackService = feedbackSvc
	app.RecommendService = recommendSvc
	app.Backend = &localBackend{
		places:      app.Places,
		recommend:   recommendSvc,
		preferences: prefSvc,
		feedback:    feedbackSvc,
	}
	return nil
}
