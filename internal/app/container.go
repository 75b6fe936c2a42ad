package app

import (
	"context"
	"fmt"

	"github.com/streamgenie/streamgenie-go/internal/config"
	"github.com/streamgenie/streamgenie-go/internal/handler"
	"github.com/streamgenie/streamgenie-go/internal/repository"
	"github.com/streamgenie/streamgenie-go/internal/server"
	"github.com/streamgenie/streamgenie-go/internal/service/ai"
	"github.com/streamgenie/streamgenie-go/internal/service/cache"
	"github.com/streamgenie/streamgenie-go/internal/service/database"
	"github.com/streamgenie/streamgenie-go/internal/service/enrich"
	"github.com/streamgenie/streamgenie-go/internal/service/events"
	"github.com/streamgenie/streamgenie-go/internal/service/metadata"
	"github.com/streamgenie/streamgenie-go/internal/service/search"
	"go.uber.org/zap"
)

// Container holds the assembled dependency graph. Services whose credentials
// are absent stay nil; their handlers answer with a configuration error
// instead of preventing startup.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Server *server.Server

	cacheSvc    *cache.CacheService
	postgresSvc *database.PostgresService
}

// Build assembles all infrastructure services. Heavy initialization (DB,
// cache, model clients) happens here so main stays a thin lifecycle shell.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	cacheSvc, err := cache.NewCacheService(cache.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache service: %w", err)
	}
	closers = append(closers, func() {
		_ = cacheSvc.Close()
	})

	postgresSvc, err := database.NewPostgresService(database.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres service: %w", err)
	}
	closers = append(closers, func() {
		_ = postgresSvc.Close()
	})

	if err := postgresSvc.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	// Live event pipeline. Built only when the web search credentials exist;
	// the model manager additionally needs a Gemini key.
	var eventsSvc *events.Service
	if cfg.Search.APIKey != "" && cfg.Search.EngineID != "" && cfg.Gemini.APIKey != "" {
		searchSvc, searchErr := search.NewGoogleSearchService(ctx, cfg.Search.APIKey, cfg.Search.EngineID, logger)
		if searchErr != nil {
			return nil, fmt.Errorf("failed to create search service: %w", searchErr)
		}

		modelManager, aiErr := ai.NewModelManager(ctx, ai.ModelManagerConfig{
			GeminiAPIKey:       cfg.Gemini.APIKey,
			OpenAIAPIKey:       cfg.OpenAI.APIKey,
			DefaultGeminiModel: cfg.Gemini.Model,
			DefaultOpenAIModel: cfg.OpenAI.Model,
			EnableFallback:     cfg.OpenAI.EnableFallback,
		}, logger)
		if aiErr != nil {
			return nil, fmt.Errorf("failed to create model manager: %w", aiErr)
		}

		enricher := enrich.NewOpenGraphEnricher(cacheSvc, logger)
		eventsSvc = events.NewService(searchSvc, modelManager, enricher, logger)
	} else {
		logger.Warn("Live event search disabled: missing search or Gemini credentials")
	}

	// Metadata pipeline, optional in the same way.
	var metadataSvc *metadata.Service
	if cfg.TMDB.APIKey != "" {
		tmdbClient := metadata.NewTMDBClient(cfg.TMDB.APIKey, logger)
		metadataSvc = metadata.NewService(tmdbClient, cacheSvc, logger)
	} else {
		logger.Warn("Media metadata search disabled: missing TMDB credentials")
	}

	watchlistRepo := repository.NewWatchlistRepository(postgresSvc, logger)
	favoritesRepo := repository.NewFavoriteTeamRepository(postgresSvc, logger)
	reportsRepo := repository.NewReportRepository(postgresSvc, logger)

	// Typed-nil pointers must not reach the handlers' nil checks.
	var eventsForHandler handler.EventsService
	if eventsSvc != nil {
		eventsForHandler = eventsSvc
	}
	var metadataForHandler handler.MetadataService
	if metadataSvc != nil {
		metadataForHandler = metadataSvc
	}

	handlers := server.Handlers{
		Events:    handler.NewEventsHandler(eventsForHandler, logger),
		Metadata:  handler.NewMetadataHandler(metadataForHandler, logger),
		Watchlist: handler.NewWatchlistHandler(watchlistRepo, logger),
		Favorites: handler.NewFavoritesHandler(favoritesRepo, logger),
		Reports:   handler.NewReportsHandler(reportsRepo, logger),
		Health:    handler.NewHealthHandler(postgresSvc, cacheSvc, logger),
	}

	srv := server.New(cfg.Server.Host, cfg.Server.Port, handlers, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Server:      srv,
		cacheSvc:    cacheSvc,
		postgresSvc: postgresSvc,
	}, nil
}

// Close releases the long-lived connections in reverse construction order.
func (c *Container) Close() {
	if c.postgresSvc != nil {
		_ = c.postgresSvc.Close()
	}
	if c.cacheSvc != nil {
		_ = c.cacheSvc.Close()
	}
}
