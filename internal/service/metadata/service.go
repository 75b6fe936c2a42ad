package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/streamgenie/streamgenie-go/internal/constants"
	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/pkg/errors"
	"go.uber.org/zap"
)

// tmdbAPI is the slice of the TMDB client the service depends on.
type tmdbAPI interface {
	SearchMulti(ctx context.Context, query string) ([]multiSearchItem, error)
	WatchProviders(ctx context.Context, mediaType string, id int64, region string) (regionProviders, error)
	Details(ctx context.Context, mediaType string, id int64) (json.RawMessage, error)
}

// responseCache is the slice of the cache service used here. Satisfied by
// cache.CacheService; may be nil when Redis is unavailable.
type responseCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service performs the movie/TV metadata search: one multi-search, then a
// bounded concurrent watch-provider lookup per retained item, joined
// positionally so the API's relevance order survives.
type Service struct {
	client tmdbAPI
	cache  responseCache
	logger *zap.Logger
}

func NewService(client *TMDBClient, cache responseCache, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// newServiceForTest wires an arbitrary tmdbAPI, used by package tests.
func newServiceForTest(client tmdbAPI, cache responseCache, logger *zap.Logger) *Service {
	return &Service{client: client, cache: cache, logger: logger}
}

// Search runs the metadata fan-out for one query. Only movie/tv items are
// kept, truncated to the first MaxResults in API order. A provider lookup
// failure empties that one item's platform lists and never fails the batch.
func (s *Service) Search(ctx context.Context, query, region string) ([]domain.MediaSearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, errors.NewValidationError("Query parameter is required", "query", query)
	}
	if region == "" {
		region = constants.TMDBConfig.DefaultRegion
	}

	cacheKey := fmt.Sprintf("media:search:%s:%s", region, strings.ToLower(trimmed))
	if s.cache != nil {
		var cached []domain.MediaSearchResult
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			s.logger.Debug("Media search cache hit", zap.String("query", trimmed))
			return cached, nil
		}
	}

	items, err := s.client.SearchMulti(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	retained := make([]multiSearchItem, 0, constants.TMDBConfig.MaxResults)
	for _, item := range items {
		if !domain.IsSupportedMediaType(item.MediaType) {
			continue
		}
		retained = append(retained, item)
		if len(retained) == constants.TMDBConfig.MaxResults {
			break
		}
	}

	results := make([]domain.MediaSearchResult, len(retained))

	p := pool.New().WithMaxGoroutines(constants.TMDBConfig.FanOutWorkers)
	for i, item := range retained {
		p.Go(func() {
			results[i] = s.buildResult(ctx, item, region)
		})
	}
	p.Wait()

	s.logger.Info("Media search completed",
		zap.String("query", trimmed),
		zap.String("region", region),
		zap.Int("results", len(results)),
	)

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, results, constants.CacheTTL.MediaSearch)
	}

	return results, nil
}

// buildResult assembles one MediaSearchResult, swallowing a failed provider
// lookup into empty platform lists.
func (s *Service) buildResult(ctx context.Context, item multiSearchItem, region string) domain.MediaSearchResult {
	result := domain.MediaSearchResult{
		TMDBID:             item.ID,
		MediaType:          item.MediaType,
		Title:              item.displayTitle(),
		PosterPath:         item.PosterPath,
		ReleaseYear:        domain.ReleaseYear(item.ReleaseDate, item.FirstAirDate),
		Genres:             domain.GenreNames(item.MediaType, item.GenreIDs),
		StreamingPlatforms: []string{},
		Overview:           item.Overview,
	}

	lookupCtx, cancel := context.WithTimeout(ctx, constants.TMDBConfig.LookupTimeout)
	defer cancel()

	providers, err := s.client.WatchProviders(lookupCtx, item.MediaType, item.ID, region)
	if err != nil {
		s.logger.Warn("Watch provider lookup failed, continuing without platforms",
			zap.Int64("tmdb_id", item.ID),
			zap.String("media_type", item.MediaType),
			zap.Error(err),
		)
		return result
	}

	result.StreamingPlatforms = mergePlatforms(providers.Flatrate, providers.Free, providers.Ads)
	result.RentBuyPlatforms = mergePlatforms(providers.Rent, providers.Buy)
	if result.RentBuyPlatforms != nil && len(result.RentBuyPlatforms) == 0 {
		result.RentBuyPlatforms = nil
	}

	return result
}

// mergePlatforms unions provider tiers, deduplicated by name, preserving
// tier-then-list order.
func mergePlatforms(tiers ...[]providerEntry) []string {
	seen := make(map[string]struct{})
	merged := make([]string, 0)
	for _, tier := range tiers {
		for _, entry := range tier {
			name := strings.TrimSpace(entry.ProviderName)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	return merged
}

// Details passes the TMDB item-detail payload through to the caller.
func (s *Service) Details(ctx context.Context, mediaType string, id int64) (json.RawMessage, error) {
	if !domain.IsSupportedMediaType(mediaType) {
		return nil, errors.NewValidationError("media_type must be movie or tv", "media_type", mediaType)
	}
	return s.client.Details(ctx, mediaType, id)
}
