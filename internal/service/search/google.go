package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/streamgenie/streamgenie-go/internal/constants"
	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// FormulateQuery appends the fixed intent terms that bias a general web
// search toward live-event pages. Callers must reject empty queries before
// reaching this stage.
func FormulateQuery(query string) string {
	return fmt.Sprintf("%s %s", strings.TrimSpace(query), constants.SearchConfig.IntentSuffix)
}

// GoogleSearchService collects web search results through the Google Custom
// Search API. One call per request, no retry: a failed search is fatal for
// the request that issued it.
type GoogleSearchService struct {
	service  *customsearch.Service
	engineID string
	logger   *zap.Logger
}

func NewGoogleSearchService(ctx context.Context, apiKey, engineID string, logger *zap.Logger) (*GoogleSearchService, error) {
	if apiKey == "" {
		return nil, errors.NewConfigError("Google Search API key is not configured", "GOOGLE_SEARCH_API_KEY")
	}
	if engineID == "" {
		return nil, errors.NewConfigError("Google Search engine ID is not configured", "GOOGLE_SEARCH_ENGINE_ID")
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search service: %w", err)
	}

	return &GoogleSearchService{
		service:  svc,
		engineID: engineID,
		logger:   logger,
	}, nil
}

// Search issues one search call and returns up to MaxResults items in the
// relevance order the API produced. Zero items is a valid result, not an
// error; the caller decides what an empty list means.
func (s *GoogleSearchService) Search(ctx context.Context, query string) ([]domain.SearchResultItem, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.SearchConfig.RequestTimeout)
	defer cancel()

	resp, err := s.service.Cse.List().
		Cx(s.engineID).
		Q(query).
		Num(int64(constants.SearchConfig.MaxResults)).
		Context(ctx).
		Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok {
			s.logger.Error("Search API returned error status",
				zap.Int("status", apiErr.Code),
				zap.String("query", query),
			)
			return nil, errors.NewAPIError(
				fmt.Sprintf("search request failed: %s", apiErr.Message),
				apiErr.Code,
				map[string]any{"query": query},
			)
		}
		s.logger.Error("Search request failed", zap.Error(err), zap.String("query", query))
		return nil, errors.NewServiceError("search request failed", "google_search", "search", err)
	}

	items := make([]domain.SearchResultItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil {
			continue
		}
		items = append(items, domain.SearchResultItem{
			Title:   item.Title,
			Snippet: item.Snippet,
			URL:     item.Link,
		})
	}

	s.logger.Debug("Search completed",
		zap.String("query", query),
		zap.Int("results", len(items)),
	)

	return items, nil
}
