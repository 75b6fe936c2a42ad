package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sourcegraph/conc/pool"
	"github.com/streamgenie/streamgenie-go/internal/constants"
	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/internal/util"
	"go.uber.org/zap"
)

// pageMetadata is the subset of OpenGraph data worth keeping per link.
type pageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// metadataCache is the slice of the cache service used here; may be nil.
type metadataCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// OpenGraphEnricher fills in fallback events with metadata scraped from their
// source pages. Strictly best-effort: a page that cannot be fetched or parsed
// leaves its event untouched, and event count/order never change.
type OpenGraphEnricher struct {
	httpClient *http.Client
	cache      metadataCache
	logger     *zap.Logger
}

func NewOpenGraphEnricher(cache metadataCache, logger *zap.Logger) *OpenGraphEnricher {
	return &OpenGraphEnricher{
		httpClient: &http.Client{Timeout: constants.EnrichConfig.PageTimeout},
		cache:      cache,
		logger:     logger,
	}
}

// EnrichFallbackEvents fetches each event's link concurrently and replaces
// the snippet-derived summary (and title, when better) with OpenGraph data.
func (e *OpenGraphEnricher) EnrichFallbackEvents(ctx context.Context, events []domain.LiveEvent) []domain.LiveEvent {
	if len(events) == 0 {
		return events
	}

	enriched := make([]domain.LiveEvent, len(events))
	copy(enriched, events)

	p := pool.New().WithMaxGoroutines(constants.EnrichConfig.FanOutWorkers)
	for i := range enriched {
		p.Go(func() {
			meta, err := e.fetchMetadata(ctx, enriched[i].Link)
			if err != nil {
				e.logger.Debug("Page enrichment skipped",
					zap.String("link", enriched[i].Link),
					zap.Error(err),
				)
				return
			}
			if meta.Description != "" {
				enriched[i].Summary = meta.Description
			}
			if meta.Title != "" {
				enriched[i].EventName = meta.Title
			}
		})
	}
	p.Wait()

	return enriched
}

func (e *OpenGraphEnricher) fetchMetadata(ctx context.Context, link string) (pageMetadata, error) {
	var meta pageMetadata
	if link == "" {
		return meta, fmt.Errorf("empty link")
	}

	cacheKey := "enrich:og:" + link
	if e.cache != nil {
		if hit, err := e.cache.Get(ctx, cacheKey, &meta); err == nil && hit {
			return meta, nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, constants.EnrichConfig.PageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, link, nil)
	if err != nil {
		return meta, err
	}
	req.Header.Set("User-Agent", "StreamGenie/1.0 (+https://streamgenie.app)")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return meta, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return meta, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, constants.EnrichConfig.MaxBodyBytes)
	doc, err := goquery.NewDocumentFromReader(limited)
	if err != nil {
		return meta, err
	}

	meta.Title = ogContent(doc, "og:title")
	meta.Description = ogContent(doc, "og:description")
	if meta.Description == "" {
		fallback, _ := doc.Find(`meta[name="description"]`).Attr("content")
		meta.Description = util.NormalizeWhitespace(fallback)
	}

	if e.cache != nil && (meta.Title != "" || meta.Description != "") {
		_ = e.cache.Set(ctx, cacheKey, meta, constants.CacheTTL.PageMetadata)
	}

	return meta, nil
}

func ogContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).Attr("content")
	return util.NormalizeWhitespace(content)
}
