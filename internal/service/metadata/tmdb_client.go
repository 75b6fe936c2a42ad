package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/streamgenie/streamgenie-go/internal/constants"
	"github.com/streamgenie/streamgenie-go/pkg/errors"
	"go.uber.org/zap"
)

// TMDBClient is a thin client for The Movie Database API. Requests carry the
// API key as a query parameter; any non-success status is surfaced as an
// APIError with the upstream status and body.
type TMDBClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *zap.Logger
}

func NewTMDBClient(apiKey string, logger *zap.Logger) *TMDBClient {
	return &TMDBClient{
		httpClient: &http.Client{Timeout: constants.TMDBConfig.RequestTimeout},
		apiKey:     apiKey,
		baseURL:    constants.TMDBConfig.BaseURL,
		logger:     logger,
	}
}

func (c *TMDBClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, errors.NewConfigError("TMDB API key is not configured", "TMDB_API_KEY")
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewServiceError("TMDB request failed", "tmdb", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewServiceError("TMDB response read failed", "tmdb", path, err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Error("TMDB returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("path", path),
		)
		return nil, errors.NewAPIError(
			fmt.Sprintf("TMDB error: %d", resp.StatusCode),
			resp.StatusCode,
			map[string]any{"path": path, "body": string(body)},
		)
	}

	return body, nil
}

type multiSearchResponse struct {
	Results []multiSearchItem `json:"results"`
}

type multiSearchItem struct {
	ID           int64   `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	GenreIDs     []int64 `json:"genre_ids"`
	Overview     string  `json:"overview"`
}

// displayTitle returns whichever of title/name the media type populated.
func (i multiSearchItem) displayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

type providerEntry struct {
	ProviderName string `json:"provider_name"`
}

type regionProviders struct {
	Flatrate []providerEntry `json:"flatrate"`
	Free     []providerEntry `json:"free"`
	Ads      []providerEntry `json:"ads"`
	Rent     []providerEntry `json:"rent"`
	Buy      []providerEntry `json:"buy"`
}

type watchProvidersResponse struct {
	Results map[string]regionProviders `json:"results"`
}

// SearchMulti issues one multi-type search and returns the raw items in API
// order. Filtering and truncation belong to the service layer.
func (c *TMDBClient) SearchMulti(ctx context.Context, query string) ([]multiSearchItem, error) {
	params := url.Values{}
	params.Set("query", query)

	body, err := c.get(ctx, "/search/multi", params)
	if err != nil {
		return nil, err
	}

	var parsed multiSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.NewServiceError("TMDB search response unparsable", "tmdb", "search_multi", err)
	}

	return parsed.Results, nil
}

// WatchProviders looks up the regional availability for one title. A missing
// region entry yields empty providers, not an error.
func (c *TMDBClient) WatchProviders(ctx context.Context, mediaType string, id int64, region string) (regionProviders, error) {
	body, err := c.get(ctx, fmt.Sprintf("/%s/%d/watch/providers", mediaType, id), nil)
	if err != nil {
		return regionProviders{}, err
	}

	var parsed watchProvidersResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return regionProviders{}, errors.NewServiceError("TMDB providers response unparsable", "tmdb", "watch_providers", err)
	}

	return parsed.Results[region], nil
}

// Details fetches the item-detail payload with watch providers appended and
// passes it through untouched.
func (c *TMDBClient) Details(ctx context.Context, mediaType string, id int64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("append_to_response", "watch/providers")

	body, err := c.get(ctx, fmt.Sprintf("/%s/%d", mediaType, id), params)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(body), nil
}
