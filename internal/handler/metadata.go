package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/internal/service/metadata"
	"github.com/streamgenie/streamgenie-go/pkg/errors"
	"go.uber.org/zap"
)

// MetadataService is the slice of the metadata pipeline the handler needs.
type MetadataService interface {
	Search(ctx context.Context, query, region string) ([]domain.MediaSearchResult, error)
	Details(ctx context.Context, mediaType string, id int64) (json.RawMessage, error)
}

var _ MetadataService = (*metadata.Service)(nil)

type MetadataHandler struct {
	service MetadataService
	logger  *zap.Logger
}

func NewMetadataHandler(service MetadataService, logger *zap.Logger) *MetadataHandler {
	return &MetadataHandler{service: service, logger: logger}
}

// searchMediaRequest keeps query raw so a non-string value can be told apart
// from an absent one and rejected with the query-specific message.
type searchMediaRequest struct {
	Query          json.RawMessage `json:"query"`
	Region         string          `json:"region,omitempty"`
	TMDBID         int64           `json:"tmdb_id,omitempty"`
	MediaType      string          `json:"media_type,omitempty"`
	IncludeDetails bool            `json:"includeDetails,omitempty"`
}

type searchMediaResponse struct {
	Results []domain.MediaSearchResult `json:"results"`
}

// SearchMedia serves both modes of the metadata endpoint: a title search, or a
// single-item detail lookup when includeDetails and a TMDB ID are given.
func (h *MetadataHandler) SearchMedia(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeError(w, h.logger, errors.NewConfigError(
			"Media metadata search is not configured", "TMDB_API_KEY"))
		return
	}

	var body searchMediaRequest
	if !decodeBody(w, r, &body) {
		return
	}

	if body.IncludeDetails && body.TMDBID > 0 {
		details, err := h.service.Details(r.Context(), body.MediaType, body.TMDBID)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(details)
		return
	}

	var query string
	if len(body.Query) > 0 {
		if err := json.Unmarshal(body.Query, &query); err != nil {
			writeError(w, h.logger, errors.NewValidationError(
				"Query parameter is required", "query", string(body.Query)))
			return
		}
	}

	results, err := h.service.Search(r.Context(), query, body.Region)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, searchMediaResponse{Results: results})
}
