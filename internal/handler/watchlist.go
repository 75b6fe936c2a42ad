package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/internal/repository"
	"github.com/streamgenie/streamgenie-go/pkg/errors"
	"go.uber.org/zap"
)

// WatchlistStore is the slice of the watchlist repository the handler needs.
type WatchlistStore interface {
	Add(ctx context.Context, item domain.WatchlistItem) (*domain.WatchlistItem, error)
	ListByUser(ctx context.Context, userID string) ([]domain.WatchlistItem, error)
	Remove(ctx context.Context, userID string, tmdbID int64, mediaType string) (bool, error)
}

var _ WatchlistStore = (*repository.WatchlistRepository)(nil)

type WatchlistHandler struct {
	repo   WatchlistStore
	logger *zap.Logger
}

func NewWatchlistHandler(repo WatchlistStore, logger *zap.Logger) *WatchlistHandler {
	return &WatchlistHandler{repo: repo, logger: logger}
}

func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeError(w, h.logger, errors.NewValidationError("user_id is required", "user_id", userID))
		return
	}

	items, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type upsertWatchlistRequest struct {
	UserID      string `json:"user_id"`
	TMDBID      int64  `json:"tmdb_id"`
	MediaType   string `json:"media_type"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path,omitempty"`
	ReleaseYear *int   `json:"release_year,omitempty"`
}

// Add upserts one title; re-adding the same (user, tmdb_id, media_type) is
// idempotent.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var body upsertWatchlistRequest
	if !decodeBody(w, r, &body) {
		return
	}

	userID := strings.TrimSpace(body.UserID)
	if userID == "" {
		writeError(w, h.logger, errors.NewValidationError("user_id is required", "user_id", body.UserID))
		return
	}
	if body.TMDBID <= 0 {
		writeError(w, h.logger, errors.NewValidationError("tmdb_id is required", "tmdb_id", body.TMDBID))
		return
	}
	if !domain.IsSupportedMediaType(body.MediaType) {
		writeError(w, h.logger, errors.NewValidationError("media_type must be movie or tv", "media_type", body.MediaType))
		return
	}
	if strings.TrimSpace(body.Title) == "" {
		writeError(w, h.logger, errors.NewValidationError("title is required", "title", body.Title))
		return
	}

	item, err := h.repo.Add(r.Context(), domain.WatchlistItem{
		UserID:      userID,
		TMDBID:      body.TMDBID,
		MediaType:   body.MediaType,
		Title:       strings.TrimSpace(body.Title),
		PosterPath:  body.PosterPath,
		ReleaseYear: body.ReleaseYear,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

type removeWatchlistRequest struct {
	UserID    string `json:"user_id"`
	TMDBID    int64  `json:"tmdb_id"`
	MediaType string `json:"media_type"`
}

func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var body removeWatchlistRequest
	if !decodeBody(w, r, &body) {
		return
	}

	userID := strings.TrimSpace(body.UserID)
	if userID == "" {
		writeError(w, h.logger, errors.NewValidationError("user_id is required", "user_id", body.UserID))
		return
	}
	if body.TMDBID <= 0 {
		writeError(w, h.logger, errors.NewValidationError("tmdb_id is required", "tmdb_id", body.TMDBID))
		return
	}
	if !domain.IsSupportedMediaType(body.MediaType) {
		writeError(w, h.logger, errors.NewValidationError("media_type must be movie or tv", "media_type", body.MediaType))
		return
	}

	deleted, err := h.repo.Remove(r.Context(), userID, body.TMDBID, body.MediaType)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
