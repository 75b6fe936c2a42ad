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

// FavoriteStore is the slice of the favorite-team repository the handler needs.
type FavoriteStore interface {
	Add(ctx context.Context, team domain.FavoriteTeam) (*domain.FavoriteTeam, error)
	ListByUser(ctx context.Context, userID string) ([]domain.FavoriteTeam, error)
	Remove(ctx context.Context, userID, teamName string) (bool, error)
}

var _ FavoriteStore = (*repository.FavoriteTeamRepository)(nil)

type FavoritesHandler struct {
	repo   FavoriteStore
	logger *zap.Logger
}

func NewFavoritesHandler(repo FavoriteStore, logger *zap.Logger) *FavoritesHandler {
	return &FavoritesHandler{repo: repo, logger: logger}
}

func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeError(w, h.logger, errors.NewValidationError("user_id is required", "user_id", userID))
		return
	}

	teams, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

type upsertFavoriteRequest struct {
	UserID   string `json:"user_id"`
	TeamName string `json:"team_name"`
	League   string `json:"league,omitempty"`
}

func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var body upsertFavoriteRequest
	if !decodeBody(w, r, &body) {
		return
	}

	userID := strings.TrimSpace(body.UserID)
	if userID == "" {
		writeError(w, h.logger, errors.NewValidationError("user_id is required", "user_id", body.UserID))
		return
	}
	name := strings.TrimSpace(body.TeamName)
	if name == "" {
		writeError(w, h.logger, errors.NewValidationError("team_name is required", "team_name", body.TeamName))
		return
	}

	team, err := h.repo.Add(r.Context(), domain.FavoriteTeam{
		UserID:   userID,
		TeamName: name,
		League:   strings.TrimSpace(body.League),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, team)
}

type removeFavoriteRequest struct {
	UserID   string `json:"user_id"`
	TeamName string `json:"team_name"`
}

func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var body removeFavoriteRequest
	if !decodeBody(w, r, &body) {
		return
	}

	userID := strings.TrimSpace(body.UserID)
	if userID == "" {
		writeError(w, h.logger, errors.NewValidationError("user_id is required", "user_id", body.UserID))
		return
	}
	name := strings.TrimSpace(body.TeamName)
	if name == "" {
		writeError(w, h.logger, errors.NewValidationError("team_name is required", "team_name", body.TeamName))
		return
	}

	deleted, err := h.repo.Remove(r.Context(), userID, name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
