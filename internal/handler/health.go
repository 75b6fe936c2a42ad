package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type connChecker interface {
	IsConnected(ctx context.Context) bool
}

// HealthHandler reports process liveness plus per-dependency reachability.
// Either dependency may be nil when not configured.
type HealthHandler struct {
	postgres pinger
	cache    connChecker
	logger   *zap.Logger
}

func NewHealthHandler(postgres pinger, cache connChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{postgres: postgres, cache: cache, logger: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Postgres bool   `json:"postgres"`
	Redis    bool   `json:"redis"`
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok"}
	if h.postgres != nil {
		resp.Postgres = h.postgres.Ping(ctx) == nil
	}
	if h.cache != nil {
		resp.Redis = h.cache.IsConnected(ctx)
	}

	writeJSON(w, http.StatusOK, resp)
}
