package handler

import (
	"context"
	"net/http"

	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/internal/service/events"
	"github.com/streamgenie/streamgenie-go/pkg/errors"
	"go.uber.org/zap"
)

// EventsService is the slice of the events pipeline the handler needs.
type EventsService interface {
	SearchLiveEvents(ctx context.Context, query string) (*events.Outcome, error)
}

var _ EventsService = (*events.Service)(nil)

type EventsHandler struct {
	service EventsService
	logger  *zap.Logger
}

// NewEventsHandler accepts a nil service when the search or model credentials
// are absent; requests then fail with a configuration error instead of
// crashing startup.
func NewEventsHandler(service EventsService, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{service: service, logger: logger}
}

type searchEventsRequest struct {
	Query string `json:"query"`
}

type searchEventsResponse struct {
	Events      []domain.LiveEvent `json:"events"`
	AIProcessed *bool              `json:"aiProcessed,omitempty"`
	Message     string             `json:"message,omitempty"`
}

func (h *EventsHandler) SearchLiveEvents(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeError(w, h.logger, errors.NewConfigError(
			"Live event search is not configured", "GOOGLE_SEARCH_API_KEY"))
		return
	}

	var body searchEventsRequest
	if !decodeBody(w, r, &body) {
		return
	}

	outcome, err := h.service.SearchLiveEvents(r.Context(), body.Query)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if outcome.NoResults {
		writeJSON(w, http.StatusOK, searchEventsResponse{
			Events:  []domain.LiveEvent{},
			Message: "No results found for your search",
		})
		return
	}

	writeJSON(w, http.StatusOK, searchEventsResponse{
		Events:      outcome.Events,
		AIProcessed: &outcome.AIProcessed,
	})
}
