package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/internal/repository"
	"github.com/streamgenie/streamgenie-go/pkg/errors"
	"go.uber.org/zap"
)

// ReportStore is the slice of the report repository the handler needs.
type ReportStore interface {
	Create(ctx context.Context, report domain.DataIssueReport) (*domain.DataIssueReport, error)
	ListRecent(ctx context.Context, limit int) ([]domain.DataIssueReport, error)
}

var _ ReportStore = (*repository.ReportRepository)(nil)

type ReportsHandler struct {
	repo   ReportStore
	logger *zap.Logger
}

func NewReportsHandler(repo ReportStore, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{repo: repo, logger: logger}
}

type createReportRequest struct {
	UserID       string `json:"user_id,omitempty"`
	ContentTitle string `json:"content_title"`
	Platform     string `json:"platform,omitempty"`
	IssueType    string `json:"issue_type"`
	Description  string `json:"description,omitempty"`
}

func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createReportRequest
	if !decodeBody(w, r, &body) {
		return
	}

	if strings.TrimSpace(body.ContentTitle) == "" {
		writeError(w, h.logger, errors.NewValidationError("content_title is required", "content_title", body.ContentTitle))
		return
	}
	if !domain.IsValidIssueType(body.IssueType) {
		writeError(w, h.logger, errors.NewValidationError(
			"issue_type must be one of wrong_platform, not_available, wrong_time, other",
			"issue_type", body.IssueType))
		return
	}

	report, err := h.repo.Create(r.Context(), domain.DataIssueReport{
		UserID:       strings.TrimSpace(body.UserID),
		ContentTitle: strings.TrimSpace(body.ContentTitle),
		Platform:     strings.TrimSpace(body.Platform),
		IssueType:    body.IssueType,
		Description:  strings.TrimSpace(body.Description),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"id": report.ID})
}

func (h *ReportsHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	reports, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}
