package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/internal/service/database"
	"go.uber.org/zap"
)

type ReportRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewReportRepository(postgres *database.PostgresService, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

// Create stores one data-quality report.
func (r *ReportRepository) Create(ctx context.Context, report domain.DataIssueReport) (*domain.DataIssueReport, error) {
	query := `
		INSERT INTO data_issue_reports (user_id, content_title, platform, issue_type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		report.UserID, report.ContentTitle, report.Platform, report.IssueType, report.Description,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}

	return &report, nil
}

// ListRecent returns the newest reports, capped at limit.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]domain.DataIssueReport, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, content_title, platform, issue_type, description, created_at
		FROM data_issue_reports
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]domain.DataIssueReport, 0)
	for rows.Next() {
		var report domain.DataIssueReport
		if err := rows.Scan(&report.ID, &report.UserID, &report.ContentTitle,
			&report.Platform, &report.IssueType, &report.Description, &report.CreatedAt); err != nil {
			r.logger.Warn("Failed to scan report row", zap.Error(err))
			continue
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
