package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/internal/service/database"
	"go.uber.org/zap"
)

type WatchlistRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewWatchlistRepository(postgres *database.PostgresService, logger *zap.Logger) *WatchlistRepository {
	return &WatchlistRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

// Add upserts one title for a user. Re-adding the same title refreshes its
// title, poster and release year while keeping the original added_at.
func (r *WatchlistRepository) Add(ctx context.Context, item domain.WatchlistItem) (*domain.WatchlistItem, error) {
	query := `
		INSERT INTO watchlist_items (user_id, tmdb_id, media_type, title, poster_path, release_year)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, tmdb_id, media_type) DO UPDATE
			SET title = EXCLUDED.title,
			    poster_path = EXCLUDED.poster_path,
			    release_year = EXCLUDED.release_year
		RETURNING id, added_at
	`

	var releaseYear sql.NullInt64
	if item.ReleaseYear != nil {
		releaseYear = sql.NullInt64{Int64: int64(*item.ReleaseYear), Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.TMDBID, item.MediaType, item.Title, item.PosterPath, releaseYear,
	).Scan(&item.ID, &item.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert watchlist item: %w", err)
	}

	return &item, nil
}

// ListByUser returns a user's watchlist, most recently added first.
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]domain.WatchlistItem, error) {
	query := `
		SELECT id, user_id, tmdb_id, media_type, title, poster_path, release_year, added_at
		FROM watchlist_items
		WHERE user_id = $1
		ORDER BY added_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	items := make([]domain.WatchlistItem, 0)
	for rows.Next() {
		var (
			item        domain.WatchlistItem
			releaseYear sql.NullInt64
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.TMDBID, &item.MediaType,
			&item.Title, &item.PosterPath, &releaseYear, &item.AddedAt); err != nil {
			r.logger.Warn("Failed to scan watchlist row", zap.Error(err))
			continue
		}
		if releaseYear.Valid {
			year := int(releaseYear.Int64)
			item.ReleaseYear = &year
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// Remove deletes one title from a user's watchlist. Returns false when
// nothing matched.
func (r *WatchlistRepository) Remove(ctx context.Context, userID string, tmdbID int64, mediaType string) (bool, error) {
	query := `
		DELETE FROM watchlist_items
		WHERE user_id = $1 AND tmdb_id = $2 AND media_type = $3
	`

	result, err := r.db.ExecContext(ctx, query, userID, tmdbID, mediaType)
	if err != nil {
		return false, fmt.Errorf("failed to delete watchlist item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected > 0, nil
}
