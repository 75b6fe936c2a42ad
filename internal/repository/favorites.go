package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/internal/service/database"
	"go.uber.org/zap"
)

type FavoriteTeamRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewFavoriteTeamRepository(postgres *database.PostgresService, logger *zap.Logger) *FavoriteTeamRepository {
	return &FavoriteTeamRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

// Add stores one team for a user. Re-adding the same team updates its league.
func (r *FavoriteTeamRepository) Add(ctx context.Context, team domain.FavoriteTeam) (*domain.FavoriteTeam, error) {
	query := `
		INSERT INTO favorite_teams (user_id, team_name, league)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, team_name) DO UPDATE
			SET league = EXCLUDED.league
		RETURNING id, added_at
	`

	err := r.db.QueryRowContext(ctx, query, team.UserID, team.TeamName, team.League).
		Scan(&team.ID, &team.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert favorite team: %w", err)
	}

	return &team, nil
}

// ListByUser returns a user's favorite teams in the order they were added.
func (r *FavoriteTeamRepository) ListByUser(ctx context.Context, userID string) ([]domain.FavoriteTeam, error) {
	query := `
		SELECT id, user_id, team_name, league, added_at
		FROM favorite_teams
		WHERE user_id = $1
		ORDER BY added_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorite teams: %w", err)
	}
	defer rows.Close()

	teams := make([]domain.FavoriteTeam, 0)
	for rows.Next() {
		var team domain.FavoriteTeam
		if err := rows.Scan(&team.ID, &team.UserID, &team.TeamName, &team.League, &team.AddedAt); err != nil {
			r.logger.Warn("Failed to scan favorite team row", zap.Error(err))
			continue
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// Remove deletes one team. Returns false when nothing matched.
func (r *FavoriteTeamRepository) Remove(ctx context.Context, userID, teamName string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorite_teams WHERE user_id = $1 AND team_name = $2`,
		userID, teamName,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite team: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected > 0, nil
}
