package domain

import "time"

// WatchlistItem is a media entry a user saved for later. One row per
// (user, tmdb_id, media_type).
type WatchlistItem struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	TMDBID      int64     `json:"tmdb_id"`
	MediaType   string    `json:"media_type"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path,omitempty"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// FavoriteTeam is a sports team a user follows.
type FavoriteTeam struct {
	ID       int64     `json:"id"`
	UserID   string    `json:"user_id"`
	TeamName string    `json:"team_name"`
	League   string    `json:"league,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

// Issue types accepted for data-quality reports.
const (
	IssueWrongPlatform = "wrong_platform"
	IssueNotAvailable  = "not_available"
	IssueWrongTime     = "wrong_time"
	IssueOther         = "other"
)

// IsValidIssueType reports whether t is one of the accepted report types.
func IsValidIssueType(t string) bool {
	switch t {
	case IssueWrongPlatform, IssueNotAvailable, IssueWrongTime, IssueOther:
		return true
	}
	return false
}

// DataIssueReport is a user-submitted data-quality report. Insert-only.
type DataIssueReport struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id,omitempty"`
	ContentTitle string    `json:"content_title"`
	Platform     string    `json:"platform,omitempty"`
	IssueType    string    `json:"issue_type"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
