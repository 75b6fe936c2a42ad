package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/streamgenie/streamgenie-go/internal/domain"
	"go.uber.org/zap"
)

type fakeWatchlistStore struct {
	items   []domain.WatchlistItem
	added   []domain.WatchlistItem
	removed bool
	err     error
}

func (f *fakeWatchlistStore) Add(_ context.Context, item domain.WatchlistItem) (*domain.WatchlistItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	item.ID = int64(len(f.added) + 1)
	item.AddedAt = time.Now()
	f.added = append(f.added, item)
	return &item, nil
}

func (f *fakeWatchlistStore) ListByUser(_ context.Context, _ string) ([]domain.WatchlistItem, error) {
	return f.items, f.err
}

func (f *fakeWatchlistStore) Remove(_ context.Context, _ string, _ int64, _ string) (bool, error) {
	return f.removed, f.err
}

func TestWatchlistListRequiresUserID(t *testing.T) {
	h := NewWatchlistHandler(&fakeWatchlistStore{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/watchlist", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestWatchlistList(t *testing.T) {
	store := &fakeWatchlistStore{items: []domain.WatchlistItem{
		{ID: 1, UserID: "u1", TMDBID: 872585, MediaType: "movie", Title: "Oppenheimer"},
	}}
	h := NewWatchlistHandler(store, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/watchlist?user_id=u1", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Items []domain.WatchlistItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].Title != "Oppenheimer" {
		t.Errorf("items = %+v", body.Items)
	}
}

func TestWatchlistAddValidation(t *testing.T) {
	h := NewWatchlistHandler(&fakeWatchlistStore{}, zap.NewNop())

	bad := []string{
		`{"tmdb_id":1,"media_type":"movie","title":"X"}`,              // no user_id
		`{"user_id":"u1","media_type":"movie","title":"X"}`,          // no tmdb_id
		`{"user_id":"u1","tmdb_id":1,"media_type":"person","title":"X"}`, // bad media_type
		`{"user_id":"u1","tmdb_id":1,"media_type":"movie","title":"  "}`, // blank title
	}
	for _, body := range bad {
		req := httptest.NewRequest(http.MethodPost, "/watchlist", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Add(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestWatchlistAdd(t *testing.T) {
	store := &fakeWatchlistStore{}
	h := NewWatchlistHandler(store, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/watchlist",
		strings.NewReader(`{"user_id":"u1","tmdb_id":872585,"media_type":"movie","title":"Oppenheimer","release_year":2023}`))
	rec := httptest.NewRecorder()
	h.Add(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(store.added) != 1 || store.added[0].TMDBID != 872585 {
		t.Errorf("stored = %+v", store.added)
	}
	if store.added[0].ReleaseYear == nil || *store.added[0].ReleaseYear != 2023 {
		t.Errorf("release_year not carried: %v", store.added[0].ReleaseYear)
	}
}

func TestWatchlistRemove(t *testing.T) {
	h := NewWatchlistHandler(&fakeWatchlistStore{removed: true}, zap.NewNop())

	req := httptest.NewRequest(http.MethodDelete, "/watchlist",
		strings.NewReader(`{"user_id":"u1","tmdb_id":872585,"media_type":"movie"}`))
	rec := httptest.NewRecorder()
	h.Remove(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if !body["deleted"] {
		t.Error("deleted should be true")
	}
}

func TestWatchlistRemoveMiss(t *testing.T) {
	h := NewWatchlistHandler(&fakeWatchlistStore{removed: false}, zap.NewNop())

	req := httptest.NewRequest(http.MethodDelete, "/watchlist",
		strings.NewReader(`{"user_id":"u1","tmdb_id":1,"media_type":"movie"}`))
	rec := httptest.NewRecorder()
	h.Remove(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]bool
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["deleted"] {
		t.Error("deleted should be false for a miss")
	}
}
