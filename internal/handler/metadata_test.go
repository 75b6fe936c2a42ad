package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/pkg/errors"
	"go.uber.org/zap"
)

type fakeMetadataService struct {
	results    []domain.MediaSearchResult
	searchErr  error
	details    json.RawMessage
	detailsErr error

	searchCalled  bool
	searchQuery   string
	detailsCalled bool
}

func (f *fakeMetadataService) Search(_ context.Context, query, _ string) ([]domain.MediaSearchResult, error) {
	f.searchCalled = true
	f.searchQuery = query
	return f.results, f.searchErr
}

func (f *fakeMetadataService) Details(_ context.Context, _ string, _ int64) (json.RawMessage, error) {
	f.detailsCalled = true
	return f.details, f.detailsErr
}

func postMedia(t *testing.T, h *MetadataHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/search-tmdb", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.SearchMedia(rec, req)
	return rec
}

func TestSearchMediaUnconfigured(t *testing.T) {
	h := NewMetadataHandler(nil, zap.NewNop())

	rec := postMedia(t, h, `{"query":"Oppenheimer"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestSearchMediaValidationError(t *testing.T) {
	svc := &fakeMetadataService{searchErr: errors.NewValidationError("Query parameter is required", "query", "")}
	h := NewMetadataHandler(svc, zap.NewNop())

	rec := postMedia(t, h, `{"query":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSearchMediaRejectsNonStringQuery(t *testing.T) {
	svc := &fakeMetadataService{}
	h := NewMetadataHandler(svc, zap.NewNop())

	rec := postMedia(t, h, `{"query":123}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Error != "Query parameter is required" {
		t.Errorf("error message = %q, want %q", body.Error, "Query parameter is required")
	}
	if svc.searchCalled {
		t.Error("search must not be called for a non-string query")
	}
}

func TestSearchMediaReturnsResults(t *testing.T) {
	year := 2023
	svc := &fakeMetadataService{results: []domain.MediaSearchResult{
		{TMDBID: 872585, MediaType: "movie", Title: "Oppenheimer", ReleaseYear: &year, Genres: []string{"Drama", "History"}, StreamingPlatforms: []string{"Peacock"}},
	}}
	h := NewMetadataHandler(svc, zap.NewNop())

	rec := postMedia(t, h, `{"query":"Oppenheimer","region":"US"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Results []domain.MediaSearchResult `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(body.Results) != 1 || body.Results[0].Title != "Oppenheimer" {
		t.Errorf("results = %+v", body.Results)
	}
	if svc.searchQuery != "Oppenheimer" {
		t.Errorf("service received query %q", svc.searchQuery)
	}
	if svc.detailsCalled {
		t.Error("details must not be called for a plain search")
	}
}

func TestSearchMediaDetailsMode(t *testing.T) {
	svc := &fakeMetadataService{details: json.RawMessage(`{"id":872585,"title":"Oppenheimer"}`)}
	h := NewMetadataHandler(svc, zap.NewNop())

	rec := postMedia(t, h, `{"tmdb_id":872585,"media_type":"movie","includeDetails":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !svc.detailsCalled {
		t.Fatal("details mode should call Details")
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("detail payload not passed through: %v", err)
	}
	if body["title"] != "Oppenheimer" {
		t.Errorf("body = %v", body)
	}
}
