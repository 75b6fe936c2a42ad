package events

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/internal/service/ai"
	"github.com/streamgenie/streamgenie-go/pkg/errors"
	"go.uber.org/zap"
)

type fakeSearcher struct {
	results []domain.SearchResultItem
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]domain.SearchResultItem, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateText(_ context.Context, _, prompt string, _ ai.ModelConfig) (string, *ai.GenerateMetadata, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", nil, f.err
	}
	return f.response, &ai.GenerateMetadata{Provider: "gemini", Model: "test"}, nil
}

type fakeEnricher struct {
	called bool
}

func (f *fakeEnricher) EnrichFallbackEvents(_ context.Context, events []domain.LiveEvent) []domain.LiveEvent {
	f.called = true
	return events
}

func newTestService(searcher *fakeSearcher, generator *fakeGenerator, enricher Enricher) *Service {
	return NewService(searcher, generator, enricher, zap.NewNop())
}

var lakersResults = []domain.SearchResultItem{
	{Title: "Lakers vs Celtics - How to Watch", Snippet: "Tonight at 7:30 PM ET on ESPN.", URL: "https://example.com/a"},
	{Title: "NBA Schedule Tonight", Snippet: "Full slate of games.", URL: "https://example.com/b"},
	{Title: "Lakers Game Streaming Options", Snippet: "Where to stream the game.", URL: "https://example.com/c"},
}

func TestSearchLiveEventsEmptyQuery(t *testing.T) {
	svc := newTestService(&fakeSearcher{}, &fakeGenerator{}, nil)

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := svc.SearchLiveEvents(context.Background(), query)
		if err == nil {
			t.Fatalf("expected error for query %q", query)
		}
		if _, ok := err.(*errors.ValidationError); !ok {
			t.Errorf("expected ValidationError, got %T", err)
		}
	}
}

func TestSearchLiveEventsAppendsIntentTerms(t *testing.T) {
	searcher := &fakeSearcher{results: lakersResults}
	generator := &fakeGenerator{response: `[]`}
	svc := newTestService(searcher, generator, nil)

	if _, err := svc.SearchLiveEvents(context.Background(), "Lakers game tonight"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(searcher.queries) != 1 {
		t.Fatalf("expected 1 search call, got %d", len(searcher.queries))
	}
	if !strings.HasPrefix(searcher.queries[0], "Lakers game tonight ") ||
		!strings.Contains(searcher.queries[0], "live stream schedule broadcast") {
		t.Errorf("formulated query = %q", searcher.queries[0])
	}
}

func TestSearchLiveEventsSearchFailureIsFatal(t *testing.T) {
	searcher := &fakeSearcher{err: errors.NewAPIError("quota exceeded", 429, nil)}
	generator := &fakeGenerator{}
	svc := newTestService(searcher, generator, nil)

	_, err := svc.SearchLiveEvents(context.Background(), "Lakers")
	if err == nil {
		t.Fatal("expected search error to propagate")
	}
	if len(generator.prompts) != 0 {
		t.Error("generator must not be called when search fails")
	}
}

func TestSearchLiveEventsNoResults(t *testing.T) {
	svc := newTestService(&fakeSearcher{results: nil}, &fakeGenerator{}, nil)

	outcome, err := svc.SearchLiveEvents(context.Background(), "obscure query")
	if err != nil {
		t.Fatalf("zero results must not be an error: %v", err)
	}
	if !outcome.NoResults {
		t.Error("expected NoResults to be set")
	}
	if outcome.Events == nil || len(outcome.Events) != 0 {
		t.Errorf("expected empty non-nil events, got %v", outcome.Events)
	}
	if outcome.AIProcessed {
		t.Error("AIProcessed must be false for the no-results outcome")
	}
}

func TestSearchLiveEventsExtraction(t *testing.T) {
	generator := &fakeGenerator{response: `[
		{"eventName":"Lakers vs Celtics","time":"7:30 PM ET","participants":"Lakers, Celtics","whereToWatch":"ESPN","link":"https://example.com/a","summary":"Rivalry game."}
	]`}
	svc := newTestService(&fakeSearcher{results: lakersResults}, generator, nil)

	outcome, err := svc.SearchLiveEvents(context.Background(), "Lakers game tonight")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.AIProcessed {
		t.Error("expected AIProcessed for a parsed extraction")
	}
	if len(outcome.Events) != 1 || outcome.Events[0].EventName != "Lakers vs Celtics" {
		t.Errorf("unexpected events: %+v", outcome.Events)
	}
	if len(generator.prompts) != 1 || !strings.Contains(generator.prompts[0], "Lakers game tonight") {
		t.Errorf("prompt should carry the user query, got %q", generator.prompts)
	}
}

func TestSearchLiveEventsGeneratorFailureFallsBack(t *testing.T) {
	generator := &fakeGenerator{err: errors.NewServiceError("model down", "gemini", "generate", nil)}
	enricher := &fakeEnricher{}
	svc := newTestService(&fakeSearcher{results: lakersResults}, generator, enricher)

	outcome, err := svc.SearchLiveEvents(context.Background(), "Lakers game tonight")
	if err != nil {
		t.Fatalf("fallback path must not error: %v", err)
	}
	if outcome.AIProcessed {
		t.Error("AIProcessed must be false on fallback")
	}
	if len(outcome.Events) != len(lakersResults) {
		t.Fatalf("fallback must keep one event per result, got %d", len(outcome.Events))
	}
	for i, item := range lakersResults {
		e := outcome.Events[i]
		if e.EventName != item.Title || e.Link != item.URL || e.Summary != item.Snippet {
			t.Errorf("event %d not mapped from result %d", i, i)
		}
		if e.Time != domain.TimeUnknown || e.Participants != domain.FallbackParticipants || e.WhereToWatch != domain.FallbackWhereToWatch {
			t.Errorf("event %d missing fallback sentinels: %+v", i, e)
		}
	}
	if !enricher.called {
		t.Error("enricher should run on the fallback path")
	}
}

func TestSearchLiveEventsUnparsableOutputFallsBack(t *testing.T) {
	generator := &fakeGenerator{response: "Sorry, I could not identify any events."}
	svc := newTestService(&fakeSearcher{results: lakersResults}, generator, nil)

	outcome, err := svc.SearchLiveEvents(context.Background(), "Lakers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.AIProcessed {
		t.Error("AIProcessed must be false when the output is unparsable")
	}
	if len(outcome.Events) != len(lakersResults) {
		t.Errorf("expected %d fallback events, got %d", len(lakersResults), len(outcome.Events))
	}
}

func TestSearchLiveEventsTruncatesLongQueries(t *testing.T) {
	searcher := &fakeSearcher{results: nil}
	svc := newTestService(searcher, &fakeGenerator{}, nil)

	long := strings.Repeat("a", 2000)
	if _, err := svc.SearchLiveEvents(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 500 query chars plus the intent suffix.
	if got := len(searcher.queries[0]); got > 500+40 {
		t.Errorf("formulated query too long: %d chars", got)
	}
}

func TestSearchLiveEventsTruncatesOnRuneBoundary(t *testing.T) {
	searcher := &fakeSearcher{results: nil}
	svc := newTestService(searcher, &fakeGenerator{}, nil)

	// 3 bytes per rune, so the 500-byte cap lands mid-rune at byte 500.
	long := strings.Repeat("월드컵", 100)
	if _, err := svc.SearchLiveEvents(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	formulated := searcher.queries[0]
	if !utf8.ValidString(formulated) {
		t.Errorf("formulated query is not valid UTF-8: %q", formulated)
	}
	if !strings.HasPrefix(formulated, "월드컵") {
		t.Errorf("formulated query lost its prefix: %q", formulated)
	}
}
