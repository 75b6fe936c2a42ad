package events

import (
	"testing"

	"github.com/streamgenie/streamgenie-go/internal/domain"
)

func TestParseEventListCleanArray(t *testing.T) {
	raw := `[{"eventName":"Lakers vs Celtics","time":"7:30 PM ET","participants":"Lakers, Celtics","whereToWatch":"ESPN","link":"https://example.com","summary":"NBA game."}]`

	events, err := parseEventList(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].EventName != "Lakers vs Celtics" || events[0].WhereToWatch != "ESPN" {
		t.Errorf("fields not parsed: %+v", events[0])
	}
}

func TestParseEventListEmbeddedInProse(t *testing.T) {
	raw := "Here are the events I found:\n```json\n" +
		`[{"eventName":"UFC 300","time":"Saturday 10 PM","participants":"TBD","whereToWatch":"ESPN+","link":"https://example.com/ufc","summary":"Pay-per-view."}]` +
		"\n```\nLet me know if you need more."

	events, err := parseEventList(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].EventName != "UFC 300" {
		t.Errorf("embedded array not recovered: %+v", events)
	}
}

func TestParseEventListPlatformDetails(t *testing.T) {
	raw := `[{"eventName":"Finals","time":"Tonight","participants":"","whereToWatch":"Max","link":"u","summary":"s","platformDetails":[{"name":"Max","status":"Included with Max subscription"}]}]`

	events, err := parseEventList(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events[0].PlatformDetails) != 1 || events[0].PlatformDetails[0].Status != "Included with Max subscription" {
		t.Errorf("platformDetails not parsed: %+v", events[0].PlatformDetails)
	}
}

func TestParseEventListUnparsable(t *testing.T) {
	for _, raw := range []string{
		"I could not find any events.",
		`{"eventName":"not an array"}`,
		"",
		"[not json]",
	} {
		if _, err := parseEventList(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestFallbackEventsPreservesCountAndOrder(t *testing.T) {
	results := []domain.SearchResultItem{
		{Title: "First", Snippet: "s1", URL: "u1"},
		{Title: "Second", Snippet: "s2", URL: "u2"},
		{Title: "Third", Snippet: "s3", URL: "u3"},
	}

	events := fallbackEvents(results)
	if len(events) != len(results) {
		t.Fatalf("expected %d events, got %d", len(results), len(events))
	}
	for i, item := range results {
		if events[i].EventName != item.Title || events[i].Link != item.URL || events[i].Summary != item.Snippet {
			t.Errorf("event %d does not map result %d: %+v", i, i, events[i])
		}
	}
}
