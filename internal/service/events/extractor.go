package events

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/streamgenie/streamgenie-go/internal/domain"
)

// arrayPattern locates the first bracketed array in the model output, greedy
// and spanning lines, so an array embedded in prose or a markdown fence is
// still found.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// parseEventList attempts to read the model's raw text as an event list:
// first the bracket-scanned substring, then the whole text. An error from
// both attempts means the output is unparsable and the caller must use the
// deterministic fallback; this function never panics past its boundary.
func parseEventList(raw string) ([]domain.LiveEvent, error) {
	if match := arrayPattern.FindString(raw); match != "" {
		var events []domain.LiveEvent
		if err := json.Unmarshal([]byte(match), &events); err == nil {
			return events, nil
		}
	}

	var events []domain.LiveEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, fmt.Errorf("no parsable event array in model output: %w", err)
	}
	return events, nil
}

// fallbackEvents maps search results 1:1 into placeholder events, preserving
// count and order.
func fallbackEvents(results []domain.SearchResultItem) []domain.LiveEvent {
	events := make([]domain.LiveEvent, len(results))
	for i, item := range results {
		events[i] = domain.FallbackEvent(item)
	}
	return events
}
