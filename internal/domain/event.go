package domain

import "strings"

// Unknown-value sentinels surfaced to the client as-is.
const (
	TimeUnknown  = "Check source for time"
	WatchUnknown = "TBD"
)

// Fixed field values for events produced by the deterministic fallback mapping.
const (
	FallbackParticipants = "See details"
	FallbackWhereToWatch = "See link"
)

// SearchResultItem is one web-search hit. Ephemeral, lives only within a
// single request.
type SearchResultItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// PlatformInfo describes how a live event is available on one platform.
// Status is free text from the extractor, e.g. "Included with Max subscription".
type PlatformInfo struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// LiveEvent is the canonical event record returned by the extraction pipeline.
type LiveEvent struct {
	EventName          string         `json:"eventName"`
	Time               string         `json:"time"`
	Participants       string         `json:"participants"`
	WhereToWatch       string         `json:"whereToWatch"`
	Link               string         `json:"link"`
	Summary            string         `json:"summary"`
	StreamingPlatforms []string       `json:"streamingPlatforms,omitempty"`
	PlatformDetails    []PlatformInfo `json:"platformDetails,omitempty"`
}

// HasKnownWatchInfo reports whether whereToWatch carries real information
// rather than the TBD sentinel.
func (e *LiveEvent) HasKnownWatchInfo() bool {
	trimmed := strings.TrimSpace(e.WhereToWatch)
	return trimmed != "" && !strings.EqualFold(trimmed, WatchUnknown)
}

// RenderPlatforms returns the platform list used for display. PlatformDetails,
// when present, supersedes StreamingPlatforms; otherwise each flat name gets a
// synthesized default status.
func (e *LiveEvent) RenderPlatforms() []PlatformInfo {
	if len(e.PlatformDetails) > 0 {
		return e.PlatformDetails
	}

	if len(e.StreamingPlatforms) == 0 {
		return nil
	}

	details := make([]PlatformInfo, 0, len(e.StreamingPlatforms))
	for _, name := range e.StreamingPlatforms {
		details = append(details, PlatformInfo{
			Name:   name,
			Status: DefaultPlatformStatus(name),
		})
	}
	return details
}

// FallbackEvent maps one search result into a placeholder event. The mapping
// is deterministic so a failed extraction still yields one event per result,
// in result order.
func FallbackEvent(item SearchResultItem) LiveEvent {
	return LiveEvent{
		EventName:    item.Title,
		Time:         TimeUnknown,
		Participants: FallbackParticipants,
		WhereToWatch: FallbackWhereToWatch,
		Link:         item.URL,
		Summary:      item.Snippet,
	}
}
