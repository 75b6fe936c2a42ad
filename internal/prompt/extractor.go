package prompt

import (
	"fmt"
	"strings"

	"github.com/streamgenie/streamgenie-go/internal/domain"
)

// ExtractorSystemInstruction is the fixed instruction describing the event
// schema. The model must emit a JSON array and nothing else; the parser still
// tolerates surrounding prose.
const ExtractorSystemInstruction = `You are a live-event extraction engine for a streaming guide.
You receive web search results about live sporting and entertainment events and convert them into structured data.

For each distinct event you can identify, emit one object with exactly these fields:
- "eventName": the event's name (required, never empty)
- "time": when it happens, as human-readable text; use "Check source for time" if the results do not say
- "participants": teams, players or performers involved; may be empty
- "whereToWatch": the channel or streaming service carrying it; use "TBD" if unknown
- "link": the most relevant source URL from the results
- "summary": one or two sentences describing the event
- "streamingPlatforms": optional array of platform names
- "platformDetails": optional array of {"name", "status"} objects where status describes availability (e.g. "Included with Max subscription", "Available to rent", "Included with provider login")

Deduplicate events that appear in multiple results. Respond with ONLY a JSON array of event objects, no other text.`

// ExtractorPromptVars holds variables for the extraction user prompt.
type ExtractorPromptVars struct {
	Query   string
	Results []domain.SearchResultItem
}

// BuildExtractorPrompt builds the user message: numbered search results plus
// the original query.
func BuildExtractorPrompt(vars ExtractorPromptVars) string {
	var b strings.Builder

	b.WriteString("## Search Results:\n\n")
	for i, item := range vars.Results {
		fmt.Fprintf(&b, "%d. %s\n   %s\n   %s\n\n", i+1, item.Title, item.Snippet, item.URL)
	}

	fmt.Fprintf(&b, "## User Query:\n\"%s\"\n\nExtract the live events relevant to this query from the results above.", vars.Query)

	return b.String()
}
