package transcript

import "sort"

// Result statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Result aggregates everything produced for one uploaded file. It is owned by
// the session that holds it; the formatting functions in this package never
// mutate a Result, they return new strings.
type Result struct {
	Filename      string   `json:"filename"`
	Text          string   `json:"text"`           // raw or diarized transcript text
	FormattedText string   `json:"formatted_text"` // entity-highlighted markup
	Entities      []Entity `json:"entities"`
	Language      string   `json:"language,omitempty"`
	Status        string   `json:"status"`
	Error         string   `json:"error,omitempty"`
}

// TypeCount is one row of an entity summary.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CountEntityTypes tallies entity mentions per type, sorted by descending
// count (ties alphabetical). Entities without a type count as "Unknown".
func CountEntityTypes(entities []Entity) []TypeCount {
	counts := make(map[string]int)
	for _, e := range entities {
		typ := e.Type
		if typ == "" {
			typ = "Unknown"
		}
		counts[typ]++
	}
	summary := make([]TypeCount, 0, len(counts))
	for typ, n := range counts {
		summary = append(summary, TypeCount{Type: typ, Count: n})
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Count != summary[j].Count {
			return summary[i].Count > summary[j].Count
		}
		return summary[i].Type < summary[j].Type
	})
	return summary
}
