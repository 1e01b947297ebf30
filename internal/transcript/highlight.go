package transcript

import (
	"sort"
	"strings"
)

// Entity is a substring of the transcript tagged with a semantic category
// (person, date, contract, ...) by the STT provider's entity detector.
type Entity struct {
	Text  string  `json:"text"`
	Type  string  `json:"type"`
	Start float64 `json:"start_time,omitempty"`
	End   float64 `json:"end_time,omitempty"`
}

// Highlight wraps every occurrence of each entity mention in a tagged span and
// converts newline structure to HTML paragraph/line breaks.
//
// Mentions are de-duplicated by literal text; when the same text carries two
// different types, the last one encountered wins. Distinct texts are replaced
// longest-first so that a shorter mention that is a substring of a longer one
// ("John" inside "John Smith") cannot corrupt the longer replacement.
//
// Replacement is plain substring substitution, not word-boundary aware, and
// re-running Highlight on its own output may double-wrap. Both are known
// limitations of the textual approach.
func Highlight(text string, entities []Entity) string {
	types := make(map[string]string, len(entities))
	for _, e := range entities {
		if e.Text == "" {
			continue
		}
		types[e.Text] = e.Type
	}

	mentions := make([]string, 0, len(types))
	for m := range types {
		mentions = append(mentions, m)
	}
	// Longest first; ties lexicographic so output is deterministic.
	sort.Slice(mentions, func(i, j int) bool {
		if len(mentions[i]) != len(mentions[j]) {
			return len(mentions[i]) > len(mentions[j])
		}
		return mentions[i] < mentions[j]
	})

	marked := text
	for _, m := range mentions {
		marked = strings.ReplaceAll(marked, m, entitySpan(m, types[m]))
	}
	return renderBreaks(marked)
}

func entitySpan(text, typ string) string {
	if typ == "" {
		typ = "ENTITY"
	}
	return `<span class="entity-tag" title="` + typ + `">` + text + " (" + strings.ToUpper(typ) + ")</span>"
}

// renderBreaks converts double newlines to paragraph breaks and remaining
// single newlines to line breaks.
func renderBreaks(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\n\n", "</p><p>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return "<p>" + s + "</p>"
}
