// Package export renders a session's batch of transcription results as
// plain text, JSON, or a PDF report for download.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/legal-discovery/backend/internal/transcript"
)

// Text renders the batch as plain text: one block per file, separated by a
// blank line.
func Text(results []*transcript.Result) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("--- %s ---\n%s", r.Filename, r.Text)
	}
	return strings.Join(blocks, "\n\n")
}

// JSON renders the batch as an indented JSON array.
func JSON(results []*transcript.Result) ([]byte, error) {
	if results == nil {
		results = []*transcript.Result{}
	}
	return json.MarshalIndent(results, "", "  ")
}
