package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/legal-discovery/backend/internal/transcript"
)

// PDF renders the batch as a report: one page per file with an entity-type
// summary followed by the full transcript.
func PDF(results []*transcript.Result) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	// Core fonts are cp1252; characters outside it are transliterated or
	// replaced rather than breaking the document.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, r := range results {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, tr("Transcript Report: "+r.Filename), "", 1, "L", false, 0, "")
		pdf.Ln(5)

		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Summary of Entities:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)

		summary := transcript.CountEntityTypes(r.Entities)
		if len(summary) == 0 {
			pdf.CellFormat(0, 8, "- none detected", "", 1, "L", false, 0, "")
		}
		for _, row := range summary {
			pdf.CellFormat(0, 8, tr(fmt.Sprintf("- %s: %d", row.Type, row.Count)), "", 1, "L", false, 0, "")
		}

		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Full Transcript:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, tr(r.Text), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
