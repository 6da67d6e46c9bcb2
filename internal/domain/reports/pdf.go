package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"reviewhub/internal/domain/review"
)

// RenderCycleSummaryPDF renders a cycle completion report, one line per
// receiver, for HR distribution.
func RenderCycleSummaryPDF(summary CycleSummary, views []review.ReceiverView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Review Cycle Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Cycle: %s (%s)", summary.CycleName, summary.CycleStatus))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Receivers: %d", summary.Receivers))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Completion: %.0f%%", summary.CompletionRate*100))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(70, 7, "Employee")
	pdf.Cell(50, 7, "Department")
	pdf.Cell(40, 7, "Status")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, view := range views {
		pdf.Cell(70, 7, view.FullName)
		pdf.Cell(50, 7, view.Department)
		pdf.Cell(40, 7, view.Status)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
