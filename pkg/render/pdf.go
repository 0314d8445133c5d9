package render

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/coolbeans/attex/pkg/group"
)

// PDF writes a grouped result as a simple cover-sheet PDF: bold heading
// lines, one "(num) desc" line per citation. Layout is intentionally
// minimal; the output is a checklist, not typography.
func PDF(result group.GroupedResult, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "List of Attachments", "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)

	for _, sec := range result.Sections {
		if sec.Name != "" {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(0, 6, sec.Name, "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		}
		for _, item := range sec.Items {
			pdf.MultiCell(0, 5, fmt.Sprintf("(%d) %s", item.Num, item.Desc), "", "L", false)
		}
		pdf.Ln(4)
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
