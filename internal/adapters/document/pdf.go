package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"lessonbook/internal/domain/journal"
)

// PDF layout in millimetres.
const (
	pdfTitleSize   = 16
	pdfHeadingSize = 13
	pdfBodySize    = 11
	pdfLineHeight  = 6
)

// PDF renders the journal as a paginated A4 document with page numbers.
// Text is mapped to cp1252 so German umlauts survive the core fonts.
func PDF(j journal.Journal) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(journalTitle(j), true)
	pdf.SetCreator("lessonbook", true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	for _, block := range j.Blocks {
		switch block.Kind {
		case journal.KindTitle:
			pdf.SetFont("Helvetica", "B", pdfTitleSize)
			pdf.MultiCell(0, 8, tr(block.Text), "", "L", false)
			pdf.Ln(4)
		case journal.KindHeading:
			pdf.SetFont("Helvetica", "B", pdfHeadingSize)
			pdf.MultiCell(0, 7, tr(block.Text), "", "L", false)
			pdf.Ln(2)
		default:
			pdf.SetFont("Helvetica", "", pdfBodySize)
			pdf.MultiCell(0, pdfLineHeight, tr(block.Text), "", "L", false)
			pdf.Ln(2)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render journal pdf: %w", err)
	}
	return buf.Bytes(), nil
}
