package timesheet

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

var pdfColumnWidths = []float64{24, 26, 30, 26, 26, 26, 26, 30, 28, 32}

type PdfRenderer struct{}

func NewPdfRenderer() *PdfRenderer {
	return &PdfRenderer{}
}

func (r *PdfRenderer) Format() string {
	return "pdf"
}

func (r *PdfRenderer) ContentType() string {
	return "application/pdf"
}

func (r *PdfRenderer) Render(draft Draft) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Timesheet", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Timesheet")
	pdf.Ln(12)

	for _, line := range headerLines(draft.Header) {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(35, 7, line[0]+":")
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 7, tr(line[1]))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range columnTitles {
		pdf.CellFormat(pdfColumnWidths[i], 8, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range draft.Sheet.Rows() {
		for i, value := range cells(row) {
			pdf.CellFormat(pdfColumnWidths[i], 7, tr(value), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 9)
	var spanned float64
	for _, w := range pdfColumnWidths[:len(pdfColumnWidths)-1] {
		spanned += w
	}
	pdf.CellFormat(spanned, 8, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfColumnWidths[len(pdfColumnWidths)-1], 8, formatHours(draft.Sheet.TotalHours()), "1", 0, "C", true, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
