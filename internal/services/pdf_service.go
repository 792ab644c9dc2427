package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"
)

// PDFSection is one section of a rendered PDF report. A section with
// Text set renders a boxed paragraph; one with Headers set renders a
// table. A section may carry both.
type PDFSection struct {
	Title   string
	Text    string
	Headers []string
	Rows    [][]string
}

// PDFService handles PDF generation for report documents
type PDFService struct{}

// NewPDFService creates a new PDF service
func NewPDFService() *PDFService {
	return &PDFService{}
}

// GenerateReportPDF renders a titled report with the given sections
// into PDF bytes.
func (s *PDFService) GenerateReportPDF(title, generatedAt string, sections []PDFSection) ([]byte, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("invalid report data")
	}

	// A4 portrait
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("{nb}")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(108, 117, 125) // Gray
		pdf.SetX(15)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 102, 204) // Blue
	pdf.CellFormat(0, 20, title, "", 0, "C", false, 0, "")

	pdf.Ln(15)
	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(108, 117, 125) // Gray
	pdf.CellFormat(0, 10, fmt.Sprintf("Generated: %s", generatedAt), "", 0, "C", false, 0, "")
	pdf.Ln(12)

	for _, section := range sections {
		if pdf.GetY() > 240 {
			pdf.AddPage()
		}
		s.addHeader(pdf, section.Title)
		if section.Text != "" {
			s.addTextBox(pdf, section.Text)
		}
		if len(section.Headers) > 0 {
			s.addTable(pdf, section.Headers, section.Rows)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteReportPDF renders the sections and writes the document to path.
func (s *PDFService) WriteReportPDF(path, title, generatedAt string, sections []PDFSection) error {
	data, err := s.GenerateReportPDF(title, generatedAt, sections)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write PDF report: %w", err)
	}
	return nil
}

// addHeader adds a section header with a blue underline
func (s *PDFService) addHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41) // Dark gray
	pdf.CellFormat(0, 10, title, "", 0, "L", false, 0, "")

	pdf.Ln(10)
	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(0, 102, 204) // Blue
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)
}

// addTextBox renders a wrapped paragraph inside a bordered box
func (s *PDFService) addTextBox(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFillColor(248, 249, 250) // Light gray
	pdf.SetDrawColor(0, 102, 204)   // Blue
	pdf.SetLineWidth(0.5)
	startY := pdf.GetY()

	padding := 8.0
	textWidth := 180.0 - (padding * 2)

	pdf.SetFont("Arial", "", 9)
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		lines = append(lines, pdf.SplitText(paragraph, textWidth)...)
	}
	boxHeight := float64(len(lines)*5 + 10)

	pdf.Rect(15, startY, 180, boxHeight, "FD")

	pdf.SetTextColor(33, 37, 41) // Dark gray
	currentY := startY + 5
	for _, line := range lines {
		pdf.SetXY(15+padding, currentY)
		pdf.CellFormat(0, 5, strings.TrimSpace(line), "", 0, "L", false, 0, "")
		currentY += 5
	}

	pdf.SetY(startY + boxHeight)
	pdf.Ln(8)
}

// addTable renders a blue-headed table with alternating row fills
func (s *PDFService) addTable(pdf *gofpdf.Fpdf, headers []string, rows [][]string) {
	tablePadding := 3.0
	tableStartX := 15.0 + tablePadding
	tableWidth := 180.0 - (tablePadding * 2)
	padding := 5.0

	// First column gets double weight when it holds labels
	colWidth := (tableWidth - padding*2) / float64(len(headers)+1)
	col1Width := colWidth * 2

	rowHeight := 7.0
	headerHeight := 8.0

	headerY := pdf.GetY()
	pdf.SetFillColor(0, 102, 204)   // Blue background
	pdf.SetTextColor(255, 255, 255) // White text
	pdf.SetFont("Arial", "B", 9)
	pdf.Rect(tableStartX, headerY, tableWidth, headerHeight, "FD")

	x := tableStartX + padding
	for i, h := range headers {
		width := colWidth
		if i == 0 {
			width = col1Width
		}
		pdf.SetXY(x, headerY+headerHeight/2-3)
		pdf.CellFormat(width, headerHeight, h, "", 0, align(i), false, 0, "")
		x += width
	}
	pdf.SetY(headerY + headerHeight)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(33, 37, 41) // Dark gray text

	for i, row := range rows {
		if pdf.GetY() > 260 {
			pdf.AddPage()
		}
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255) // White
		} else {
			pdf.SetFillColor(248, 249, 250) // Light gray
		}

		rowY := pdf.GetY()
		pdf.Rect(tableStartX, rowY, tableWidth, rowHeight, "FD")

		x = tableStartX + padding
		for j, cell := range row {
			width := colWidth
			if j == 0 {
				width = col1Width
			}
			pdf.SetXY(x, rowY+rowHeight/2-2)
			pdf.CellFormat(width, rowHeight, cell, "", 0, align(j), false, 0, "")
			x += width
		}
		pdf.SetY(rowY + rowHeight)
	}

	pdf.Ln(10)
	pdf.SetTextColor(33, 37, 41)
}

func align(col int) string {
	if col == 0 {
		return "L"
	}
	return "R"
}
