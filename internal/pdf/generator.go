package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/siteworks/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() (*Generator, error) {
	return &Generator{fontName: "Helvetica"}, nil
}

func (g *Generator) Generate(form model.EstimatePrintForm) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Construction estimate", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Estimate No %s of %s", form.Estimate.Number, formatDate(form.Estimate.Date)), "", 1, "C", false, 0, "")
	if form.Object.Name != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Site: %s", form.Object.Name), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	if form.Organization.Name != "" {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "Contractor", "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 5, form.Organization.Name, "", 1, "L", false, 0, "")
		if form.Organization.Address != "" {
			pdf.CellFormat(0, 5, form.Organization.Address, "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Works", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"No", "Work", "Qty", "Price", "Sum", "Labor, h"}
	colWidths := []float64{12, 128, 25, 32, 37, 30}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, line := range form.Estimate.Lines {
		name := line.Name
		if name == "" && line.WorkID != nil {
			name = form.WorkNames[*line.WorkID]
		}
		if line.IsGroup {
			row := []string{"", name, "", "", formatAmount(line.Sum, 2), formatAmount(line.Labor, 3)}
			drawTableRow(pdf, g.fontName, row, colWidths, true)
			continue
		}
		row := []string{
			fmt.Sprintf("%d", line.OrderNum),
			name,
			formatAmount(line.Quantity, 3),
			formatAmount(line.Price, 2),
			formatAmount(line.Sum, 2),
			formatAmount(line.Labor, 3),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total: %s", formatAmount(form.Estimate.TotalSum, 2)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total labor, h: %s", formatAmount(form.Estimate.TotalLabor, 3)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cells []string, widths []float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, cell := range cells {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatAmount(value float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, value)
}
