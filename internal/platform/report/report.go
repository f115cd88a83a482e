// Package report arma documentos PDF a partir de textos ya resueltos.
// No busca datos ni valida: recibe columnas y celdas listas para imprimir.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	fontFamily = "Arial"

	marginLeft   = 10.0
	marginTop    = 12.0
	marginRight  = 10.0
	marginBottom = 15.0

	lineHeight   = 5.0
	cellPadding  = 1.5
	headerHeight = 8.0
	footerOffset = 10.0
)

var ErrNoColumns = errors.New("report: at least one column is required")

// Column define una columna de la tabla. Width en mm; 0 = reparto del ancho libre.
type Column struct {
	Header string
	Width  float64
}

// Field es un par etiqueta/valor del documento de un solo registro.
type Field struct {
	Label string
	Value string
}

type Exporter struct {
	Creator string
	now     func() time.Time
	// plain desactiva la compresión de streams
	plain bool
}

func NewExporter(creator string) *Exporter {
	return &Exporter{
		Creator: creator,
		now:     time.Now,
	}
}

// ExportList escribe un PDF tabular multipágina y devuelve la cantidad de páginas.
// - alto de fila = máx. de líneas envueltas entre sus celdas
// - encabezado de columnas repetido en cada página
// - filas alternadas con fondo
// - pie "Página i de N" al final, cuando ya se conoce N
func (e *Exporter) ExportList(w io.Writer, title string, columns []Column, rows [][]string) (int, error) {
	if len(columns) == 0 {
		return 0, ErrNoColumns
	}

	orientation := "P"
	if sumWidths(columns) > usableWidth("P") {
		orientation = "L"
	}
	pdf := e.newDocument(orientation, title)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	widths := fitWidths(columns, usableWidth(orientation))
	_, pageH := pdf.GetPageSize()

	// saltos manuales: cada página nueva lleva el encabezado de columnas
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	e.writeTitle(pdf, tr, title)
	writeHeader(pdf, tr, columns, widths)

	bottom := pageH - marginBottom
	fresh := bottom - marginTop - headerHeight
	newPage := func() {
		pdf.AddPage()
		writeHeader(pdf, tr, columns, widths)
		pdf.SetFont(fontFamily, "", 9)
	}

	pdf.SetFont(fontFamily, "", 9)
	for i, row := range rows {
		lines := make([][][]byte, len(columns))
		maxLines := 1
		for c := range columns {
			txt := ""
			if c < len(row) {
				txt = tr(row[c])
			}
			lines[c] = pdf.SplitLines([]byte(txt), widths[c]-2*cellPadding)
			if len(lines[c]) > maxLines {
				maxLines = len(lines[c])
			}
		}

		if h := rowHeight(maxLines); pdf.GetY()+h > bottom && h <= fresh {
			newPage()
		}

		// una fila más alta que la página se corta en tramos, uno por página
		for from := 0; from < maxLines; {
			fit := int((bottom - pdf.GetY() - 2*cellPadding) / lineHeight)
			if fit < 1 {
				newPage()
				continue
			}
			to := min(maxLines, from+fit)
			drawRow(pdf, lines, widths, from, to, i%2 == 1)
			from = to
			if from < maxLines {
				newPage()
			}
		}
	}

	writeFooters(pdf, tr)

	if err := pdf.Output(w); err != nil {
		return 0, fmt.Errorf("report: output: %w", err)
	}
	return pdf.PageCount(), nil
}

func rowHeight(lines int) float64 {
	return float64(lines)*lineHeight + 2*cellPadding
}

// drawRow dibuja las líneas [from, to) de cada celda en un bloque con borde.
func drawRow(pdf *gofpdf.Fpdf, lines [][][]byte, widths []float64, from, to int, fill bool) {
	style := "D"
	if fill {
		pdf.SetFillColor(240, 244, 248)
		style = "FD"
	}
	h := rowHeight(to - from)
	x, y := marginLeft, pdf.GetY()
	for c := range lines {
		pdf.Rect(x, y, widths[c], h, style)
		for j := from; j < to && j < len(lines[c]); j++ {
			pdf.SetXY(x+cellPadding, y+cellPadding+float64(j-from)*lineHeight)
			pdf.CellFormat(widths[c]-2*cellPadding, lineHeight, string(lines[c][j]), "", 0, "L", false, 0, "")
		}
		x += widths[c]
	}
	pdf.SetXY(marginLeft, y+h)
}

// ExportSingle escribe un PDF de una columna etiqueta/valor.
func (e *Exporter) ExportSingle(w io.Writer, title string, fields []Field) (int, error) {
	pdf := e.newDocument("P", title)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	e.writeTitle(pdf, tr, title)

	const labelWidth = 50.0
	valueWidth := usableWidth("P") - labelWidth

	for _, f := range fields {
		pdf.SetFont(fontFamily, "B", 10)
		y := pdf.GetY()
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(labelWidth, 7, tr(f.Label+":"), "", 0, "L", false, 0, "")

		pdf.SetFont(fontFamily, "", 10)
		pdf.SetXY(marginLeft+labelWidth, y)
		value := f.Value
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		pdf.MultiCell(valueWidth, 7, tr(value), "", "L", false)
		pdf.Ln(1)
	}

	writeFooters(pdf, tr)

	if err := pdf.Output(w); err != nil {
		return 0, fmt.Errorf("report: output: %w", err)
	}
	return pdf.PageCount(), nil
}

func (e *Exporter) newDocument(orientation, title string) *gofpdf.Fpdf {
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetCompression(!e.plain)
	pdf.SetTitle(title, true)
	if e.Creator != "" {
		pdf.SetCreator(e.Creator, true)
	}
	return pdf
}

func (e *Exporter) writeTitle(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, tr("Generado: "+e.now().Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}

func writeHeader(pdf *gofpdf.Fpdf, tr func(string) string, columns []Column, widths []float64) {
	pdf.SetFont(fontFamily, "B", 9)
	pdf.SetFillColor(41, 98, 140)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetX(marginLeft)
	for i, c := range columns {
		pdf.CellFormat(widths[i], headerHeight, tr(c.Header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(headerHeight)
	pdf.SetTextColor(0, 0, 0)
}

func writeFooters(pdf *gofpdf.Fpdf, tr func(string) string) {
	total := pdf.PageCount()
	pdf.SetAutoPageBreak(false, 0)
	_, pageH := pdf.GetPageSize()
	for p := 1; p <= total; p++ {
		pdf.SetPage(p)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetXY(marginLeft, pageH-footerOffset)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Página %d de %d", p, total)), "", 0, "C", false, 0, "")
	}
}

func usableWidth(orientation string) float64 {
	if orientation == "L" {
		return 297 - marginLeft - marginRight
	}
	return 210 - marginLeft - marginRight
}

func sumWidths(columns []Column) float64 {
	total := 0.0
	for _, c := range columns {
		total += c.Width
	}
	return total
}

// fitWidths reparte el ancho libre entre columnas sin ancho y escala si se pasa.
func fitWidths(columns []Column, usable float64) []float64 {
	out := make([]float64, len(columns))
	fixed, free := 0.0, 0
	for i, c := range columns {
		if c.Width > 0 {
			out[i] = c.Width
			fixed += c.Width
		} else {
			free++
		}
	}
	if free > 0 {
		share := (usable - fixed) / float64(free)
		if share < 15 {
			share = 15
		}
		for i := range out {
			if out[i] == 0 {
				out[i] = share
			}
		}
	}
	total := 0.0
	for _, w := range out {
		total += w
	}
	if total > usable {
		k := usable / total
		for i := range out {
			out[i] *= k
		}
	}
	return out
}
