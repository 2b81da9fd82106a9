package invoice

import "github.com/go-pdf/fpdf"

// cellAlign values accepted by drawGrid, per column.
const (
	alignLeft  = "L"
	alignRight = "R"
)

// gridOptions tunes one drawGrid call. The zero value draws plain
// left-aligned body rows.
type gridOptions struct {
	headerRow bool     // first row gets the accent fill and bold face
	aligns    []string // per-column alignment, default left
	boldRows  map[int]bool
}

// drawGrid draws rows as a bordered fixed-column grid with its top-left
// corner at (x, y) and returns the cursor just below the last row. Every
// cell is a bordered rectangle of fixed width and height with the text
// anchored behind a small inset; a row with fewer populated cells than
// columns still reserves every column's border, so ragged content never
// produces a ragged grid. Text is never wrapped: anything longer than its
// column box is clipped at the cell boundary. Column widths are hand-tuned
// to typical field lengths, so clipping is the accepted overflow behavior.
func drawGrid(pdf *fpdf.Fpdf, style Style, x, y float64, rows [][]string, widths []float64, opts gridOptions) float64 {
	for r, row := range rows {
		header := opts.headerRow && r == 0
		if header {
			pdf.SetFillColor(style.Accent.R, style.Accent.G, style.Accent.B)
			pdf.SetTextColor(style.BarText.R, style.BarText.G, style.BarText.B)
			pdf.SetFont("", "B", style.BodySize)
		} else if opts.boldRows[r] {
			pdf.SetFont("", "B", style.BodySize)
		} else {
			pdf.SetFont("", "", style.BodySize)
		}

		cellX := x
		for c, w := range widths {
			text := ""
			if c < len(row) {
				text = row[c]
			}
			align := alignLeft
			if !header && c < len(opts.aligns) && opts.aligns[c] != "" {
				align = opts.aligns[c]
			}

			pdf.Rect(cellX, y, w, style.RowHeight, rectStyle(header))
			if text != "" {
				pdf.ClipRect(cellX+style.CellInset, y, w-2*style.CellInset, style.RowHeight, false)
				pdf.SetXY(cellX+style.CellInset, y)
				pdf.CellFormat(w-2*style.CellInset, style.RowHeight, text, "", 0, align, false, 0, "")
				pdf.ClipEnd()
			}
			cellX += w
		}

		if header {
			pdf.SetTextColor(0, 0, 0)
		}
		y += style.RowHeight
	}
	return y
}

func rectStyle(filled bool) string {
	if filled {
		return "FD"
	}
	return "D"
}
