package invoice

import (
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPage(t *testing.T) *fpdf.Fpdf {
	t.Helper()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", StyleClassic.BodySize)
	pdf.AddPage()
	return pdf
}

func TestDrawGridAdvancesCursorByRowHeight(t *testing.T) {
	pdf := newTestPage(t)
	s := StyleClassic

	rows := [][]string{
		{"Guest Name", "Meera Raghavan"},
		{"Email", "meera.r@example.com"},
		{"Contact", "+91 98450 12345"},
	}
	y := drawGrid(pdf, s, s.Margin, 40, rows, s.detailColumns(), gridOptions{})

	assert.InDelta(t, 40+3*s.RowHeight, y, 0.0001)
	require.False(t, pdf.Err(), "encoder error: %v", pdf.Error())
}

func TestDrawGridRaggedRowsKeepFullGrid(t *testing.T) {
	pdf := newTestPage(t)
	s := StyleCompact

	// Rows shorter than the column plan still reserve every column.
	rows := [][]string{
		{"Destination", "Duration", "Check-In", "Check-Out", "Adults", "Meal Plan"},
		{"Goa"},
		{},
	}
	y := drawGrid(pdf, s, s.Margin, 60, rows, s.summaryColumns(), gridOptions{headerRow: true})

	assert.InDelta(t, 60+3*s.RowHeight, y, 0.0001)
	require.False(t, pdf.Err(), "encoder error: %v", pdf.Error())
}

func TestDrawGridOverflowingTextDoesNotGrowRow(t *testing.T) {
	pdf := newTestPage(t)
	s := StyleClassic

	long := "The Grand Presidential Lake-View Suite with private plunge pool and butler service"
	y := drawGrid(pdf, s, s.Margin, 40, [][]string{{"Package", long}}, s.detailColumns(), gridOptions{})

	// Overflow is clipped, never wrapped: one row stays one row high.
	assert.InDelta(t, 40+s.RowHeight, y, 0.0001)
	require.False(t, pdf.Err(), "encoder error: %v", pdf.Error())
}

func TestColumnPlansSpanContentWidth(t *testing.T) {
	for _, s := range []Style{StyleClassic, StyleCompact} {
		for name, plan := range map[string][]float64{
			"detail":  s.detailColumns(),
			"summary": s.summaryColumns(),
			"cost":    s.costColumns(),
		} {
			total := 0.0
			for _, w := range plan {
				total += w
			}
			assert.InDelta(t, s.contentWidth(), total, 0.0001, "%s/%s", s.Name, name)
		}
	}
}
