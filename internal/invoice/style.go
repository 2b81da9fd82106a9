package invoice

// RGB is a fill/draw/text color triple in 0-255 components.
type RGB struct {
	R, G, B int
}

// Style is the set of spacing and typography constants that distinguish
// the two historical receipt layouts. Both are the same composition
// pipeline; only these numbers differ. Dimensions are millimetres on A4.
type Style struct {
	Name string

	Margin       float64 // left/right/top page margin
	HeaderHeight float64 // header chrome bar
	FooterHeight float64 // seal + legal footer block reserved at the bottom
	SectionBar   float64 // highlighted section-header bar
	RowHeight    float64 // bordered table row
	LineHeight   float64 // free-flowing text line (terms, signatory)
	SectionGap   float64 // gap after each section
	CellInset    float64 // text inset inside a table cell

	TitleSize   float64
	HeadingSize float64
	BodySize    float64
	SmallSize   float64

	Accent RGB // header/section bars and table header fill
	BarText RGB
	Muted   RGB // secondary text
}

// StyleClassic is the original full-size receipt layout.
var StyleClassic = Style{
	Name:         "classic",
	Margin:       12,
	HeaderHeight: 24,
	FooterHeight: 36,
	SectionBar:   6.5,
	RowHeight:    7.5,
	LineHeight:   4.2,
	SectionGap:   3.5,
	CellInset:    2,
	TitleSize:    16,
	HeadingSize:  10.5,
	BodySize:     9,
	SmallSize:    7.5,
	Accent:       RGB{R: 13, G: 71, B: 120},
	BarText:      RGB{R: 255, G: 255, B: 255},
	Muted:        RGB{R: 105, G: 105, B: 105},
}

// StyleCompact is the denser variant used for email-friendly one-pagers.
var StyleCompact = Style{
	Name:         "compact",
	Margin:       10,
	HeaderHeight: 20,
	FooterHeight: 32,
	SectionBar:   5.5,
	RowHeight:    6.5,
	LineHeight:   3.8,
	SectionGap:   2.8,
	CellInset:    1.6,
	TitleSize:    14,
	HeadingSize:  9.5,
	BodySize:     8,
	SmallSize:    6.8,
	Accent:       RGB{R: 21, G: 101, B: 92},
	BarText:      RGB{R: 255, G: 255, B: 255},
	Muted:        RGB{R: 120, G: 120, B: 120},
}

// StyleByName resolves a preset by its wire name, falling back to classic.
func StyleByName(name string) Style {
	if name == StyleCompact.Name {
		return StyleCompact
	}
	return StyleClassic
}

// contentWidth is the usable width between the page margins.
func (s Style) contentWidth() float64 {
	return pageWidth - 2*s.Margin
}

// Column-width plans for the three table variants. Widths are hand-tuned
// to typical field lengths; overflowing text is clipped by the backend
// rather than wrapped.

// detailColumns is the two-column label/value plan (client details).
func (s Style) detailColumns() []float64 {
	w := s.contentWidth()
	return []float64{w * 0.30, w * 0.70}
}

// summaryColumns is the six-column tour summary plan.
func (s Style) summaryColumns() []float64 {
	w := s.contentWidth()
	return []float64{w * 0.22, w * 0.17, w * 0.15, w * 0.15, w * 0.11, w * 0.20}
}

// costColumns is the four-column cost breakdown plan.
func (s Style) costColumns() []float64 {
	w := s.contentWidth()
	return []float64{w * 0.44, w * 0.20, w * 0.12, w * 0.24}
}
