package invoice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// A4 page box in millimetres.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
)

// ErrNilRecord is returned when Render is invoked without a record. It is,
// together with encoder failures, the only error a caller sees: everything
// else the engine recovers from internally.
var ErrNilRecord = errors.New("invoice: booking record is required")

// Company is the issuing agency identity printed in the document chrome.
type Company struct {
	Name    string
	Tagline string
	Address string
	Phone   string
	Email   string
	Website string
}

// Document is the finalized render output. Bytes is immutable once
// returned; Pages reports the structural pagination outcome (1 or 2).
type Document struct {
	Bytes []byte
	Pages int
}

// Engine renders booking confirmation receipts. An Engine is immutable and
// safe for concurrent renders: all layout state lives inside a single
// Render call.
type Engine struct {
	assets  AssetProvider
	company Company
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithAssets supplies the provider for the brand logo, authorization seal
// and optional display font.
func WithAssets(p AssetProvider) Option {
	return func(e *Engine) { e.assets = p }
}

// WithCompany overrides the issuing agency identity.
func WithCompany(c Company) Option {
	return func(e *Engine) { e.company = c }
}

// WithClock pins the clock used for the receipt date and the document
// metadata. Rendering is deterministic: same record, identifier and clock
// give byte-identical output.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine. Without options it renders with no assets and the
// default agency identity.
func New(opts ...Option) *Engine {
	e := &Engine{
		assets: MapProvider{},
		company: Company{
			Name:    "YatraSutra Holidays",
			Tagline: "Crafted Journeys Across India & Beyond",
			Address: "214 MG Road, Bengaluru 560001",
			Phone:   "+91 80 4112 7788",
			Email:   "bookings@yatrasutra.in",
			Website: "www.yatrasutra.in",
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render composes the confirmation receipt for rec, using invoiceNo as the
// displayed receipt number, and finalizes it to a byte buffer. The call is
// synchronous and produces no partial output: any encoder failure rejects
// the whole render.
func (e *Engine) Render(ctx context.Context, rec *BookingRecord, invoiceNo string, style Style) (*Document, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	issuedAt := e.now()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation "+invoiceNo, true)
	pdf.SetAuthor(e.company.Name, true)
	pdf.SetCreationDate(issuedAt)
	pdf.SetModificationDate(issuedAt)
	pdf.SetMargins(style.Margin, style.Margin, style.Margin)
	// Pagination is the composer's decision, made once before the footer.
	pdf.SetAutoPageBreak(false, 0)

	c := &composer{
		pdf:       pdf,
		style:     style,
		engine:    e,
		rec:       rec,
		fin:       Compute(rec),
		invoiceNo: invoiceNo,
		issuedAt:  issuedAt,
	}
	c.loadDisplayFont()

	pdf.AddPage()
	c.drawWatermark()

	y := c.drawHeaderChrome()
	y = c.drawInvoiceSection(y)
	y = c.drawClientSection(y)
	y = c.drawBookingSection(y)
	y = c.drawCostSection(y)
	y = c.drawTermsSection(y)
	y = c.drawSignatory(y)
	c.drawFooterChrome(y)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("invoice: finalize document: %w", err)
	}
	return &Document{Bytes: buf.Bytes(), Pages: pdf.PageCount()}, nil
}

// composer walks the fixed section sequence for one render. The vertical
// cursor is the only mutable layout state and it is threaded through every
// drawing method: each takes the current offset and returns the next.
type composer struct {
	pdf    *fpdf.Fpdf
	style  Style
	engine *Engine
	rec    *BookingRecord
	fin    Breakdown

	invoiceNo string
	issuedAt  time.Time
	family    string
}

// loadDisplayFont registers the optional display font, falling back to the
// built-in Helvetica when the asset is absent or unusable.
func (c *composer) loadDisplayFont() {
	c.family = "Helvetica"
	data, err := c.engine.assets.Asset(AssetFont)
	if err != nil {
		c.pdf.SetFont(c.family, "", c.style.BodySize)
		return
	}
	c.pdf.AddUTF8FontFromBytes("Display", "", data)
	c.pdf.AddUTF8FontFromBytes("Display", "B", data)
	if c.pdf.Err() {
		log.Printf("invoice: display font rejected, using %s: %v", c.family, c.pdf.Error())
		c.pdf.ClearError()
	} else {
		c.family = "Display"
	}
	c.pdf.SetFont(c.family, "", c.style.BodySize)
}

// placeImage registers and places a raster asset, returning false when the
// slot stays blank. Asset trouble is logged and swallowed: a missing logo
// or seal never fails the document.
func (c *composer) placeImage(name string, x, y, w float64) bool {
	data, err := c.engine.assets.Asset(name)
	if err != nil {
		log.Printf("invoice: asset %q unavailable, leaving slot blank: %v", name, err)
		return false
	}
	typ := imageType(data)
	if typ == "" {
		log.Printf("invoice: asset %q is not a supported image, leaving slot blank", name)
		return false
	}
	opts := fpdf.ImageOptions{ImageType: typ, ReadDpi: true}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if c.pdf.Err() {
		log.Printf("invoice: asset %q rejected by encoder, leaving slot blank: %v", name, c.pdf.Error())
		c.pdf.ClearError()
		return false
	}
	c.pdf.ImageOptions(name, x, y, w, 0, false, opts, 0, "")
	return true
}

// drawWatermark paints the translucent diagonal brand mark behind the page
// content. It is redrawn on every page advance.
func (c *composer) drawWatermark() {
	name := strings.ToUpper(c.engine.company.Name)
	c.pdf.SetAlpha(0.06, "Normal")
	c.pdf.TransformBegin()
	c.pdf.TransformRotate(45, pageWidth/2, pageHeight/2)
	c.pdf.SetFont(c.family, "B", 52)
	c.pdf.SetTextColor(c.style.Accent.R, c.style.Accent.G, c.style.Accent.B)
	w := c.pdf.GetStringWidth(name)
	c.pdf.Text(pageWidth/2-w/2, pageHeight/2, name)
	c.pdf.TransformEnd()
	c.pdf.SetAlpha(1, "Normal")
	c.pdf.SetTextColor(0, 0, 0)
}

// drawHeaderChrome paints the full-bleed header bar with the agency
// identity and the logo slot, and returns the first content cursor.
func (c *composer) drawHeaderChrome() float64 {
	s := c.style
	co := c.engine.company

	c.pdf.SetFillColor(s.Accent.R, s.Accent.G, s.Accent.B)
	c.pdf.Rect(0, 0, pageWidth, s.HeaderHeight, "F")

	c.pdf.SetTextColor(s.BarText.R, s.BarText.G, s.BarText.B)
	c.pdf.SetFont(c.family, "B", s.TitleSize)
	c.pdf.Text(s.Margin, s.HeaderHeight*0.45, co.Name)
	c.pdf.SetFont(c.family, "", s.SmallSize)
	c.pdf.Text(s.Margin, s.HeaderHeight*0.45+5, co.Tagline)
	contact := co.Address + "  |  " + co.Phone + "  |  " + co.Email
	c.pdf.Text(s.Margin, s.HeaderHeight-3, contact)

	logoW := s.HeaderHeight * 0.8
	c.placeImage(AssetLogo, pageWidth-s.Margin-logoW, (s.HeaderHeight-logoW)/2, logoW)

	c.pdf.SetTextColor(0, 0, 0)
	return s.HeaderHeight + s.SectionGap
}

// drawSectionBar paints one highlighted section-header bar and returns the
// cursor just below it.
func (c *composer) drawSectionBar(y float64, label string) float64 {
	s := c.style
	c.pdf.SetFillColor(s.Accent.R, s.Accent.G, s.Accent.B)
	c.pdf.Rect(s.Margin, y, s.contentWidth(), s.SectionBar, "F")
	c.pdf.SetTextColor(s.BarText.R, s.BarText.G, s.BarText.B)
	c.pdf.SetFont(c.family, "B", s.HeadingSize)
	c.pdf.Text(s.Margin+s.CellInset, y+s.SectionBar*0.7, label)
	c.pdf.SetTextColor(0, 0, 0)
	return y + s.SectionBar + 1.5
}

func (c *composer) drawInvoiceSection(y float64) float64 {
	s := c.style

	c.pdf.SetFont(c.family, "B", s.HeadingSize+2)
	title := "BOOKING CONFIRMATION RECEIPT"
	c.pdf.Text(pageWidth/2-c.pdf.GetStringWidth(title)/2, y+s.LineHeight, title)
	y += 2 * s.LineHeight

	c.pdf.SetFont(c.family, "", s.BodySize)
	c.pdf.Text(s.Margin, y+s.LineHeight, "Receipt No: "+c.invoiceNo)
	date := "Date: " + c.issuedAt.Format("02 Jan 2006")
	c.pdf.Text(pageWidth-s.Margin-c.pdf.GetStringWidth(date), y+s.LineHeight, date)
	y += s.LineHeight + 1

	c.pdf.SetDrawColor(s.Accent.R, s.Accent.G, s.Accent.B)
	c.pdf.Line(s.Margin, y+1, pageWidth-s.Margin, y+1)
	c.pdf.SetDrawColor(0, 0, 0)

	return y + s.SectionGap
}

func (c *composer) drawClientSection(y float64) float64 {
	s := c.style
	y = c.drawSectionBar(y, "CLIENT DETAILS")

	rows := [][]string{
		{"Guest Name", c.rec.ClientName},
		{"Email", c.rec.ClientEmail},
		{"Contact", c.rec.ClientPhone},
	}
	y = drawGrid(c.pdf, s, s.Margin, y, rows, s.detailColumns(), gridOptions{})
	return y + s.SectionGap
}

func (c *composer) drawBookingSection(y float64) float64 {
	s := c.style
	y = c.drawSectionBar(y, "TOUR DETAILS")

	summary := [][]string{
		{"Destination", "Duration", "Check-In", "Check-Out", "Adults", "Meal Plan"},
		{
			c.rec.Destination,
			FormatDuration(c.rec.Nights),
			FormatDate(c.rec.CheckIn),
			FormatDate(c.rec.CheckOut),
			strconv.FormatInt(parseCount(c.rec.Adults), 10),
			c.rec.MealPlan,
		},
	}
	y = drawGrid(c.pdf, s, s.Margin, y, summary, s.summaryColumns(), gridOptions{headerRow: true})

	extra := [][]string{{"Package", c.rec.PackageType}}
	if strings.TrimSpace(c.rec.AdditionalServices) != "" {
		extra = append(extra, []string{"Additional Services", c.rec.AdditionalServices})
	}
	y = drawGrid(c.pdf, s, s.Margin, y, extra, s.detailColumns(), gridOptions{})
	return y + s.SectionGap
}

func (c *composer) drawCostSection(y float64) float64 {
	s := c.style
	y = c.drawSectionBar(y, "COST BREAKDOWN")

	pkg := strings.TrimSpace(c.rec.PackageType)
	if pkg == "" {
		pkg = "Holiday"
	}

	rows := [][]string{
		{"Description", "Cost Per Adult", "Adults", "Amount"},
		{
			pkg + " Package",
			FormatCurrency(parseAmount(c.rec.CostPerAdult)),
			strconv.FormatInt(parseCount(c.rec.Adults), 10),
			FormatCurrency(c.fin.Subtotal),
		},
		{"Subtotal", "", "", FormatCurrency(c.fin.Subtotal)},
		{c.discountLabel(), "", "", "- " + FormatCurrency(c.fin.DiscountAmount)},
		{"Total Package Value", "", "", FormatCurrency(c.fin.TotalPackageValue)},
		{"Advance Received", "", "", "- " + FormatCurrency(parseAmount(c.rec.AdvanceAmount))},
		{"Balance Payable", "", "", FormatCurrency(c.fin.BalancePayable)},
	}
	opts := gridOptions{
		headerRow: true,
		aligns:    []string{"", alignRight, alignRight, alignRight},
		boldRows:  map[int]bool{4: true, 6: true},
	}
	y = drawGrid(c.pdf, s, s.Margin, y, rows, s.costColumns(), opts)
	return y + s.SectionGap
}

// discountLabel names the discount row, folding in the percentage and the
// operator-supplied reason when present.
func (c *composer) discountLabel() string {
	label := "Discount"
	if c.rec.DiscountType == DiscountPercentage {
		label = fmt.Sprintf("Discount (%s%%)", parseAmount(c.rec.DiscountValue).String())
	}
	if reason := strings.TrimSpace(c.rec.DiscountReason); reason != "" {
		label += " - " + reason
	}
	return label
}

func (c *composer) drawTermsSection(y float64) float64 {
	s := c.style
	y = c.drawSectionBar(y, "TERMS & CONDITIONS")

	clauses := c.termsClauses()
	c.pdf.SetFont(c.family, "", s.SmallSize)
	c.pdf.SetTextColor(s.Muted.R, s.Muted.G, s.Muted.B)
	for i, clause := range clauses {
		text := clause
		if len(clauses) > 1 {
			text = fmt.Sprintf("%d. %s", i+1, clause)
		}
		for _, line := range c.pdf.SplitText(text, s.contentWidth()) {
			c.pdf.Text(s.Margin, y+s.LineHeight*0.8, line)
			y += s.LineHeight
		}
		y += 0.8
	}
	c.pdf.SetTextColor(0, 0, 0)
	return y + s.SectionGap
}

// termsClauses returns the caller-supplied override verbatim when present,
// else the five standard clauses referencing the computed balance and the
// check-in date.
func (c *composer) termsClauses() []string {
	if override := strings.TrimSpace(c.rec.TermsOverride); override != "" {
		return []string{override}
	}
	return []string{
		fmt.Sprintf("The balance of %s is payable no later than 7 days before the check-in date (%s). Bookings with an unpaid balance on the due date stand released.",
			FormatCurrency(c.fin.BalancePayable), FormatDate(c.rec.CheckIn)),
		"Cancellations made 15 or more days before check-in are charged 25% of the total package value; later cancellations are charged in full. Advance amounts are adjusted against cancellation charges.",
		"Rates are confirmed for the booked dates and guest count only. Any change to dates, room category or guest count is subject to availability and revised rates.",
		"All guests must carry valid government-issued photo identification at check-in. Foreign nationals must additionally carry passport and visa.",
		"This receipt is subject to the jurisdiction of the courts of Bengaluru. Disputes, if any, must be raised within 7 days of the receipt date.",
	}
}

func (c *composer) drawSignatory(y float64) float64 {
	s := c.style

	c.pdf.SetFont(c.family, "B", s.BodySize)
	label := "For " + c.engine.company.Name
	c.pdf.Text(pageWidth-s.Margin-c.pdf.GetStringWidth(label), y+s.LineHeight, label)
	y += s.LineHeight * 3.5

	c.pdf.SetDrawColor(s.Muted.R, s.Muted.G, s.Muted.B)
	c.pdf.Line(pageWidth-s.Margin-44, y, pageWidth-s.Margin, y)
	c.pdf.SetDrawColor(0, 0, 0)
	c.pdf.SetFont(c.family, "", s.SmallSize)
	sig := "Authorised Signatory"
	c.pdf.Text(pageWidth-s.Margin-c.pdf.GetStringWidth(sig), y+s.LineHeight*0.8, sig)

	return y + s.LineHeight + s.SectionGap
}

// drawFooterChrome places the fixed-size footer block: the authorization
// seal, the legal line and the full-bleed footer bar. This is the single
// pagination decision point: when the cursor has run past the space the
// footer needs, the composer advances exactly one page and redraws the
// watermark. The block itself anchors to the page bottom, so the cursor
// is consulted for the decision and not threaded further.
func (c *composer) drawFooterChrome(y float64) {
	s := c.style

	if y > pageHeight-s.FooterHeight {
		c.pdf.AddPage()
		c.drawWatermark()
	}

	barH := s.FooterHeight * 0.22
	sealW := s.FooterHeight * 0.55
	c.placeImage(AssetSeal, pageWidth-s.Margin-sealW, pageHeight-barH-sealW-4, sealW)

	c.pdf.SetFont(c.family, "", s.SmallSize)
	c.pdf.SetTextColor(s.Muted.R, s.Muted.G, s.Muted.B)
	legal := "This is a computer-generated receipt and is valid without a physical signature."
	c.pdf.Text(pageWidth/2-c.pdf.GetStringWidth(legal)/2, pageHeight-barH-4, legal)
	c.pdf.SetTextColor(0, 0, 0)

	c.pdf.SetFillColor(s.Accent.R, s.Accent.G, s.Accent.B)
	c.pdf.Rect(0, pageHeight-barH, pageWidth, barH, "F")
	c.pdf.SetTextColor(s.BarText.R, s.BarText.G, s.BarText.B)
	c.pdf.SetFont(c.family, "B", s.SmallSize)
	line := c.engine.company.Website + "  |  " + c.engine.company.Phone
	c.pdf.Text(pageWidth/2-c.pdf.GetStringWidth(line)/2, pageHeight-barH*0.35, line)
	c.pdf.SetTextColor(0, 0, 0)
}
