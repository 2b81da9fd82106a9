package invoice_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatrasutra/invoice-backend/internal/invoice"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 1, 10, 30, 0, 0, time.UTC)
}

// tinyPNG returns a valid in-memory raster for the logo and seal slots.
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 13, G: 71, B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestEngine(t *testing.T) *invoice.Engine {
	t.Helper()
	return invoice.New(
		invoice.WithClock(fixedClock),
		invoice.WithAssets(invoice.MapProvider{
			invoice.AssetLogo: tinyPNG(t),
			invoice.AssetSeal: tinyPNG(t),
		}),
	)
}

func render(t *testing.T, e *invoice.Engine, rec *invoice.BookingRecord) *invoice.Document {
	t.Helper()
	doc, err := e.Render(context.Background(), rec, "YS-2026-0042", invoice.StyleClassic)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func TestRenderProducesPDF(t *testing.T) {
	doc := render(t, newTestEngine(t), goaRecord())

	assert.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF")), "output must be a PDF")
	assert.NotEmpty(t, doc.Bytes)
	assert.Equal(t, 1, doc.Pages)
}

func TestRenderIsByteIdentical(t *testing.T) {
	e := newTestEngine(t)
	rec := goaRecord()
	rec.DiscountType = "percentage"
	rec.DiscountValue = "10"
	rec.DiscountReason = "Early bird"

	first := render(t, e, rec)
	second := render(t, e, rec)

	require.True(t, bytes.Equal(first.Bytes, second.Bytes),
		"same record, identifier and clock must render byte-identical output")
}

func TestRenderNilRecordRejected(t *testing.T) {
	e := newTestEngine(t)
	doc, err := e.Render(context.Background(), nil, "YS-2026-0042", invoice.StyleClassic)

	require.ErrorIs(t, err, invoice.ErrNilRecord)
	assert.Nil(t, doc, "no partial output on rejection")
}

func TestRenderWithoutAnyAssets(t *testing.T) {
	// Every asset lookup fails; the slots stay blank and the document is
	// still produced.
	e := invoice.New(invoice.WithClock(fixedClock), invoice.WithAssets(invoice.MapProvider{}))

	doc := render(t, e, goaRecord())
	assert.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF")))
	assert.Equal(t, 1, doc.Pages)
}

func TestRenderMissingAssetDirectory(t *testing.T) {
	e := invoice.New(
		invoice.WithClock(fixedClock),
		invoice.WithAssets(invoice.NewDirProvider("testdata/does-not-exist")),
	)

	doc := render(t, e, goaRecord())
	assert.NotEmpty(t, doc.Bytes)
}

func TestRenderCorruptAssetLeavesSlotBlank(t *testing.T) {
	e := invoice.New(
		invoice.WithClock(fixedClock),
		invoice.WithAssets(invoice.MapProvider{
			invoice.AssetLogo: []byte("definitely not an image"),
			invoice.AssetSeal: tinyPNG(t),
		}),
	)

	doc := render(t, e, goaRecord())
	assert.True(t, bytes.HasPrefix(doc.Bytes, []byte("%PDF")))
}

func TestRenderShortTermsSinglePage(t *testing.T) {
	rec := goaRecord()
	rec.TermsOverride = "Full payment on arrival. No refunds within 48 hours of check-in."

	doc := render(t, newTestEngine(t), rec)
	assert.Equal(t, 1, doc.Pages)
}

func TestRenderLongTermsPaginatesOnce(t *testing.T) {
	rec := goaRecord()
	rec.TermsOverride = strings.Repeat(
		"Each traveller acknowledges the itinerary, inclusions and exclusions as communicated at the time of booking. ", 60)

	doc := render(t, newTestEngine(t), rec)
	assert.Equal(t, 2, doc.Pages, "footer must move to a second page when terms overrun")
}

func TestRenderBothStylePresets(t *testing.T) {
	e := newTestEngine(t)
	rec := goaRecord()

	classic, err := e.Render(context.Background(), rec, "YS-2026-0042", invoice.StyleClassic)
	require.NoError(t, err)
	compact, err := e.Render(context.Background(), rec, "YS-2026-0042", invoice.StyleCompact)
	require.NoError(t, err)

	assert.NotEmpty(t, classic.Bytes)
	assert.NotEmpty(t, compact.Bytes)
	assert.False(t, bytes.Equal(classic.Bytes, compact.Bytes),
		"presets differ in spacing and typography")
}

func TestRenderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(t).Render(ctx, goaRecord(), "YS-2026-0042", invoice.StyleClassic)
	require.Error(t, err)
}

func TestStyleByName(t *testing.T) {
	assert.Equal(t, "classic", invoice.StyleByName("classic").Name)
	assert.Equal(t, "compact", invoice.StyleByName("compact").Name)
	assert.Equal(t, "classic", invoice.StyleByName("").Name)
	assert.Equal(t, "classic", invoice.StyleByName("glossy").Name)
}

func TestRenderConcurrentSubmissions(t *testing.T) {
	// Renders share no mutable state; different submissions may run
	// side by side without coordination.
	e := newTestEngine(t)
	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			_, err := e.Render(context.Background(), goaRecord(), "YS-2026-0042", invoice.StyleClassic)
			done <- err
		}()
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, <-done)
	}
}
