package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
	"github.com/yatrasutra/invoice-backend/internal/domain/enum"
	domainRepo "github.com/yatrasutra/invoice-backend/internal/domain/repository"
	"github.com/yatrasutra/invoice-backend/internal/invoice"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
)

// fakeBookingRepo is an in-memory BookingRepository
type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo(bookings ...*entity.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) GetByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	for _, b := range r.bookings {
		if b.Reference == reference {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) List(ctx context.Context, agentID uuid.UUID, params *domainRepo.BookingFilterParams) ([]entity.Booking, int64, error) {
	var out []entity.Booking
	for _, b := range r.bookings {
		if agentID == uuid.Nil || b.AgentID == agentID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) error {
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) GetNextReferenceNumber(ctx context.Context) (int, error) {
	return len(r.bookings) + 1, nil
}

func testBooking(agentID uuid.UUID) *entity.Booking {
	return &entity.Booking{
		ID:            uuid.New(),
		AgentID:       agentID,
		Reference:     "BK-000042",
		ClientName:    "Meera Nair",
		ClientEmail:   "meera@example.com",
		Destination:   "Goa",
		Nights:        "4",
		CheckIn:       "2026-11-10",
		CheckOut:      "2026-11-14",
		Adults:        "2",
		PackageType:   "Deluxe",
		MealPlan:      "Breakfast",
		CostPerAdult:  "27000",
		AdvanceAmount: "20000",
		Status:        enum.BookingStatusConfirmed,
		CreatedAt:     time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC),
	}
}

func newTestInvoiceService(repo domainRepo.BookingRepository) *InvoiceService {
	engine := invoice.New(
		invoice.WithClock(func() time.Time {
			return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		}),
	)
	return NewInvoiceService(repo, engine, nil, "classic")
}

func TestRenderInvoiceProducesPDF(t *testing.T) {
	agentID := uuid.New()
	booking := testBooking(agentID)
	svc := newTestInvoiceService(newFakeBookingRepo(booking))

	requester := &RequesterInfo{UserID: agentID, Role: entity.RoleAgent}
	out, err := svc.RenderInvoice(context.Background(), booking.ID, requester, "")
	require.NoError(t, err)

	assert.Equal(t, "Invoice-BK-000042.pdf", out.Filename)
	assert.Equal(t, 1, out.Pages)
	assert.True(t, bytes.HasPrefix(out.Bytes, []byte("%PDF")))
}

func TestRenderInvoiceUnknownBooking(t *testing.T) {
	svc := newTestInvoiceService(newFakeBookingRepo())

	requester := &RequesterInfo{UserID: uuid.New(), Role: entity.RoleAgent}
	out, err := svc.RenderInvoice(context.Background(), uuid.New(), requester, "")
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestRenderInvoiceForeignAgentForbidden(t *testing.T) {
	booking := testBooking(uuid.New())
	svc := newTestInvoiceService(newFakeBookingRepo(booking))

	requester := &RequesterInfo{UserID: uuid.New(), Role: entity.RoleAgent}
	_, err := svc.RenderInvoice(context.Background(), booking.ID, requester, "")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestRenderInvoiceAdminSeesAll(t *testing.T) {
	booking := testBooking(uuid.New())
	svc := newTestInvoiceService(newFakeBookingRepo(booking))

	requester := &RequesterInfo{UserID: uuid.New(), Role: entity.RoleAdmin}
	out, err := svc.RenderInvoice(context.Background(), booking.ID, requester, "compact")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out.Bytes, []byte("%PDF")))
}

func TestInvoiceNoDerivation(t *testing.T) {
	booking := testBooking(uuid.New())
	assert.Equal(t, "YS-2026-0042", invoiceNo(booking))

	booking.Reference = "oddball"
	assert.Equal(t, "YS-2026-0000", invoiceNo(booking))
}

func TestRecordFromBookingCopiesFieldsVerbatim(t *testing.T) {
	booking := testBooking(uuid.New())
	terms := "Custom terms apply."
	booking.TermsOverride = &terms
	booking.CostPerAdult = "not-a-number"

	rec := recordFromBooking(booking)
	assert.Equal(t, "Meera Nair", rec.ClientName)
	assert.Equal(t, "not-a-number", rec.CostPerAdult)
	assert.Equal(t, "Custom terms apply.", rec.TermsOverride)
}
