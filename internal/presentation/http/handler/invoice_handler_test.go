package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatrasutra/invoice-backend/internal/application/service"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
	"github.com/yatrasutra/invoice-backend/internal/domain/enum"
	"github.com/yatrasutra/invoice-backend/internal/domain/repository"
	"github.com/yatrasutra/invoice-backend/internal/invoice"
)

// stubBookingRepo serves a single booking by ID
type stubBookingRepo struct {
	booking *entity.Booking
}

func (r *stubBookingRepo) Create(ctx context.Context, booking *entity.Booking) error { return nil }

func (r *stubBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if r.booking != nil && r.booking.ID == id {
		return r.booking, nil
	}
	return nil, nil
}

func (r *stubBookingRepo) GetByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	return nil, nil
}

func (r *stubBookingRepo) Update(ctx context.Context, booking *entity.Booking) error { return nil }
func (r *stubBookingRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func (r *stubBookingRepo) List(ctx context.Context, agentID uuid.UUID, params *repository.BookingFilterParams) ([]entity.Booking, int64, error) {
	return nil, 0, nil
}

func (r *stubBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BookingStatus) error {
	return nil
}

func (r *stubBookingRepo) GetNextReferenceNumber(ctx context.Context) (int, error) { return 1, nil }

func newInvoiceTestRouter(t *testing.T, booking *entity.Booking, requesterID uuid.UUID, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := invoice.New(invoice.WithClock(func() time.Time {
		return time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	}))
	svc := service.NewInvoiceService(&stubBookingRepo{booking: booking}, engine, nil, "classic")
	h := NewInvoiceHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", requesterID)
		c.Set("user_role", role)
		c.Next()
	})
	router.GET("/bookings/:id/invoice", h.Download)
	return router
}

func TestInvoiceDownloadStreamsPDF(t *testing.T) {
	agentID := uuid.New()
	booking := &entity.Booking{
		ID:           uuid.New(),
		AgentID:      agentID,
		Reference:    "BK-000042",
		ClientName:   "Meera Nair",
		Destination:  "Goa",
		Nights:       "4",
		Adults:       "2",
		CostPerAdult: "25000",
		Status:       enum.BookingStatusConfirmed,
		CreatedAt:    time.Date(2026, time.February, 14, 9, 30, 0, 0, time.UTC),
	}
	router := newInvoiceTestRouter(t, booking, agentID, entity.RoleAgent)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bookings/"+booking.ID.String()+"/invoice", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Invoice-BK-000042.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "1", w.Header().Get("X-Invoice-Pages"))
	assert.True(t, len(w.Body.Bytes()) > 4)
	assert.Equal(t, "%PDF", string(w.Body.Bytes()[:4]))
}

func TestInvoiceDownloadUnknownBooking(t *testing.T) {
	agentID := uuid.New()
	router := newInvoiceTestRouter(t, nil, agentID, entity.RoleAgent)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bookings/"+uuid.NewString()+"/invoice", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvoiceDownloadForeignAgent(t *testing.T) {
	booking := &entity.Booking{
		ID:        uuid.New(),
		AgentID:   uuid.New(),
		Reference: "BK-000007",
	}
	router := newInvoiceTestRouter(t, booking, uuid.New(), entity.RoleAgent)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bookings/"+booking.ID.String()+"/invoice", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInvoiceDownloadBadID(t *testing.T) {
	router := newInvoiceTestRouter(t, nil, uuid.New(), entity.RoleAgent)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bookings/not-a-uuid/invoice", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
