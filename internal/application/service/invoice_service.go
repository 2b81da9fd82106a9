package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
	"github.com/yatrasutra/invoice-backend/internal/domain/repository"
	"github.com/yatrasutra/invoice-backend/internal/invoice"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
	"github.com/yatrasutra/invoice-backend/pkg/email"
	"github.com/yatrasutra/invoice-backend/pkg/utils"
)

// InvoiceService turns stored bookings into confirmation receipt PDFs
type InvoiceService struct {
	bookingRepo  repository.BookingRepository
	engine       *invoice.Engine
	emailService *email.EmailService
	defaultStyle string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	bookingRepo repository.BookingRepository,
	engine *invoice.Engine,
	emailService *email.EmailService,
	defaultStyle string,
) *InvoiceService {
	return &InvoiceService{
		bookingRepo:  bookingRepo,
		engine:       engine,
		emailService: emailService,
		defaultStyle: defaultStyle,
	}
}

// InvoiceOutput is a rendered receipt plus its download metadata
type InvoiceOutput struct {
	Filename string
	Pages    int
	Bytes    []byte
}

// RenderInvoice renders the confirmation receipt for a booking. The
// style name picks a layout preset; an empty or unknown name falls back
// to the configured default.
func (s *InvoiceService) RenderInvoice(ctx context.Context, bookingID uuid.UUID, requester *RequesterInfo, styleName string) (*InvoiceOutput, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NewNotFoundError("Booking")
	}
	if !requester.CanAccess(booking.AgentID) {
		return nil, apperror.ErrForbidden
	}

	if styleName == "" {
		styleName = s.defaultStyle
	}
	style := invoice.StyleByName(styleName)

	doc, err := s.engine.Render(ctx, recordFromBooking(booking), invoiceNo(booking), style)
	if err != nil {
		return nil, err
	}

	return &InvoiceOutput{
		Filename: fmt.Sprintf("Invoice-%s.pdf", booking.Reference),
		Pages:    doc.Pages,
		Bytes:    doc.Bytes,
	}, nil
}

// EmailInvoice renders the receipt and mails it to the booking's client
// address as a PDF attachment.
func (s *InvoiceService) EmailInvoice(ctx context.Context, bookingID uuid.UUID, requester *RequesterInfo, styleName string) (*InvoiceOutput, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NewNotFoundError("Booking")
	}
	if booking.ClientEmail == "" {
		return nil, apperror.NewBadRequestError("Booking has no client email address")
	}

	out, err := s.RenderInvoice(ctx, bookingID, requester, styleName)
	if err != nil {
		return nil, err
	}

	if err := s.emailService.SendInvoiceEmail(booking.ClientEmail, booking.ClientName, booking.Reference, out.Filename, out.Bytes); err != nil {
		// The receipt rendered fine; delivery is best effort
		log.Printf("Warning: failed to email invoice for booking %s: %v", booking.Reference, err)
	}

	return out, nil
}

// recordFromBooking maps the stored form fields onto the render input.
// Values pass through untouched; the engine owns all parsing.
func recordFromBooking(b *entity.Booking) *invoice.BookingRecord {
	rec := &invoice.BookingRecord{
		ClientName:     b.ClientName,
		ClientEmail:    b.ClientEmail,
		ClientPhone:    b.ClientPhone,
		Destination:    b.Destination,
		Nights:         b.Nights,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		Adults:         b.Adults,
		PackageType:    b.PackageType,
		MealPlan:       b.MealPlan,
		CostPerAdult:   b.CostPerAdult,
		AdvanceAmount:  b.AdvanceAmount,
		DiscountType:   b.DiscountType,
		DiscountValue:  b.DiscountValue,
		DiscountReason: b.DiscountReason,
	}
	if b.TermsOverride != nil {
		rec.TermsOverride = *b.TermsOverride
	}
	if b.AdditionalServices != nil {
		rec.AdditionalServices = *b.AdditionalServices
	}
	return rec
}

// invoiceNo derives the printed invoice number from the booking
// reference and the year it was created, e.g. BK-000042 from 2026
// becomes YS-2026-0042.
func invoiceNo(b *entity.Booking) string {
	seq := 0
	if i := strings.LastIndexByte(b.Reference, '-'); i >= 0 {
		if n, err := strconv.Atoi(b.Reference[i+1:]); err == nil {
			seq = n
		}
	}
	return utils.GenerateInvoiceNo(b.CreatedAt.Year(), seq)
}
