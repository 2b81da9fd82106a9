package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
	"github.com/yatrasutra/invoice-backend/internal/domain/enum"
	"github.com/yatrasutra/invoice-backend/internal/domain/repository"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
	"github.com/yatrasutra/invoice-backend/pkg/utils"
)

// BookingService handles booking-related operations
type BookingService struct {
	bookingRepo repository.BookingRepository
	fileRepo    repository.StoredFileRepository
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repository.BookingRepository,
	fileRepo repository.StoredFileRepository,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		fileRepo:    fileRepo,
	}
}

// BookingInput carries the booking form fields. Values arrive as
// strings and are stored as submitted; numeric and date validation
// happens only when a receipt is rendered.
type BookingInput struct {
	ClientName  string
	ClientEmail string
	ClientPhone string

	Destination string
	Nights      string
	CheckIn     string
	CheckOut    string
	Adults      string
	PackageType string
	MealPlan    string

	CostPerAdult  string
	AdvanceAmount string

	DiscountType   string
	DiscountValue  string
	DiscountReason string

	TermsOverride      *string
	AdditionalServices *string
	AttachmentFileID   *uuid.UUID
}

// CreateBooking creates a new booking with a fresh reference
func (s *BookingService) CreateBooking(ctx context.Context, agentID uuid.UUID, input *BookingInput) (*entity.Booking, error) {
	// Generate reference number
	nextNum, err := s.bookingRepo.GetNextReferenceNumber(ctx)
	if err != nil {
		return nil, err
	}
	reference := utils.GenerateBookingReference(nextNum)

	booking := &entity.Booking{
		AgentID:            agentID,
		Reference:          reference,
		ClientName:         input.ClientName,
		ClientEmail:        input.ClientEmail,
		ClientPhone:        input.ClientPhone,
		Destination:        input.Destination,
		Nights:             input.Nights,
		CheckIn:            input.CheckIn,
		CheckOut:           input.CheckOut,
		Adults:             input.Adults,
		PackageType:        input.PackageType,
		MealPlan:           input.MealPlan,
		CostPerAdult:       input.CostPerAdult,
		AdvanceAmount:      input.AdvanceAmount,
		DiscountType:       input.DiscountType,
		DiscountValue:      input.DiscountValue,
		DiscountReason:     input.DiscountReason,
		TermsOverride:      input.TermsOverride,
		AdditionalServices: input.AdditionalServices,
		Status:             enum.BookingStatusPending,
	}

	if err := s.resolveAttachment(ctx, booking, input.AttachmentFileID); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	return s.bookingRepo.GetByID(ctx, booking.ID)
}

// GetBooking retrieves a booking, enforcing per-agent visibility
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID, requester *RequesterInfo) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NewNotFoundError("Booking")
	}

	if !requester.CanAccess(booking.AgentID) {
		return nil, apperror.ErrForbidden
	}

	return booking, nil
}

// UpdateBooking replaces the editable form fields of a booking
func (s *BookingService) UpdateBooking(ctx context.Context, id uuid.UUID, requester *RequesterInfo, input *BookingInput) (*entity.Booking, error) {
	booking, err := s.GetBooking(ctx, id, requester)
	if err != nil {
		return nil, err
	}

	booking.ClientName = input.ClientName
	booking.ClientEmail = input.ClientEmail
	booking.ClientPhone = input.ClientPhone
	booking.Destination = input.Destination
	booking.Nights = input.Nights
	booking.CheckIn = input.CheckIn
	booking.CheckOut = input.CheckOut
	booking.Adults = input.Adults
	booking.PackageType = input.PackageType
	booking.MealPlan = input.MealPlan
	booking.CostPerAdult = input.CostPerAdult
	booking.AdvanceAmount = input.AdvanceAmount
	booking.DiscountType = input.DiscountType
	booking.DiscountValue = input.DiscountValue
	booking.DiscountReason = input.DiscountReason
	booking.TermsOverride = input.TermsOverride
	booking.AdditionalServices = input.AdditionalServices

	if input.AttachmentFileID != nil {
		if err := s.resolveAttachment(ctx, booking, input.AttachmentFileID); err != nil {
			return nil, err
		}
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// UpdateBookingStatus moves a booking through its lifecycle
func (s *BookingService) UpdateBookingStatus(ctx context.Context, id uuid.UUID, requester *RequesterInfo, status enum.BookingStatus) (*entity.Booking, error) {
	booking, err := s.GetBooking(ctx, id, requester)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, status); err != nil {
		return nil, err
	}

	booking.Status = status
	return booking, nil
}

// DeleteBooking soft-deletes a booking
func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID, requester *RequesterInfo) error {
	booking, err := s.GetBooking(ctx, id, requester)
	if err != nil {
		return err
	}
	return s.bookingRepo.Delete(ctx, booking.ID)
}

// ListBookings lists bookings visible to the requester. Admins see all
// bookings; agents only their own.
func (s *BookingService) ListBookings(ctx context.Context, requester *RequesterInfo, params *repository.BookingFilterParams) ([]entity.Booking, int64, error) {
	agentID := requester.UserID
	if requester.IsAdmin() {
		agentID = uuid.Nil
	}
	return s.bookingRepo.List(ctx, agentID, params)
}

// resolveAttachment turns an uploaded file ID into the composite
// "{fileId}|{url}" reference persisted on the booking
func (s *BookingService) resolveAttachment(ctx context.Context, booking *entity.Booking, fileID *uuid.UUID) error {
	if fileID == nil {
		return nil
	}

	file, err := s.fileRepo.GetByID(ctx, *fileID)
	if err != nil {
		return err
	}
	if file == nil {
		return apperror.NewNotFoundError("Attachment")
	}

	ref := file.Ref()
	booking.Attachment = &ref
	return nil
}

// RequesterInfo identifies the authenticated caller for access checks
type RequesterInfo struct {
	UserID uuid.UUID
	Role   string
}

// IsAdmin reports whether the requester holds the admin role
func (r *RequesterInfo) IsAdmin() bool {
	return r.Role == entity.RoleAdmin
}

// CanAccess reports whether the requester may touch a booking owned by
// the given agent
func (r *RequesterInfo) CanAccess(agentID uuid.UUID) bool {
	return r.IsAdmin() || r.UserID == agentID
}
