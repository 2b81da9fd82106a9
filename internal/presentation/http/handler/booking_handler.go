package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/application/service"
	"github.com/yatrasutra/invoice-backend/internal/domain/enum"
	domainRepo "github.com/yatrasutra/invoice-backend/internal/domain/repository"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/dto/request"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/dto/response"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
	"github.com/yatrasutra/invoice-backend/pkg/pagination"
)

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// List handles listing bookings
// @Summary List Bookings
// @Description Get bookings with pagination and filtering
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query string false "Status filter (pending, confirmed, cancelled)"
// @Success 200 {object} response.APIResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	requester := GetRequester(c)
	if requester == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	pageParams := pagination.DefaultPagination()
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			pageParams.Page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			pageParams.PerPage = parsed
		}
	}

	var status *enum.BookingStatus
	if s := c.Query("status"); s != "" {
		st := enum.ParseBookingStatus(s)
		status = &st
	}

	params := &domainRepo.BookingFilterParams{
		Pagination: pageParams,
		Search:    c.Query("search"),
		Status:    status,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), requester, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(bookings,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Bookings retrieved successfully", result)
}

// Get handles getting a single booking
// @Summary Get Booking
// @Description Get a booking by ID
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.APIResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	requester := GetRequester(c)
	if requester == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id, requester)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking retrieved successfully", booking)
}

// Create handles creating a booking
// @Summary Create Booking
// @Description Create a new booking from the submission form
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.BookingRequest true "Booking form"
// @Success 201 {object} response.APIResponse
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	requester := GetRequester(c)
	if requester == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	var req request.BookingRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := bookingInputFromRequest(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), requester.UserID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Booking created successfully", booking)
}

// Update handles updating a booking
// @Summary Update Booking
// @Description Replace the editable form fields of a booking
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body request.BookingRequest true "Booking form"
// @Success 200 {object} response.APIResponse
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	requester := GetRequester(c)
	if requester == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	var req request.BookingRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := bookingInputFromRequest(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), id, requester, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking updated successfully", booking)
}

// UpdateStatus handles moving a booking through its lifecycle
// @Summary Update Booking Status
// @Description Set the booking status
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body request.UpdateBookingStatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	requester := GetRequester(c)
	if requester == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	var req request.UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.UpdateBookingStatus(c.Request.Context(), id, requester,
		enum.ParseBookingStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking status updated successfully", booking)
}

// Delete handles deleting a booking
// @Summary Delete Booking
// @Description Soft-delete a booking
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	requester := GetRequester(c)
	if requester == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), id, requester); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func bookingInputFromRequest(req *request.BookingRequest) (*service.BookingInput, error) {
	input := &service.BookingInput{
		ClientName:         req.ClientName,
		ClientEmail:        req.ClientEmail,
		ClientPhone:        req.ClientPhone,
		Destination:        req.Destination,
		Nights:             req.Nights,
		CheckIn:            req.CheckIn,
		CheckOut:           req.CheckOut,
		Adults:             req.Adults,
		PackageType:        req.PackageType,
		MealPlan:           req.MealPlan,
		CostPerAdult:       req.CostPerAdult,
		AdvanceAmount:      req.AdvanceAmount,
		DiscountType:       req.DiscountType,
		DiscountValue:      req.DiscountValue,
		DiscountReason:     req.DiscountReason,
		TermsOverride:      req.TermsOverride,
		AdditionalServices: req.AdditionalServices,
	}

	if req.AttachmentFileID != nil && *req.AttachmentFileID != "" {
		fileID, err := uuid.Parse(*req.AttachmentFileID)
		if err != nil {
			return nil, err
		}
		input.AttachmentFileID = &fileID
	}

	return input, nil
}
