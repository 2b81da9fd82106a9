package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/application/service"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/dto/response"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
)

// InvoiceHandler handles receipt rendering HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Download renders the booking confirmation receipt as a PDF download
// @Summary Download Invoice
// @Description Render the confirmation receipt for a booking
// @Tags invoices
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Booking ID"
// @Param style query string false "Layout preset (classic, compact)"
// @Success 200 {file} binary
// @Router /bookings/{id}/invoice [get]
func (h *InvoiceHandler) Download(c *gin.Context) {
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

	out, err := h.invoiceService.RenderInvoice(c.Request.Context(), id, requester, c.Query("style"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Header("X-Invoice-Pages", fmt.Sprintf("%d", out.Pages))
	c.Data(200, "application/pdf", out.Bytes)
}

// Email renders the receipt and emails it to the booking's client
// @Summary Email Invoice
// @Description Render the confirmation receipt and send it to the client
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Param style query string false "Layout preset (classic, compact)"
// @Success 200 {object} response.APIResponse
// @Router /bookings/{id}/invoice/email [post]
func (h *InvoiceHandler) Email(c *gin.Context) {
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

	out, err := h.invoiceService.EmailInvoice(c.Request.Context(), id, requester, c.Query("style"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice sent successfully", gin.H{
		"filename": out.Filename,
		"pages":    out.Pages,
	})
}
