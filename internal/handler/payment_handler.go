package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidyalink/console-api/internal/models"
	"github.com/vidyalink/console-api/internal/service"
	appErrors "github.com/vidyalink/console-api/pkg/errors"
	"github.com/vidyalink/console-api/pkg/response"
)

// PaymentHandler wires payment history, submission and receipts to routes.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler constructs a new PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// History godoc
// @Summary List a student's payments
// @Tags Payments
// @Produce json
// @Param studentId path string true "Student ID"
// @Param academic_year query string false "Filter by academic year"
// @Success 200 {object} response.Envelope
// @Router /payments/{studentId} [get]
func (h *PaymentHandler) History(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	payments, err := h.payments.History(c.Request.Context(), sess, c.Param("studentId"), c.Query("academic_year"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments)
}

// Pay godoc
// @Summary Record a fee payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body models.PaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Pay(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment payload"))
		return
	}
	if err := h.payments.Pay(c.Request.Context(), sess, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"studentId": req.StudentID, "amountPaid": req.AmountPaid})
}

// Invoice godoc
// @Summary Render the receipt PDF for one payment
// @Tags Payments
// @Produce application/pdf
// @Param studentId path string true "Student ID"
// @Param paymentId path string true "Payment ID"
// @Success 200 {string} string "PDF payload"
// @Router /payments/{studentId}/invoice/{paymentId} [get]
func (h *PaymentHandler) Invoice(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess == nil {
		response.Error(c, errNoSession)
		return
	}
	payload, err := h.payments.Invoice(c.Request.Context(), sess, c.Param("studentId"), c.Param("paymentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="invoice.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
