package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"club_manager_backend/internal/models"
	"club_manager_backend/internal/services"
	"club_manager_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

func respondPaymentError(c *gin.Context, err error, action string) {
	utils.LogError(err, "PaymentHandler: "+action)
	switch {
	case errors.Is(err, services.ErrPaymentNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", err.Error()))
	case errors.Is(err, services.ErrMemberNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
	case errors.Is(err, services.ErrInvalidMemberKind),
		errors.Is(err, services.ErrInvalidPaymentType),
		errors.Is(err, services.ErrInvalidTotalAmount),
		errors.Is(err, services.ErrAdvanceExceedsTotal),
		errors.Is(err, services.ErrNonPositiveAmount),
		errors.Is(err, services.ErrAmountExceedsRemaining),
		errors.Is(err, services.ErrDateFormat):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Payment operation failed.", "Internal error"))
	}
}

// CreatePayment handles creating a new payment, optionally with an initial
// advance already collected.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}

	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreatePayment: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	payment, err := h.paymentService.CreatePayment(actor, req)
	if err != nil {
		respondPaymentError(c, err, "CreatePayment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GetPayments handles fetching payments with pagination and filters.
// Supported query filters: member_kind, member_id, status.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)

	var memberKind, status *string
	if v := c.Query("member_kind"); v != "" {
		memberKind = &v
	}
	if v := c.Query("status"); v != "" {
		status = &v
	}
	var memberID *int64
	if v := c.Query("member_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member_id format.", err.Error()))
			return
		}
		memberID = &id
	}

	payments, totalCount, err := h.paymentService.GetPayments(actor, page, pageSize, memberKind, memberID, status)
	if err != nil {
		utils.LogError(err, "GetPayments: Error from paymentService.GetPayments")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payments.", "Internal error"))
		return
	}

	if payments == nil {
		payments = []models.Payment{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      payments,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetPaymentByID handles fetching a single payment with its transaction history.
func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPaymentByID(actor, paymentID)
	if err != nil {
		respondPaymentError(c, err, "GetPaymentByID")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// RecordPartialPayment handles registering a partial payment against the
// remaining balance.
func (h *PaymentHandler) RecordPartialPayment(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.PartialPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	payment, err := h.paymentService.RecordPartialPayment(actor, paymentID, req.Amount)
	if err != nil {
		respondPaymentError(c, err, "RecordPartialPayment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// MarkFullyPaid settles the outstanding balance in one step.
func (h *PaymentHandler) MarkFullyPaid(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.MarkFullyPaid(actor, paymentID)
	if err != nil {
		respondPaymentError(c, err, "MarkFullyPaid")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// DeletePayment handles deleting a payment and its transaction history.
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.paymentService.DeletePayment(actor, paymentID); err != nil {
		respondPaymentError(c, err, "DeletePayment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
