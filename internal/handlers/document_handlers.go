package handlers

import (
	"errors"
	"net/http"

	"club_manager_backend/internal/services"
	"club_manager_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DocumentHandler holds the document service.
type DocumentHandler struct {
	documentService services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(ds services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: ds}
}

func respondDocumentError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrPaymentNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", err.Error()))
	case errors.Is(err, services.ErrPlayerNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Player not found.", err.Error()))
	default:
		utils.LogError(err, "DocumentHandler: "+action)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build document.", "Internal error"))
	}
}

// GetReceipt builds a printable receipt for a payment, including its QR code.
func (h *DocumentHandler) GetReceipt(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	receipt, err := h.documentService.BuildReceipt(actor, paymentID)
	if err != nil {
		respondDocumentError(c, err, "GetReceipt")
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// GetRegistrationForm builds a printable registration form for a player.
func (h *DocumentHandler) GetRegistrationForm(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	playerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	form, err := h.documentService.BuildRegistrationForm(actor, playerID)
	if err != nil {
		respondDocumentError(c, err, "GetRegistrationForm")
		return
	}
	c.JSON(http.StatusOK, form)
}

// GetMedicalCertificateSheet builds a printable medical certificate sheet.
func (h *DocumentHandler) GetMedicalCertificateSheet(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	playerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sheet, err := h.documentService.BuildMedicalCertificateSheet(actor, playerID)
	if err != nil {
		respondDocumentError(c, err, "GetMedicalCertificateSheet")
		return
	}
	c.JSON(http.StatusOK, sheet)
}
