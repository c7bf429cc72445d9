package handlers

import (
	"errors"
	"net/http"

	"club_manager_backend/internal/models"
	"club_manager_backend/internal/services"
	"club_manager_backend/internal/storage"
	"club_manager_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CoachHandler holds the coach service and the file uploader.
type CoachHandler struct {
	coachService services.CoachService
	uploader     storage.Uploader
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(cs services.CoachService, uploader storage.Uploader) *CoachHandler {
	return &CoachHandler{coachService: cs, uploader: uploader}
}

// CreateCoach handles the creation of a new coach.
func (h *CoachHandler) CreateCoach(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}

	var req services.CreateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateCoach: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	coach, err := h.coachService.CreateCoach(actor, req)
	if err != nil {
		utils.LogError(err, "CreateCoach: Error from coachService.CreateCoach")
		if errors.Is(err, services.ErrMemberValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create coach.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, coach)
}

// GetCoaches handles fetching coaches with pagination and search.
func (h *CoachHandler) GetCoaches(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	var pSearchTerm *string
	if searchTerm := c.Query("search"); searchTerm != "" {
		pSearchTerm = &searchTerm
	}

	coaches, totalCount, err := h.coachService.GetCoaches(actor, page, pageSize, pSearchTerm)
	if err != nil {
		utils.LogError(err, "GetCoaches: Error from coachService.GetCoaches")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch coaches.", "Internal error"))
		return
	}

	if coaches == nil {
		coaches = []models.Coach{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      coaches,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetCoachByID handles fetching a single coach by ID.
func (h *CoachHandler) GetCoachByID(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	coachID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	coach, err := h.coachService.GetCoachByID(actor, coachID)
	if err != nil {
		if errors.Is(err, services.ErrCoachNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Coach not found.", err.Error()))
		} else {
			utils.LogError(err, "GetCoachByID: Error from coachService.GetCoachByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch coach.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, coach)
}

// UpdateCoach handles updating a coach.
func (h *CoachHandler) UpdateCoach(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	coachID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateCoach: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	coach, err := h.coachService.UpdateCoach(actor, coachID, req)
	if err != nil {
		utils.LogError(err, "UpdateCoach: Error from coachService.UpdateCoach")
		if errors.Is(err, services.ErrCoachNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Coach not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrMemberValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update coach.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, coach)
}

// DeleteCoach handles deleting a coach and their payments.
func (h *CoachHandler) DeleteCoach(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	coachID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.coachService.DeleteCoach(actor, coachID); err != nil {
		utils.LogError(err, "DeleteCoach: Error from coachService.DeleteCoach")
		if errors.Is(err, services.ErrCoachNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Coach not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete coach.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coach deleted successfully"})
}

// UploadCoachPhoto stores a coach portrait and records its URL.
func (h *CoachHandler) UploadCoachPhoto(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	coachID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if h.uploader == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeStorageUnavailable, "File storage is not configured.", ""))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Missing 'file' form field.", err.Error()))
		return
	}
	if fileHeader.Size > maxUploadSize {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "File exceeds the 10 MB upload limit.", ""))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.LogError(err, "UploadCoachPhoto: Failed to open uploaded file")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to read uploaded file.", "Internal error"))
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload("photos", fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		utils.LogError(err, "UploadCoachPhoto: Upload failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to store uploaded file.", "Internal error"))
		return
	}

	coach, err := h.coachService.SetCoachPhotoURL(actor, coachID, url)
	if err != nil {
		utils.LogError(err, "UploadCoachPhoto: Failed to persist photo URL")
		if errors.Is(err, services.ErrCoachNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Coach not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save photo URL.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, coach)
}
