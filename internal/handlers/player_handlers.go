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

// maxUploadSize caps multipart uploads at 10 MB.
const maxUploadSize = 10 << 20

// PlayerHandler holds the player service and the file uploader.
type PlayerHandler struct {
	playerService services.PlayerService
	uploader      storage.Uploader
}

// NewPlayerHandler creates a new PlayerHandler. The uploader may be nil when
// no object storage is configured, upload endpoints then answer 503.
func NewPlayerHandler(ps services.PlayerService, uploader storage.Uploader) *PlayerHandler {
	return &PlayerHandler{playerService: ps, uploader: uploader}
}

// CreatePlayer handles the creation of a new player.
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}

	var req services.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreatePlayer: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	player, err := h.playerService.CreatePlayer(actor, req)
	if err != nil {
		utils.LogError(err, "CreatePlayer: Error from playerService.CreatePlayer")
		if errors.Is(err, services.ErrMemberValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create player.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, player)
}

// GetPlayers handles fetching players with pagination and search.
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	var pSearchTerm *string
	if searchTerm := c.Query("search"); searchTerm != "" {
		pSearchTerm = &searchTerm
	}

	players, totalCount, err := h.playerService.GetPlayers(actor, page, pageSize, pSearchTerm)
	if err != nil {
		utils.LogError(err, "GetPlayers: Error from playerService.GetPlayers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch players.", "Internal error"))
		return
	}

	if players == nil {
		players = []models.Player{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      players,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetPlayerByID handles fetching a single player by ID.
func (h *PlayerHandler) GetPlayerByID(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	playerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	player, err := h.playerService.GetPlayerByID(actor, playerID)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Player not found.", err.Error()))
		} else {
			utils.LogError(err, "GetPlayerByID: Error from playerService.GetPlayerByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch player.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, player)
}

// UpdatePlayer handles updating a player.
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	playerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdatePlayer: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	player, err := h.playerService.UpdatePlayer(actor, playerID, req)
	if err != nil {
		utils.LogError(err, "UpdatePlayer: Error from playerService.UpdatePlayer")
		if errors.Is(err, services.ErrPlayerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Player not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrMemberValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update player.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, player)
}

// DeletePlayer handles deleting a player and their payments.
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	playerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.playerService.DeletePlayer(actor, playerID); err != nil {
		utils.LogError(err, "DeletePlayer: Error from playerService.DeletePlayer")
		if errors.Is(err, services.ErrPlayerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Player not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete player.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Player deleted successfully"})
}

// UploadPlayerPhoto stores a player portrait and records its URL.
func (h *PlayerHandler) UploadPlayerPhoto(c *gin.Context) {
	h.uploadPlayerFile(c, "photos", func(actor models.AuthContext, playerID int64, url string) (*models.Player, error) {
		return h.playerService.SetPlayerPhotoURL(actor, playerID, url)
	})
}

// UploadPlayerMedicalCert stores a medical certificate scan and records its
// URL together with an optional expiry date from the "expiry" form field.
func (h *PlayerHandler) UploadPlayerMedicalCert(c *gin.Context) {
	var expiry *string
	if v := c.PostForm("expiry"); v != "" {
		expiry = &v
	}
	h.uploadPlayerFile(c, "medical-certs", func(actor models.AuthContext, playerID int64, url string) (*models.Player, error) {
		return h.playerService.SetPlayerMedicalCert(actor, playerID, url, expiry)
	})
}

func (h *PlayerHandler) uploadPlayerFile(c *gin.Context, folder string, store func(models.AuthContext, int64, string) (*models.Player, error)) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	playerID, ok := parseIDParam(c, "id")
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
		utils.LogError(err, "uploadPlayerFile: Failed to open uploaded file")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to read uploaded file.", "Internal error"))
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(folder, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		utils.LogError(err, "uploadPlayerFile: Upload failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to store uploaded file.", "Internal error"))
		return
	}

	player, err := store(actor, playerID, url)
	if err != nil {
		utils.LogError(err, "uploadPlayerFile: Failed to persist file URL")
		if errors.Is(err, services.ErrPlayerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Player not found.", err.Error()))
		} else if errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save file URL.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, player)
}
