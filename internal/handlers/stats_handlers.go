package handlers

import (
	"errors"
	"net/http"

	"club_manager_backend/internal/services"
	"club_manager_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandler holds the stats service.
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ss services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// GetLeaderboards returns scorer, assist and combined leaderboards built from
// every played match of the caller's club.
func (h *StatsHandler) GetLeaderboards(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}

	leaderboards, err := h.statsService.GetLeaderboards(actor)
	if err != nil {
		utils.LogError(err, "GetLeaderboards: Error from statsService.GetLeaderboards")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build leaderboards.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, leaderboards)
}

// GetMatchSummary returns a single match with named scorer and assist lines.
func (h *StatsHandler) GetMatchSummary(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.statsService.GetMatchSummary(actor, eventID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Event not found.", err.Error()))
		} else if errors.Is(err, services.ErrEventValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "GetMatchSummary: Error from statsService.GetMatchSummary")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build match summary.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetDashboardSummary returns roster counts, upcoming events and the
// outstanding payment picture for the caller's club.
func (h *StatsHandler) GetDashboardSummary(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}

	summary, err := h.statsService.GetDashboardSummary(actor)
	if err != nil {
		utils.LogError(err, "GetDashboardSummary: Error from statsService.GetDashboardSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build dashboard summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}
