package handlers

import (
	"errors"
	"net/http"

	"club_manager_backend/internal/models"
	"club_manager_backend/internal/services"
	"club_manager_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// EventHandler holds the event service.
type EventHandler struct {
	eventService services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(es services.EventService) *EventHandler {
	return &EventHandler{eventService: es}
}

func respondEventError(c *gin.Context, err error, action string) {
	utils.LogError(err, "EventHandler: "+action)
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Event not found.", err.Error()))
	case errors.Is(err, services.ErrEventValidation),
		errors.Is(err, services.ErrInvalidStatLine),
		errors.Is(err, services.ErrDateFormat):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Event operation failed.", "Internal error"))
	}
}

// CreateEvent handles creating a new event, with optional scorer and assist
// lines for played matches.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}

	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateEvent: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	event, err := h.eventService.CreateEvent(actor, req)
	if err != nil {
		respondEventError(c, err, "CreateEvent")
		return
	}
	c.JSON(http.StatusCreated, event)
}

// GetEvents handles fetching events with pagination and an optional type filter.
func (h *EventHandler) GetEvents(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	var eventType *string
	if v := c.Query("event_type"); v != "" {
		eventType = &v
	}

	events, totalCount, err := h.eventService.GetEvents(actor, page, pageSize, eventType)
	if err != nil {
		utils.LogError(err, "GetEvents: Error from eventService.GetEvents")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch events.", "Internal error"))
		return
	}

	if events == nil {
		events = []models.ClubEvent{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      events,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetEventByID handles fetching a single event with its stat lines.
func (h *EventHandler) GetEventByID(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.GetEventByID(actor, eventID)
	if err != nil {
		respondEventError(c, err, "GetEventByID")
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateEvent handles updating an event and replacing its stat lines.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateEvent: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	event, err := h.eventService.UpdateEvent(actor, eventID, req)
	if err != nil {
		respondEventError(c, err, "UpdateEvent")
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent handles deleting an event and its stat lines.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	actor, ok := requireAuthContext(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(actor, eventID); err != nil {
		respondEventError(c, err, "DeleteEvent")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
