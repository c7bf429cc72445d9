package handlers

import (
	"net/http"
	"strconv"

	"club_manager_backend/internal/middleware"
	"club_manager_backend/internal/models"
	"club_manager_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// requireAuthContext pulls the authenticated caller off the request or writes
// a 401 response. Handlers return immediately when ok is false.
func requireAuthContext(c *gin.Context) (models.AuthContext, bool) {
	actor, ok := middleware.GetAuthContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", ""))
		return models.AuthContext{}, false
	}
	return actor, true
}

// parseIDParam parses the :id path parameter or writes a 400 response.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format.", err.Error()))
		return 0, false
	}
	return id, true
}

// parsePagination reads page/page_size query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return page, pageSize
}
