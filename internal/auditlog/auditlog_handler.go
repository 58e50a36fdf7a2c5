package auditlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ActivityLogHandler struct {
	repo *ActivityLogRepository
}

func NewHandler(repo *ActivityLogRepository) *ActivityLogHandler {
	return &ActivityLogHandler{repo: repo}
}

func (h *ActivityLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/activity/:target_type/:id", h.GetTargetActivity)
}

func (h *ActivityLogHandler) GetTargetActivity(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || targetID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID parameter, must be an integer"})
		return
	}

	entries, err := h.repo.GetTargetLog(targetID, c.Param("target_type"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get activity log", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}
