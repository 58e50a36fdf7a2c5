package dashboard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	repo *DashboardRepository
}

func NewDashboardHandler(repo *DashboardRepository) *DashboardHandler {
	return &DashboardHandler{repo: repo}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetSummary)
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.repo.GetSummary(time.Now())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to build dashboard summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
