package stocktakes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/security"
)

type StockTakeHandler struct {
	Service *StockTakeService
}

func NewStockTakeHandler(service *StockTakeService) *StockTakeHandler {
	return &StockTakeHandler{Service: service}
}

func (h *StockTakeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stock-takes", h.ListStockTakes)
	router.GET("/stock-takes/:id", h.GetStockTake)
	router.POST("/stock-takes", h.CreateStockTake)
	router.POST("/stock-takes/:id/start", h.StartStockTake)
	router.POST("/stock-takes/:id/items", h.RecordItem)
	router.POST("/stock-takes/:id/complete", h.CompleteStockTake)
}

func (h *StockTakeHandler) ListStockTakes(c *gin.Context) {
	conditions := repository.NewQueryBuilder()
	if status := c.Query("status"); status != "" {
		conditions.AddCondition("status", status)
	}
	if location := c.Query("location"); location != "" {
		locationID, err := strconv.Atoi(location)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location parameter, must be an integer"})
			return
		}
		conditions.AddCondition("location_id", locationID)
	}

	stockTakes, err := h.Service.GetStockTakes(conditions)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get stock takes", "details": err.Error()})
		return
	}

	if len(stockTakes) == 0 {
		c.JSON(http.StatusOK, []models.StockTake{})
		return
	}

	c.JSON(http.StatusOK, stockTakes)
}

func (h *StockTakeHandler) GetStockTake(c *gin.Context) {
	stockTakeID, err := strconv.Atoi(c.Param("id"))
	if err != nil || stockTakeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock take ID parameter, must be an integer"})
		return
	}

	stockTake, err := h.Service.GetStockTake(stockTakeID)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to get stock take", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stockTake)
}

func (h *StockTakeHandler) CreateStockTake(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	var req models.StockTakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	stockTake, err := h.Service.CreateStockTake(actor, req)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to create stock take", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, stockTake)
}

func (h *StockTakeHandler) StartStockTake(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	stockTakeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock take ID parameter, must be an integer"})
		return
	}

	stockTake, err := h.Service.StartStockTake(actor, stockTakeID)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to start stock take", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stockTake)
}

func (h *StockTakeHandler) RecordItem(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	stockTakeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock take ID parameter, must be an integer"})
		return
	}

	var req models.StockTakeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	stockTake, err := h.Service.RecordItem(actor, stockTakeID, req)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to record stock take item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stockTake)
}

func (h *StockTakeHandler) CompleteStockTake(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	stockTakeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock take ID parameter, must be an integer"})
		return
	}

	stockTake, err := h.Service.CompleteStockTake(actor, stockTakeID)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to complete stock take", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stockTake)
}
