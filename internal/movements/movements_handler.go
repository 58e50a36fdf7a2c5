package movements

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/security"
)

type MovementHandler struct {
	Service *MovementService
}

func NewHandler(service *MovementService) *MovementHandler {
	return &MovementHandler{Service: service}
}

func (h *MovementHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/movements", h.ListMovements)
	router.GET("/movements/:id", h.GetMovement)
	router.POST("/movements", h.CreateMovement)
	router.PATCH("/movements/:id/status", h.UpdateMovementStatus)
	router.POST("/movements/:id/acknowledge", h.AcknowledgeMovement)
	router.GET("/movements/:id/acknowledgement", h.GetAcknowledgement)

	router.GET("/bulk-movements/:id", h.GetBulkMovement)
	router.POST("/bulk-movements", h.CreateBulkMovement)
	router.PATCH("/bulk-movements/:id/status", h.UpdateBulkMovementStatus)
	router.POST("/bulk-movements/:id/acknowledge", h.AcknowledgeBulkMovement)
}

func (h *MovementHandler) ListMovements(c *gin.Context) {
	conditions := repository.NewQueryBuilder()
	if status := c.Query("status"); status != "" {
		conditions.AddCondition("status", status)
	}
	if asset := c.Query("asset"); asset != "" {
		assetID, err := strconv.Atoi(asset)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset parameter, must be an integer"})
			return
		}
		conditions.AddCondition("asset_id", assetID)
	}

	movements, err := h.Service.GetMovements(conditions)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get movements", "details": err.Error()})
		return
	}

	if len(movements) == 0 {
		c.JSON(http.StatusOK, []models.Movement{})
		return
	}

	c.JSON(http.StatusOK, movements)
}

func (h *MovementHandler) GetMovement(c *gin.Context) {
	movementID, err := strconv.Atoi(c.Param("id"))
	if err != nil || movementID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movement ID parameter, must be an integer"})
		return
	}

	movement, err := h.Service.GetMovement(movementID)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to get movement", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, movement)
}

func (h *MovementHandler) CreateMovement(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	var req models.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	movement, err := h.Service.CreateMovement(actor, req)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to create movement", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, movement)
}

func (h *MovementHandler) UpdateMovementStatus(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	movementID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movement ID parameter, must be an integer"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStatus, err := metadata.NewMovementStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.TransitionStatus(actor, movementID, newStatus); err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to update movement status", "details": err.Error()})
		return
	}

	movement, err := h.Service.GetMovement(movementID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Movement status updated", "movement_id": movementID, "status": req.Status})
		return
	}

	c.JSON(http.StatusOK, movement)
}

func (h *MovementHandler) AcknowledgeMovement(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	movementID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movement ID parameter, must be an integer"})
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ack, err := h.Service.Acknowledge(actor, movementID, req.Notes)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to acknowledge movement", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ack)
}

func (h *MovementHandler) GetAcknowledgement(c *gin.Context) {
	movementID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movement ID parameter, must be an integer"})
		return
	}

	ack, err := h.Service.GetAcknowledgement(movementID)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to get acknowledgement", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ack)
}

func (h *MovementHandler) GetBulkMovement(c *gin.Context) {
	bulkMovementID, err := strconv.Atoi(c.Param("id"))
	if err != nil || bulkMovementID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bulk movement ID parameter, must be an integer"})
		return
	}

	bulkMovement, err := h.Service.GetBulkMovement(bulkMovementID)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to get bulk movement", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, bulkMovement)
}

func (h *MovementHandler) CreateBulkMovement(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	var req models.BulkMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	bulkMovement, err := h.Service.CreateBulkMovement(actor, req)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to create bulk movement", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, bulkMovement)
}

func (h *MovementHandler) UpdateBulkMovementStatus(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	bulkMovementID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bulk movement ID parameter, must be an integer"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStatus, err := metadata.NewMovementStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.TransitionBulkStatus(actor, bulkMovementID, newStatus); err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to update bulk movement status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bulk movement status updated", "bulk_movement_id": bulkMovementID, "status": req.Status})
}

func (h *MovementHandler) AcknowledgeBulkMovement(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	bulkMovementID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bulk movement ID parameter, must be an integer"})
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.AcknowledgeBulk(actor, bulkMovementID, req.Notes); err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to acknowledge bulk movement", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bulk movement acknowledged", "bulk_movement_id": bulkMovementID})
}
