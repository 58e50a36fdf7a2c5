package assets

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

type AssetHandler struct {
	Service *AssetService
}

func NewAssetHandler(service *AssetService) *AssetHandler {
	return &AssetHandler{Service: service}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/assets", h.ListAssets)
	router.GET("/assets/:id", h.GetAsset)
	router.POST("/assets", h.CreateAsset)
	router.PATCH("/assets/:id/status", h.UpdateAssetStatus)
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
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
	if category := c.Query("category"); category != "" {
		categoryID, err := strconv.Atoi(category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category parameter, must be an integer"})
			return
		}
		conditions.AddCondition("category_id", categoryID)
	}

	assets, err := h.Service.GetAssets(conditions)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get assets", "details": err.Error()})
		return
	}

	if len(assets) == 0 {
		c.JSON(http.StatusOK, []models.Asset{})
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assetID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID parameter, must be an integer"})
		return
	}

	asset, err := h.Service.GetAsset(assetID)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to get asset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	var req AssetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.Service.CreateAsset(actor, req)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to create asset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) UpdateAssetStatus(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID parameter, must be an integer"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset, err := h.Service.SetAssetStatus(actor, assetID, metadata.AssetStatus(req.Status))
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to update asset status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}
