package locations

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wongivan852/asset-movement-tracking-system/pkg/auditlog"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/security"
)

type LocationRequest struct {
	Code                string  `json:"code" binding:"required"`
	Name                string  `json:"name" binding:"required"`
	ResponsiblePersonID *int    `json:"responsible_person_id"`
	Details             *string `json:"details"`
}

type LocationHandler struct {
	repo  *LocationRepository
	audit *auditlog.Auditlog
}

func NewLocationHandler(repo *LocationRepository, audit *auditlog.Auditlog) *LocationHandler {
	return &LocationHandler{repo: repo, audit: audit}
}

func (h *LocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/locations", h.ListLocations)
	router.GET("/locations/:id", h.GetLocation)
	router.POST("/locations", h.CreateLocation)
	router.DELETE("/locations/:id", h.DeactivateLocation)
}

func (h *LocationHandler) ListLocations(c *gin.Context) {
	activeOnly := c.Query("include_inactive") != "true"

	locations, err := h.repo.GetLocations(activeOnly)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to get locations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || locationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID parameter, must be an integer"})
		return
	}

	location, err := h.repo.GetLocation(locationID)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to get location", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	locationID, err := h.repo.InsertLocation(req)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to create location", "details": err.Error()})
		return
	}

	location, err := h.repo.GetLocation(locationID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusAccepted, gin.H{"message": "Location created but unable to load it now", "id": locationID})
		return
	}

	h.audit.Log(actor, auditlog.ActionLocationCreate,
		"Created location "+location.Code+" - "+location.Name,
		map[string]interface{}{"code": location.Code},
		location,
	)

	c.JSON(http.StatusCreated, location)
}

func (h *LocationHandler) DeactivateLocation(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID parameter, must be an integer"})
		return
	}

	location, err := h.repo.GetLocation(locationID)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to get location", "details": err.Error()})
		return
	}

	if err := h.repo.DeactivateLocation(locationID); err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to deactivate location", "details": err.Error()})
		return
	}

	h.audit.Log(actor, auditlog.ActionLocationUpdate,
		"Deactivated location "+location.Code,
		map[string]interface{}{"active": false},
		location,
	)

	c.JSON(http.StatusOK, gin.H{"message": "Location deactivated successfully"})
}
