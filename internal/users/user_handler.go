package users

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/wongivan852/asset-movement-tracking-system/pkg/auditlog"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/security"
)

type UsersHandler struct {
	Repository UserRepository
	audit      *auditlog.Auditlog
}

func NewHandler(r UserRepository, audit *auditlog.Auditlog) *UsersHandler {
	return &UsersHandler{
		Repository: r,
		audit:      audit,
	}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users", security.Authorize(roles.Admin), h.RegisterUser)
	router.PATCH("/users/:id", security.Authorize(roles.Admin), h.UpdateUser)
	router.GET("/users/:id", h.GetUser)
	router.GET("/users", security.Authorize(roles.Approver), h.GetUserList)
}

func (h *UsersHandler) RegisterUser(c *gin.Context) {
	actor, err := security.CurrentUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to identify user"})
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if !req.Role.IsValid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unknown role: " + req.Role.String()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	userID, err := h.Repository.PersistUser(req, hashedPassword)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Failed to create user", "details": err.Error()})
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusAccepted, gin.H{"message": "User created but unable to load it now", "id": userID})
		return
	}

	h.audit.Log(actor, auditlog.ActionUserCreate,
		"Created user "+user.Username+" with role "+user.Role.String(),
		map[string]interface{}{"role": user.Role},
		user,
	)

	c.JSON(http.StatusCreated, user)
}

func (h *UsersHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to find user", "details": err.Error()})
		return
	}

	changes := &UserChanges{}

	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long"})
			return
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		passwordHash := string(hashedPassword)
		changes.PasswordHash = &passwordHash
	}

	if req.Fullname != nil && *req.Fullname != user.Fullname {
		changes.Fullname = req.Fullname
	}

	if req.Role != nil && *req.Role != user.Role {
		if !req.Role.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role: " + req.Role.String()})
			return
		}
		role := req.Role.String()
		changes.Role = &role
	}

	if req.Active != nil && *req.Active != user.Active {
		changes.Active = req.Active
	}

	if !changes.HasChanges() {
		c.JSON(http.StatusOK, user)
		return
	}

	if err := h.Repository.UpdateUser(userID, changes); err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Failed to update user", "details": err.Error()})
		return
	}

	updatedUser, err := h.Repository.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get updated user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updatedUser)
}

func (h *UsersHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	if !h.isAllowed(c, userID, roles.Approver) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "details": "You are not allowed to access this resource"})
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": "Unable to find user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.Repository.GetUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not obtain list of users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// isAllowed admits the user itself, or anyone at or above the required role.
func (h *UsersHandler) isAllowed(c *gin.Context, userID int, requiredRole roles.Role) bool {
	actor, err := security.CurrentUser(c)
	if err != nil {
		return false
	}

	if actor.ID == userID {
		return true
	}

	return actor.IsSuperuser || actor.Role.HasPermission(requiredRole)
}
