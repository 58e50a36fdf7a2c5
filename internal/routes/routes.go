package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/wongivan852/asset-movement-tracking-system/internal/container"
	"github.com/wongivan852/asset-movement-tracking-system/internal/middleware"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/security"
)

// RegisterPublicRoutes mounts endpoints reachable without a token.
func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
}

// RegisterProtectedRoutes mounts everything behind JWT authentication.
func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	protectedRoutes := router.Group("/api")
	protectedRoutes.Use(security.JWTMiddleware())

	c.AssetHandler.RegisterRoutes(protectedRoutes)
	c.LocationHandler.RegisterRoutes(protectedRoutes)
	c.MovementHandler.RegisterRoutes(protectedRoutes)
	c.StockTakeHandler.RegisterRoutes(protectedRoutes)
	c.UserHandler.RegisterRoutes(protectedRoutes)
	c.ActivityLogHandler.RegisterRoutes(protectedRoutes)
	c.DashboardHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
