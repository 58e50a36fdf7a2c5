package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/wongivan852/asset-movement-tracking-system/cmd"
	"github.com/wongivan852/asset-movement-tracking-system/internal/container"
	"github.com/wongivan852/asset-movement-tracking-system/internal/database"
	"github.com/wongivan852/asset-movement-tracking-system/internal/logger"
	"github.com/wongivan852/asset-movement-tracking-system/internal/middleware"
	"github.com/wongivan852/asset-movement-tracking-system/internal/routes"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		zapLogger.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		zapLogger.Fatal("unable to connect to the database: " + err.Error())
	}
	defer db.Close()

	zapLogger.Info("Connected to the database successfully")

	appContainer := container.NewAppContainer(db, zapLogger)

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.TimeoutMiddleware(30 * time.Second))

	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)
	routes.RegisterUtilityRoutes(router)

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		zapLogger.Fatal("server stopped: " + err.Error())
	}
}
