package container

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/wongivan852/asset-movement-tracking-system/internal/assets"
	activityLogRepo "github.com/wongivan852/asset-movement-tracking-system/internal/auditlog"
	"github.com/wongivan852/asset-movement-tracking-system/internal/dashboard"
	"github.com/wongivan852/asset-movement-tracking-system/internal/locations"
	"github.com/wongivan852/asset-movement-tracking-system/internal/movements"
	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	"github.com/wongivan852/asset-movement-tracking-system/internal/stocktakes"
	"github.com/wongivan852/asset-movement-tracking-system/internal/users"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/auditlog"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/security"
)

type Container struct {
	Repository         *repository.Repository
	AuditLog           *auditlog.Auditlog
	Logger             *zap.Logger
	LoginHandler       *security.LoginHandler
	AssetHandler       *assets.AssetHandler
	LocationHandler    *locations.LocationHandler
	MovementHandler    *movements.MovementHandler
	StockTakeHandler   *stocktakes.StockTakeHandler
	UserHandler        *users.UsersHandler
	ActivityLogHandler *activityLogRepo.ActivityLogHandler
	DashboardHandler   *dashboard.DashboardHandler
}

func NewAppContainer(db *sql.DB, log *zap.Logger) *Container {
	repo := repository.NewRepository(db)

	activityRepo := activityLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(activityRepo, log)

	loginHandler := security.NewLoginHandler(repo, auditLog)

	assetsRepo := assets.NewRepository(repo)
	assetService := assets.NewService(assetsRepo, auditLog)
	assetHandler := assets.NewAssetHandler(assetService)

	movementRepo := movements.NewRepository(repo)
	bulkRepo := movements.NewBulkRepository(repo)
	movementService := movements.NewService(repo, movementRepo, bulkRepo, assetsRepo, auditLog, log)
	movementHandler := movements.NewHandler(movementService)

	locationRepo := locations.NewLocationRepository(repo)
	locationHandler := locations.NewLocationHandler(locationRepo, auditLog)

	stockTakeRepo := stocktakes.NewStockTakeRepository(repo)
	stockTakeService := stocktakes.NewService(stockTakeRepo, auditLog)
	stockTakeHandler := stocktakes.NewStockTakeHandler(stockTakeService)

	userRepo := users.NewRepository(repo)
	userHandler := users.NewHandler(userRepo, auditLog)

	activityLogHandler := activityLogRepo.NewHandler(activityRepo)

	dashboardRepo := dashboard.NewDashboardRepository(repo)
	dashboardHandler := dashboard.NewDashboardHandler(dashboardRepo)

	return &Container{
		Repository:         repo,
		AuditLog:           auditLog,
		Logger:             log,
		LoginHandler:       loginHandler,
		AssetHandler:       assetHandler,
		LocationHandler:    locationHandler,
		MovementHandler:    movementHandler,
		StockTakeHandler:   stockTakeHandler,
		UserHandler:        userHandler,
		ActivityLogHandler: activityLogHandler,
		DashboardHandler:   dashboardHandler,
	}
}
