package assets

import (
	"fmt"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/auditlog"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
)

type AssetCreateRequest struct {
	AssetCode           string `json:"asset_code" binding:"required"`
	Name                string `json:"name" binding:"required"`
	CategoryID          int    `json:"category_id" binding:"required"`
	LocationID          int    `json:"location_id" binding:"required"`
	ResponsiblePersonID *int   `json:"responsible_person_id"`
}

type AssetService struct {
	repo  *AssetsRepository
	audit *auditlog.Auditlog
}

func NewService(repo *AssetsRepository, audit *auditlog.Auditlog) *AssetService {
	return &AssetService{repo: repo, audit: audit}
}

func (s *AssetService) CreateAsset(actor *models.User, req AssetCreateRequest) (*models.Asset, error) {
	if !actor.Can(roles.CanAdminister) {
		return nil, &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %s may not create assets", actor.Role),
		}
	}

	assetID, err := s.repo.InsertAsset(req, actor.ID)
	if err != nil {
		return nil, err
	}

	asset, err := s.repo.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	s.audit.Log(actor, auditlog.ActionAssetCreate,
		fmt.Sprintf("Created asset %s - %s", asset.AssetCode, asset.Name),
		map[string]interface{}{"asset_code": asset.AssetCode},
		asset,
	)

	return asset, nil
}

// SetAssetStatus flips an asset between operational statuses such as
// maintenance or in_use. Transit moves go through the movement workflow.
func (s *AssetService) SetAssetStatus(actor *models.User, assetID int, status metadata.AssetStatus) (*models.Asset, error) {
	if !actor.Can(roles.CanApprove) {
		return nil, &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %s may not change asset status", actor.Role),
		}
	}

	if !status.IsValid() {
		return nil, &apperrors.ValidationError{
			Message:  fmt.Sprintf("unknown asset status: %s", status),
			Property: "status",
		}
	}
	if status == metadata.AssetInTransit {
		return nil, &apperrors.ValidationError{
			Message:  "transit status is managed by the movement workflow",
			Property: "status",
		}
	}

	if err := s.repo.UpdateAssetStatus(assetID, status); err != nil {
		return nil, err
	}

	asset, err := s.repo.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	s.audit.Log(actor, auditlog.ActionAssetUpdate,
		fmt.Sprintf("Updated asset %s status to %s", asset.AssetCode, status),
		map[string]interface{}{"status": status},
		asset,
	)

	return asset, nil
}

func (s *AssetService) GetAsset(assetID int) (*models.Asset, error) {
	return s.repo.GetAsset(assetID)
}

func (s *AssetService) GetAssets(conditions repository.QueryBuilder) ([]models.Asset, error) {
	return s.repo.GetAssets(conditions)
}
