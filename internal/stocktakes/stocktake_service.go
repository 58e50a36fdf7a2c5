package stocktakes

import (
	"fmt"
	"time"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/auditlog"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
)

// StockTakeStore is the repository surface the stock take lifecycle needs.
type StockTakeStore interface {
	InsertStockTake(req models.StockTakeRequest, conductedBy int) (int, error)
	GetStockTake(stockTakeID int) (*models.StockTake, error)
	GetStockTakes(conditions repository.QueryBuilder) ([]models.StockTake, error)
	GetStockTakeItems(stockTakeID int) ([]models.StockTakeItem, error)
	UpdateStockTakeStatus(stockTakeID int, from, to metadata.StockTakeStatus, completedAt *time.Time) (bool, error)
	UpsertStockTakeItem(stockTakeID int, req models.StockTakeItemRequest) error
}

type StockTakeService struct {
	repo  StockTakeStore
	audit *auditlog.Auditlog
}

func NewService(repo StockTakeStore, audit *auditlog.Auditlog) *StockTakeService {
	return &StockTakeService{repo: repo, audit: audit}
}

func (s *StockTakeService) CreateStockTake(actor *models.User, req models.StockTakeRequest) (*models.StockTake, error) {
	if !actor.Can(roles.CanCreateMovement) {
		return nil, &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %s may not conduct stock takes", actor.Role),
		}
	}

	stockTakeID, err := s.repo.InsertStockTake(req, actor.ID)
	if err != nil {
		return nil, err
	}

	stockTake, err := s.repo.GetStockTake(stockTakeID)
	if err != nil {
		return nil, err
	}

	s.audit.Log(actor, auditlog.ActionStockTakeCreate,
		fmt.Sprintf("Scheduled stock take at %s", stockTake.Location.Code),
		map[string]interface{}{"location_id": req.LocationID},
		stockTake,
	)

	return stockTake, nil
}

func (s *StockTakeService) StartStockTake(actor *models.User, stockTakeID int) (*models.StockTake, error) {
	if !actor.Can(roles.CanCreateMovement) {
		return nil, &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %s may not conduct stock takes", actor.Role),
		}
	}

	stockTake, err := s.repo.GetStockTake(stockTakeID)
	if err != nil {
		return nil, err
	}
	if stockTake.Status != metadata.StockTakeScheduled {
		return nil, &apperrors.InvalidTransitionError{
			From: string(stockTake.Status),
			To:   string(metadata.StockTakeInProgress),
		}
	}

	updated, err := s.repo.UpdateStockTakeStatus(stockTakeID, metadata.StockTakeScheduled, metadata.StockTakeInProgress, nil)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, &apperrors.ConcurrencyConflictError{Resource: "stock take", ID: stockTakeID}
	}

	s.audit.Log(actor, auditlog.ActionStockTakeUpdate,
		fmt.Sprintf("Started stock take %d at %s", stockTakeID, stockTake.Location.Code),
		map[string]interface{}{"status": metadata.StockTakeInProgress},
		stockTake,
	)

	return s.repo.GetStockTake(stockTakeID)
}

// RecordItem stores a single line of the count. Re-counting an asset
// overwrites its previous line.
func (s *StockTakeService) RecordItem(actor *models.User, stockTakeID int, req models.StockTakeItemRequest) (*models.StockTake, error) {
	if !actor.Can(roles.CanCreateMovement) {
		return nil, &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %s may not conduct stock takes", actor.Role),
		}
	}

	stockTake, err := s.repo.GetStockTake(stockTakeID)
	if err != nil {
		return nil, err
	}
	if stockTake.Status != metadata.StockTakeInProgress {
		return nil, &apperrors.ValidationError{
			Message:  fmt.Sprintf("stock take is %s, items can only be recorded while in progress", stockTake.Status),
			Property: "status",
		}
	}

	if err := s.repo.UpsertStockTakeItem(stockTakeID, req); err != nil {
		return nil, err
	}

	s.audit.Log(actor, auditlog.ActionStockTakeUpdate,
		fmt.Sprintf("Recorded asset %d in stock take %d", req.AssetID, stockTakeID),
		map[string]interface{}{"asset_id": req.AssetID, "found": *req.Found},
		stockTake,
	)

	return s.repo.GetStockTake(stockTakeID)
}

func (s *StockTakeService) CompleteStockTake(actor *models.User, stockTakeID int) (*models.StockTake, error) {
	if !actor.Can(roles.CanCreateMovement) {
		return nil, &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %s may not conduct stock takes", actor.Role),
		}
	}

	stockTake, err := s.repo.GetStockTake(stockTakeID)
	if err != nil {
		return nil, err
	}
	if stockTake.Status == metadata.StockTakeCompleted {
		return nil, &apperrors.DuplicateOperationError{
			Message: fmt.Sprintf("stock take %d is already completed", stockTakeID),
		}
	}
	if stockTake.Status != metadata.StockTakeInProgress {
		return nil, &apperrors.InvalidTransitionError{
			From: string(stockTake.Status),
			To:   string(metadata.StockTakeCompleted),
		}
	}

	now := time.Now()
	updated, err := s.repo.UpdateStockTakeStatus(stockTakeID, metadata.StockTakeInProgress, metadata.StockTakeCompleted, &now)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, &apperrors.ConcurrencyConflictError{Resource: "stock take", ID: stockTakeID}
	}

	s.audit.Log(actor, auditlog.ActionStockTakeComplete,
		fmt.Sprintf("Completed stock take %d at %s with %d items", stockTakeID, stockTake.Location.Code, len(stockTake.Items)),
		map[string]interface{}{"items": len(stockTake.Items)},
		stockTake,
	)

	return s.repo.GetStockTake(stockTakeID)
}

func (s *StockTakeService) GetStockTake(stockTakeID int) (*models.StockTake, error) {
	return s.repo.GetStockTake(stockTakeID)
}

func (s *StockTakeService) GetStockTakes(conditions repository.QueryBuilder) ([]models.StockTake, error) {
	return s.repo.GetStockTakes(conditions)
}
