package movements

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"

	"github.com/wongivan852/asset-movement-tracking-system/pkg/auditlog"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
)

// CreateBulkMovement records a new pending movement covering a set of
// assets transferred together.
func (s *MovementService) CreateBulkMovement(actor *models.User, req models.BulkMovementRequest) (*models.BulkMovement, error) {
	if !actor.Can(roles.CanCreateMovement) {
		return nil, &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %s may not create movements", actor.Role),
		}
	}

	priority, err := resolvePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	if len(req.AssetIDs) == 0 {
		return nil, &apperrors.ValidationError{
			Message:  "cannot create an empty bulk movement",
			Property: "asset_ids",
		}
	}

	if req.FromLocationID == req.ToLocationID {
		return nil, &apperrors.ValidationError{
			Message:  "movement from and to location cannot be the same",
			Property: "to_location_id",
		}
	}

	onStock, err := s.assets.HasAssetsInLocation(req.AssetIDs, req.FromLocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate asset locations: %w", err)
	}
	if !onStock {
		return nil, &apperrors.ValidationError{
			Message:  "assets are not present in source location",
			Property: "asset_ids",
		}
	}

	trackingNumber := NewTrackingNumber(bulkMovementTrackingPrefix)

	var bulkMovementID int
	err = s.db.WithTransaction(func(tx *goqu.TxDatabase) error {
		var err error
		if bulkMovementID, err = s.bulkRepo.InsertBulkMovementRecord(tx, req, trackingNumber, actor.ID, priority); err != nil {
			return err
		}

		if err = s.bulkRepo.InsertBulkMovementAssets(tx, bulkMovementID, req.AssetIDs); err != nil {
			return err
		}

		description := fmt.Sprintf("Created bulk movement %s for %d assets from location %d to location %d",
			trackingNumber, len(req.AssetIDs), req.FromLocationID, req.ToLocationID)

		return s.audit.LogTx(tx, actor, auditlog.ActionBulkMovementCreate, description,
			map[string]interface{}{
				"tracking_number":  trackingNumber,
				"asset_count":      len(req.AssetIDs),
				"from_location_id": req.FromLocationID,
				"to_location_id":   req.ToLocationID,
			},
			&models.BulkMovement{ID: bulkMovementID},
		)
	})
	if err != nil {
		return nil, err
	}

	return s.GetBulkMovement(bulkMovementID)
}

// TransitionBulkStatus applies a status change to a bulk movement under
// the same state machine and separation-of-duties rules as single
// movements.
func (s *MovementService) TransitionBulkStatus(actor *models.User, bulkMovementID int, newStatus metadata.MovementStatus) error {
	if !newStatus.IsValid() {
		return &apperrors.ValidationError{
			Message:  fmt.Sprintf("unknown movement status: %s", newStatus),
			Property: "status",
		}
	}
	if newStatus == metadata.StatusAcknowledged {
		return &apperrors.ValidationError{
			Message:  "acknowledgement requires the acknowledge operation",
			Property: "status",
		}
	}

	row, err := s.bulkRepo.GetBulkMovementRow(bulkMovementID)
	if err != nil {
		return err
	}

	observed := metadata.MovementStatus(row.Status)
	if observed == newStatus {
		return nil
	}

	if !CanTransition(observed, newStatus) {
		return &apperrors.InvalidTransitionError{From: string(observed), To: string(newStatus)}
	}

	state := workflowState{ID: row.ID, Status: observed, InitiatedBy: row.InitiatedBy}
	if err := authorizeTransition(actor, state, newStatus); err != nil {
		s.log.Warn("bulk movement transition rejected",
			zap.Int("bulk_movement_id", bulkMovementID),
			zap.Int("actor_id", actor.ID),
			zap.String("from", string(observed)),
			zap.String("to", string(newStatus)),
			zap.Error(err),
		)
		return err
	}

	assetIDs, err := s.bulkRepo.GetBulkMovementAssetIDs(bulkMovementID)
	if err != nil {
		return err
	}

	var approvedBy *int
	if recordsApprover(newStatus) {
		approvedBy = &actor.ID
	}

	return s.db.WithTransaction(func(tx *goqu.TxDatabase) error {
		updated, err := s.bulkRepo.UpdateBulkMovementStatus(tx, bulkMovementID, observed, newStatus, approvedBy)
		if err != nil {
			return err
		}
		if !updated {
			return &apperrors.ConcurrencyConflictError{Resource: "bulk movement", ID: bulkMovementID}
		}

		if err := s.applyAssetEffects(tx, assetIDs, row.ToLocationID, observed, newStatus); err != nil {
			return err
		}

		action := transitionAction("bulk_movement", observed, newStatus)
		description := fmt.Sprintf("Bulk movement %s changed from %s to %s", row.TrackingNumber, observed, newStatus)

		return s.audit.LogTx(tx, actor, action, description,
			map[string]interface{}{
				"tracking_number": row.TrackingNumber,
				"from_status":     observed,
				"to_status":       newStatus,
				"asset_count":     len(assetIDs),
			},
			&models.BulkMovement{ID: bulkMovementID},
		)
	})
}

// AcknowledgeBulk confirms receipt of a delivered bulk movement.
func (s *MovementService) AcknowledgeBulk(actor *models.User, bulkMovementID int, notes string) error {
	if !actor.Can(roles.CanCreateMovement) {
		return &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %s may not acknowledge movements", actor.Role),
		}
	}

	row, err := s.bulkRepo.GetBulkMovementRow(bulkMovementID)
	if err != nil {
		return err
	}

	observed := metadata.MovementStatus(row.Status)
	if observed == metadata.StatusAcknowledged {
		return &apperrors.DuplicateOperationError{
			Message: fmt.Sprintf("bulk movement %s is already acknowledged", row.TrackingNumber),
		}
	}
	if observed != metadata.StatusDelivered {
		return &apperrors.InvalidTransitionError{From: string(observed), To: string(metadata.StatusAcknowledged)}
	}

	return s.db.WithTransaction(func(tx *goqu.TxDatabase) error {
		updated, err := s.bulkRepo.UpdateBulkMovementStatus(tx, bulkMovementID, observed, metadata.StatusAcknowledged, nil)
		if err != nil {
			return err
		}
		if !updated {
			return &apperrors.ConcurrencyConflictError{Resource: "bulk movement", ID: bulkMovementID}
		}

		description := fmt.Sprintf("Bulk movement %s acknowledged", row.TrackingNumber)
		return s.audit.LogTx(tx, actor, auditlog.ActionMovementAcknowledge, description,
			map[string]interface{}{
				"tracking_number": row.TrackingNumber,
				"notes":           notes,
			},
			&models.BulkMovement{ID: bulkMovementID},
		)
	})
}

// GetBulkMovement assembles a bulk movement with its asset collection.
func (s *MovementService) GetBulkMovement(bulkMovementID int) (*models.BulkMovement, error) {
	row, err := s.bulkRepo.GetBulkMovementRow(bulkMovementID)
	if err != nil {
		return nil, err
	}

	assetIDs, err := s.bulkRepo.GetBulkMovementAssetIDs(bulkMovementID)
	if err != nil {
		return nil, err
	}

	assets, err := s.assets.GetAssetsByIDs(assetIDs)
	if err != nil {
		return nil, err
	}

	var expectedArrival *time.Time
	if row.ExpectedArrival != nil {
		expectedArrival = row.ExpectedArrival
	}

	return &models.BulkMovement{
		ID:              row.ID,
		TrackingNumber:  row.TrackingNumber,
		Assets:          assets,
		FromLocation:    models.Location{ID: row.FromLocationID},
		ToLocation:      models.Location{ID: row.ToLocationID},
		Status:          metadata.MovementStatus(row.Status),
		Priority:        metadata.Priority(row.Priority),
		Reason:          row.Reason,
		Notes:           row.Notes,
		InitiatedBy:     row.InitiatedBy,
		ApprovedBy:      row.ApprovedBy,
		ExpectedArrival: expectedArrival,
		CreatedAt:       row.CreatedAt,
	}, nil
}
