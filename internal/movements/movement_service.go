package movements

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/auditlog"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
)

// AssetStore is the slice of the asset repository the workflow engine
// needs: presence validation, relocation and status updates.
type AssetStore interface {
	HasAssetsInLocation(assetIDs []int, locationID int) (bool, error)
	GetAssetsByIDs(assetIDs []int) ([]models.Asset, error)
	MoveAssets(tx *goqu.TxDatabase, assetIDs []int, locationID int, status metadata.AssetStatus) error
	UpdateAssetStatuses(tx *goqu.TxDatabase, assetIDs []int, status metadata.AssetStatus) error
}

// AuditSink records activity log entries inside the workflow transaction,
// so a state change and its audit entry commit or roll back together.
type AuditSink interface {
	LogTx(tx *goqu.TxDatabase, actor *models.User, action, description string, data interface{}, item auditlog.Auditable) error
}

type MovementService struct {
	db       repository.TxRunner
	repo     MovementRepository
	bulkRepo BulkMovementRepository
	assets   AssetStore
	audit    AuditSink
	log      *zap.Logger
}

func NewService(db repository.TxRunner, repo MovementRepository, bulkRepo BulkMovementRepository, assets AssetStore, audit AuditSink, log *zap.Logger) *MovementService {
	return &MovementService{
		db:       db,
		repo:     repo,
		bulkRepo: bulkRepo,
		assets:   assets,
		audit:    audit,
		log:      log,
	}
}

// CreateMovement records a new pending movement for a single asset and
// assigns it a tracking number.
func (s *MovementService) CreateMovement(actor *models.User, req models.MovementRequest) (*models.Movement, error) {
	if !actor.Can(roles.CanCreateMovement) {
		return nil, &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %s may not create movements", actor.Role),
		}
	}

	priority, err := resolvePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	if req.FromLocationID == req.ToLocationID {
		return nil, &apperrors.ValidationError{
			Message:  "movement from and to location cannot be the same",
			Property: "to_location_id",
		}
	}

	onStock, err := s.assets.HasAssetsInLocation([]int{req.AssetID}, req.FromLocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate asset location: %w", err)
	}
	if !onStock {
		return nil, &apperrors.ValidationError{
			Message:  "asset is not present in source location",
			Property: "asset_id",
		}
	}

	trackingNumber := NewTrackingNumber(movementTrackingPrefix)

	var movementID int
	err = s.db.WithTransaction(func(tx *goqu.TxDatabase) error {
		var err error
		if movementID, err = s.repo.InsertMovementRecord(tx, req, trackingNumber, actor.ID, priority); err != nil {
			return err
		}

		description := fmt.Sprintf("Created movement %s for 1 asset from location %d to location %d",
			trackingNumber, req.FromLocationID, req.ToLocationID)

		return s.audit.LogTx(tx, actor, auditlog.ActionMovementCreate, description,
			map[string]interface{}{
				"tracking_number":  trackingNumber,
				"asset_id":         req.AssetID,
				"from_location_id": req.FromLocationID,
				"to_location_id":   req.ToLocationID,
			},
			&models.Movement{ID: movementID},
		)
	})
	if err != nil {
		return nil, err
	}

	return s.GetMovement(movementID)
}

// TransitionStatus applies a status change to a movement, enforcing the
// state machine, capability requirements and separation of duties.
// Re-requesting the status the record already holds is a no-op success.
func (s *MovementService) TransitionStatus(actor *models.User, movementID int, newStatus metadata.MovementStatus) error {
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

	row, err := s.repo.GetMovementRow(movementID)
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
		s.log.Warn("movement transition rejected",
			zap.Int("movement_id", movementID),
			zap.Int("actor_id", actor.ID),
			zap.String("from", string(observed)),
			zap.String("to", string(newStatus)),
			zap.Error(err),
		)
		return err
	}

	var approvedBy *int
	if recordsApprover(newStatus) {
		approvedBy = &actor.ID
	}

	var actualArrival *time.Time
	if newStatus == metadata.StatusDelivered || newStatus == metadata.StatusCompleted {
		now := time.Now().UTC()
		actualArrival = &now
	}

	return s.db.WithTransaction(func(tx *goqu.TxDatabase) error {
		updated, err := s.repo.UpdateMovementStatus(tx, movementID, observed, newStatus, approvedBy, actualArrival)
		if err != nil {
			return err
		}
		if !updated {
			return &apperrors.ConcurrencyConflictError{Resource: "movement", ID: movementID}
		}

		if err := s.applyAssetEffects(tx, []int{row.AssetID}, row.ToLocationID, observed, newStatus); err != nil {
			return err
		}

		action := transitionAction("movement", observed, newStatus)
		description := fmt.Sprintf("Movement %s changed from %s to %s", row.TrackingNumber, observed, newStatus)

		return s.audit.LogTx(tx, actor, action, description,
			map[string]interface{}{
				"tracking_number": row.TrackingNumber,
				"from_status":     observed,
				"to_status":       newStatus,
			},
			&models.Movement{ID: movementID},
		)
	})
}

// Acknowledge confirms receipt of a delivered movement. It creates the
// acknowledgement record exactly once and moves the record to acknowledged.
func (s *MovementService) Acknowledge(actor *models.User, movementID int, notes string) (*models.MovementAcknowledgement, error) {
	if !actor.Can(roles.CanCreateMovement) {
		return nil, &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %s may not acknowledge movements", actor.Role),
		}
	}

	row, err := s.repo.GetMovementRow(movementID)
	if err != nil {
		return nil, err
	}

	observed := metadata.MovementStatus(row.Status)
	if observed == metadata.StatusAcknowledged {
		return nil, &apperrors.DuplicateOperationError{
			Message: fmt.Sprintf("movement %s is already acknowledged", row.TrackingNumber),
		}
	}
	if observed != metadata.StatusDelivered {
		return nil, &apperrors.InvalidTransitionError{From: string(observed), To: string(metadata.StatusAcknowledged)}
	}

	exists, err := s.repo.HasAcknowledgement(movementID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &apperrors.DuplicateOperationError{
			Message: fmt.Sprintf("movement %s is already acknowledged", row.TrackingNumber),
		}
	}

	ack := models.MovementAcknowledgement{
		MovementID:     movementID,
		AcknowledgedBy: actor.ID,
		Notes:          notes,
	}

	err = s.db.WithTransaction(func(tx *goqu.TxDatabase) error {
		ackID, err := s.repo.InsertAcknowledgement(tx, ack)
		if err != nil {
			return err
		}
		ack.ID = ackID

		updated, err := s.repo.UpdateMovementStatus(tx, movementID, observed, metadata.StatusAcknowledged, nil, nil)
		if err != nil {
			return err
		}
		if !updated {
			return &apperrors.ConcurrencyConflictError{Resource: "movement", ID: movementID}
		}

		description := fmt.Sprintf("Movement %s acknowledged", row.TrackingNumber)
		return s.audit.LogTx(tx, actor, auditlog.ActionMovementAcknowledge, description,
			map[string]interface{}{
				"tracking_number": row.TrackingNumber,
				"notes":           notes,
			},
			&models.Movement{ID: movementID},
		)
	})
	if err != nil {
		return nil, err
	}

	return &ack, nil
}

func (s *MovementService) GetMovement(movementID int) (*models.Movement, error) {
	flat, err := s.repo.GetMovementView(movementID)
	if err != nil {
		return nil, err
	}

	movement := flat.TransformToMovement()
	return &movement, nil
}

func (s *MovementService) GetMovements(conditions repository.QueryBuilder) ([]models.Movement, error) {
	flatMovements, err := s.repo.GetMovementViews(conditions)
	if err != nil {
		return nil, err
	}

	movements := make([]models.Movement, 0, len(flatMovements))
	for i := range flatMovements {
		movements = append(movements, flatMovements[i].TransformToMovement())
	}

	return movements, nil
}

func (s *MovementService) GetAcknowledgement(movementID int) (*models.MovementAcknowledgement, error) {
	return s.repo.GetAcknowledgement(movementID)
}

// applyAssetEffects keeps asset statuses consistent with the movement's
// new state, inside the same transaction.
func (s *MovementService) applyAssetEffects(tx *goqu.TxDatabase, assetIDs []int, toLocationID int, observed, next metadata.MovementStatus) error {
	switch next {
	case metadata.StatusInTransit:
		return s.assets.UpdateAssetStatuses(tx, assetIDs, metadata.AssetInTransit)
	case metadata.StatusCompleted, metadata.StatusDelivered:
		return s.assets.MoveAssets(tx, assetIDs, toLocationID, metadata.AssetAvailable)
	case metadata.StatusCancelled:
		if observed == metadata.StatusInTransit {
			return s.assets.UpdateAssetStatuses(tx, assetIDs, metadata.AssetAvailable)
		}
		return nil
	default:
		return nil
	}
}

func transitionAction(kind string, from, to metadata.MovementStatus) string {
	switch {
	case to == metadata.StatusCancelled:
		return kind + "_cancel"
	case isApprovalTransition(from, to):
		return kind + "_approve"
	default:
		return kind + "_update"
	}
}

func resolvePriority(value string) (metadata.Priority, error) {
	if value == "" {
		return metadata.PriorityNormal, nil
	}

	priority := metadata.Priority(value)
	if !priority.IsValid() {
		return "", &apperrors.ValidationError{
			Message:  fmt.Sprintf("unknown priority: %s", value),
			Property: "priority",
		}
	}

	return priority, nil
}
