package movements

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
)

type BulkMovementRepository interface {
	InsertBulkMovementRecord(tx *goqu.TxDatabase, req models.BulkMovementRequest, trackingNumber string, initiatedBy int, priority metadata.Priority) (int, error)
	InsertBulkMovementAssets(tx *goqu.TxDatabase, bulkMovementID int, assetIDs []int) error
	GetBulkMovementRow(bulkMovementID int) (*BulkMovementRow, error)
	GetBulkMovementAssetIDs(bulkMovementID int) ([]int, error)
	UpdateBulkMovementStatus(tx *goqu.TxDatabase, bulkMovementID int, observed, next metadata.MovementStatus, approvedBy *int) (bool, error)
}

// BulkMovementRow is the unjoined bulk_movements row used by workflow
// decisions.
type BulkMovementRow struct {
	ID              int        `db:"id"`
	TrackingNumber  string     `db:"tracking_number"`
	FromLocationID  int        `db:"from_location_id"`
	ToLocationID    int        `db:"to_location_id"`
	Status          string     `db:"status"`
	Priority        string     `db:"priority"`
	Reason          string     `db:"reason"`
	Notes           string     `db:"notes"`
	InitiatedBy     int        `db:"initiated_by"`
	ApprovedBy      *int       `db:"approved_by"`
	ExpectedArrival *time.Time `db:"expected_arrival"`
	CreatedAt       time.Time  `db:"created_at"`
}

type bulkMovementRepository struct {
	Repo *repository.Repository
}

func NewBulkRepository(r *repository.Repository) BulkMovementRepository {
	return &bulkMovementRepository{Repo: r}
}

func (r *bulkMovementRepository) InsertBulkMovementRecord(tx *goqu.TxDatabase, req models.BulkMovementRequest, trackingNumber string, initiatedBy int, priority metadata.Priority) (int, error) {
	query := tx.Insert("bulk_movements").
		Rows(goqu.Record{
			"tracking_number":  trackingNumber,
			"from_location_id": req.FromLocationID,
			"to_location_id":   req.ToLocationID,
			"status":           metadata.StatusPending,
			"priority":         priority,
			"reason":           req.Reason,
			"notes":            req.Notes,
			"initiated_by":     initiatedBy,
			"expected_arrival": req.ExpectedArrival,
		}).
		Returning("id")

	var bulkMovementID int
	if _, err := query.Executor().ScanVal(&bulkMovementID); err != nil {
		return 0, fmt.Errorf("failed to insert bulk movement record: %w", err)
	}

	return bulkMovementID, nil
}

func (r *bulkMovementRepository) InsertBulkMovementAssets(tx *goqu.TxDatabase, bulkMovementID int, assetIDs []int) error {
	var records []goqu.Record
	for _, assetID := range assetIDs {
		records = append(records, goqu.Record{
			"bulk_movement_id": bulkMovementID,
			"asset_id":         assetID,
		})
	}

	query := tx.Insert("bulk_movement_assets").Rows(records)

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert bulk movement assets: %w", err)
	}

	return nil
}

func (r *bulkMovementRepository) GetBulkMovementRow(bulkMovementID int) (*BulkMovementRow, error) {
	var row BulkMovementRow

	query := r.Repo.GoquDBWrapper.
		Select(
			"id", "tracking_number", "from_location_id", "to_location_id",
			"status", "priority", "reason", "notes", "initiated_by",
			"approved_by", "expected_arrival", "created_at",
		).
		From("bulk_movements").
		Where(goqu.Ex{"id": bulkMovementID})

	found, err := query.Executor().ScanStruct(&row)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, &apperrors.NotFoundError{Resource: "bulk movement", ID: bulkMovementID}
	}

	return &row, nil
}

func (r *bulkMovementRepository) GetBulkMovementAssetIDs(bulkMovementID int) ([]int, error) {
	query := r.Repo.GoquDBWrapper.
		Select("asset_id").
		From("bulk_movement_assets").
		Where(goqu.Ex{"bulk_movement_id": bulkMovementID})

	var assetIDs []int
	if err := query.Executor().ScanVals(&assetIDs); err != nil {
		return nil, fmt.Errorf("failed to get bulk movement assets: %w", err)
	}

	return assetIDs, nil
}

func (r *bulkMovementRepository) UpdateBulkMovementStatus(tx *goqu.TxDatabase, bulkMovementID int, observed, next metadata.MovementStatus, approvedBy *int) (bool, error) {
	record := goqu.Record{"status": next}
	if approvedBy != nil {
		record["approved_by"] = *approvedBy
	}

	query := tx.Update("bulk_movements").
		Set(record).
		Where(goqu.Ex{
			"id":     bulkMovementID,
			"status": observed,
		})

	result, err := query.Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to update bulk movement %d status: %w", bulkMovementID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}
