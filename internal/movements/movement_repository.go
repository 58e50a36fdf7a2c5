package movements

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
)

type MovementRepository interface {
	InsertMovementRecord(tx *goqu.TxDatabase, req models.MovementRequest, trackingNumber string, initiatedBy int, priority metadata.Priority) (int, error)
	GetMovementRow(movementID int) (*MovementRow, error)
	GetMovementView(movementID int) (*FlatMovement, error)
	GetMovementViews(conditions repository.QueryBuilder) ([]FlatMovement, error)
	UpdateMovementStatus(tx *goqu.TxDatabase, movementID int, observed, next metadata.MovementStatus, approvedBy *int, actualArrival *time.Time) (bool, error)
	HasAcknowledgement(movementID int) (bool, error)
	InsertAcknowledgement(tx *goqu.TxDatabase, ack models.MovementAcknowledgement) (int, error)
	GetAcknowledgement(movementID int) (*models.MovementAcknowledgement, error)
}

// MovementRow is the unjoined movements row used by workflow decisions.
type MovementRow struct {
	ID              int        `db:"id"`
	TrackingNumber  string     `db:"tracking_number"`
	AssetID         int        `db:"asset_id"`
	FromLocationID  int        `db:"from_location_id"`
	ToLocationID    int        `db:"to_location_id"`
	Status          string     `db:"status"`
	Priority        string     `db:"priority"`
	InitiatedBy     int        `db:"initiated_by"`
	ApprovedBy      *int       `db:"approved_by"`
	ExpectedArrival *time.Time `db:"expected_arrival"`
}

// FlatMovement is the joined row shape returned by movement list and
// detail queries.
type FlatMovement struct {
	ID               int        `db:"movement_id"`
	TrackingNumber   string     `db:"tracking_number"`
	AssetID          int        `db:"asset_id"`
	AssetCode        string     `db:"asset_code"`
	AssetName        string     `db:"asset_name"`
	FromLocationID   int        `db:"from_location_id"`
	FromLocationCode string     `db:"from_location_code"`
	FromLocationName string     `db:"from_location_name"`
	ToLocationID     int        `db:"to_location_id"`
	ToLocationCode   string     `db:"to_location_code"`
	ToLocationName   string     `db:"to_location_name"`
	Status           string     `db:"movement_status"`
	Priority         string     `db:"priority"`
	Reason           string     `db:"reason"`
	Notes            string     `db:"notes"`
	InitiatedBy      int        `db:"initiated_by"`
	ApprovedBy       *int       `db:"approved_by"`
	ExpectedArrival  *time.Time `db:"expected_arrival"`
	ActualArrival    *time.Time `db:"actual_arrival"`
	CreatedAt        time.Time  `db:"created_at"`
}

func (f *FlatMovement) TransformToMovement() models.Movement {
	return models.Movement{
		ID:             f.ID,
		TrackingNumber: f.TrackingNumber,
		Asset: models.Asset{
			ID:        f.AssetID,
			AssetCode: f.AssetCode,
			Name:      f.AssetName,
		},
		FromLocation: models.Location{
			ID:   f.FromLocationID,
			Code: f.FromLocationCode,
			Name: f.FromLocationName,
		},
		ToLocation: models.Location{
			ID:   f.ToLocationID,
			Code: f.ToLocationCode,
			Name: f.ToLocationName,
		},
		Status:          metadata.MovementStatus(f.Status),
		Priority:        metadata.Priority(f.Priority),
		Reason:          f.Reason,
		Notes:           f.Notes,
		InitiatedBy:     f.InitiatedBy,
		ApprovedBy:      f.ApprovedBy,
		ExpectedArrival: f.ExpectedArrival,
		ActualArrival:   f.ActualArrival,
		CreatedAt:       f.CreatedAt,
	}
}

type movementRepository struct {
	Repo *repository.Repository
}

func NewRepository(r *repository.Repository) MovementRepository {
	return &movementRepository{Repo: r}
}

func (r *movementRepository) InsertMovementRecord(tx *goqu.TxDatabase, req models.MovementRequest, trackingNumber string, initiatedBy int, priority metadata.Priority) (int, error) {
	query := tx.Insert("movements").
		Rows(goqu.Record{
			"tracking_number":  trackingNumber,
			"asset_id":         req.AssetID,
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

	var movementID int
	if _, err := query.Executor().ScanVal(&movementID); err != nil {
		return 0, fmt.Errorf("failed to insert movement record: %w", err)
	}

	return movementID, nil
}

func (r *movementRepository) GetMovementRow(movementID int) (*MovementRow, error) {
	var row MovementRow

	query := r.Repo.GoquDBWrapper.
		Select(
			"id", "tracking_number", "asset_id", "from_location_id", "to_location_id",
			"status", "priority", "initiated_by", "approved_by", "expected_arrival",
		).
		From("movements").
		Where(goqu.Ex{"id": movementID})

	found, err := query.Executor().ScanStruct(&row)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, &apperrors.NotFoundError{Resource: "movement", ID: movementID}
	}

	return &row, nil
}

func movementViewQuery(db *goqu.Database) *goqu.SelectDataset {
	return db.
		Select(
			goqu.I("m.id").As("movement_id"),
			goqu.I("m.tracking_number").As("tracking_number"),
			goqu.I("a.id").As("asset_id"),
			goqu.I("a.asset_code").As("asset_code"),
			goqu.I("a.name").As("asset_name"),
			goqu.I("l1.id").As("from_location_id"),
			goqu.I("l1.code").As("from_location_code"),
			goqu.I("l1.name").As("from_location_name"),
			goqu.I("l2.id").As("to_location_id"),
			goqu.I("l2.code").As("to_location_code"),
			goqu.I("l2.name").As("to_location_name"),
			goqu.I("m.status").As("movement_status"),
			goqu.I("m.priority").As("priority"),
			goqu.I("m.reason").As("reason"),
			goqu.I("m.notes").As("notes"),
			goqu.I("m.initiated_by").As("initiated_by"),
			goqu.I("m.approved_by").As("approved_by"),
			goqu.I("m.expected_arrival").As("expected_arrival"),
			goqu.I("m.actual_arrival").As("actual_arrival"),
			goqu.I("m.created_at").As("created_at"),
		).
		From(goqu.T("movements").As("m")).
		LeftJoin(
			goqu.T("assets").As("a"),
			goqu.On(goqu.Ex{"m.asset_id": goqu.I("a.id")}),
		).
		LeftJoin(
			goqu.T("locations").As("l1"),
			goqu.On(goqu.Ex{"m.from_location_id": goqu.I("l1.id")}),
		).
		LeftJoin(
			goqu.T("locations").As("l2"),
			goqu.On(goqu.Ex{"m.to_location_id": goqu.I("l2.id")}),
		)
}

func (r *movementRepository) GetMovementView(movementID int) (*FlatMovement, error) {
	var flat FlatMovement

	query := movementViewQuery(r.Repo.GoquDBWrapper).Where(goqu.Ex{"m.id": movementID})

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, &apperrors.NotFoundError{Resource: "movement", ID: movementID}
	}

	return &flat, nil
}

func (r *movementRepository) GetMovementViews(conditions repository.QueryBuilder) ([]FlatMovement, error) {
	query := movementViewQuery(r.Repo.GoquDBWrapper).Order(goqu.I("m.created_at").Desc())

	if conditions != nil && conditions.HasConditions() {
		aliases := map[string]string{
			"status":           "m.status",
			"asset_id":         "m.asset_id",
			"from_location_id": "m.from_location_id",
			"to_location_id":   "m.to_location_id",
			"initiated_by":     "m.initiated_by",
		}
		query = query.Where(conditions.BuildConditions(aliases))
	}

	var flatMovements []FlatMovement
	if err := query.Executor().ScanStructs(&flatMovements); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return flatMovements, nil
}

// UpdateMovementStatus applies the transition only if the row still holds
// the observed status. A false return means another request changed the
// row first.
func (r *movementRepository) UpdateMovementStatus(tx *goqu.TxDatabase, movementID int, observed, next metadata.MovementStatus, approvedBy *int, actualArrival *time.Time) (bool, error) {
	record := goqu.Record{"status": next}
	if approvedBy != nil {
		record["approved_by"] = *approvedBy
	}
	if actualArrival != nil {
		record["actual_arrival"] = *actualArrival
	}

	query := tx.Update("movements").
		Set(record).
		Where(goqu.Ex{
			"id":     movementID,
			"status": observed,
		})

	result, err := query.Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to update movement %d status: %w", movementID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func (r *movementRepository) HasAcknowledgement(movementID int) (bool, error) {
	var count int
	query := r.Repo.GoquDBWrapper.From("movement_acknowledgements").
		Select(goqu.COUNT("id")).
		Where(goqu.Ex{"movement_id": movementID})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("failed to check acknowledgement: %w", err)
	}

	return count > 0, nil
}

func (r *movementRepository) InsertAcknowledgement(tx *goqu.TxDatabase, ack models.MovementAcknowledgement) (int, error) {
	query := tx.Insert("movement_acknowledgements").
		Rows(goqu.Record{
			"movement_id":     ack.MovementID,
			"acknowledged_by": ack.AcknowledgedBy,
			"notes":           ack.Notes,
		}).
		Returning("id")

	var ackID int
	if _, err := query.Executor().ScanVal(&ackID); err != nil {
		return 0, fmt.Errorf("failed to insert acknowledgement: %w", err)
	}

	return ackID, nil
}

func (r *movementRepository) GetAcknowledgement(movementID int) (*models.MovementAcknowledgement, error) {
	var ack models.MovementAcknowledgement

	query := r.Repo.GoquDBWrapper.
		Select("id", "movement_id", "acknowledged_by", "notes", "acknowledged_at").
		From("movement_acknowledgements").
		Where(goqu.Ex{"movement_id": movementID})

	found, err := query.Executor().ScanStruct(&ack)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, &apperrors.NotFoundError{Resource: "acknowledgement", ID: movementID}
	}

	return &ack, nil
}
