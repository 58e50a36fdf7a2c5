package stocktakes

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
)

type StockTakeRepository struct {
	Repo *repository.Repository
}

func NewStockTakeRepository(r *repository.Repository) *StockTakeRepository {
	return &StockTakeRepository{Repo: r}
}

type flatStockTake struct {
	ID           int        `db:"stock_take_id"`
	ConductedBy  int        `db:"conducted_by"`
	Status       string     `db:"status"`
	Notes        string     `db:"notes"`
	ScheduledFor *time.Time `db:"scheduled_for"`
	CompletedAt  *time.Time `db:"completed_at"`
	CreatedAt    time.Time  `db:"created_at"`
	LocationID   int        `db:"location_id"`
	LocationCode string     `db:"location_code"`
	LocationName string     `db:"location_name"`
}

func (f *flatStockTake) transform() models.StockTake {
	return models.StockTake{
		ID: f.ID,
		Location: models.Location{
			ID:   f.LocationID,
			Code: f.LocationCode,
			Name: f.LocationName,
		},
		ConductedBy:  f.ConductedBy,
		Status:       metadata.StockTakeStatus(f.Status),
		Notes:        f.Notes,
		ScheduledFor: f.ScheduledFor,
		CompletedAt:  f.CompletedAt,
		CreatedAt:    f.CreatedAt,
	}
}

func stockTakeViewQuery(db *goqu.Database) *goqu.SelectDataset {
	return db.
		Select(
			goqu.I("s.id").As("stock_take_id"),
			goqu.I("s.conducted_by").As("conducted_by"),
			goqu.I("s.status").As("status"),
			goqu.I("s.notes").As("notes"),
			goqu.I("s.scheduled_for").As("scheduled_for"),
			goqu.I("s.completed_at").As("completed_at"),
			goqu.I("s.created_at").As("created_at"),
			goqu.I("l.id").As("location_id"),
			goqu.I("l.code").As("location_code"),
			goqu.I("l.name").As("location_name"),
		).
		From(goqu.T("stock_takes").As("s")).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"s.location_id": goqu.I("l.id")}),
		)
}

func (r *StockTakeRepository) InsertStockTake(req models.StockTakeRequest, conductedBy int) (int, error) {
	query := r.Repo.GoquDBWrapper.Insert("stock_takes").
		Rows(goqu.Record{
			"location_id":   req.LocationID,
			"conducted_by":  conductedBy,
			"status":        metadata.StockTakeScheduled,
			"notes":         req.Notes,
			"scheduled_for": req.ScheduledFor,
		}).
		Returning("id")

	var stockTakeID int
	if _, err := query.Executor().ScanVal(&stockTakeID); err != nil {
		return 0, fmt.Errorf("failed to insert stock take: %w", err)
	}

	return stockTakeID, nil
}

func (r *StockTakeRepository) GetStockTake(stockTakeID int) (*models.StockTake, error) {
	var flat flatStockTake

	query := stockTakeViewQuery(r.Repo.GoquDBWrapper).Where(goqu.Ex{"s.id": stockTakeID})

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, &apperrors.NotFoundError{Resource: "stock take", ID: stockTakeID}
	}

	stockTake := flat.transform()

	items, err := r.GetStockTakeItems(stockTakeID)
	if err != nil {
		return nil, err
	}
	stockTake.Items = items

	return &stockTake, nil
}

func (r *StockTakeRepository) GetStockTakes(conditions repository.QueryBuilder) ([]models.StockTake, error) {
	query := stockTakeViewQuery(r.Repo.GoquDBWrapper).Order(goqu.I("s.created_at").Desc())

	if conditions != nil && conditions.HasConditions() {
		aliases := map[string]string{
			"status":      "s.status",
			"location_id": "s.location_id",
		}
		query = query.Where(conditions.BuildConditions(aliases))
	}

	var flats []flatStockTake
	if err := query.Executor().ScanStructs(&flats); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	stockTakes := make([]models.StockTake, 0, len(flats))
	for i := range flats {
		stockTakes = append(stockTakes, flats[i].transform())
	}

	return stockTakes, nil
}

func (r *StockTakeRepository) GetStockTakeItems(stockTakeID int) ([]models.StockTakeItem, error) {
	query := r.Repo.GoquDBWrapper.
		Select("id", "stock_take_id", "asset_id", "found", "condition", "notes").
		From("stock_take_items").
		Where(goqu.Ex{"stock_take_id": stockTakeID}).
		Order(goqu.I("id").Asc())

	var items []models.StockTakeItem
	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return items, nil
}

// UpdateStockTakeStatus moves the stock take forward only from the expected
// status, reporting whether the row changed.
func (r *StockTakeRepository) UpdateStockTakeStatus(stockTakeID int, from, to metadata.StockTakeStatus, completedAt *time.Time) (bool, error) {
	record := goqu.Record{"status": to}
	if completedAt != nil {
		record["completed_at"] = completedAt
	}

	query := r.Repo.GoquDBWrapper.Update("stock_takes").
		Set(record).
		Where(goqu.Ex{"id": stockTakeID, "status": from})

	result, err := query.Executor().Exec()
	if err != nil {
		return false, fmt.Errorf("failed to update stock take %d status: %w", stockTakeID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func (r *StockTakeRepository) UpsertStockTakeItem(stockTakeID int, req models.StockTakeItemRequest) error {
	query := r.Repo.GoquDBWrapper.Insert("stock_take_items").
		Rows(goqu.Record{
			"stock_take_id": stockTakeID,
			"asset_id":      req.AssetID,
			"found":         *req.Found,
			"condition":     req.Condition,
			"notes":         req.Notes,
		}).
		OnConflict(goqu.DoUpdate("stock_take_id, asset_id", goqu.Record{
			"found":     *req.Found,
			"condition": req.Condition,
			"notes":     req.Notes,
		}))

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to record stock take item: %w", err)
	}

	return nil
}
