package assets

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
)

type AssetsRepository struct {
	Repo *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{Repo: r}
}

// HasAssetsInLocation reports whether every listed asset currently sits in
// the given location.
func (r *AssetsRepository) HasAssetsInLocation(assetIDs []int, locationID int) (bool, error) {
	sql, args, err := r.Repo.GoquDBWrapper.Select(goqu.COUNT("id")).From("assets").Where(goqu.Ex{
		"location_id": locationID,
		"id":          assetIDs,
	}).ToSQL()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	err = r.Repo.DB.QueryRow(sql, args...).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to execute query: %w", err)
	}

	return count == len(assetIDs), nil
}

func assetViewQuery(db *goqu.Database) *goqu.SelectDataset {
	return db.
		Select(
			goqu.I("a.id").As("asset_id"),
			goqu.I("a.asset_code").As("asset_code"),
			goqu.I("a.name").As("asset_name"),
			goqu.I("a.status").As("status"),
			goqu.I("a.responsible_person_id").As("responsible_person_id"),
			goqu.I("a.created_by").As("created_by"),
			goqu.I("a.created_at").As("created_at"),
			goqu.I("l.id").As("location_id"),
			goqu.I("l.code").As("location_code"),
			goqu.I("l.name").As("location_name"),
			goqu.I("c.id").As("category_id"),
			goqu.I("c.name").As("category_name"),
			goqu.I("c.label").As("category_label"),
		).
		From(goqu.T("assets").As("a")).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"a.location_id": goqu.I("l.id")}),
		).
		LeftJoin(
			goqu.T("asset_categories").As("c"),
			goqu.On(goqu.Ex{"a.category_id": goqu.I("c.id")}),
		)
}

func (r *AssetsRepository) GetAssetsByIDs(assetIDs []int) ([]models.Asset, error) {
	if len(assetIDs) == 0 {
		return []models.Asset{}, nil
	}

	query := assetViewQuery(r.Repo.GoquDBWrapper).Where(goqu.I("a.id").In(assetIDs))

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	assets := make([]models.Asset, 0, len(flatAssets))
	for i := range flatAssets {
		assets = append(assets, flatAssets[i].TransformToAsset())
	}

	return assets, nil
}

func (r *AssetsRepository) GetAsset(assetID int) (*models.Asset, error) {
	var flat models.FlatAssetRecord

	query := assetViewQuery(r.Repo.GoquDBWrapper).Where(goqu.Ex{"a.id": assetID})

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, &apperrors.NotFoundError{Resource: "asset", ID: assetID}
	}

	asset := flat.TransformToAsset()
	return &asset, nil
}

func (r *AssetsRepository) GetAssets(conditions repository.QueryBuilder) ([]models.Asset, error) {
	query := assetViewQuery(r.Repo.GoquDBWrapper).Order(goqu.I("a.asset_code").Asc())

	if conditions != nil && conditions.HasConditions() {
		aliases := map[string]string{
			"status":      "a.status",
			"location_id": "a.location_id",
			"category_id": "a.category_id",
		}
		query = query.Where(conditions.BuildConditions(aliases))
	}

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	assets := make([]models.Asset, 0, len(flatAssets))
	for i := range flatAssets {
		assets = append(assets, flatAssets[i].TransformToAsset())
	}

	return assets, nil
}

func (r *AssetsRepository) InsertAsset(req AssetCreateRequest, createdBy int) (int, error) {
	query := r.Repo.GoquDBWrapper.Insert("assets").
		Rows(goqu.Record{
			"asset_code":            req.AssetCode,
			"name":                  req.Name,
			"category_id":           req.CategoryID,
			"location_id":           req.LocationID,
			"status":                metadata.AssetAvailable,
			"responsible_person_id": req.ResponsiblePersonID,
			"created_by":            createdBy,
		}).
		Returning("id")

	var assetID int
	if _, err := query.Executor().ScanVal(&assetID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, apperrors.WrapDBError(fmt.Sprintf("asset code %s", req.AssetCode), string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert asset: %w", err)
	}

	return assetID, nil
}

// MoveAssets relocates assets and sets their status in one statement.
func (r *AssetsRepository) MoveAssets(tx *goqu.TxDatabase, assetIDs []int, locationID int, status metadata.AssetStatus) error {
	query := tx.From("assets").Update().
		Set(goqu.Record{
			"location_id": locationID,
			"status":      status,
		}).
		Where(goqu.C("id").In(assetIDs))

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to move assets: %w", err)
	}

	return nil
}

func (r *AssetsRepository) UpdateAssetStatuses(tx *goqu.TxDatabase, assetIDs []int, status metadata.AssetStatus) error {
	query := tx.From("assets").Update().
		Set(goqu.Record{"status": status}).
		Where(goqu.C("id").In(assetIDs))

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update asset statuses: %w", err)
	}

	return nil
}

func (r *AssetsRepository) UpdateAssetStatus(assetID int, status metadata.AssetStatus) error {
	query := r.Repo.GoquDBWrapper.Update("assets").
		Set(goqu.Record{"status": status}).
		Where(goqu.Ex{"id": assetID})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update asset %d status: %w", assetID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "asset", ID: assetID}
	}

	return nil
}
