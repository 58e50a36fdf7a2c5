package models

import (
	"time"

	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
)

type Asset struct {
	ID                  int                  `json:"id"`
	AssetCode           string               `json:"asset_code"`
	Name                string               `json:"name"`
	Category            AssetCategory        `json:"category"`
	Location            Location             `json:"location,omitempty"`
	Status              metadata.AssetStatus `json:"status"`
	ResponsiblePersonID *int                 `json:"responsible_person_id,omitempty"`
	CreatedBy           *int                 `json:"created_by,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}

type AssetCategory struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Label string `json:"label" db:"label"`
}

// FlatAssetRecord is the joined row shape returned by asset queries.
type FlatAssetRecord struct {
	ID                  int       `db:"asset_id"`
	AssetCode           string    `db:"asset_code"`
	Name                string    `db:"asset_name"`
	Status              string    `db:"status"`
	ResponsiblePersonID *int      `db:"responsible_person_id"`
	CreatedBy           *int      `db:"created_by"`
	CreatedAt           time.Time `db:"created_at"`
	LocationID          int       `db:"location_id"`
	LocationCode        string    `db:"location_code"`
	LocationName        string    `db:"location_name"`
	CategoryID          int       `db:"category_id"`
	CategoryName        string    `db:"category_name"`
	CategoryLabel       string    `db:"category_label"`
}

func (fa *FlatAssetRecord) TransformToAsset() Asset {
	return Asset{
		ID:                  fa.ID,
		AssetCode:           fa.AssetCode,
		Name:                fa.Name,
		Status:              metadata.AssetStatus(fa.Status),
		ResponsiblePersonID: fa.ResponsiblePersonID,
		CreatedBy:           fa.CreatedBy,
		CreatedAt:           fa.CreatedAt,
		Location: Location{
			ID:   fa.LocationID,
			Code: fa.LocationCode,
			Name: fa.LocationName,
		},
		Category: AssetCategory{
			ID:    fa.CategoryID,
			Name:  fa.CategoryName,
			Label: fa.CategoryLabel,
		},
	}
}

func (a *Asset) CreateLogView() ActivityLog {
	return ActivityLog{
		TargetID:   a.ID,
		TargetType: "asset",
	}
}
