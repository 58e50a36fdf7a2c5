package models

import (
	"time"

	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
)

// StockTake reconciles the physical assets at a location against records.
type StockTake struct {
	ID           int                      `json:"id"`
	Location     Location                 `json:"location"`
	ConductedBy  int                      `json:"conducted_by"`
	Status       metadata.StockTakeStatus `json:"status"`
	Notes        string                   `json:"notes,omitempty"`
	ScheduledFor *time.Time               `json:"scheduled_for,omitempty"`
	CompletedAt  *time.Time               `json:"completed_at,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	Items        []StockTakeItem          `json:"items,omitempty"`
}

type StockTakeItem struct {
	ID          int    `json:"id" db:"id"`
	StockTakeID int    `json:"stock_take_id" db:"stock_take_id"`
	AssetID     int    `json:"asset_id" db:"asset_id"`
	Found       bool   `json:"found" db:"found"`
	Condition   string `json:"condition" db:"condition"`
	Notes       string `json:"notes" db:"notes"`
}

type StockTakeRequest struct {
	LocationID   int        `json:"location_id" binding:"required"`
	Notes        string     `json:"notes"`
	ScheduledFor *time.Time `json:"scheduled_for"`
}

type StockTakeItemRequest struct {
	AssetID   int    `json:"asset_id" binding:"required"`
	Found     *bool  `json:"found" binding:"required"`
	Condition string `json:"condition"`
	Notes     string `json:"notes"`
}

func (s *StockTake) CreateLogView() ActivityLog {
	return ActivityLog{
		TargetID:   s.ID,
		TargetType: "stock_take",
	}
}
