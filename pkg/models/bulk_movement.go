package models

import (
	"time"

	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
)

// BulkMovement groups many assets transferred together between two
// locations under a single tracking number and lifecycle status.
type BulkMovement struct {
	ID              int                     `json:"id"`
	TrackingNumber  string                  `json:"tracking_number"`
	Assets          []Asset                 `json:"assets"`
	FromLocation    Location                `json:"from_location"`
	ToLocation      Location                `json:"to_location"`
	Status          metadata.MovementStatus `json:"status"`
	Priority        metadata.Priority       `json:"priority"`
	Reason          string                  `json:"reason"`
	Notes           string                  `json:"notes,omitempty"`
	InitiatedBy     int                     `json:"initiated_by"`
	ApprovedBy      *int                    `json:"approved_by,omitempty"`
	ExpectedArrival *time.Time              `json:"expected_arrival,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
}

type BulkMovementRequest struct {
	AssetIDs        []int      `json:"asset_ids" binding:"required"`
	FromLocationID  int        `json:"from_location_id" binding:"required"`
	ToLocationID    int        `json:"to_location_id" binding:"required"`
	Priority        string     `json:"priority"`
	Reason          string     `json:"reason"`
	Notes           string     `json:"notes"`
	ExpectedArrival *time.Time `json:"expected_arrival"`
}

func (m *BulkMovement) CreateLogView() ActivityLog {
	return ActivityLog{
		TargetID:   m.ID,
		TargetType: "bulk_movement",
	}
}
