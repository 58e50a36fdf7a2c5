package models

import (
	"time"

	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
)

// Movement records one asset's transfer between two locations. Asset and
// location references are immutable after creation; only status and
// descriptive fields change.
type Movement struct {
	ID              int                     `json:"id"`
	TrackingNumber  string                  `json:"tracking_number"`
	Asset           Asset                   `json:"asset"`
	FromLocation    Location                `json:"from_location"`
	ToLocation      Location                `json:"to_location"`
	Status          metadata.MovementStatus `json:"status"`
	Priority        metadata.Priority       `json:"priority"`
	Reason          string                  `json:"reason"`
	Notes           string                  `json:"notes,omitempty"`
	InitiatedBy     int                     `json:"initiated_by"`
	ApprovedBy      *int                    `json:"approved_by,omitempty"`
	ExpectedArrival *time.Time              `json:"expected_arrival,omitempty"`
	ActualArrival   *time.Time              `json:"actual_arrival,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
}

type MovementRequest struct {
	AssetID         int        `json:"asset_id" binding:"required"`
	FromLocationID  int        `json:"from_location_id" binding:"required"`
	ToLocationID    int        `json:"to_location_id" binding:"required"`
	Priority        string     `json:"priority"`
	Reason          string     `json:"reason"`
	Notes           string     `json:"notes"`
	ExpectedArrival *time.Time `json:"expected_arrival"`
}

func (m *Movement) CreateLogView() ActivityLog {
	return ActivityLog{
		TargetID:   m.ID,
		TargetType: "movement",
	}
}
