package metadata

import "fmt"

// MovementStatus is the lifecycle state of a movement or bulk movement.
type MovementStatus string

const (
	StatusPending      MovementStatus = "pending"
	StatusInTransit    MovementStatus = "in_transit"
	StatusCompleted    MovementStatus = "completed"
	StatusDelivered    MovementStatus = "delivered"
	StatusAcknowledged MovementStatus = "acknowledged"
	StatusCancelled    MovementStatus = "cancelled"
)

func NewMovementStatus(value string) (MovementStatus, error) {
	status := MovementStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid movement status: %s", value)
	}
	return status, nil
}

func (s MovementStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusCompleted, StatusDelivered, StatusAcknowledged, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed from s.
// Delivered is not terminal: it still awaits acknowledgement.
func (s MovementStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusAcknowledged, StatusCancelled:
		return true
	default:
		return false
	}
}

// AssetStatus is the lifecycle state of an asset.
type AssetStatus string

const (
	AssetAvailable   AssetStatus = "available"
	AssetInTransit   AssetStatus = "in_transit"
	AssetInUse       AssetStatus = "in_use"
	AssetMaintenance AssetStatus = "maintenance"
)

func (s AssetStatus) IsValid() bool {
	switch s {
	case AssetAvailable, AssetInTransit, AssetInUse, AssetMaintenance:
		return true
	default:
		return false
	}
}

// StockTakeStatus is the lifecycle state of a stock take.
type StockTakeStatus string

const (
	StockTakeScheduled  StockTakeStatus = "scheduled"
	StockTakeInProgress StockTakeStatus = "in_progress"
	StockTakeCompleted  StockTakeStatus = "completed"
)

// Priority ranks how urgently a movement should be handled.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}
