package models

import "time"

// MovementAcknowledgement confirms receipt of a delivered movement.
// Created exactly once per movement.
type MovementAcknowledgement struct {
	ID             int       `json:"id" db:"id"`
	MovementID     int       `json:"movement_id" db:"movement_id"`
	AcknowledgedBy int       `json:"acknowledged_by" db:"acknowledged_by"`
	Notes          string    `json:"notes" db:"notes"`
	AcknowledgedAt time.Time `json:"acknowledged_at" db:"acknowledged_at"`
}
