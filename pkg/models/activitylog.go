package models

import (
	"encoding/json"
	"time"
)

// ActivityLog is an append-only record of a mutating action. Entries are
// never updated or deleted through normal operation.
type ActivityLog struct {
	ID          int                    `json:"id" db:"id"`
	UserID      *int                   `json:"user_id,omitempty" db:"user_id"`
	Action      string                 `json:"action" db:"action"`
	Description string                 `json:"description" db:"description"`
	TargetID    int                    `json:"target_id" db:"target_id"`
	TargetType  string                 `json:"target_type" db:"target_type"`
	DataRaw     string                 `json:"-" db:"data"` // JSON as string
	Data        map[string]interface{} `json:"data" db:"-"`
	IPAddress   *string                `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent   *string                `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt   time.Time              `json:"created_at" db:"created_at"`
}

func (a *ActivityLog) LoadFromDB() {
	if a.DataRaw != "" {
		_ = json.Unmarshal([]byte(a.DataRaw), &a.Data)
	}
}
