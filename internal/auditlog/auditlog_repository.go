package auditlog

import (
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
)

type ActivityLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ActivityLogRepository {
	return &ActivityLogRepository{repository: r}
}

func (r *ActivityLogRepository) Persist(entry models.ActivityLog, data interface{}) error {
	record, err := buildRecord(entry, data)
	if err != nil {
		return err
	}

	query := r.repository.GoquDBWrapper.Insert("activity_logs").Rows(record)

	if _, err = query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}

func (r *ActivityLogRepository) PersistTx(tx *goqu.TxDatabase, entry models.ActivityLog, data interface{}) error {
	record, err := buildRecord(entry, data)
	if err != nil {
		return err
	}

	query := tx.Insert("activity_logs").Rows(record)

	if _, err = query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}

	return nil
}

func buildRecord(entry models.ActivityLog, data interface{}) (goqu.Record, error) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal activity log data: %w", err)
	}

	return goqu.Record{
		"user_id":     entry.UserID,
		"action":      entry.Action,
		"description": entry.Description,
		"target_id":   entry.TargetID,
		"target_type": entry.TargetType,
		"data":        dataJSON,
		"ip_address":  entry.IPAddress,
		"user_agent":  entry.UserAgent,
	}, nil
}

// GetTargetLog returns the activity history for one record, oldest first.
func (r *ActivityLogRepository) GetTargetLog(id int, targetType string) ([]models.ActivityLog, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("activity_logs").As("a")).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.user_id").As("user_id"),
			goqu.I("a.action").As("action"),
			goqu.I("a.description").As("description"),
			goqu.I("a.target_id").As("target_id"),
			goqu.I("a.target_type").As("target_type"),
			goqu.I("a.data").As("data"),
			goqu.I("a.created_at").As("created_at"),
		).
		Where(goqu.Ex{
			"a.target_id":   id,
			"a.target_type": targetType,
		}).
		Order(goqu.I("a.created_at").Asc())

	var entries []models.ActivityLog
	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	for i := range entries {
		entries[i].LoadFromDB()
	}

	return entries, nil
}
