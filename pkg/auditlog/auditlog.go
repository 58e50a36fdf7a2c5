package auditlog

import (
	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"

	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
)

// Recorder persists activity log entries. PersistTx writes within an open
// transaction so the entry commits or rolls back with the mutation it
// describes.
type Recorder interface {
	Persist(entry models.ActivityLog, data interface{}) error
	PersistTx(tx *goqu.TxDatabase, entry models.ActivityLog, data interface{}) error
}

// Auditable is implemented by models that can be the target of an
// activity log entry.
type Auditable interface {
	CreateLogView() models.ActivityLog
}

type Auditlog struct {
	r   Recorder
	log *zap.Logger
}

func NewAuditLog(recorder Recorder, log *zap.Logger) *Auditlog {
	return &Auditlog{r: recorder, log: log}
}

// Log records a mutating action outside any transaction. Failures are
// logged but do not fail the caller's operation.
func (a *Auditlog) Log(actor *models.User, action, description string, data interface{}, item Auditable) {
	entry := a.buildEntry(actor, action, description, item)

	if err := a.r.Persist(entry, data); err != nil {
		a.log.Error("unable to create activity log entry",
			zap.String("action", action),
			zap.Int("target_id", entry.TargetID),
			zap.Error(err),
		)
		return
	}

	a.log.Debug("created activity log entry",
		zap.String("action", action),
		zap.Int("target_id", entry.TargetID),
	)
}

// LogTx records a mutating action within tx. The returned error aborts the
// surrounding transaction, keeping state changes and their audit entries
// paired one to one.
func (a *Auditlog) LogTx(tx *goqu.TxDatabase, actor *models.User, action, description string, data interface{}, item Auditable) error {
	entry := a.buildEntry(actor, action, description, item)
	return a.r.PersistTx(tx, entry, data)
}

func (a *Auditlog) buildEntry(actor *models.User, action, description string, item Auditable) models.ActivityLog {
	entry := item.CreateLogView()
	entry.Action = action
	entry.Description = description
	if actor != nil {
		userID := actor.ID
		entry.UserID = &userID
	}
	return entry
}
