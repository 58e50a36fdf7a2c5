package movements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wongivan852/asset-movement-tracking-system/pkg/auditlog"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
)

func bulkPendingRow(bulkMovementID, initiatedBy int) *BulkMovementRow {
	return &BulkMovementRow{
		ID:             bulkMovementID,
		TrackingNumber: "BLK-TEST",
		FromLocationID: 1,
		ToLocationID:   2,
		Status:         string(metadata.StatusPending),
		Priority:       string(metadata.PriorityNormal),
		InitiatedBy:    initiatedBy,
	}
}

func TestCreateBulkMovementRejectsEmptyAssetSet(t *testing.T) {
	svc, _ := newTestService()
	operator := &models.User{ID: 1, Role: roles.Operator}

	_, err := svc.CreateBulkMovement(operator, models.BulkMovementRequest{
		AssetIDs:       []int{},
		FromLocationID: 1,
		ToLocationID:   2,
	})

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "asset_ids", validationErr.Property)
}

func TestTransitionBulkStatusMovesAllAssets(t *testing.T) {
	svc, m := newTestService()
	approver := &models.User{ID: 2, Role: roles.Approver}

	m.bulk.On("GetBulkMovementRow", 20).Return(bulkPendingRow(20, 1), nil)
	m.bulk.On("GetBulkMovementAssetIDs", 20).Return([]int{5, 6, 7}, nil)
	m.bulk.On("UpdateBulkMovementStatus", mock.Anything, 20, metadata.StatusPending, metadata.StatusInTransit, mock.Anything).Return(true, nil)
	m.assets.On("UpdateAssetStatuses", mock.Anything, []int{5, 6, 7}, metadata.AssetInTransit).Return(nil)
	m.audit.On("LogTx", mock.Anything, approver, auditlog.ActionBulkMovementApprove, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := svc.TransitionBulkStatus(approver, 20, metadata.StatusInTransit)

	assert.NoError(t, err)
	m.assets.AssertExpectations(t)
	m.audit.AssertNumberOfCalls(t, "LogTx", 1)
}

func TestTransitionBulkStatusSeparationOfDuties(t *testing.T) {
	svc, m := newTestService()
	initiator := &models.User{ID: 1, Role: roles.Approver}

	m.bulk.On("GetBulkMovementRow", 20).Return(bulkPendingRow(20, 1), nil)

	err := svc.TransitionBulkStatus(initiator, 20, metadata.StatusInTransit)

	var authErr *apperrors.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	m.bulk.AssertNotCalled(t, "UpdateBulkMovementStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionBulkStatusIdempotentNoOp(t *testing.T) {
	svc, m := newTestService()
	approver := &models.User{ID: 2, Role: roles.Approver}

	row := bulkPendingRow(20, 1)
	row.Status = string(metadata.StatusInTransit)
	m.bulk.On("GetBulkMovementRow", 20).Return(row, nil)

	err := svc.TransitionBulkStatus(approver, 20, metadata.StatusInTransit)

	assert.NoError(t, err)
	m.audit.AssertNotCalled(t, "LogTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionBulkStatusConcurrencyConflict(t *testing.T) {
	svc, m := newTestService()
	approver := &models.User{ID: 2, Role: roles.Approver}

	m.bulk.On("GetBulkMovementRow", 20).Return(bulkPendingRow(20, 1), nil)
	m.bulk.On("GetBulkMovementAssetIDs", 20).Return([]int{5}, nil)
	m.bulk.On("UpdateBulkMovementStatus", mock.Anything, 20, metadata.StatusPending, metadata.StatusInTransit, mock.Anything).Return(false, nil)

	err := svc.TransitionBulkStatus(approver, 20, metadata.StatusInTransit)

	var conflictErr *apperrors.ConcurrencyConflictError
	assert.ErrorAs(t, err, &conflictErr)
	m.audit.AssertNotCalled(t, "LogTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAcknowledgeBulk(t *testing.T) {
	t.Run("acknowledges a delivered bulk movement", func(t *testing.T) {
		svc, m := newTestService()
		operator := &models.User{ID: 3, Role: roles.Operator}

		row := bulkPendingRow(20, 1)
		row.Status = string(metadata.StatusDelivered)
		m.bulk.On("GetBulkMovementRow", 20).Return(row, nil)
		m.bulk.On("UpdateBulkMovementStatus", mock.Anything, 20, metadata.StatusDelivered, metadata.StatusAcknowledged, mock.Anything).Return(true, nil)
		m.audit.On("LogTx", mock.Anything, operator, auditlog.ActionMovementAcknowledge, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		assert.NoError(t, svc.AcknowledgeBulk(operator, 20, "all crates accounted for"))
		m.audit.AssertNumberOfCalls(t, "LogTx", 1)
	})

	t.Run("repeat acknowledgement is rejected", func(t *testing.T) {
		svc, m := newTestService()
		operator := &models.User{ID: 3, Role: roles.Operator}

		row := bulkPendingRow(20, 1)
		row.Status = string(metadata.StatusAcknowledged)
		m.bulk.On("GetBulkMovementRow", 20).Return(row, nil)

		err := svc.AcknowledgeBulk(operator, 20, "")

		var duplicateErr *apperrors.DuplicateOperationError
		assert.ErrorAs(t, err, &duplicateErr)
	})
}
