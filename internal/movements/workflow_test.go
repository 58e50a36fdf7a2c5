package movements

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    metadata.MovementStatus
		to      metadata.MovementStatus
		allowed bool
	}{
		{"pending to in_transit", metadata.StatusPending, metadata.StatusInTransit, true},
		{"pending to completed", metadata.StatusPending, metadata.StatusCompleted, true},
		{"pending to delivered", metadata.StatusPending, metadata.StatusDelivered, true},
		{"pending to cancelled", metadata.StatusPending, metadata.StatusCancelled, true},
		{"pending to acknowledged", metadata.StatusPending, metadata.StatusAcknowledged, false},
		{"in_transit to completed", metadata.StatusInTransit, metadata.StatusCompleted, true},
		{"in_transit to delivered", metadata.StatusInTransit, metadata.StatusDelivered, true},
		{"in_transit to cancelled", metadata.StatusInTransit, metadata.StatusCancelled, true},
		{"in_transit to pending", metadata.StatusInTransit, metadata.StatusPending, false},
		{"in_transit to acknowledged", metadata.StatusInTransit, metadata.StatusAcknowledged, false},
		{"delivered to acknowledged", metadata.StatusDelivered, metadata.StatusAcknowledged, true},
		{"delivered to cancelled", metadata.StatusDelivered, metadata.StatusCancelled, true},
		{"delivered to pending", metadata.StatusDelivered, metadata.StatusPending, false},
		{"delivered to in_transit", metadata.StatusDelivered, metadata.StatusInTransit, false},
		{"completed to delivered", metadata.StatusCompleted, metadata.StatusDelivered, false},
		{"completed to cancelled", metadata.StatusCompleted, metadata.StatusCancelled, false},
		{"acknowledged to cancelled", metadata.StatusAcknowledged, metadata.StatusCancelled, false},
		{"acknowledged to pending", metadata.StatusAcknowledged, metadata.StatusPending, false},
		{"cancelled to pending", metadata.StatusCancelled, metadata.StatusPending, false},
		{"cancelled to in_transit", metadata.StatusCancelled, metadata.StatusInTransit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestAuthorizeTransitionSeparationOfDuties(t *testing.T) {
	tests := []struct {
		name      string
		actor     *models.User
		state     workflowState
		newStatus metadata.MovementStatus
		wantErr   bool
	}{
		{
			name:      "approver approves someone else's movement",
			actor:     &models.User{ID: 2, Role: roles.Approver},
			state:     workflowState{ID: 10, Status: metadata.StatusPending, InitiatedBy: 1},
			newStatus: metadata.StatusInTransit,
			wantErr:   false,
		},
		{
			name:      "approver may not approve own movement",
			actor:     &models.User{ID: 1, Role: roles.Approver},
			state:     workflowState{ID: 10, Status: metadata.StatusPending, InitiatedBy: 1},
			newStatus: metadata.StatusInTransit,
			wantErr:   true,
		},
		{
			name:      "admin may approve own movement",
			actor:     &models.User{ID: 1, Role: roles.Admin},
			state:     workflowState{ID: 10, Status: metadata.StatusPending, InitiatedBy: 1},
			newStatus: metadata.StatusInTransit,
			wantErr:   false,
		},
		{
			name:      "superuser may approve own movement",
			actor:     &models.User{ID: 1, Role: roles.Operator, IsSuperuser: true},
			state:     workflowState{ID: 10, Status: metadata.StatusPending, InitiatedBy: 1},
			newStatus: metadata.StatusDelivered,
			wantErr:   false,
		},
		{
			name:      "operator may not approve",
			actor:     &models.User{ID: 2, Role: roles.Operator},
			state:     workflowState{ID: 10, Status: metadata.StatusPending, InitiatedBy: 1},
			newStatus: metadata.StatusInTransit,
			wantErr:   true,
		},
		{
			name:      "viewer may not approve",
			actor:     &models.User{ID: 2, Role: roles.Viewer},
			state:     workflowState{ID: 10, Status: metadata.StatusPending, InitiatedBy: 1},
			newStatus: metadata.StatusCompleted,
			wantErr:   true,
		},
		{
			name:      "initiator may advance own in_transit movement",
			actor:     &models.User{ID: 1, Role: roles.Approver},
			state:     workflowState{ID: 10, Status: metadata.StatusInTransit, InitiatedBy: 1},
			newStatus: metadata.StatusDelivered,
			wantErr:   false,
		},
		{
			name:      "initiator cancels own pending movement",
			actor:     &models.User{ID: 1, Role: roles.Operator},
			state:     workflowState{ID: 10, Status: metadata.StatusPending, InitiatedBy: 1},
			newStatus: metadata.StatusCancelled,
			wantErr:   false,
		},
		{
			name:      "initiator may not cancel own in_transit movement",
			actor:     &models.User{ID: 1, Role: roles.Operator},
			state:     workflowState{ID: 10, Status: metadata.StatusInTransit, InitiatedBy: 1},
			newStatus: metadata.StatusCancelled,
			wantErr:   true,
		},
		{
			name:      "approver cancels in_transit movement",
			actor:     &models.User{ID: 2, Role: roles.Approver},
			state:     workflowState{ID: 10, Status: metadata.StatusInTransit, InitiatedBy: 1},
			newStatus: metadata.StatusCancelled,
			wantErr:   false,
		},
		{
			name:      "viewer may not cancel anything",
			actor:     &models.User{ID: 1, Role: roles.Viewer},
			state:     workflowState{ID: 10, Status: metadata.StatusPending, InitiatedBy: 1},
			newStatus: metadata.StatusCancelled,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorizeTransition(tt.actor, tt.state, tt.newStatus)
			if tt.wantErr {
				assert.Error(t, err)
				var authErr *apperrors.AuthorizationError
				assert.ErrorAs(t, err, &authErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransitionAction(t *testing.T) {
	assert.Equal(t, "movement_approve", transitionAction("movement", metadata.StatusPending, metadata.StatusInTransit))
	assert.Equal(t, "movement_approve", transitionAction("movement", metadata.StatusPending, metadata.StatusDelivered))
	assert.Equal(t, "movement_cancel", transitionAction("movement", metadata.StatusPending, metadata.StatusCancelled))
	assert.Equal(t, "movement_cancel", transitionAction("movement", metadata.StatusInTransit, metadata.StatusCancelled))
	assert.Equal(t, "movement_update", transitionAction("movement", metadata.StatusInTransit, metadata.StatusDelivered))
	assert.Equal(t, "bulk_movement_approve", transitionAction("bulk_movement", metadata.StatusPending, metadata.StatusCompleted))
}
