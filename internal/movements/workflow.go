package movements

import (
	"fmt"

	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
)

// allowedTransitions holds the forward edges of the movement state machine.
// Cancellation is handled separately: any non-terminal status may cancel.
var allowedTransitions = map[metadata.MovementStatus][]metadata.MovementStatus{
	metadata.StatusPending:   {metadata.StatusInTransit, metadata.StatusCompleted, metadata.StatusDelivered},
	metadata.StatusInTransit: {metadata.StatusCompleted, metadata.StatusDelivered},
	metadata.StatusDelivered: {metadata.StatusAcknowledged},
}

// CanTransition reports whether a movement may move from one status to
// another. Backward and skip transitions are rejected.
func CanTransition(from, to metadata.MovementStatus) bool {
	if to == metadata.StatusCancelled {
		return !from.IsTerminal()
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// isApprovalTransition reports whether the change takes a pending record
// into an approval state. These are the transitions the separation-of-duties
// rule guards.
func isApprovalTransition(from, to metadata.MovementStatus) bool {
	if from != metadata.StatusPending {
		return false
	}
	switch to {
	case metadata.StatusInTransit, metadata.StatusCompleted, metadata.StatusDelivered:
		return true
	default:
		return false
	}
}

// recordsApprover reports whether the new status captures the acting user
// as the record's approver.
func recordsApprover(to metadata.MovementStatus) bool {
	return to == metadata.StatusCompleted || to == metadata.StatusDelivered
}

// workflowState is the minimal view of a movement the authorization rules
// need.
type workflowState struct {
	ID          int
	Status      metadata.MovementStatus
	InitiatedBy int
}

// authorizeTransition enforces capability requirements and the
// separation-of-duties rule: the user who initiates a movement may never be
// the one who approves it, unless they hold the administrator override.
func authorizeTransition(actor *models.User, state workflowState, newStatus metadata.MovementStatus) error {
	caps := actor.Capabilities()

	if newStatus == metadata.StatusCancelled {
		if caps.Has(roles.CanApprove) {
			return nil
		}
		if actor.ID == state.InitiatedBy && state.Status == metadata.StatusPending && caps.Has(roles.CanCreateMovement) {
			return nil
		}
		return &apperrors.AuthorizationError{
			Message: "only the initiator of a pending movement or an approver may cancel it",
		}
	}

	if !caps.Has(roles.CanApprove) {
		return &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %s may not move a movement to %s", actor.Role, newStatus),
		}
	}

	if isApprovalTransition(state.Status, newStatus) &&
		actor.ID == state.InitiatedBy &&
		!caps.Has(roles.CanAdminister) {
		return &apperrors.AuthorizationError{
			Message: "the initiator of a movement may not approve it",
		}
	}

	return nil
}
