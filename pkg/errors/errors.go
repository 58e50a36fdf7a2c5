package apperrors

import "fmt"

// ValidationError reports malformed workflow input, e.g. a transfer with
// identical source and destination locations.
type ValidationError struct {
	Message  string `json:"message"`
	Property string `json:"property"`
}

func (e *ValidationError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("%s (property: %s)", e.Message, e.Property)
	}
	return e.Message
}

// AuthorizationError reports a missing capability or a separation-of-duties
// violation.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// InvalidTransitionError reports a status change not reachable from the
// record's current status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

// DuplicateOperationError reports a one-shot operation attempted twice,
// e.g. acknowledging an already acknowledged movement.
type DuplicateOperationError struct {
	Message string
}

func (e *DuplicateOperationError) Error() string {
	return e.Message
}

// ConcurrencyConflictError reports a lost race: the record changed between
// the caller's read and its update. Callers may retry with a fresh read.
type ConcurrencyConflictError struct {
	Resource string
	ID       int
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s %d was modified concurrently, retry with a fresh read", e.Resource, e.ID)
}

// NotFoundError reports a missing record.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}
