package apperrors

import (
	"errors"
	"net/http"
)

// HTTPStatus maps a workflow error onto the HTTP status code the
// presentation layer should answer with.
func HTTPStatus(err error) int {
	var validationErr *ValidationError
	var authorizationErr *AuthorizationError
	var transitionErr *InvalidTransitionError
	var duplicateErr *DuplicateOperationError
	var conflictErr *ConcurrencyConflictError
	var notFoundErr *NotFoundError
	var uniqueErr *UniqueViolationError
	var foreignKeyErr *ForeignKeyViolationError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &authorizationErr):
		return http.StatusForbidden
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &transitionErr),
		errors.As(err, &duplicateErr),
		errors.As(err, &conflictErr),
		errors.As(err, &uniqueErr),
		errors.As(err, &foreignKeyErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
