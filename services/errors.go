package services

import (
	"errors"
	"net/http"
)

// Category classifies a business-rule failure. All categories are
// local, synchronous and non-retryable.
type Category string

const (
	CategoryValidation   Category = "validation"
	CategoryConflict     Category = "conflict"
	CategoryForbidden    Category = "forbidden"
	CategoryNotFound     Category = "not_found"
	CategoryUnauthorized Category = "unauthorized"
)

// Error is a structured business fault with a message, a category and
// a numeric code mirroring the HTTP status the API layer responds with.
type Error struct {
	Message  string
	Category Category
	Code     int
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError reports malformed or past-dated input.
func NewValidationError(message string) *Error {
	return &Error{Message: message, Category: CategoryValidation, Code: http.StatusBadRequest}
}

// NewConflictError reports an already-booked slot or a duplicate unique key.
func NewConflictError(message string) *Error {
	return &Error{Message: message, Category: CategoryConflict, Code: http.StatusConflict}
}

// NewForbiddenError reports a role or ownership mismatch.
func NewForbiddenError(message string) *Error {
	return &Error{Message: message, Category: CategoryForbidden, Code: http.StatusForbidden}
}

// NewNotFoundError reports a missing referenced entity.
func NewNotFoundError(message string) *Error {
	return &Error{Message: message, Category: CategoryNotFound, Code: http.StatusNotFound}
}

// NewUnauthorizedError reports a missing or unresolvable caller identity.
func NewUnauthorizedError(message string) *Error {
	return &Error{Message: message, Category: CategoryUnauthorized, Code: http.StatusUnauthorized}
}

// AsError unwraps err into a business fault, if it is one.
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
