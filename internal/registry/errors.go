package registry

import (
	"fmt"
	"net/http"
)

// Application error codes returned in the response envelope.
const (
	// ErrInvalidParams indicates that the route or body failed validation.
	ErrInvalidParams = 1001

	// ErrInvalidJSONFormat indicates that the request body is not valid JSON.
	ErrInvalidJSONFormat = 1003

	// ErrRateLimitExceeded indicates that the client IP exceeded its write budget.
	ErrRateLimitExceeded = 1007

	// ErrUnauthorized indicates a missing or invalid identity token.
	ErrUnauthorized = 3001

	// ErrIdentityNotFound indicates that no entry exists for the public key.
	ErrIdentityNotFound = 4004

	// ErrIdentityExists indicates that a create hit an existing entry.
	ErrIdentityExists = 4009

	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000
)

// CustomError carries an application code, a client-facing message and the HTTP status.
type CustomError struct {
	Code    int
	Message string
	Status  int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

var errorMap = map[int]CustomError{
	ErrInvalidParams:     {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrInvalidJSONFormat: {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrUnauthorized:      {Code: ErrUnauthorized, Message: "Identity token missing or invalid.", Status: http.StatusUnauthorized},
	ErrIdentityNotFound:  {Code: ErrIdentityNotFound, Message: "Identity not found.", Status: http.StatusNotFound},
	ErrIdentityExists:    {Code: ErrIdentityExists, Message: "Identity already registered.", Status: http.StatusConflict},
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}

// NewError returns the CustomError registered for code, or ErrUnknown.
func NewError(code int) *CustomError {
	e, ok := errorMap[code]
	if !ok {
		e = errorMap[ErrUnknown]
	}
	return &e
}
