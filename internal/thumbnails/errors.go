package thumbnails

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidInput indicates missing or unresolvable command input.
	ErrInvalidInput = errors.New("invalid thumbnail input")

	// ErrLimitExceeded indicates an uploaded logo larger than the configured maximum.
	ErrLimitExceeded = errors.New("logo exceeds maximum size")

	// ErrInconsistentState indicates the dataset did not reach the expected
	// thumbnail state after a successful mutation.
	ErrInconsistentState = errors.New("inconsistent thumbnail state")

	// ErrUnsupported indicates an absent or unrecognized intent.
	ErrUnsupported = errors.New("unsupported thumbnail intent")
)

// MapHTTPStatus converts command errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrLimitExceeded):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupported):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, ErrInconsistentState):
		return "inconsistent_state"
	case errors.Is(err, ErrUnsupported):
		return "unsupported"
	default:
		return "error"
	}
}
