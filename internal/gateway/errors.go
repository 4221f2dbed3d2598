package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionInvalid indicates a missing or rejected credential. It
	// always resolves to a forced logout, never to a retryable error.
	ErrSessionInvalid = errors.New("session invalid")

	// ErrUnavailable indicates the task API could not be reached at all.
	ErrUnavailable = errors.New("task api unreachable")
)

// TransportError is a non-2xx response carrying the server's message, or a
// network-level failure. It is surfaced as a dismissible notification and
// never retried automatically.
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSessionInvalid):
		return "SESSION_INVALID"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case IsTransport(err):
		return "TRANSPORT"
	default:
		return "UNKNOWN"
	}
}
