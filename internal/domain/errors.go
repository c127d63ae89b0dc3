package domain

import (
	"errors"
	"fmt"
)

// Domain errors. Check them with errors.Is.
var (
	// ErrEmptyQuery is returned when a text search is asked for an empty
	// query. The controller routes empty queries to the popular list, so
	// reaching it means a caller bypassed the controller.
	ErrEmptyQuery = errors.New("bookcat: empty query")

	// ErrMalformedResponse is returned when the catalog answers with a body
	// that cannot be decoded.
	ErrMalformedResponse = errors.New("bookcat: malformed catalog response")

	// ErrStoragePersist is returned when favorites could not be written to
	// durable storage. The in-memory set still holds the change.
	ErrStoragePersist = errors.New("bookcat: favorites not persisted")

	// ErrInvalidBook is returned when a book fails validation.
	ErrInvalidBook = errors.New("bookcat: invalid book")
)

// NetworkError reports a failed catalog request. Status is the HTTP status
// code, or 0 when no response was received.
type NetworkError struct {
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("bookcat: network error: %v", e.Err)
	}
	if e.Err == nil {
		return fmt.Sprintf("bookcat: network error: status %d", e.Status)
	}
	return fmt.Sprintf("bookcat: network error: status %d: %v", e.Status, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err is, or wraps, a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// Lifecycle errors returned by the embeddable browser.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running browser.
	ErrAlreadyRunning = errors.New("bookcat: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped browser.
	ErrNotRunning = errors.New("bookcat: not running")

	// ErrShutdownTimeout is returned when outstanding work outlives the shutdown timeout.
	ErrShutdownTimeout = errors.New("bookcat: shutdown timeout")
)
