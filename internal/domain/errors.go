package domain

import "errors"

var (
	// ErrRoomNotFound is returned when a room id is absent from both the
	// in-memory registry and the quiz store.
	ErrRoomNotFound = errors.New("room does not exist")
	// ErrQuizNotFound indicates the quiz store has no entry for the id.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrStoreUnavailable wraps quiz store read/write failures so handlers can
	// degrade instead of crashing.
	ErrStoreUnavailable = errors.New("quiz store unavailable")
)

// ValidationError reports a malformed quiz draft. The message is safe to echo
// back to the submitting client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
