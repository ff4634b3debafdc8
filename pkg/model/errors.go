package model

import "github.com/m-mizutani/goerr/v2"

// Error kinds surfaced by the engine. Callers match them with errors.Is; the
// concrete error always wraps one of these with contextual values.
var (
	ErrValidation = goerr.New("validation error")
	ErrNotFound   = goerr.New("companion not found")
	ErrConflict   = goerr.New("companion already exists")
	ErrStorage    = goerr.New("storage error")
)

type storageError struct {
	cause error
}

func (e *storageError) Error() string {
	return "storage error: " + e.cause.Error()
}

func (e *storageError) Unwrap() []error {
	return []error{ErrStorage, e.cause}
}

// StorageFailure marks cause as a failure of the underlying store. Both
// ErrStorage and cause stay reachable through errors.Is and errors.As.
func StorageFailure(cause error) error {
	return &storageError{cause: cause}
}
