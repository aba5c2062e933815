package interview

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when an operation references a session that
// does not exist or has already ended.
var ErrSessionNotFound = errors.New("session not found")

// ValidationError reports invalid caller input (unknown provider, bad
// difficulty label, empty or mismatched API key). The operation is aborted
// and no session state is created or mutated.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
