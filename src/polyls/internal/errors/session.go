package errors

import (
	"fmt"

	"github.com/gofrs/uuid"
)

// InvalidLanguageError indicates a language outside the configured set.
type InvalidLanguageError struct {
	Language string
}

// Error is an implementation of the error interface.
func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %q", e.Language)
}

// InvalidPathError indicates a project path that is not an absolute path to an existing directory.
type InvalidPathError struct {
	Path   string
	Reason string
}

// Error is an implementation of the error interface.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid project path %q: %s", e.Path, e.Reason)
}

// SessionNotRunningError indicates an operation against a session whose client is gone.
type SessionNotRunningError struct {
	UUID  uuid.UUID
	State string
}

// Error is an implementation of the error interface.
func (e *SessionNotRunningError) Error() string {
	return fmt.Sprintf("session %q is not running (state %s)", e.UUID, e.State)
}

// AlreadyStartedError indicates a second Start call on the same session.
type AlreadyStartedError struct {
	UUID uuid.UUID
}

// Error is an implementation of the error interface.
func (e *AlreadyStartedError) Error() string {
	return fmt.Sprintf("session %q has already been started", e.UUID)
}
