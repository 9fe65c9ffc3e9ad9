package errors

import (
	stderr "errors"
	"fmt"

	"github.com/gofrs/uuid"
)

// SessionNotFoundError is a service domain error for an unknown session id.
type SessionNotFoundError struct {
	UUID uuid.UUID
}

// Error is an implementation of the error interface.
func (n *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session %q not found", n.UUID)
}

// NotFoundSession returns a UUID and true if SessionNotFoundError is part of
// the error chain.
func NotFoundSession(e error) (_ uuid.UUID, ok bool) {
	var nf *SessionNotFoundError
	if !stderr.As(e, &nf) {
		return uuid.Nil, false
	}
	return nf.UUID, true
}

// NoSessionFoundError indicates that a context carries no session UUID.
type NoSessionFoundError struct{}

// Error is an implementation of the error interface.
func (n *NoSessionFoundError) Error() string {
	return "no session UUID in context"
}

// FileNotFoundError indicates that a file does not exist under a session's project root.
type FileNotFoundError struct {
	Path string
}

// Error is an implementation of the error interface.
func (n *FileNotFoundError) Error() string {
	return fmt.Sprintf("file %q not found", n.Path)
}
