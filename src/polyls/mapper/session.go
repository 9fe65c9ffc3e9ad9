// Package mapper translates between transport representations and entities.
package mapper

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"github.com/polyls/polyls/src/polyls/entity"
	"github.com/polyls/polyls/src/polyls/internal/errors"
)

// SessionSummary is the wire representation of a session.
type SessionSummary struct {
	SessionID   string    `json:"session_id"`
	Language    string    `json:"language"`
	ProjectPath string    `json:"project_path"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionToSummary maps a Session entity to its wire equivalent.
func SessionToSummary(s *entity.Session) SessionSummary {
	return SessionSummary{
		SessionID:   s.UUID.String(),
		Language:    s.Language,
		ProjectPath: s.ProjectPath,
		Status:      s.State().String(),
		CreatedAt:   s.CreatedAt,
	}
}

// ContextToSessionUUID extracts the UUID from a context.
func ContextToSessionUUID(c context.Context) (uuid.UUID, error) {
	s, ok := c.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return s, nil
}
