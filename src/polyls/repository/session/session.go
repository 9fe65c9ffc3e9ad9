// Package session stores the live Session entities keyed by UUID.
package session

import (
	"context"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/polyls/polyls/src/polyls/entity"
	"github.com/polyls/polyls/src/polyls/internal/errors"
	"github.com/polyls/polyls/src/polyls/mapper"
	tally "github.com/uber-go/tally"
)

// Repository is an entity-scoped repository. Sessions are stored by pointer;
// a session owns a live server connection and is never copied.
type Repository interface {
	Get(context.Context, uuid.UUID) (*entity.Session, error)
	GetFromContext(ctx context.Context) (*entity.Session, error)
	Set(context.Context, *entity.Session) error
	// Remove takes the session out of the store and returns it so the caller
	// can stop it without holding the store lock.
	Remove(ctx context.Context, id uuid.UUID) (*entity.Session, bool)
	List(ctx context.Context) []*entity.Session
	SessionCount(ctx context.Context) (int, error)
}

type repository struct {
	mu       sync.Mutex
	memstore map[uuid.UUID]*entity.Session
	stats    tally.Scope
}

// New returns a repository to a key-value Session data store.
func New(stats tally.Scope) Repository {
	return &repository{
		memstore: make(map[uuid.UUID]*entity.Session),
		stats:    stats,
	}
}

// Get returns the Session associated with the given id.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.memstore[id]
	if !ok {
		return nil, &errors.SessionNotFoundError{UUID: id}
	}
	return s, nil
}

// GetFromContext returns the Session associated with the given context.
func (r *repository) GetFromContext(ctx context.Context) (*entity.Session, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Set sets the Session to its associated uuid.
func (r *repository) Set(ctx context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s == nil {
		return errors.New("can't save nil session")
	}
	r.memstore[s.UUID] = s
	r.stats.Gauge("active_sessions").Update(float64(len(r.memstore)))
	return nil
}

// Remove takes the Session with the given id out of the store.
func (r *repository) Remove(ctx context.Context, id uuid.UUID) (*entity.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.memstore[id]
	if !ok {
		return nil, false
	}
	delete(r.memstore, id)
	r.stats.Gauge("active_sessions").Update(float64(len(r.memstore)))
	return s, true
}

// List returns all stored sessions in no particular order.
func (r *repository) List(ctx context.Context) []*entity.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Session, 0, len(r.memstore))
	for _, s := range r.memstore {
		out = append(out, s)
	}
	return out
}

// SessionCount returns the total count of active sessions.
func (r *repository) SessionCount(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.memstore), nil
}
