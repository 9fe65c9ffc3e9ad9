// Package entity contains the domain logic for the polyls service.
package entity

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	langserver "github.com/polyls/polyls/src/polyls/gateway/lang-server"
	"github.com/polyls/polyls/src/polyls/internal/errors"
	"go.lsp.dev/protocol"
	"go.uber.org/atomic"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// State describes where a session is in its lifecycle. Transitions only move
// forward; a stopped or failed session is never restarted.
type State int32

const (
	// StateCreated is the initial state before Start is called.
	StateCreated State = iota
	// StateStarting covers the server launch and initialize handshake.
	StateStarting
	// StateRunning means the underlying client accepts operations.
	StateRunning
	// StateStopping covers the shutdown handshake.
	StateStopping
	// StateStopped is terminal after a successful or idempotent Stop.
	StateStopped
	// StateFailed is terminal after a failed Start.
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DiagnosticsReport is the outcome of a diagnostics request. Complete is
// false when the settle timeout elapsed before the server published, in which
// case Diagnostics holds whatever had accumulated by then.
type DiagnosticsReport struct {
	Diagnostics []protocol.Diagnostic
	Complete    bool
}

// Session entity representing one language server bound to one project root.
// All operations on a session are serialized by its own mutex; concurrent
// callers block rather than interleave requests on the stateful server.
type Session struct {
	UUID        uuid.UUID `json:"uuid" zap:"uuid"`
	Language    string    `json:"language" zap:"language"`
	ProjectPath string    `json:"projectPath" zap:"projectPath"`
	CreatedAt   time.Time `json:"createdAt" zap:"createdAt"`

	SettleTimeout time.Duration `json:"-" zap:"-"`

	mu     sync.Mutex
	state  atomic.Int32
	client langserver.Client
}

// NewSession builds an unstarted session around an unstarted client.
func NewSession(id uuid.UUID, language, projectPath string, settleTimeout time.Duration, client langserver.Client, now time.Time) *Session {
	s := &Session{
		UUID:          id,
		Language:      language,
		ProjectPath:   projectPath,
		CreatedAt:     now,
		SettleTimeout: settleTimeout,
		client:        client,
	}
	s.state.Store(int32(StateCreated))
	return s
}

// State returns the current lifecycle state. It is safe to call without
// holding the session, so state can be reported while an operation runs.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Start launches the underlying server. A second Start is an error; Start
// after a failure or a stop is too.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch st := s.State(); st {
	case StateCreated:
	case StateStarting, StateRunning:
		return &errors.AlreadyStartedError{UUID: s.UUID}
	default:
		return &errors.SessionNotRunningError{UUID: s.UUID, State: st.String()}
	}

	s.state.Store(int32(StateStarting))
	if err := s.client.Start(ctx); err != nil {
		s.state.Store(int32(StateFailed))
		s.client = nil
		return err
	}
	s.state.Store(int32(StateRunning))
	return nil
}

// Stop shuts the underlying server down. Stopping an already stopped or
// failed session is a no-op.
func (s *Session) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.State() {
	case StateStopped, StateFailed, StateCreated:
		s.state.Store(int32(StateStopped))
		s.client = nil
		return nil
	}

	s.state.Store(int32(StateStopping))
	err := s.client.Stop(ctx)
	s.state.Store(int32(StateStopped))
	s.client = nil
	return err
}

// Diagnostics opens the file, waits for the server to publish, and returns
// the accumulated records. The file is closed again before returning so the
// server's open-document set stays scoped to the request.
func (s *Session) Diagnostics(ctx context.Context, relPath string) (DiagnosticsReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.runningClient()
	if err != nil {
		return DiagnosticsReport{}, err
	}

	if err := client.OpenFile(ctx, relPath); err != nil {
		return DiagnosticsReport{}, err
	}
	defer client.CloseFile(ctx, relPath)

	report := DiagnosticsReport{Complete: true}
	if err := client.WaitForDiagnostics(ctx, relPath, s.SettleTimeout); err != nil {
		if err != langserver.ErrDiagnosticsWaitTimeout {
			return DiagnosticsReport{}, err
		}
		report.Complete = false
	}
	report.Diagnostics = client.Diagnostics(relPath)
	return report, nil
}

// Definition resolves the definition sites for the symbol at the position.
func (s *Session) Definition(ctx context.Context, relPath string, pos protocol.Position) ([]protocol.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.runningClient()
	if err != nil {
		return nil, err
	}
	return s.withOpenFile(ctx, client, relPath, func() ([]protocol.Location, error) {
		return client.Definition(ctx, relPath, pos)
	})
}

// References resolves all reference sites for the symbol at the position.
func (s *Session) References(ctx context.Context, relPath string, pos protocol.Position, includeDeclaration bool) ([]protocol.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.runningClient()
	if err != nil {
		return nil, err
	}
	return s.withOpenFile(ctx, client, relPath, func() ([]protocol.Location, error) {
		return client.References(ctx, relPath, pos, includeDeclaration)
	})
}

// Hover returns hover content for the symbol at the position, or nil when
// the server has nothing to show.
func (s *Session) Hover(ctx context.Context, relPath string, pos protocol.Position) (*protocol.Hover, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.runningClient()
	if err != nil {
		return nil, err
	}

	if err := client.OpenFile(ctx, relPath); err != nil {
		return nil, err
	}
	defer client.CloseFile(ctx, relPath)
	return client.Hover(ctx, relPath, pos)
}

// DocumentSymbols returns the symbol outline of the file.
func (s *Session) DocumentSymbols(ctx context.Context, relPath string) ([]protocol.DocumentSymbol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.runningClient()
	if err != nil {
		return nil, err
	}

	if err := client.OpenFile(ctx, relPath); err != nil {
		return nil, err
	}
	defer client.CloseFile(ctx, relPath)
	return client.DocumentSymbols(ctx, relPath)
}

func (s *Session) withOpenFile(ctx context.Context, client langserver.Client, relPath string, op func() ([]protocol.Location, error)) ([]protocol.Location, error) {
	if err := client.OpenFile(ctx, relPath); err != nil {
		return nil, err
	}
	defer client.CloseFile(ctx, relPath)
	return op()
}

// runningClient is called with the session mutex held.
func (s *Session) runningClient() (langserver.Client, error) {
	if st := s.State(); st != StateRunning || s.client == nil {
		return nil, &errors.SessionNotRunningError{UUID: s.UUID, State: st.String()}
	}
	return s.client, nil
}
