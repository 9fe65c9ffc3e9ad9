// Package langserver is the outbound gateway to language-server subprocesses.
// Each Client owns exactly one server process speaking LSP over stdio and is
// never shared between sessions.
package langserver

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/polyls/polyls/src/polyls/internal/executor"
	"github.com/polyls/polyls/src/polyls/internal/fs"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module is the Fx module for this package.
var Module = fx.Provide(NewFactory)

// ErrDiagnosticsWaitTimeout reports that no diagnostics notification arrived within the settle timeout.
// The accumulated records are still valid; the result is a reported partial, not a failure.
var ErrDiagnosticsWaitTimeout = fmt.Errorf("timed out waiting for diagnostics to settle")

// Config describes how to launch and talk to one language server.
type Config struct {
	// LanguageID sent in textDocument/didOpen (e.g. "python", "java").
	LanguageID string
	// Command is the argv used to launch the server; Command[0] must resolve on PATH or be absolute.
	Command []string
	// RootPath is the absolute project root the server is bound to.
	RootPath string
	// SettleTimeout bounds the wait for the first publishDiagnostics after a didOpen.
	SettleTimeout time.Duration
	// ShutdownGracePeriod bounds how long Stop waits for the process to exit before killing it.
	ShutdownGracePeriod time.Duration
	// Watch enables forwarding of workspace file events to the server.
	Watch bool
	// Env holds extra environment entries for the server process.
	Env []string
}

// Client is an exclusively-owned handle to one running language server.
// Callers are responsible for serializing operations against a Client;
// the language server is stateful and request order matters.
type Client interface {
	// Start launches the server process and performs the initialize handshake.
	Start(ctx context.Context) error
	// Stop shuts the server down, killing the process after the grace period.
	Stop(ctx context.Context) error

	// OpenFile registers a file as open with the server, which triggers analysis.
	OpenFile(ctx context.Context, relPath string) error
	// CloseFile unregisters a previously opened file.
	CloseFile(ctx context.Context, relPath string) error

	// Diagnostics returns the currently accumulated records for the file.
	Diagnostics(relPath string) []protocol.Diagnostic
	// WaitForDiagnostics blocks until the server has published diagnostics for
	// the file, the timeout elapses (ErrDiagnosticsWaitTimeout), or ctx is done.
	WaitForDiagnostics(ctx context.Context, relPath string, timeout time.Duration) error

	Definition(ctx context.Context, relPath string, pos protocol.Position) ([]protocol.Location, error)
	References(ctx context.Context, relPath string, pos protocol.Position, includeDeclaration bool) ([]protocol.Location, error)
	Hover(ctx context.Context, relPath string, pos protocol.Position) (*protocol.Hover, error)
	DocumentSymbols(ctx context.Context, relPath string) ([]protocol.DocumentSymbol, error)
}

// Factory builds unstarted Clients.
type Factory interface {
	New(cfg Config) (Client, error)
}

// Params are inbound parameters to construct a Factory.
type Params struct {
	fx.In

	Logger   *zap.SugaredLogger
	Executor executor.Executor
	FS       fs.FS
}

type factory struct {
	logger   *zap.SugaredLogger
	executor executor.Executor
	fs       fs.FS
}

// NewFactory returns a Factory that probes server binaries before building clients.
func NewFactory(p Params) Factory {
	return &factory{
		logger:   p.Logger.With("gateway", "lang-server"),
		executor: p.Executor,
		fs:       p.FS,
	}
}

// New validates the config and probes the server binary. A missing or broken
// binary fails here, before any server process is spawned.
func (f *factory) New(cfg Config) (Client, error) {
	if len(cfg.Command) == 0 {
		return nil, fmt.Errorf("language server command is empty")
	}

	binPath, err := f.executor.LookPath(cfg.Command[0])
	if err != nil {
		return nil, fmt.Errorf("language server binary %q not found: %w", cfg.Command[0], err)
	}

	// No-op run of the binary. Servers that reject the flag still prove they
	// can launch; only a failure to start at all is fatal.
	stdout, _, _, err := f.executor.Run(exec.Command(binPath, "--version"))
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("language server binary %q failed to run: %w", cfg.Command[0], err)
		}
	}
	f.logger.Debugw("probed language server binary", "binary", binPath, "output", strings.TrimSpace(stdout))

	return newClient(cfg, binPath, f.logger, f.fs), nil
}
