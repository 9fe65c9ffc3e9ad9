package langserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	ulserrors "github.com/polyls/polyls/src/polyls/internal/errors"
	"github.com/polyls/polyls/src/polyls/internal/fs"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const _defaultShutdownGrace = 5 * time.Second

type client struct {
	cfg     Config
	binPath string
	logger  *zap.SugaredLogger
	fs      fs.FS

	cmd         *exec.Cmd
	conn        jsonrpc2.Conn
	diagnostics *diagnosticsStore
	watcher     *workspaceWatcher
}

func newClient(cfg Config, binPath string, logger *zap.SugaredLogger, filesystem fs.FS) *client {
	if cfg.ShutdownGracePeriod == 0 {
		cfg.ShutdownGracePeriod = _defaultShutdownGrace
	}
	return &client{
		cfg:         cfg,
		binPath:     binPath,
		logger:      logger.With("language", cfg.LanguageID, "root", cfg.RootPath),
		fs:          filesystem,
		diagnostics: newDiagnosticsStore(),
	}
}

// Start launches the server process, wires the jsonrpc2 connection over its
// stdio, and runs the initialize handshake. On any failure the process is
// reaped before returning.
func (c *client) Start(ctx context.Context) error {
	cmd := exec.Command(c.binPath, c.cfg.Command[1:]...)
	cmd.Dir = c.cfg.RootPath
	cmd.Env = append(os.Environ(), c.cfg.Env...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("opening stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("opening stdout pipe: %w", err)
	}
	cmd.Stderr = &logWriter{logger: c.logger}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %q: %w", c.binPath, err)
	}
	c.cmd = cmd

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(&readWriteCloser{reader: stdout, writer: stdin}))
	c.conn = conn
	// The connection must outlive the request that created the session.
	conn.Go(context.Background(), c.handle)

	if err := c.initialize(ctx); err != nil {
		c.reap()
		return err
	}

	if c.cfg.Watch {
		w, err := newWorkspaceWatcher(c.cfg.RootPath, conn, c.logger)
		if err != nil {
			c.logger.Warnw("workspace watcher unavailable", zap.Error(err))
		} else {
			c.watcher = w
		}
	}

	return nil
}

func (c *client) initialize(ctx context.Context) error {
	rootURI := uri.File(c.cfg.RootPath)
	params := &protocol.InitializeParams{
		ProcessID:    int32(os.Getpid()),
		RootURI:      rootURI,
		Capabilities: protocol.ClientCapabilities{},
		WorkspaceFolders: []protocol.WorkspaceFolder{
			{
				URI:  string(rootURI),
				Name: filepath.Base(c.cfg.RootPath),
			},
		},
	}

	var result protocol.InitializeResult
	if _, err := c.conn.Call(ctx, protocol.MethodInitialize, params, &result); err != nil {
		return fmt.Errorf("initialize handshake: %w", err)
	}
	if err := c.conn.Notify(ctx, protocol.MethodInitialized, &protocol.InitializedParams{}); err != nil {
		return fmt.Errorf("initialized notification: %w", err)
	}

	c.logger.Debugw("language server initialized", "serverInfo", result.ServerInfo)
	return nil
}

// handle processes server-to-client traffic. Diagnostics are accumulated;
// everything else is answered just enough to keep servers happy.
func (c *client) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case protocol.MethodTextDocumentPublishDiagnostics:
		var params protocol.PublishDiagnosticsParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, fmt.Errorf("decoding publishDiagnostics: %w", err))
		}
		c.diagnostics.apply(params.URI, params.Diagnostics)
		return reply(ctx, nil, nil)

	case protocol.MethodWindowLogMessage:
		var params protocol.LogMessageParams
		if err := json.Unmarshal(req.Params(), &params); err == nil {
			c.logger.Debugw("server log", "message", params.Message)
		}
		return reply(ctx, nil, nil)

	case protocol.MethodWindowShowMessage:
		var params protocol.ShowMessageParams
		if err := json.Unmarshal(req.Params(), &params); err == nil {
			c.logger.Infow("server message", "message", params.Message)
		}
		return reply(ctx, nil, nil)

	case protocol.MethodWorkspaceConfiguration:
		var params protocol.ConfigurationParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, fmt.Errorf("decoding configuration request: %w", err))
		}
		return reply(ctx, make([]interface{}, len(params.Items)), nil)

	case protocol.MethodClientRegisterCapability, protocol.MethodClientUnregisterCapability,
		protocol.MethodWorkDoneProgressCreate:
		return reply(ctx, nil, nil)

	default:
		if _, ok := req.(*jsonrpc2.Call); ok {
			return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
		}
		return nil
	}
}

// OpenFile registers the file with the server, triggering analysis and the
// asynchronous publishDiagnostics that follows.
func (c *client) OpenFile(ctx context.Context, relPath string) error {
	absPath := filepath.Join(c.cfg.RootPath, relPath)
	content, err := c.fs.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &ulserrors.FileNotFoundError{Path: relPath}
		}
		return fmt.Errorf("reading %q: %w", relPath, err)
	}

	// Arm before didOpen so a fast publish is not missed. Re-opening arms a
	// fresh latch, so records from a previous open never satisfy this wait.
	c.diagnostics.arm(uri.File(absPath))

	params := &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri.File(absPath),
			LanguageID: protocol.LanguageIdentifier(c.cfg.LanguageID),
			Version:    1,
			Text:       string(content),
		},
	}
	return c.conn.Notify(ctx, protocol.MethodTextDocumentDidOpen, params)
}

// CloseFile unregisters the file with the server. Accumulated diagnostics are retained.
func (c *client) CloseFile(ctx context.Context, relPath string) error {
	params := &protocol.DidCloseTextDocumentParams{
		TextDocument: c.textDocument(relPath),
	}
	return c.conn.Notify(ctx, protocol.MethodTextDocumentDidClose, params)
}

// Diagnostics returns the currently accumulated records for the file.
func (c *client) Diagnostics(relPath string) []protocol.Diagnostic {
	return c.diagnostics.get(uri.File(filepath.Join(c.cfg.RootPath, relPath)))
}

// WaitForDiagnostics blocks until the server publishes for the file since it
// was last opened, the timeout elapses, or ctx is cancelled.
func (c *client) WaitForDiagnostics(ctx context.Context, relPath string, timeout time.Duration) error {
	settled := c.diagnostics.settled(uri.File(filepath.Join(c.cfg.RootPath, relPath)))

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-settled:
		return nil
	case <-timer.C:
		return ErrDiagnosticsWaitTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *client) Definition(ctx context.Context, relPath string, pos protocol.Position) ([]protocol.Location, error) {
	params := &protocol.DefinitionParams{
		TextDocumentPositionParams: c.positionParams(relPath, pos),
	}
	var raw json.RawMessage
	if _, err := c.conn.Call(ctx, protocol.MethodTextDocumentDefinition, params, &raw); err != nil {
		return nil, fmt.Errorf("definition request: %w", err)
	}
	return decodeLocations(raw)
}

func (c *client) References(ctx context.Context, relPath string, pos protocol.Position, includeDeclaration bool) ([]protocol.Location, error) {
	params := &protocol.ReferenceParams{
		TextDocumentPositionParams: c.positionParams(relPath, pos),
		Context: protocol.ReferenceContext{
			IncludeDeclaration: includeDeclaration,
		},
	}
	var result []protocol.Location
	if _, err := c.conn.Call(ctx, protocol.MethodTextDocumentReferences, params, &result); err != nil {
		return nil, fmt.Errorf("references request: %w", err)
	}
	return result, nil
}

func (c *client) Hover(ctx context.Context, relPath string, pos protocol.Position) (*protocol.Hover, error) {
	params := &protocol.HoverParams{
		TextDocumentPositionParams: c.positionParams(relPath, pos),
	}
	var raw json.RawMessage
	if _, err := c.conn.Call(ctx, protocol.MethodTextDocumentHover, params, &raw); err != nil {
		return nil, fmt.Errorf("hover request: %w", err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var result protocol.Hover
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding hover result: %w", err)
	}
	return &result, nil
}

func (c *client) DocumentSymbols(ctx context.Context, relPath string) ([]protocol.DocumentSymbol, error) {
	params := &protocol.DocumentSymbolParams{
		TextDocument: c.textDocument(relPath),
	}
	var raw json.RawMessage
	if _, err := c.conn.Call(ctx, protocol.MethodTextDocumentDocumentSymbol, params, &raw); err != nil {
		return nil, fmt.Errorf("documentSymbol request: %w", err)
	}
	return decodeSymbols(raw)
}

// Stop performs the shutdown handshake and reaps the process, killing it if
// it does not exit within the grace period.
func (c *client) Stop(ctx context.Context) error {
	var errs error

	if c.watcher != nil {
		errs = multierr.Append(errs, c.watcher.Close())
		c.watcher = nil
	}

	if c.conn != nil {
		sctx, cancel := context.WithTimeout(ctx, c.cfg.ShutdownGracePeriod)
		defer cancel()

		if _, err := c.conn.Call(sctx, protocol.MethodShutdown, nil, nil); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shutdown request: %w", err))
		}
		if err := c.conn.Notify(sctx, protocol.MethodExit, nil); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("exit notification: %w", err))
		}
		errs = multierr.Append(errs, c.conn.Close())
		c.conn = nil
	}

	errs = multierr.Append(errs, c.reap())
	return errs
}

// reap waits for the server process to exit, killing it after the grace period.
func (c *client) reap() error {
	if c.cmd == nil || c.cmd.Process == nil {
		return nil
	}
	cmd := c.cmd
	c.cmd = nil

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-time.After(c.cfg.ShutdownGracePeriod):
		c.logger.Warnw("language server did not exit; killing", "pid", cmd.Process.Pid)
		err := cmd.Process.Kill()
		<-done
		return err
	}
}

func (c *client) textDocument(relPath string) protocol.TextDocumentIdentifier {
	return protocol.TextDocumentIdentifier{
		URI: uri.File(filepath.Join(c.cfg.RootPath, relPath)),
	}
}

func (c *client) positionParams(relPath string, pos protocol.Position) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: c.textDocument(relPath),
		Position:     pos,
	}
}

// decodeLocations accepts the three shapes servers return for definition
// results: a single Location, a Location slice, or a LocationLink slice.
func decodeLocations(raw json.RawMessage) ([]protocol.Location, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var locations []protocol.Location
	if err := json.Unmarshal(raw, &locations); err == nil {
		return locations, nil
	}

	var single protocol.Location
	if err := json.Unmarshal(raw, &single); err == nil && single.URI != "" {
		return []protocol.Location{single}, nil
	}

	var links []protocol.LocationLink
	if err := json.Unmarshal(raw, &links); err == nil {
		locations = make([]protocol.Location, 0, len(links))
		for _, link := range links {
			locations = append(locations, protocol.Location{
				URI:   link.TargetURI,
				Range: link.TargetRange,
			})
		}
		return locations, nil
	}

	return nil, fmt.Errorf("unexpected definition result shape")
}

// decodeSymbols accepts both hierarchical DocumentSymbol results and flat
// SymbolInformation results, normalizing the latter.
func decodeSymbols(raw json.RawMessage) ([]protocol.DocumentSymbol, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var symbols []protocol.DocumentSymbol
	if err := json.Unmarshal(raw, &symbols); err == nil && symbolsHaveRanges(symbols) {
		return symbols, nil
	}

	var flat []protocol.SymbolInformation
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("unexpected documentSymbol result shape: %w", err)
	}
	symbols = make([]protocol.DocumentSymbol, 0, len(flat))
	for _, info := range flat {
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           info.Name,
			Kind:           info.Kind,
			Range:          info.Location.Range,
			SelectionRange: info.Location.Range,
		})
	}
	return symbols, nil
}

// symbolsHaveRanges distinguishes a real DocumentSymbol payload from a
// SymbolInformation payload that happened to satisfy the decoder.
func symbolsHaveRanges(symbols []protocol.DocumentSymbol) bool {
	for _, s := range symbols {
		if s.Range.End == (protocol.Position{}) && s.SelectionRange.End == (protocol.Position{}) {
			return false
		}
	}
	return true
}

// logWriter forwards the server's stderr to the debug log line by line.
type logWriter struct {
	logger *zap.SugaredLogger
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.logger.Debugw("server stderr", "output", string(p))
	return len(p), nil
}
