// Package sessions implements the session lifecycle and code intel business logic.
package sessions

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/polyls/polyls/src/polyls/entity"
	langserver "github.com/polyls/polyls/src/polyls/gateway/lang-server"
	"github.com/polyls/polyls/src/polyls/internal/clock"
	"github.com/polyls/polyls/src/polyls/internal/errors"
	"github.com/polyls/polyls/src/polyls/internal/fs"
	"github.com/polyls/polyls/src/polyls/repository/session"
	tally "github.com/uber-go/tally"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Module provides the sessions controller into an Fx application.
var Module = fx.Provide(New)

const (
	// Configuration keys
	_languagesKey = "languages"

	// Metric names
	_metricCreated       = "sessions_created"
	_metricDeleted       = "sessions_deleted"
	_metricStartFailures = "start_failures"
	_metricStopFailures  = "stop_failures"
	_metricDiagnostics   = "diagnostics_requests"
	_metricIncomplete    = "diagnostics_incomplete"
)

// Controller orchestrates the business logic for each request.
type Controller interface {
	CreateSession(ctx context.Context, language string, projectPath string) (*entity.Session, error)
	GetSession(ctx context.Context) (*entity.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ListSessions(ctx context.Context) []*entity.Session

	Diagnostics(ctx context.Context, filePath string) (entity.DiagnosticsReport, error)
	Definition(ctx context.Context, filePath string, pos protocol.Position) ([]protocol.Location, error)
	References(ctx context.Context, filePath string, pos protocol.Position) ([]protocol.Location, error)
	Hover(ctx context.Context, filePath string, pos protocol.Position) (*protocol.Hover, error)
	DocumentSymbols(ctx context.Context, filePath string) ([]protocol.DocumentSymbol, error)
}

// languageEntry configures the server for one supported language.
type languageEntry struct {
	Command             []string `yaml:"command"`
	SettleTimeout       string   `yaml:"settleTimeout"`
	ShutdownGracePeriod string   `yaml:"shutdownGracePeriod"`
	Watch               bool     `yaml:"watch"`
	Env                 []string `yaml:"env"`
}

type languageConfig struct {
	command             []string
	settleTimeout       time.Duration
	shutdownGracePeriod time.Duration
	watch               bool
	env                 []string
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Sessions  session.Repository
	Servers   langserver.Factory
	Logger    *zap.SugaredLogger
	Config    config.Provider
	Stats     tally.Scope
	FS        fs.FS
	Clock     clock.Clock
}

type controller struct {
	sessions  session.Repository
	servers   langserver.Factory
	logger    *zap.SugaredLogger
	stats     tally.Scope
	fs        fs.FS
	clock     clock.Clock
	languages map[string]languageConfig
}

// New constructs a new top-level controller for the service. All sessions
// still in the registry are stopped when the application shuts down.
func New(p Params) (Controller, error) {
	var entries map[string]languageEntry
	if err := p.Config.Get(_languagesKey).Populate(&entries); err != nil {
		return nil, fmt.Errorf("unable to get languages from config: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("no languages configured")
	}

	languages := make(map[string]languageConfig, len(entries))
	for name, e := range entries {
		lc, err := parseLanguageEntry(e)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", name, err)
		}
		languages[name] = lc
	}

	c := &controller{
		sessions:  p.Sessions,
		servers:   p.Servers,
		logger:    p.Logger,
		stats:     p.Stats.SubScope("sessions"),
		fs:        p.FS,
		clock:     p.Clock,
		languages: languages,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.stopAll(ctx)
		},
	})

	return c, nil
}

func parseLanguageEntry(e languageEntry) (languageConfig, error) {
	if len(e.Command) == 0 {
		return languageConfig{}, errors.New("missing command")
	}
	settle, err := time.ParseDuration(e.SettleTimeout)
	if err != nil {
		return languageConfig{}, fmt.Errorf("parsing settleTimeout: %w", err)
	}

	var grace time.Duration
	if e.ShutdownGracePeriod != "" {
		if grace, err = time.ParseDuration(e.ShutdownGracePeriod); err != nil {
			return languageConfig{}, fmt.Errorf("parsing shutdownGracePeriod: %w", err)
		}
	}

	return languageConfig{
		command:             e.Command,
		settleTimeout:       settle,
		shutdownGracePeriod: grace,
		watch:               e.Watch,
		env:                 e.Env,
	}, nil
}

// CreateSession validates the request, launches a server bound to the
// project root, and registers the session only once the server is up.
func (c *controller) CreateSession(ctx context.Context, language string, projectPath string) (*entity.Session, error) {
	lang, ok := c.languages[language]
	if !ok {
		return nil, &errors.InvalidLanguageError{Language: language}
	}
	if !filepath.IsAbs(projectPath) {
		return nil, &errors.InvalidPathError{Path: projectPath, Reason: "must be an absolute path"}
	}
	projectPath = filepath.Clean(projectPath)
	if ok, err := c.fs.DirExists(projectPath); err != nil {
		return nil, fmt.Errorf("checking project path: %w", err)
	} else if !ok {
		return nil, &errors.InvalidPathError{Path: projectPath, Reason: "directory does not exist"}
	}

	client, err := c.servers.New(langserver.Config{
		LanguageID:          language,
		Command:             lang.command,
		RootPath:            projectPath,
		SettleTimeout:       lang.settleTimeout,
		ShutdownGracePeriod: lang.shutdownGracePeriod,
		Watch:               lang.watch,
		Env:                 lang.env,
	})
	if err != nil {
		return nil, err
	}

	s := entity.NewSession(uuid.Must(uuid.NewV4()), language, projectPath, lang.settleTimeout, client, c.clock.Now())
	if err := s.Start(ctx); err != nil {
		c.stats.Counter(_metricStartFailures).Inc(1)
		return nil, fmt.Errorf("starting %s session: %w", language, err)
	}

	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, err
	}
	c.stats.Counter(_metricCreated).Inc(1)
	c.logger.Infow("session created", "uuid", s.UUID, "language", language, "projectPath", projectPath)
	return s, nil
}

// GetSession returns the session identified by the UUID in the context.
func (c *controller) GetSession(ctx context.Context) (*entity.Session, error) {
	return c.sessions.GetFromContext(ctx)
}

// DeleteSession removes the session from the registry and stops its server.
// A stop failure is reported after the session is already unregistered, so
// the registry never holds a session whose server may be dead.
func (c *controller) DeleteSession(ctx context.Context, id uuid.UUID) error {
	s, ok := c.sessions.Remove(ctx, id)
	if !ok {
		return &errors.SessionNotFoundError{UUID: id}
	}

	c.stats.Counter(_metricDeleted).Inc(1)
	if err := s.Stop(ctx); err != nil {
		c.stats.Counter(_metricStopFailures).Inc(1)
		c.logger.Errorw("stopping session", "uuid", id, zap.Error(err))
		return err
	}
	c.logger.Infow("session deleted", "uuid", id)
	return nil
}

// ListSessions returns all registered sessions.
func (c *controller) ListSessions(ctx context.Context) []*entity.Session {
	return c.sessions.List(ctx)
}

// Diagnostics collects diagnostics for one file in the context's session.
func (c *controller) Diagnostics(ctx context.Context, filePath string) (entity.DiagnosticsReport, error) {
	s, relPath, err := c.sessionFile(ctx, filePath)
	if err != nil {
		return entity.DiagnosticsReport{}, err
	}
	c.stats.Counter(_metricDiagnostics).Inc(1)
	report, err := s.Diagnostics(ctx, relPath)
	if err == nil && !report.Complete {
		c.stats.Counter(_metricIncomplete).Inc(1)
	}
	return report, err
}

// Definition resolves definition sites in the context's session.
func (c *controller) Definition(ctx context.Context, filePath string, pos protocol.Position) ([]protocol.Location, error) {
	s, relPath, err := c.sessionFile(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return s.Definition(ctx, relPath, pos)
}

// References resolves reference sites in the context's session, including
// the declaration itself.
func (c *controller) References(ctx context.Context, filePath string, pos protocol.Position) ([]protocol.Location, error) {
	s, relPath, err := c.sessionFile(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return s.References(ctx, relPath, pos, true)
}

// Hover returns hover content in the context's session.
func (c *controller) Hover(ctx context.Context, filePath string, pos protocol.Position) (*protocol.Hover, error) {
	s, relPath, err := c.sessionFile(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return s.Hover(ctx, relPath, pos)
}

// DocumentSymbols returns the symbol outline in the context's session.
func (c *controller) DocumentSymbols(ctx context.Context, filePath string) ([]protocol.DocumentSymbol, error) {
	s, relPath, err := c.sessionFile(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return s.DocumentSymbols(ctx, relPath)
}

// sessionFile resolves the context's session and checks that the file exists
// under its project root before any server traffic happens.
func (c *controller) sessionFile(ctx context.Context, filePath string) (*entity.Session, string, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, "", err
	}

	relPath, err := resolveProjectFile(filePath)
	if err != nil {
		return nil, "", err
	}
	if ok, err := c.fs.FileExists(filepath.Join(s.ProjectPath, relPath)); err != nil {
		return nil, "", fmt.Errorf("checking file path: %w", err)
	} else if !ok {
		return nil, "", &errors.FileNotFoundError{Path: relPath}
	}
	return s, relPath, nil
}

// resolveProjectFile normalizes a request file path, rejecting anything that
// would escape the project root.
func resolveProjectFile(filePath string) (string, error) {
	if filePath == "" {
		return "", &errors.InvalidPathError{Path: filePath, Reason: "file_path is required"}
	}
	if filepath.IsAbs(filePath) {
		return "", &errors.InvalidPathError{Path: filePath, Reason: "must be relative to the project root"}
	}
	cleaned := filepath.Clean(filePath)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", &errors.InvalidPathError{Path: filePath, Reason: "escapes the project root"}
	}
	return cleaned, nil
}

// stopAll stops every remaining session at shutdown. Failures are logged and
// counted but do not stop the remaining sessions from being shut down.
func (c *controller) stopAll(ctx context.Context) error {
	var errs error
	for _, s := range c.sessions.List(ctx) {
		if _, ok := c.sessions.Remove(ctx, s.UUID); !ok {
			continue
		}
		if err := s.Stop(ctx); err != nil {
			c.stats.Counter(_metricStopFailures).Inc(1)
			c.logger.Errorw("stopping session at shutdown", "uuid", s.UUID, zap.Error(err))
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
