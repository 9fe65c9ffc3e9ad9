// Package httpapi implements the service's REST API.
package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/polyls/polyls/src/polyls/controller/sessions"
	"github.com/polyls/polyls/src/polyls/entity"
	tally "github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the HTTP API server into an Fx application.
var Module = fx.Provide(New)

const (
	// Configuration keys
	_httpKey = "http"

	_defaultAddress = "127.0.0.1:8000"

	_readHeaderTimeout = 10 * time.Second
)

type httpConfig struct {
	Address string `yaml:"address"`
}

// Handler serves the REST API for the session gateway.
type Handler interface {
	// Router exposes the route table, mainly for tests.
	Router() http.Handler
}

// Params are inbound parameters to construct a Handler.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Sessions  sessions.Controller
	Logger    *zap.SugaredLogger
	Config    config.Provider
	Stats     tally.Scope
}

type handler struct {
	sessions sessions.Controller
	logger   *zap.SugaredLogger
	stats    tally.Scope
	router   chi.Router
}

// New constructs the Handler and binds the HTTP server to the Fx lifecycle.
func New(p Params) (Handler, error) {
	cfg := httpConfig{Address: _defaultAddress}
	if err := p.Config.Get(_httpKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("unable to get http config: %w", err)
	}

	h := &handler{
		sessions: p.Sessions,
		logger:   p.Logger,
		stats:    p.Stats.SubScope("http"),
	}
	h.router = h.routes()

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           h.router,
		ReadHeaderTimeout: _readHeaderTimeout,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("binding %q: %w", srv.Addr, err)
			}
			h.logger.Infow("http server listening", "address", ln.Addr().String())
			go func() {
				if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
					h.logger.Errorw("http server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return h, nil
}

// Router exposes the route table.
func (h *handler) Router() http.Handler {
	return h.router
}

func (h *handler) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.countRequests)

	r.Get("/", h.root)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Get("/", h.listSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Use(h.sessionCtx)
			r.Get("/", h.getSession)
			r.Delete("/", h.deleteSession)
			r.Get("/diagnostics", h.diagnostics)
			r.Get("/definition", h.definition)
			r.Get("/references", h.references)
			r.Get("/hover", h.hover)
			r.Get("/symbols", h.symbols)
		})
	})
	return r
}

// countRequests counts every request by method.
func (h *handler) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.stats.Tagged(map[string]string{"method": r.Method}).Counter("requests").Inc(1)
		next.ServeHTTP(w, r)
	})
}

// sessionCtx parses the session id path segment into the request context.
func (h *handler) sessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.FromString(chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid session id")
			return
		}
		ctx := context.WithValue(r.Context(), entity.SessionContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
