// Package app assembles the polyls application module.
package app

import (
	"context"
	"time"

	"github.com/polyls/polyls/src/polyls/controller/sessions"
	langserver "github.com/polyls/polyls/src/polyls/gateway/lang-server"
	httpapi "github.com/polyls/polyls/src/polyls/handler/http-api"
	"github.com/polyls/polyls/src/polyls/internal/clock"
	"github.com/polyls/polyls/src/polyls/internal/core"
	"github.com/polyls/polyls/src/polyls/internal/executor"
	"github.com/polyls/polyls/src/polyls/internal/fs"
	"github.com/polyls/polyls/src/polyls/repository/session"
	tally "github.com/uber-go/tally"
	"go.uber.org/fx"
)

// Module defines the polyls application module.
var Module = fx.Options(
	langserver.Module, // outbounds
	httpapi.Module,    // inbounds
	sessions.Module,
	fx.Provide(session.New),
	fs.Module,
	executor.Module,
	fx.Provide(clock.New),
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "polyls",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Invoke(func(h httpapi.Handler) {}),
)
