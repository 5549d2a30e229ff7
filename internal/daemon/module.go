package daemon

import (
	"context"

	"github.com/launchsoft/slackmirror/internal/bus"
	"github.com/launchsoft/slackmirror/internal/config"
	"github.com/launchsoft/slackmirror/internal/lock"
	"github.com/launchsoft/slackmirror/internal/logging"
	"github.com/launchsoft/slackmirror/internal/mirror"
	"github.com/launchsoft/slackmirror/internal/rtm"
	"github.com/launchsoft/slackmirror/internal/session"
	"github.com/launchsoft/slackmirror/internal/status"
	"github.com/launchsoft/slackmirror/internal/web"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved workspace configuration passed to the fx module.
type Params struct {
	Workspace  string
	ConfigPath string // optional override for testing; empty = use default
}

// Module returns the fx module for the daemon, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideMirror,
			provideWebClient,
			provideRTMClient,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	path := p.ConfigPath
	if path == "" {
		path = session.ConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(session.LogPath(p.Workspace), p.Workspace)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := session.EnsureDir(p.Workspace); err != nil {
		return nil, err
	}
	logger.Info("acquiring workspace lock", zap.String("workspace", p.Workspace))
	l, err := lock.Acquire(session.Dir(p.Workspace))
	if err != nil {
		return nil, err
	}
	logger.Info("workspace lock acquired")
	return l, nil
}

func provideMirror(b *bus.Bus, logger *zap.Logger) *mirror.Mirror {
	return mirror.New(b, logger)
}

func provideWebClient(cfg *config.Config, logger *zap.Logger) *web.Client {
	return web.New(cfg.APIBase, cfg.Token, logger)
}

func provideRTMClient(cfg *config.Config, api *web.Client, m *mirror.Mirror, machine *status.Machine, b *bus.Bus, logger *zap.Logger) *rtm.Client {
	return rtm.New(rtm.Config{
		PingInterval: cfg.PingInterval(),
		PongTimeout:  cfg.PongTimeout(),
		Reconnect:    cfg.Reconnect,
	}, api, m, machine, b, logger)
}

func registerLifecycle(lc fx.Lifecycle, client *rtm.Client, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Connect in the background; a handshake failure is
			// reported once on the bus and must not kill startup.
			go func() {
				if err := client.Connect(context.Background()); err != nil {
					logger.Error("initial connect failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			client.Close()
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			return nil
		},
	})
}
