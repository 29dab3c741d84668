package app

import (
	"errors"

	"github.com/kitestore-next/internal/bot"
	"github.com/kitestore-next/internal/config"
	"github.com/kitestore-next/internal/provider"
	"github.com/kitestore-next/internal/router"
	"github.com/kitestore-next/internal/worker"
)

// BuildRunner assembles the services for the requested mode.
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	if mode == ModeAll || mode == ModeBot {
		poller := bot.NewPoller(container.BotClient, container.Dispatcher, cfg.Bot.PollTimeoutSeconds)
		janitor := worker.NewJanitor(cfg.Session, container.Sessions, container.Photos)
		services = append(services, poller, janitor)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode)")
	}

	return NewRunner(services...), nil
}

// Run is the application entry point.
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
