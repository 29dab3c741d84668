package app

import (
	"os"
	"time"

	"github.com/kitestore-next/internal/config"
	"github.com/kitestore-next/internal/logger"

	"go.uber.org/zap"
)

const (
	ModeAll = "all"
	ModeAPI = "api"
	ModeBot = "bot"
)

// Options configures application startup.
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// normalizeOptions fills in default values.
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}
