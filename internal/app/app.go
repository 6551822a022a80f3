package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/leon-computer/alpha.component-async/internal/config"
	"github.com/leon-computer/alpha.component-async/internal/ctxlog"
	"github.com/leon-computer/alpha.component-async/internal/hcl"
	"github.com/leon-computer/alpha.component-async/internal/registry"
)

// App encapsulates the runner's dependencies and configuration.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *config.Model
	cfg      *Config
}

// NewApp loads the manifest and populates the registry. A failure to load
// or decode the manifest is a fatal startup error and panics; main recovers
// it into a clean exit message.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	model, err := hcl.NewLoader().Load(ctx, cfg.ManifestPath)
	if err != nil {
		panic(fmt.Errorf("failed to load manifest: %w", err))
	}

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("component types registered", "types", reg.Types())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		model:    model,
		cfg:      cfg,
	}
}

// Registry returns the application's registry. This is primarily for tests.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
