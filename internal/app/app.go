// Package app wires the lattice loader, machine builder and output writer
// into one runnable application.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/latticego/internal/beam"
	"github.com/vk/latticego/internal/config"
	"github.com/vk/latticego/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		loader: loader,
	}
}

// Run loads the lattice description, builds the machine and writes the
// rendered GMAD output.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	model, err := a.loader.Load(ctx, a.config.LatticePath)
	if err != nil {
		return fmt.Errorf("loading lattice description: %w", err)
	}

	machine, err := BuildMachine(model)
	if err != nil {
		return fmt.Errorf("building machine: %w", err)
	}
	a.logger.Info("Machine built.",
		"elements", len(machine.Elements),
		"sequence", len(machine.Sequence),
		"length", machine.Length())

	if a.config.BeamPath != "" {
		cfg, err := beam.LoadConfig(a.config.BeamPath)
		if err != nil {
			return err
		}
		b, err := beam.FromConfig(cfg)
		if err != nil {
			return fmt.Errorf("building beam from %s: %w", a.config.BeamPath, err)
		}
		if err := machine.AddBeam(b); err != nil {
			return err
		}
		a.logger.Info("Beam configuration applied.", "path", a.config.BeamPath, "distribution", b.DistrType())
	}

	if err := machine.WriteToFile(a.config.OutputPath); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	a.logger.Info("Machine written.", "path", a.config.OutputPath)
	return nil
}
