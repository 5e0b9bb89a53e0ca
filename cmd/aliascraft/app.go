// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/ahmedeladl00/aliascraft/internal/action"
	"github.com/ahmedeladl00/aliascraft/internal/bootstrap"
	"github.com/ahmedeladl00/aliascraft/internal/config"
	"github.com/ahmedeladl00/aliascraft/internal/runtime"
	"github.com/ahmedeladl00/aliascraft/pkg/alias"

	"github.com/charmbracelet/log"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference.
	App struct {
		Config  ConfigProvider
		Catalog *action.Catalog
		stdout  io.Writer
		stderr  io.Writer

		flags globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Catalog *action.Catalog
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// globalFlags holds the persistent root flags.
	globalFlags struct {
		verbose    bool
		configPath string
		aliasFiles []string
		runtime    string
	}

	// session is the per-invocation state built from configuration.
	session struct {
		cfg      *config.Config
		registry *alias.Registry
		report   *bootstrap.Report
		logger   *log.Logger
		verbose  bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Catalog == nil {
		deps.Catalog = action.NewCatalog()
	}

	return &App{
		Config:  deps.Config,
		Catalog: deps.Catalog,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}, nil
}

// loadConfig loads configuration honoring --config.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
}

// open loads configuration and boots the alias registry. Skipped alias
// files are logged as warnings.
func (a *App) open(ctx context.Context) (*session, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	verbose := a.flags.verbose || cfg.UI.Verbose
	logger := newLogger(a.stderr, verbose)

	opts := bootstrap.Options{
		ExtraFiles: a.flags.aliasFiles,
		Runtime:    runtime.Mode(a.flags.runtime),
		Catalog:    a.Catalog,
		Logger:     logger,
	}

	reg, err := bootstrap.NewRegistry(cfg, opts)
	if err != nil {
		return nil, err
	}
	if verbose {
		pre, post := loggingHooks(logger)
		reg.RegisterPreHook(pre)
		reg.RegisterPostHook(post)
	}

	report, err := bootstrap.Boot(ctx, cfg, reg, opts)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, registry: reg, report: report, logger: logger, verbose: verbose}, nil
}

// newLogger returns the CLI logger: Info level, Debug when verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "aliascraft",
		Level:  level,
	})
}

// issueStyle maps the configured color scheme to a glamour style.
func issueStyle(cfg *config.Config) string {
	if cfg == nil {
		return "auto"
	}
	switch cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}
