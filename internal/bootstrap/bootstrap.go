// SPDX-License-Identifier: MPL-2.0

// Package bootstrap builds the alias registry from application configuration:
// inline aliases first, then each configured alias file, then files given on
// the command line.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ahmedeladl00/aliascraft/internal/action"
	"github.com/ahmedeladl00/aliascraft/internal/config"
	"github.com/ahmedeladl00/aliascraft/internal/issue"
	"github.com/ahmedeladl00/aliascraft/internal/runtime"
	"github.com/ahmedeladl00/aliascraft/pkg/alias"

	"github.com/charmbracelet/log"
)

const (
	// SourceInline labels aliases defined in the config file's aliases block.
	SourceInline SourceKind = "inline"
	// SourceConfigFile labels a document listed in alias_files.
	SourceConfigFile SourceKind = "alias_files"
	// SourceFlag labels a document passed with --alias-file.
	SourceFlag SourceKind = "flag"
)

type (
	// SourceKind says where an alias source was named.
	SourceKind string

	// Options tunes how the registry is built.
	Options struct {
		// ExtraFiles are loaded after the configured sources. Unlike
		// alias_files entries, a missing extra file is an error.
		ExtraFiles []string
		// Runtime overrides cfg.DefaultRuntime when non-empty.
		Runtime runtime.Mode
		// Catalog supplies builtins; nil means action.NewCatalog().
		Catalog *action.Catalog
		// Logger receives load diagnostics; nil discards them.
		Logger *log.Logger
	}

	// Source reports the outcome of loading one alias source.
	Source struct {
		Kind       SourceKind
		Path       string
		Registered int
		// Warning is set when the source was skipped.
		Warning string
	}

	// Report summarizes a Boot call.
	Report struct {
		Sources []Source
	}
)

// Total returns the number of registrations across all sources. Overwrites
// count once per registration.
func (r *Report) Total() int {
	n := 0
	for _, s := range r.Sources {
		n += s.Registered
	}
	return n
}

// Warnings returns the warnings of skipped sources, in load order.
func (r *Report) Warnings() []string {
	var out []string
	for _, s := range r.Sources {
		if s.Warning != "" {
			out = append(out, s.Warning)
		}
	}
	return out
}

// NewRegistry returns an empty registry whose resolver follows cfg's runtime
// settings.
func NewRegistry(cfg *config.Config, opts Options) (*alias.Registry, error) {
	mode := runtime.Mode(cfg.DefaultRuntime)
	if opts.Runtime != "" {
		mode = opts.Runtime
	}
	if err := mode.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("select runtime").
			WithResource(string(mode)).
			WithSuggestion("Use 'virtual' or 'native'").
			WithIssue(issue.InvalidRuntimeModeId).
			Wrap(err).
			BuildError()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	resolver := action.NewResolver(opts.Catalog,
		action.WithDefaultRuntime(mode),
		action.WithNativeShell(cfg.NativeShell),
		action.WithLogger(logger),
	)
	return alias.New(alias.WithResolver(resolver), alias.WithLogger(logger)), nil
}

// Boot registers every alias source named by cfg and opts into reg.
//
// A configured alias file that does not exist is recorded as a warning and
// skipped so that startup continues. A document that cannot be parsed stops
// the boot with an error.
func Boot(ctx context.Context, cfg *config.Config, reg *alias.Registry, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	report := &Report{}

	if len(cfg.Aliases) > 0 {
		n := reg.LoadEntries(cfg.SourcePath, cfg.Aliases)
		report.Sources = append(report.Sources, Source{Kind: SourceInline, Path: cfg.SourcePath, Registered: n})
		logger.Debug("loaded inline aliases", "count", n)
	}

	for _, p := range cfg.AliasFiles {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("boot canceled: %w", err)
		}
		path := cfg.ResolveAliasFile(p)
		src, err := loadFile(reg, SourceConfigFile, path, true)
		if err != nil {
			return report, err
		}
		if src.Warning != "" {
			logger.Warn("skipping alias file", "path", path, "reason", src.Warning)
		} else {
			logger.Debug("loaded alias file", "path", path, "count", src.Registered)
		}
		report.Sources = append(report.Sources, src)
	}

	for _, path := range opts.ExtraFiles {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("boot canceled: %w", err)
		}
		src, err := loadFile(reg, SourceFlag, path, false)
		if err != nil {
			return report, err
		}
		logger.Debug("loaded alias file", "path", path, "count", src.Registered)
		report.Sources = append(report.Sources, src)
	}

	return report, nil
}

func loadFile(reg *alias.Registry, kind SourceKind, path string, tolerateMissing bool) (Source, error) {
	src := Source{Kind: kind, Path: path}

	n, err := reg.LoadFromConfigFile(path)
	switch {
	case err == nil:
		src.Registered = n
		return src, nil
	case errors.Is(err, alias.ErrNotFound) && tolerateMissing:
		src.Warning = err.Error()
		return src, nil
	case errors.Is(err, alias.ErrNotFound):
		return src, issue.NewErrorContext().
			WithOperation("load alias file").
			WithResource(path).
			WithSuggestion("Check the path passed to --alias-file").
			WithIssue(issue.AliasFileNotFoundId).
			Wrap(err).
			BuildError()
	case errors.Is(err, alias.ErrFormat):
		return src, issue.NewErrorContext().
			WithOperation("load alias file").
			WithResource(path).
			WithSuggestion("The document must map alias names to {action, options} entries").
			WithIssue(issue.AliasFileInvalidId).
			Wrap(err).
			BuildError()
	default:
		return src, issue.WrapWithContext(err, "load alias file", path)
	}
}
