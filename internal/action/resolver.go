// SPDX-License-Identifier: MPL-2.0

package action

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ahmedeladl00/aliascraft/internal/runtime"
	"github.com/ahmedeladl00/aliascraft/pkg/alias"

	"github.com/charmbracelet/log"
)

type (
	// Resolver implements alias.ActionResolver over a builtin Catalog and the
	// shell runtimes.
	Resolver struct {
		catalog        *Catalog
		defaultRuntime runtime.Mode
		nativeShell    string
		logger         *log.Logger
	}

	// ResolverOption configures a Resolver.
	ResolverOption func(*Resolver)

	// scriptSpec is the decoded form of a script action.
	scriptSpec struct {
		script string
		mode   runtime.Mode
		dir    string
		env    map[string]string
	}
)

var _ alias.ActionResolver = (*Resolver)(nil)

// WithDefaultRuntime sets the runtime used by scripts that do not name one.
func WithDefaultRuntime(mode runtime.Mode) ResolverOption {
	return func(r *Resolver) { r.defaultRuntime = mode }
}

// WithNativeShell sets the shell used by the native runtime.
func WithNativeShell(shell string) ResolverOption {
	return func(r *Resolver) { r.nativeShell = shell }
}

// WithLogger sets the logger that reports rejected actions at debug level.
func WithLogger(logger *log.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a resolver. A nil catalog means NewCatalog().
func NewResolver(catalog *Catalog, opts ...ResolverOption) *Resolver {
	if catalog == nil {
		catalog = NewCatalog()
	}
	r := &Resolver{
		catalog:        catalog,
		defaultRuntime: runtime.ModeVirtual,
		logger:         log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the builtin catalog.
func (r *Resolver) Catalog() *Catalog { return r.catalog }

// Resolve implements alias.ActionResolver.
func (r *Resolver) Resolve(name string, raw any) (alias.Action, bool) {
	action, err := r.resolve(name, raw)
	if err != nil {
		r.logger.Debug("action not invocable", "alias", name, "reason", err)
		return nil, false
	}
	return action, true
}

func (r *Resolver) resolve(name string, raw any) (alias.Action, error) {
	switch v := raw.(type) {
	case string:
		return r.builtin(v)
	case map[string]any:
		_, hasBuiltin := v["builtin"]
		_, hasScript := v["script"]
		switch {
		case hasBuiltin && hasScript:
			return nil, errors.New("action sets both builtin and script")
		case hasBuiltin:
			s, ok := v["builtin"].(string)
			if !ok {
				return nil, fmt.Errorf("builtin must be a string, got %T", v["builtin"])
			}
			return r.builtin(s)
		case hasScript:
			spec, err := r.decodeScript(v)
			if err != nil {
				return nil, err
			}
			return r.script(name, spec)
		}
		return nil, errors.New("action mapping needs a builtin or script key")
	default:
		return nil, fmt.Errorf("unsupported action type %T", raw)
	}
}

func (r *Resolver) builtin(name string) (alias.Action, error) {
	action, ok := r.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown builtin %q", name)
	}
	return action, nil
}

func (r *Resolver) decodeScript(m map[string]any) (scriptSpec, error) {
	spec := scriptSpec{mode: r.defaultRuntime}

	script, ok := m["script"].(string)
	if !ok {
		return spec, fmt.Errorf("script must be a string, got %T", m["script"])
	}
	spec.script = script

	if raw, ok := m["runtime"]; ok {
		s, ok := raw.(string)
		if !ok {
			return spec, fmt.Errorf("runtime must be a string, got %T", raw)
		}
		spec.mode = runtime.Mode(s)
	}
	if err := spec.mode.Validate(); err != nil {
		return spec, err
	}

	if raw, ok := m["dir"]; ok {
		s, ok := raw.(string)
		if !ok {
			return spec, fmt.Errorf("dir must be a string, got %T", raw)
		}
		spec.dir = s
	}

	if raw, ok := m["env"]; ok {
		envMap, ok := raw.(map[string]any)
		if !ok {
			return spec, fmt.Errorf("env must be a mapping, got %T", raw)
		}
		spec.env = make(map[string]string, len(envMap))
		for k, val := range envMap {
			spec.env[k] = fmt.Sprint(val)
		}
	}
	return spec, nil
}

func (r *Resolver) script(name string, spec scriptSpec) (alias.Action, error) {
	rt, err := runtime.New(spec.mode, r.nativeShell)
	if err != nil {
		return nil, err
	}
	// Native shells are looked up at run time so a config can be loaded on a
	// machine that lacks them.
	if spec.mode != runtime.ModeNative {
		if err := rt.Validate(spec.script); err != nil {
			return nil, err
		}
	} else if spec.script == "" {
		return nil, errors.New("script is empty")
	}

	return func(ctx context.Context, args []any) (any, error) {
		res := rt.ExecuteCapture(ctx, runtime.Request{
			Name:   name,
			Script: spec.script,
			Args:   Stringify(args),
			Dir:    spec.dir,
			Env:    spec.env,
		})
		return res.Value(name)
	}, nil
}
