// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"context"
	"io"
	"slices"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

type (
	// Registry owns the alias definitions and both hook lists.
	// It is safe for concurrent use. Actions and hooks run with no lock held,
	// so they may call back into the registry.
	Registry struct {
		mu        sync.RWMutex
		aliases   map[string]*Definition
		order     []string // insertion order of aliases keys
		preHooks  []PreHook
		postHooks []PostHook

		resolver ActionResolver
		logger   *log.Logger
	}

	// Option configures a Registry.
	Option func(*Registry)
)

// WithLogger sets the logger used for registration and import diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithResolver sets the resolver consulted by LoadFromConfigFile and
// LoadEntries for action values that are not already an Action.
func WithResolver(resolver ActionResolver) Option {
	return func(r *Registry) { r.resolver = resolver }
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		aliases: make(map[string]*Definition),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register inserts or replaces the definition for name. Replacing is silent
// and keeps the alias at its original position in Aliases().
func (r *Registry) Register(name string, action Action, opts Options) error {
	if action == nil {
		return ErrNilAction
	}

	def := &Definition{
		Name:         name,
		Action:       action,
		Group:        opts.Group,
		ExpectedArgs: slices.Clone(opts.Args),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.aliases[name]; !exists {
		r.order = append(r.order, name)
	}
	r.aliases[name] = def

	r.logger.Debug("registered alias", "alias", name, "group", opts.Group, "args", len(opts.Args))
	return nil
}

// Run invokes the alias registered under name.
//
// The pipeline is: lookup, pre-hooks, arity check, action, post-hooks. The
// arity check happens after pre-hooks so a hook may supply missing arguments.
// Errors from the action or from hooks are returned unwrapped.
func (r *Registry) Run(ctx context.Context, name string, args ...any) (any, error) {
	r.mu.RLock()
	def, ok := r.aliases[name]
	var snapshot Definition
	if ok {
		snapshot = def.clone()
	}
	preHooks := slices.Clone(r.preHooks)
	postHooks := slices.Clone(r.postHooks)
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	// Hooks mutate a private copy; the caller's variadic slice is left alone.
	argv := slices.Clone(args)
	if argv == nil {
		argv = []any{}
	}

	for _, hook := range preHooks {
		if err := hook(ctx, name, &argv); err != nil {
			return nil, err
		}
	}

	if expected := snapshot.MinArgs(); expected > 0 && len(argv) < expected {
		return nil, &ArityError{Name: name, Expected: expected, Got: len(argv)}
	}

	result, err := snapshot.Action(ctx, argv)
	if err != nil {
		return nil, err
	}

	for _, hook := range postHooks {
		if err := hook(ctx, name, argv, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// RegisterPreHook appends a hook that runs before every alias invocation.
func (r *Registry) RegisterPreHook(hook PreHook) {
	if hook == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preHooks = append(r.preHooks, hook)
}

// RegisterPostHook appends a hook that runs after every successful invocation.
func (r *Registry) RegisterPostHook(hook PostHook) {
	if hook == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postHooks = append(r.postHooks, hook)
}

// Get returns a copy of the definition registered under name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.aliases[name]
	if !ok {
		return Definition{}, false
	}
	return def.clone(), true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.aliases[name]
	return ok
}

// Count returns the number of registered aliases.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.aliases)
}

// Aliases returns every definition in insertion order.
func (r *Registry) Aliases() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.aliases[name].clone())
	}
	return out
}

// Groups returns the distinct non-empty groups, sorted.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, def := range r.aliases {
		if def.HasGroup() {
			seen[def.Group] = struct{}{}
		}
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// GetAliasesByGroup returns the definitions whose group equals group exactly.
// Aliases without a group never match, including for group == "".
func (r *Registry) GetAliasesByGroup(group string) map[string]Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Definition)
	if group == "" {
		return out
	}
	for name, def := range r.aliases {
		if def.Group == group {
			out[name] = def.clone()
		}
	}
	return out
}

// ChangeGroup replaces the group of an existing alias. The action and the
// expected arguments are left untouched.
func (r *Registry) ChangeGroup(name, group string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	def, ok := r.aliases[name]
	if !ok {
		return &NotFoundError{Name: name}
	}
	def.Group = group
	return nil
}

// Reset removes every alias and hook.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.aliases = make(map[string]*Definition)
	r.order = nil
	r.preHooks = nil
	r.postHooks = nil
}
