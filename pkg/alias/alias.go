// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"context"
	"slices"
)

type (
	// Action is the callable bound to an alias. Arguments arrive by position
	// after pre-hooks have run.
	Action func(ctx context.Context, args []any) (any, error)

	// PreHook runs before the arity check and the action. It may append,
	// remove or rewrite elements of *args; later hooks and the action see the
	// result.
	PreHook func(ctx context.Context, name string, args *[]any) error

	// PostHook observes a completed invocation.
	PostHook func(ctx context.Context, name string, args []any, result any) error

	// Options are the optional parts of a registration.
	Options struct {
		// Group is a free-text tag. Empty means the alias has no group.
		Group string
		// Args names the expected positional arguments. Only the length is
		// enforced, as a minimum.
		Args []string
	}

	// Definition is a registered alias as returned to callers. It is a copy;
	// mutating it does not affect the registry.
	Definition struct {
		Name         string
		Action       Action
		Group        string
		ExpectedArgs []string
	}

	// ActionResolver turns the declarative `action` value of a config entry
	// into an Action. It reports false when the value is not invocable.
	ActionResolver interface {
		Resolve(name string, raw any) (Action, bool)
	}

	// ResolverFunc adapts a function to ActionResolver.
	ResolverFunc func(name string, raw any) (Action, bool)
)

// Resolve implements ActionResolver.
func (f ResolverFunc) Resolve(name string, raw any) (Action, bool) {
	return f(name, raw)
}

// HasGroup reports whether the alias carries a group tag.
func (d Definition) HasGroup() bool { return d.Group != "" }

// MinArgs returns the minimum number of arguments Run requires.
func (d Definition) MinArgs() int { return len(d.ExpectedArgs) }

func (d *Definition) clone() Definition {
	out := *d
	out.ExpectedArgs = slices.Clone(d.ExpectedArgs)
	return out
}
