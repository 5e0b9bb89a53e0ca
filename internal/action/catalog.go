// SPDX-License-Identifier: MPL-2.0

package action

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/ahmedeladl00/aliascraft/pkg/alias"
)

// ErrNilBuiltin is returned when Provide is called with a nil action.
var ErrNilBuiltin = errors.New("builtin action must not be nil")

// Catalog is a named set of builtin actions.
type Catalog struct {
	mu       sync.RWMutex
	builtins map[string]alias.Action
}

// NewCatalog returns a catalog holding the standard builtins:
// echo, upper, lower, concat, count and env.
func NewCatalog() *Catalog {
	c := &Catalog{builtins: make(map[string]alias.Action)}
	c.builtins["echo"] = joinWith(" ", nil)
	c.builtins["upper"] = joinWith(" ", strings.ToUpper)
	c.builtins["lower"] = joinWith(" ", strings.ToLower)
	c.builtins["concat"] = joinWith("", nil)
	c.builtins["count"] = count
	c.builtins["env"] = env
	return c
}

// Provide adds or replaces a builtin.
func (c *Catalog) Provide(name string, action alias.Action) error {
	if action == nil {
		return fmt.Errorf("%w: %s", ErrNilBuiltin, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builtins[name] = action
	return nil
}

// Lookup returns the builtin registered under name.
func (c *Catalog) Lookup(name string) (alias.Action, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.builtins[name]
	return a, ok
}

// Names returns the builtin names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.builtins))
	for name := range c.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stringify renders positional values the way scripts and builtins see them.
func Stringify(args []any) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = fmt.Sprint(a)
	}
	return out
}

func joinWith(sep string, transform func(string) string) alias.Action {
	return func(_ context.Context, args []any) (any, error) {
		s := strings.Join(Stringify(args), sep)
		if transform != nil {
			s = transform(s)
		}
		return s, nil
	}
}

func count(_ context.Context, args []any) (any, error) {
	return len(args), nil
}

func env(_ context.Context, args []any) (any, error) {
	if len(args) == 0 {
		return nil, errors.New("env: variable name required")
	}
	return os.Getenv(fmt.Sprint(args[0])), nil
}
