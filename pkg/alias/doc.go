// SPDX-License-Identifier: MPL-2.0

// Package alias implements a name-to-callable registry.
//
// An alias binds a name to an Action, optionally tagged with a group and a
// list of expected argument names. The length of that list is the minimum
// number of positional arguments Run accepts; the names themselves are only
// documentation.
//
// Run executes a fixed pipeline: lookup, pre-hooks (which may rewrite the
// arguments), the arity check, the action, then post-hooks. Hooks fire in
// registration order and are never removed. Errors returned by actions and
// hooks reach the caller unchanged; the registry only produces its own
// errors for structural problems (NotFoundError, ArityError, FormatError).
//
//	reg := alias.New()
//	_ = reg.Register("greet", func(_ context.Context, args []any) (any, error) {
//		return fmt.Sprintf("Hello, %v!", args[0]), nil
//	}, alias.Options{Args: []string{"name"}})
//
//	out, err := reg.Run(ctx, "greet", "Alice") // "Hello, Alice!"
//
// Aliases can also be imported from declarative documents with
// LoadFromConfigFile. Import is lenient: entries whose action cannot be made
// invocable are skipped without error.
package alias
