// SPDX-License-Identifier: MPL-2.0

package alias

import (
	"context"
	"slices"
)

// Chain returns an Action that runs each named alias in turn through Run.
// Every alias receives the same arguments the chain was called with; results
// are not threaded through. The chain returns the last alias' result and
// stops at the first error. An empty chain returns (nil, nil).
func (r *Registry) Chain(names ...string) Action {
	names = slices.Clone(names)

	return func(ctx context.Context, args []any) (any, error) {
		var result any
		for _, name := range names {
			out, err := r.Run(ctx, name, args...)
			if err != nil {
				return nil, err
			}
			result = out
		}
		return result, nil
	}
}
