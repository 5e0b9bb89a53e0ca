// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/ahmedeladl00/aliascraft/pkg/alias"

	"github.com/charmbracelet/log"
)

// loggingHooks returns hooks that log every invocation and its result.
func loggingHooks(logger *log.Logger) (alias.PreHook, alias.PostHook) {
	pre := func(_ context.Context, name string, args *[]any) error {
		logger.Debug("running alias", "alias", name, "args", *args)
		return nil
	}
	post := func(_ context.Context, name string, _ []any, result any) error {
		logger.Debug("alias finished", "alias", name, "result", result)
		return nil
	}
	return pre, post
}
