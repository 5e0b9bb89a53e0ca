// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newChainCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chain <alias>... [-- args...]",
		Short: "Run aliases in sequence",
		Long: `Run several aliases one after another with the same arguments.

Arguments after "--" are passed to every alias. The result of the last alias
is printed. The first failing alias stops the chain.`,
		Example: `  aliascraft chain trim shout -- " hello "`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, rest := args, []string(nil)
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				names, rest = args[:dash], args[dash:]
			}
			if len(names) == 0 {
				return errors.New("chain requires at least one alias name before --")
			}

			sess, err := openOrFail(cmd, app)
			if err != nil {
				return err
			}

			result, err := sess.registry.Chain(names...)(cmd.Context(), stringArgs(rest))
			if err != nil {
				return fail(cmd, app.stderr, err, sess.verbose, issueStyle(sess.cfg))
			}

			printResult(app.stdout, strings.Join(names, " -> "), result)
			return nil
		},
	}
}
