// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newRunCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <alias> [args...]",
		Short: "Run an alias",
		Long: `Run a registered alias, passing the remaining arguments to it by position.

Everything after the alias name is forwarded verbatim, including flags.`,
		Example: `  aliascraft run greet World
  aliascraft run shout --loud`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openOrFail(cmd, app)
			if err != nil {
				return err
			}

			name := args[0]
			result, err := sess.registry.Run(cmd.Context(), name, stringArgs(args[1:])...)
			if err != nil {
				return fail(cmd, app.stderr, err, sess.verbose, issueStyle(sess.cfg))
			}

			printResult(app.stdout, name, result)
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	return cmd
}

// stringArgs converts CLI arguments to the registry's positional values.
func stringArgs(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

func printResult(w io.Writer, name string, result any) {
	fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf("Alias '%s' executed successfully.", name)))
	if result != nil {
		fmt.Fprintf(w, "Result: %v\n", result)
	}
}
