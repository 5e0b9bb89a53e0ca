// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/ahmedeladl00/aliascraft/pkg/alias"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <alias>",
		Short: "Show details of an alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openOrFail(cmd, app)
			if err != nil {
				return err
			}

			def, ok := sess.registry.Get(args[0])
			if !ok {
				return fail(cmd, app.stderr, &alias.NotFoundError{Name: args[0]}, sess.verbose, issueStyle(sess.cfg))
			}

			rendered, err := glamour.Render(aliasMarkdown(def), issueStyle(sess.cfg))
			if err != nil {
				return fmt.Errorf("failed to render alias details: %w", err)
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}
}

// aliasMarkdown describes def as a markdown document.
func aliasMarkdown(def alias.Definition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", def.Name)

	group := "_none_"
	if def.HasGroup() {
		group = "`" + def.Group + "`"
	}
	fmt.Fprintf(&sb, "- **Group:** %s\n", group)
	fmt.Fprintf(&sb, "- **Minimum arguments:** %d\n", def.MinArgs())

	if len(def.ExpectedArgs) > 0 {
		sb.WriteString("\n## Arguments\n\n")
		for i, a := range def.ExpectedArgs {
			fmt.Fprintf(&sb, "%d. `%s`\n", i+1, a)
		}
	}

	fmt.Fprintf(&sb, "\n## Usage\n\n```sh\naliascraft run %s", def.Name)
	for _, a := range def.ExpectedArgs {
		fmt.Fprintf(&sb, " <%s>", a)
	}
	sb.WriteString("\n```\n")
	return sb.String()
}
