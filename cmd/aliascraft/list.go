// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ahmedeladl00/aliascraft/pkg/alias"

	"github.com/spf13/cobra"
)

const noAliasesMessage = "No aliases registered."

func newListCommand(app *App) *cobra.Command {
	var (
		group  string
		groups bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered aliases",
		Long: `List every registered alias in registration order.

With --group, only aliases whose group tag matches exactly are shown.
With --groups, the distinct group tags are listed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openOrFail(cmd, app)
			if err != nil {
				return err
			}

			if groups {
				renderGroupList(app.stdout, sess.registry.Groups())
				return nil
			}

			defs := sess.registry.Aliases()
			if cmd.Flags().Changed("group") {
				defs = filterGroup(defs, group)
			}
			renderAliasList(app.stdout, defs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "only list aliases in this group")
	cmd.Flags().BoolVar(&groups, "groups", false, "list group tags instead of aliases")
	cmd.MarkFlagsMutuallyExclusive("group", "groups")
	return cmd
}

// filterGroup keeps the definitions tagged with group, preserving order.
func filterGroup(defs []alias.Definition, group string) []alias.Definition {
	out := make([]alias.Definition, 0, len(defs))
	for _, d := range defs {
		if d.HasGroup() && d.Group == group {
			out = append(out, d)
		}
	}
	return out
}

func renderAliasList(w io.Writer, defs []alias.Definition) {
	if len(defs) == 0 {
		fmt.Fprintln(w, noAliasesMessage)
		return
	}

	fmt.Fprintln(w, TitleStyle.Render("Registered aliases:"))
	for _, d := range defs {
		line := "  " + nameColumnStyle.Render(d.Name)
		if d.HasGroup() {
			line += " " + groupStyle.Render("["+d.Group+"]")
		}
		if len(d.ExpectedArgs) > 0 {
			line += " " + SubtitleStyle.Render("<"+strings.Join(d.ExpectedArgs, "> <")+">")
		}
		fmt.Fprintln(w, line)
	}
}

func renderGroupList(w io.Writer, groups []string) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No groups defined.")
		return
	}

	fmt.Fprintln(w, TitleStyle.Render("Groups:"))
	for _, g := range groups {
		fmt.Fprintln(w, "  "+groupStyle.Render(g))
	}
}
