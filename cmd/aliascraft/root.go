// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ahmedeladl00/aliascraft/internal/issue"
	"github.com/ahmedeladl00/aliascraft/internal/runtime"
	"github.com/ahmedeladl00/aliascraft/pkg/alias"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aliascraft",
		Short: "Register and run named aliases",
		Long: TitleStyle.Render("aliascraft") + SubtitleStyle.Render(" - Register and run named aliases") + `

Aliases bind a name to an action: a builtin, or a shell script run in the
embedded interpreter or the host shell. They are declared in alias files
(CUE, JSON, YAML or TOML) or inline in the configuration, and may carry a
group tag and a list of expected arguments.

` + SubtitleStyle.Render("Examples:") + `
  aliascraft list                       List registered aliases
  aliascraft run greet World            Run the 'greet' alias
  aliascraft chain trim shout -- " hi " Run aliases in sequence
  aliascraft --alias-file a.yaml list   Load an extra alias file`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output and hook logging")
	flags.StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/aliascraft/config.cue)")
	flags.StringArrayVar(&app.flags.aliasFiles, "alias-file", nil, "additional alias file to load (repeatable)")
	flags.StringVar(&app.flags.runtime, "runtime", "", "runtime for script actions: virtual or native")

	rootCmd.AddCommand(
		newListCommand(app),
		newRunCommand(app),
		newChainCommand(app),
		newShowCommand(app),
		newConfigCommand(app),
		newServeCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the CLI and runs it. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// issueFor picks the catalog entry that explains err, or 0.
func issueFor(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.IssueID != 0 {
		return ae.IssueID
	}

	var notFound *alias.NotFoundError
	var exitErr *runtime.ExitError
	switch {
	case errors.As(err, &notFound) && notFound.Path != "":
		return issue.AliasFileNotFoundId
	case errors.As(err, &notFound):
		return issue.AliasNotFoundId
	case errors.Is(err, alias.ErrArity):
		return issue.NotEnoughArgumentsId
	case errors.Is(err, alias.ErrFormat):
		return issue.AliasFileInvalidId
	case errors.As(err, &exitErr):
		return issue.ScriptExecutionFailedId
	case errors.Is(err, runtime.ErrInvalidMode):
		return issue.InvalidRuntimeModeId
	}
	return 0
}

// fail prints err with its issue guidance and returns the exit error for cmd.
// The issue text is only rendered in verbose mode.
func fail(cmd *cobra.Command, w io.Writer, err error, verbose bool, style string) error {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if id := issueFor(err); id != 0 && verbose {
		if entry := issue.Get(id); entry != nil {
			if rendered, renderErr := entry.Render(style); renderErr == nil {
				fmt.Fprint(w, rendered)
			}
		}
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: 1, Err: err}
}

// openOrFail boots a session or reports the failure.
func openOrFail(cmd *cobra.Command, app *App) (*session, error) {
	sess, err := app.open(cmd.Context())
	if err != nil {
		return nil, fail(cmd, app.stderr, err, app.flags.verbose, "auto")
	}
	return sess, nil
}
