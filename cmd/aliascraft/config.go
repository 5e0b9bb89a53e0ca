// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ahmedeladl00/aliascraft/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the aliascraft configuration",
	}

	cmd.AddCommand(
		newConfigShowCommand(app),
		newConfigPathCommand(app),
		newConfigDumpCommand(app),
		newConfigInitCommand(app),
	)
	return cmd
}

func newConfigShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return fail(cmd, app.stderr, err, app.flags.verbose, "auto")
			}
			renderConfig(app.stdout, cfg, app.Catalog.Names())
			return nil
		},
	}
}

func newConfigPathCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path of the loaded config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return fail(cmd, app.stderr, err, app.flags.verbose, "auto")
			}
			if cfg.SourcePath == "" {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no config file, using defaults)"))
				return nil
			}
			fmt.Fprintln(app.stdout, cfg.SourcePath)
			return nil
		},
	}
}

func newConfigDumpCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return fail(cmd, app.stderr, err, app.flags.verbose, "auto")
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	}
}

func newConfigInitCommand(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.CreateDefaultConfig(dir)
			if err != nil {
				return fail(cmd, app.stderr, err, app.flags.verbose, "auto")
			}
			fmt.Fprintln(app.stdout, SuccessStyle.Render("Config file: ")+path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to write config.cue into")
	return cmd
}

func renderConfig(w io.Writer, cfg *config.Config, builtins []string) {
	source := cfg.SourcePath
	if source == "" {
		source = "(defaults)"
	}

	shell := cfg.NativeShell
	if shell == "" {
		shell = "(auto)"
	}

	fmt.Fprintln(w, TitleStyle.Render("Configuration"))
	fmt.Fprintf(w, "  %s %s\n", nameColumnStyle.Render("source"), source)
	fmt.Fprintf(w, "  %s %s\n", nameColumnStyle.Render("default_runtime"), cfg.DefaultRuntime)
	fmt.Fprintf(w, "  %s %s\n", nameColumnStyle.Render("native_shell"), shell)
	fmt.Fprintf(w, "  %s %s\n", nameColumnStyle.Render("ui.color_scheme"), cfg.UI.ColorScheme)
	fmt.Fprintf(w, "  %s %v\n", nameColumnStyle.Render("ui.verbose"), cfg.UI.Verbose)
	fmt.Fprintf(w, "  %s %s:%d\n", nameColumnStyle.Render("ssh"), cfg.SSH.Host, cfg.SSH.Port)

	files := make([]string, len(cfg.AliasFiles))
	for i, p := range cfg.AliasFiles {
		files[i] = cfg.ResolveAliasFile(p)
	}
	if len(files) == 0 {
		files = []string{"(none)"}
	}
	fmt.Fprintf(w, "  %s %s\n", nameColumnStyle.Render("alias_files"), strings.Join(files, ", "))
	fmt.Fprintf(w, "  %s %d\n", nameColumnStyle.Render("inline aliases"), len(cfg.Aliases))
	fmt.Fprintf(w, "  %s %s\n", nameColumnStyle.Render("builtins"), strings.Join(builtins, ", "))
}
