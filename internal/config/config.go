// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/ahmedeladl00/aliascraft/internal/issue"
	"github.com/ahmedeladl00/aliascraft/pkg/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"cuelang.org/go/cue/parser"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "aliascraft"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "ALIASCRAFT"

	aliasesKey = "aliases"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the aliascraft configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	var (
		resolvedPath string
		aliases      map[string]any
	)

	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'aliascraft config show' to see the default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		localCuePath := ConfigFileName + "." + ConfigFileExt
		switch {
		case fileExists(cuePath):
			resolvedPath = cuePath
		case fileExists(localCuePath):
			resolvedPath = localCuePath
		}
		// No config file found: defaults only.
	}

	if resolvedPath != "" {
		var err error
		aliases, err = loadCUEIntoViper(v, resolvedPath)
		if err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'aliascraft config show' for an example configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Aliases = aliases
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]any{}
	}

	// Environment overrides bypass the CUE schema, so the typed values are
	// checked again here.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check " + EnvPrefix + "_* environment variables for typos").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("alias_files", defaults.AliasFiles)
	v.SetDefault("default_runtime", defaults.DefaultRuntime)
	v.SetDefault("native_shell", defaults.NativeShell)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ssh.host", defaults.SSH.Host)
	v.SetDefault("ssh.port", defaults.SSH.Port)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper. Top-level aliases fields are split off
// before validation and returned decoded entry by entry; entries that do not
// decode to concrete values are dropped so their siblings still load.
func loadCUEIntoViper(v *viper.Viper, path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	file, err := parser.ParseFile(path, data, parser.ParseComments)
	if err != nil {
		return nil, cueutil.FormatError(err, path)
	}
	aliasFile := splitAliases(file)

	ctx := cuecontext.New()

	schemaValue, err := cueutil.Compile([]byte(configSchema),
		cueutil.WithContext(ctx), cueutil.WithFilename("config_schema.cue"))
	if err != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", err)
	}

	userValue, err := cueutil.Build(file, cueutil.WithContext(ctx), cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := cueutil.Validate(unified, path, false); err != nil {
		return nil, err
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return nil, cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return nil, fmt.Errorf("failed to merge config: %w", err)
	}

	if aliasFile == nil {
		return nil, nil
	}
	return decodeAliases(ctx, aliasFile, path)
}

// splitAliases moves the top-level aliases fields of f into a file of their
// own and returns it, or nil when f declares no aliases.
func splitAliases(f *ast.File) *ast.File {
	var rest, aliases []ast.Decl
	for _, decl := range f.Decls {
		if field, ok := decl.(*ast.Field); ok {
			if name, _, err := ast.LabelName(field.Label); err == nil && name == aliasesKey {
				aliases = append(aliases, decl)
				continue
			}
		}
		rest = append(rest, decl)
	}

	f.Decls = rest
	if len(aliases) == 0 {
		return nil
	}
	return &ast.File{Filename: f.Filename, Decls: aliases}
}

// decodeAliases builds the aliases file and decodes each entry on its own.
func decodeAliases(ctx *cue.Context, f *ast.File, path string) (map[string]any, error) {
	value, err := cueutil.Build(f, cueutil.WithContext(ctx), cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}

	block := value.LookupPath(cue.ParsePath(aliasesKey))
	if block.IncompleteKind() != cue.StructKind {
		return nil, cueutil.FormatError(fmt.Errorf("aliases must be a struct, got %v", block.IncompleteKind()), path)
	}

	iter, err := block.Fields()
	if err != nil {
		return nil, cueutil.FormatError(err, path)
	}

	aliases := make(map[string]any)
	for iter.Next() {
		var entry any
		if err := iter.Value().Decode(&entry); err != nil {
			continue
		}
		aliases[iter.Selector().Unquoted()] = entry
	}
	return aliases, nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// ResolveAliasFile returns p as an absolute path, resolving relative paths
// against the directory of the config file. Without a config file, relative
// paths are left to the working directory.
func (c *Config) ResolveAliasFile(p AliasFilePath) string {
	path := string(p)
	if filepath.IsAbs(path) || c.SourcePath == "" {
		return path
	}
	return filepath.Join(filepath.Dir(c.SourcePath), path)
}

// CreateDefaultConfig writes a default config file into dir (the platform
// config directory when empty) if none exists, and returns its path.
func CreateDefaultConfig(dir string) (string, error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// aliascraft configuration file\n\n")

	if len(cfg.AliasFiles) > 0 {
		sb.WriteString("alias_files: [\n")
		for _, p := range cfg.AliasFiles {
			sb.WriteString(fmt.Sprintf("\t%q,\n", p))
		}
		sb.WriteString("]\n")
	} else {
		sb.WriteString("alias_files: []\n")
	}

	sb.WriteString(fmt.Sprintf("default_runtime: %q\n", cfg.DefaultRuntime))
	if cfg.NativeShell != "" {
		sb.WriteString(fmt.Sprintf("native_shell: %q\n", cfg.NativeShell))
	}

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tcolor_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	sb.WriteString("\nssh: {\n")
	sb.WriteString(fmt.Sprintf("\thost: %q\n", cfg.SSH.Host))
	sb.WriteString(fmt.Sprintf("\tport: %d\n", cfg.SSH.Port))
	sb.WriteString("}\n")

	if len(cfg.Aliases) > 0 {
		sb.WriteString("\naliases: {\n")
		names := make([]string, 0, len(cfg.Aliases))
		for name := range cfg.Aliases {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("\t%q: %s\n", name, formatValue(cfg.Aliases[name])))
		}
		sb.WriteString("}\n")
	}

	return sb.String()
}

// formatValue renders an arbitrary decoded value as CUE source.
func formatValue(x any) string {
	v, err := cueutil.Encode(x)
	if err != nil {
		return "_ // " + err.Error()
	}
	b, err := format.Node(v.Syntax())
	if err != nil {
		return "_ // " + err.Error()
	}
	return strings.ReplaceAll(string(b), "\n", "\n\t")
}
