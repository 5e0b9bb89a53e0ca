// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ahmedeladl00/aliascraft/internal/issue"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.DefaultRuntime != RuntimeVirtual {
		t.Errorf("expected default runtime to be virtual, got %s", cfg.DefaultRuntime)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}
	if cfg.SSH.Host != DefaultSSHHost || cfg.SSH.Port != 0 {
		t.Errorf("expected default ssh 127.0.0.1:0, got %s:%d", cfg.SSH.Host, cfg.SSH.Port)
	}
	if len(cfg.AliasFiles) != 0 || len(cfg.Aliases) != 0 {
		t.Error("expected no alias sources by default")
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config is invalid: %v", errs)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SourcePath != "" {
		t.Errorf("SourcePath = %q, want empty", cfg.SourcePath)
	}
	if cfg.DefaultRuntime != RuntimeVirtual {
		t.Errorf("DefaultRuntime = %q, want virtual", cfg.DefaultRuntime)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
alias_files: ["aliases.yaml", "/etc/aliascraft/more.cue"]
default_runtime: "native"
native_shell: "bash"
ui: verbose: true
ssh: port: 2222
aliases: {
	Greet: {
		action: "echo"
		options: group: "Text"
	}
	"dash-name": action: script: "echo hi"
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SourcePath != path {
		t.Errorf("SourcePath = %q, want %q", cfg.SourcePath, path)
	}
	wantFiles := []AliasFilePath{"aliases.yaml", "/etc/aliascraft/more.cue"}
	if !slices.Equal(cfg.AliasFiles, wantFiles) {
		t.Errorf("AliasFiles = %v, want %v", cfg.AliasFiles, wantFiles)
	}
	if cfg.DefaultRuntime != RuntimeNative || cfg.NativeShell != "bash" {
		t.Errorf("runtime = %q/%q, want native/bash", cfg.DefaultRuntime, cfg.NativeShell)
	}
	if !cfg.UI.Verbose || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI = %+v, want verbose with auto scheme", cfg.UI)
	}
	if cfg.SSH.Port != 2222 || cfg.SSH.Host != DefaultSSHHost {
		t.Errorf("SSH = %+v, want 127.0.0.1:2222", cfg.SSH)
	}

	greet, ok := cfg.Aliases["Greet"].(map[string]any)
	if !ok {
		t.Fatalf("Aliases[Greet] = %#v, want mapping (case preserved)", cfg.Aliases["Greet"])
	}
	if greet["action"] != "echo" {
		t.Errorf("Greet.action = %v, want echo", greet["action"])
	}
	if _, ok := cfg.Aliases["dash-name"]; !ok {
		t.Error("quoted alias name missing")
	}
}

func TestLoad_InlineAliasesSkipUndecodableEntries(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `
default_runtime: "virtual"
aliases: {
	incomplete: action: string
	conflict: action: 1 & 2
	good: action: "echo"
}
aliases: later: action: "upper"
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v, want bad inline aliases to be dropped", err)
	}

	for _, name := range []string{"good", "later"} {
		if _, ok := cfg.Aliases[name]; !ok {
			t.Errorf("Aliases[%q] missing, got %v", name, cfg.Aliases)
		}
	}
	for _, name := range []string{"incomplete", "conflict"} {
		if _, ok := cfg.Aliases[name]; ok {
			t.Errorf("Aliases[%q] = %v, want it dropped", name, cfg.Aliases[name])
		}
	}
	if cfg.DefaultRuntime != RuntimeVirtual {
		t.Errorf("DefaultRuntime = %q, want virtual", cfg.DefaultRuntime)
	}
}

func TestLoad_AliasesNotStruct(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `aliases: 5`)
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err == nil {
		t.Fatal("expected error for non-struct aliases")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should name the config file", err)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %T, want *issue.ActionableError", err)
	}
	if len(ae.Suggestions) == 0 {
		t.Error("expected suggestions on missing config error")
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", `container_engine: "docker"`},
		{"bad runtime", `default_runtime: "container"`},
		{"bad color scheme", `ui: color_scheme: "neon"`},
		{"port out of range", `ssh: port: 70000`},
		{"alias_files not list", `alias_files: "a.cue"`},
		{"syntax error", `ui: {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q should name the config file", err)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ALIASCRAFT_UI_VERBOSE", "true")
	t.Setenv("ALIASCRAFT_DEFAULT_RUNTIME", "native")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.UI.Verbose {
		t.Error("ALIASCRAFT_UI_VERBOSE not applied")
	}
	if cfg.DefaultRuntime != RuntimeNative {
		t.Errorf("DefaultRuntime = %q, want native", cfg.DefaultRuntime)
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	t.Setenv("ALIASCRAFT_DEFAULT_RUNTIME", "docker")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), `"docker"`) {
		t.Errorf("error %q should name the rejected value", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestConfigDir_Override(t *testing.T) {
	SetConfigDirOverride("/tmp/aliascraft-test")
	t.Cleanup(Reset)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/aliascraft-test" {
		t.Errorf("ConfigDir() = %q, want override", dir)
	}
}

func TestResolveAliasFile(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "abs.cue")
	cfg := &Config{SourcePath: filepath.Join("conf", "config.cue")}

	if got := cfg.ResolveAliasFile("aliases.yaml"); got != filepath.Join("conf", "aliases.yaml") {
		t.Errorf("relative = %q", got)
	}
	if got := cfg.ResolveAliasFile(AliasFilePath(abs)); got != abs {
		t.Errorf("absolute = %q, want %q", got, abs)
	}
	if got := (&Config{}).ResolveAliasFile("a.cue"); got != "a.cue" {
		t.Errorf("no source = %q, want a.cue", got)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.AliasFiles = []AliasFilePath{"one.cue"}
	cfg.NativeShell = "zsh"
	cfg.SSH.Port = 2022
	cfg.Aliases = map[string]any{
		"shout": map[string]any{
			"action":  "upper",
			"options": map[string]any{"args": []any{"word"}},
		},
	}

	dir := t.TempDir()
	writeConfig(t, dir, GenerateCUE(cfg))

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated config does not load: %v\n%s", err, GenerateCUE(cfg))
	}
	if loaded.NativeShell != "zsh" || loaded.SSH.Port != 2022 {
		t.Errorf("loaded = %+v", loaded)
	}
	if !slices.Equal(loaded.AliasFiles, cfg.AliasFiles) {
		t.Errorf("AliasFiles = %v", loaded.AliasFiles)
	}
	shout, ok := loaded.Aliases["shout"].(map[string]any)
	if !ok || shout["action"] != "upper" {
		t.Errorf("Aliases[shout] = %#v", loaded.Aliases["shout"])
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}

	if err := os.WriteFile(path, []byte("ui: verbose: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateDefaultConfig(dir); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "ui: verbose: true\n" {
		t.Error("CreateDefaultConfig overwrote an existing file")
	}
}
