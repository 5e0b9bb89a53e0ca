// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahmedeladl00/aliascraft/internal/config"
	"github.com/ahmedeladl00/aliascraft/internal/issue"
	"github.com/ahmedeladl00/aliascraft/internal/testutil"
	"github.com/ahmedeladl00/aliascraft/pkg/alias"
)

func newRegistry(t *testing.T, cfg *config.Config) *alias.Registry {
	t.Helper()
	reg, err := NewRegistry(cfg, Options{})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

func TestBoot_AllSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "text.yaml"), "shout:\n  action: upper\n  options:\n    group: text\n")
	extra := filepath.Join(t.TempDir(), "extra.json")
	testutil.MustWriteFile(t, extra, `{"total": {"action": "count"}, "Hello": {"action": "lower"}}`)

	cfg := config.DefaultConfig()
	cfg.SourcePath = filepath.Join(dir, "config.cue")
	cfg.AliasFiles = []config.AliasFilePath{"text.yaml", "missing.cue"}
	cfg.Aliases = map[string]any{
		"Hello": map[string]any{"action": "echo"},
	}

	reg := newRegistry(t, cfg)
	report, err := Boot(context.Background(), cfg, reg, Options{ExtraFiles: []string{extra}})
	if err != nil {
		t.Fatalf("Boot() error = %v", err)
	}

	if len(report.Sources) != 4 {
		t.Fatalf("Sources = %+v, want 4 entries", report.Sources)
	}
	if report.Sources[0].Kind != SourceInline || report.Sources[0].Registered != 1 {
		t.Errorf("inline source = %+v", report.Sources[0])
	}
	if report.Sources[1].Path != filepath.Join(dir, "text.yaml") || report.Sources[1].Registered != 1 {
		t.Errorf("alias file source = %+v", report.Sources[1])
	}
	warnings := report.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "missing.cue") {
		t.Errorf("Warnings() = %v, want one for missing.cue", warnings)
	}
	if report.Sources[3].Kind != SourceFlag || report.Sources[3].Registered != 2 {
		t.Errorf("flag source = %+v", report.Sources[3])
	}
	if report.Total() != 4 {
		t.Errorf("Total() = %d, want 4", report.Total())
	}

	// Later sources overwrite earlier ones; the position stays that of the first registration.
	if reg.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", reg.Count())
	}
	got, err := reg.Run(context.Background(), "Hello", "WORLD")
	if err != nil || got != "world" {
		t.Errorf("Run(Hello) = %v, %v; want world from the overriding file", got, err)
	}
	if reg.Aliases()[0].Name != "Hello" {
		t.Errorf("first alias = %q, want Hello", reg.Aliases()[0].Name)
	}
	if g := reg.GetAliasesByGroup("text"); len(g) != 1 {
		t.Errorf("text group = %v, want shout", g)
	}
}

func TestBoot_InlineAliasesFromConfigFile(t *testing.T) {
	t.Parallel()

	path := testutil.MustWriteFile(t, filepath.Join(t.TempDir(), "config.cue"), `
aliases: {
	bad: action: string
	good: action: "echo"
	nobody: options: group: "x"
}
`)
	cfg, err := config.NewProvider().Load(context.Background(), config.LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	reg := newRegistry(t, cfg)
	report, err := Boot(context.Background(), cfg, reg, Options{})
	if err != nil {
		t.Fatalf("Boot() error = %v", err)
	}
	if report.Total() != 1 || reg.Count() != 1 {
		t.Fatalf("Total() = %d, Count() = %d, want only good registered", report.Total(), reg.Count())
	}
	if got, err := reg.Run(context.Background(), "good", "hi"); err != nil || got != "hi" {
		t.Errorf("Run(good) = %v, %v; want hi", got, err)
	}
}

func TestBoot_FormatErrorStops(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.cue")
	testutil.MustWriteFile(t, bad, "this is { not cue")

	cfg := config.DefaultConfig()
	cfg.AliasFiles = []config.AliasFilePath{config.AliasFilePath(bad)}

	_, err := Boot(context.Background(), cfg, newRegistry(t, cfg), Options{})
	if !errors.Is(err, alias.ErrFormat) {
		t.Fatalf("Boot() error = %v, want ErrFormat", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID != issue.AliasFileInvalidId {
		t.Errorf("error should link AliasFileInvalidId, got %#v", err)
	}
}

func TestBoot_MissingExtraFileIsError(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	_, err := Boot(context.Background(), cfg, newRegistry(t, cfg), Options{
		ExtraFiles: []string{filepath.Join(t.TempDir(), "nope.yaml")},
	})
	if !errors.Is(err, alias.ErrNotFound) {
		t.Fatalf("Boot() error = %v, want ErrNotFound", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID != issue.AliasFileNotFoundId {
		t.Errorf("error should link AliasFileNotFoundId, got %#v", err)
	}
}

func TestBoot_Canceled(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.AliasFiles = []config.AliasFilePath{"a.cue"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Boot(ctx, cfg, newRegistry(t, cfg), Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Boot() error = %v, want context.Canceled", err)
	}
}

func TestNewRegistry_RuntimeOverride(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if _, err := NewRegistry(cfg, Options{Runtime: "container"}); err == nil {
		t.Fatal("NewRegistry() should reject an unknown runtime")
	}

	reg, err := NewRegistry(cfg, Options{Runtime: "virtual"})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	n := reg.LoadEntries("test", map[string]any{
		"add": map[string]any{"action": map[string]any{"script": "echo $(( $1 + $2 ))"}},
	})
	if n != 1 {
		t.Fatalf("LoadEntries() = %d, want 1", n)
	}
	got, err := reg.Run(context.Background(), "add", 2, 3)
	if err != nil || got != "5" {
		t.Errorf("Run(add) = %v, %v; want 5", got, err)
	}
}
