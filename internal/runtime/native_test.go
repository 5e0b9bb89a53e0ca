// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"os/exec"
	goruntime "runtime"
	"slices"
	"testing"
)

func requireSh(t *testing.T) {
	t.Helper()
	if goruntime.GOOS == "windows" {
		t.Skip("POSIX shell tests skipped on Windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestNativeRuntime_ExecuteCapture(t *testing.T) {
	t.Parallel()
	requireSh(t)

	rt := &NativeRuntime{Shell: "sh"}
	res := rt.ExecuteCapture(context.Background(), Request{
		Name:   "greet",
		Script: `echo "$0:$1:$GREETING"`,
		Args:   []string{"world"},
		Env:    map[string]string{"GREETING": "hi"},
	})
	if res.Error != nil {
		t.Fatalf("ExecuteCapture() error = %v", res.Error)
	}
	if res.Output != "greet:world:hi\n" {
		t.Errorf("Output = %q, want %q", res.Output, "greet:world:hi\n")
	}
}

func TestNativeRuntime_ExitCode(t *testing.T) {
	t.Parallel()
	requireSh(t)

	res := (&NativeRuntime{Shell: "sh"}).ExecuteCapture(context.Background(), Request{Script: "exit 7"})
	if res.Error != nil {
		t.Fatalf("ExecuteCapture() error = %v", res.Error)
	}
	if res.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", res.ExitCode)
	}
}

func TestNativeRuntime_MissingShell(t *testing.T) {
	t.Parallel()

	rt := &NativeRuntime{Shell: "definitely-not-a-shell-aliascraft"}
	if rt.Available() {
		t.Error("Available() = true for missing shell")
	}
	res := rt.ExecuteCapture(context.Background(), Request{Script: "echo hi"})
	if res.Error == nil {
		t.Error("expected error for missing shell")
	}
}

func TestAppendPositionalArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell string
		want  []string
	}{
		{"/bin/sh", []string{"-c", "s", "n", "a"}},
		{"pwsh", []string{"-NoProfile", "-Command", "s", "a"}},
		{"cmd.exe", []string{"/C", "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			got := appendPositionalArgs(tt.shell, shellArgs(tt.shell, "s"), "n", []string{"a"})
			if !slices.Equal(got, tt.want) {
				t.Errorf("args = %v, want %v", got, tt.want)
			}
		})
	}
}
