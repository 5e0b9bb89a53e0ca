// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestVirtualRuntime_Validate(t *testing.T) {
	t.Parallel()

	rt := NewVirtualRuntime()
	if err := rt.Validate(`echo "$1"`); err != nil {
		t.Errorf("Validate(valid) error = %v", err)
	}
	if err := rt.Validate("if then fi ("); err == nil {
		t.Error("Validate(invalid) expected error")
	}
	if err := rt.Validate("   "); err == nil {
		t.Error("Validate(empty) expected error")
	}
}

func TestVirtualRuntime_ExecuteCapture(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name     string
		req      Request
		wantOut  string
		wantErr  string
		wantCode int
	}{
		{
			name:    "positional args",
			req:     Request{Script: `echo "$1-$2"`, Args: []string{"a", "b"}},
			wantOut: "a-b\n",
		},
		{
			name:    "arg count",
			req:     Request{Script: `echo $#`, Args: []string{"x", "y", "z"}},
			wantOut: "3\n",
		},
		{
			name:    "env overlay",
			req:     Request{Script: `echo "$GREETING"`, Env: map[string]string{"GREETING": "hi"}},
			wantOut: "hi\n",
		},
		{
			name:    "working dir",
			req:     Request{Script: `pwd`, Dir: dir},
			wantOut: dir + "\n",
		},
		{
			name:     "exit status",
			req:      Request{Script: `echo oops >&2; exit 4`},
			wantErr:  "oops\n",
			wantCode: 4,
		},
	}

	rt := NewVirtualRuntime()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := rt.ExecuteCapture(context.Background(), tt.req)
			if res.Error != nil {
				t.Fatalf("ExecuteCapture() error = %v", res.Error)
			}
			if res.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", res.ExitCode, tt.wantCode)
			}
			out := res.Output
			if tt.req.Dir != "" {
				out = filepath.Clean(strings.TrimSpace(out)) + "\n"
			}
			if out != tt.wantOut {
				t.Errorf("Output = %q, want %q", out, tt.wantOut)
			}
			if res.ErrOutput != tt.wantErr {
				t.Errorf("ErrOutput = %q, want %q", res.ErrOutput, tt.wantErr)
			}
		})
	}
}

func TestVirtualRuntime_ParseError(t *testing.T) {
	t.Parallel()

	res := NewVirtualRuntime().ExecuteCapture(context.Background(), Request{Script: "echo ((("})
	if res.Error == nil {
		t.Fatal("expected parse error")
	}
	if res.Success() {
		t.Error("Success() = true for parse error")
	}
}
