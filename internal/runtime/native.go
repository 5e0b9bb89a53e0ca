// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
)

// NativeRuntime executes scripts with the host shell.
type NativeRuntime struct {
	// Shell overrides shell detection when non-empty.
	Shell string
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string { return string(ModeNative) }

// Available reports whether a shell can be found.
func (r *NativeRuntime) Available() bool {
	_, err := r.shell()
	return err == nil
}

// Validate checks that the script is non-empty and a shell is present.
func (r *NativeRuntime) Validate(script string) error {
	if strings.TrimSpace(script) == "" {
		return errors.New("script is empty")
	}
	_, err := r.shell()
	return err
}

// ExecuteCapture runs the script and captures its output.
func (r *NativeRuntime) ExecuteCapture(ctx context.Context, req Request) *Result {
	shell, err := r.shell()
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	args := appendPositionalArgs(shell, shellArgs(shell, req.Script), req.Name, req.Args)
	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Dir = req.Dir
	cmd.Env = buildEnv(req.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := &Result{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("failed to execute script: %w", err)
		}
	}
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func (r *NativeRuntime) shell() (string, error) {
	if r.Shell != "" {
		path, err := exec.LookPath(r.Shell)
		if err != nil {
			return "", fmt.Errorf("shell %q not found: %w", r.Shell, err)
		}
		return path, nil
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		return shell, nil
	}

	candidates := []string{"bash", "sh"}
	if goruntime.GOOS == "windows" {
		candidates = []string{"pwsh", "powershell", "cmd"}
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no shell found")
}

func shellArgs(shell, script string) []string {
	switch shellBase(shell) {
	case "cmd":
		return []string{"/C", script}
	case "pwsh", "powershell":
		return []string{"-NoProfile", "-Command", script}
	default:
		return []string{"-c", script}
	}
}

// appendPositionalArgs adds positional arguments where the shell supports them.
// POSIX shells take $0 first, PowerShell reads $args, cmd gets none.
func appendPositionalArgs(shell string, args []string, name string, positional []string) []string {
	if len(positional) == 0 {
		return args
	}
	switch shellBase(shell) {
	case "cmd":
		return args
	case "pwsh", "powershell":
		return append(args, positional...)
	default:
		if name == "" {
			name = "aliascraft"
		}
		args = append(args, name)
		return append(args, positional...)
	}
}

func shellBase(shell string) string {
	return strings.TrimSuffix(strings.ToLower(filepath.Base(shell)), ".exe")
}
