// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"
	"strings"
)

type (
	// Result contains the outcome of a script execution.
	Result struct {
		// ExitCode is the script's exit status.
		ExitCode int
		// Output is captured stdout.
		Output string
		// ErrOutput is captured stderr.
		ErrOutput string
		// Error is set when the script could not be run at all.
		Error error
	}

	// ExitError reports a script that ran but exited non-zero.
	ExitError struct {
		Name     string
		ExitCode int
		Stderr   string
	}
)

// Success reports whether the script ran and exited zero.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode == 0
}

// Value returns the script's result value: stdout with one trailing newline
// removed. Infrastructure failures and non-zero exits are returned as errors.
func (r *Result) Value(name string) (string, error) {
	if r.Error != nil {
		return "", r.Error
	}
	if r.ExitCode != 0 {
		return "", &ExitError{Name: name, ExitCode: r.ExitCode, Stderr: r.ErrOutput}
	}
	return trimOutput(r.Output), nil
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("script %q exited with status %d", e.Name, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}
