// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	// ModeVirtual runs scripts in the embedded mvdan/sh interpreter.
	ModeVirtual Mode = "virtual"
	// ModeNative runs scripts in the host shell.
	ModeNative Mode = "native"
)

// ErrInvalidMode is the sentinel wrapped by InvalidModeError.
var ErrInvalidMode = errors.New("invalid runtime mode")

type (
	// Mode selects a Runtime.
	Mode string

	// InvalidModeError is returned when a Mode value is not recognized.
	InvalidModeError struct {
		Value Mode
	}

	// Request describes one script execution.
	Request struct {
		// Name labels the execution ($0 for POSIX native shells).
		Name string
		// Script is the shell source.
		Script string
		// Args become the positional parameters.
		Args []string
		// Dir is the working directory; empty means the current one.
		Dir string
		// Env is layered over the process environment.
		Env map[string]string
	}

	// Runtime executes scripts and captures their output.
	Runtime interface {
		Name() string
		Available() bool
		// Validate reports whether script can be executed by this runtime
		// without running it.
		Validate(script string) error
		ExecuteCapture(ctx context.Context, req Request) *Result
	}
)

// Error implements the error interface.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (valid: virtual, native)", e.Value)
}

// Unwrap returns ErrInvalidMode for errors.Is() compatibility.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }

// Validate returns an error if the mode is not recognized. The zero value is valid
// and means "use the default".
func (m Mode) Validate() error {
	switch m {
	case "", ModeVirtual, ModeNative:
		return nil
	default:
		return &InvalidModeError{Value: m}
	}
}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// New returns the runtime for mode. An empty mode selects the virtual runtime.
// shell only applies to the native runtime.
func New(mode Mode, shell string) (Runtime, error) {
	switch mode {
	case "", ModeVirtual:
		return NewVirtualRuntime(), nil
	case ModeNative:
		return &NativeRuntime{Shell: shell}, nil
	default:
		return nil, &InvalidModeError{Value: mode}
	}
}

// EnvToSlice converts an environment map to KEY=VALUE pairs, sorted by key.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// buildEnv layers extra over the process environment. Later entries win in
// both os/exec and mvdan/sh, so the overlay is appended.
func buildEnv(extra map[string]string) []string {
	return append(os.Environ(), EnvToSlice(extra)...)
}

// trimOutput drops the single trailing newline that echo-style output ends with.
func trimOutput(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
