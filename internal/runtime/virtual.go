// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes scripts with the embedded mvdan/sh interpreter.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a new virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string { return string(ModeVirtual) }

// Available always returns true since the interpreter is embedded.
func (r *VirtualRuntime) Available() bool { return true }

// Validate parses the script without running it.
func (r *VirtualRuntime) Validate(script string) error {
	if strings.TrimSpace(script) == "" {
		return errors.New("script is empty")
	}
	_, err := parse(script, "")
	return err
}

// ExecuteCapture runs the script and captures its output.
func (r *VirtualRuntime) ExecuteCapture(ctx context.Context, req Request) *Result {
	prog, err := parse(req.Script, req.Name)
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	var stdout, stderr bytes.Buffer
	opts := []interp.RunnerOption{
		interp.StdIO(nil, &stdout, &stderr),
		interp.Env(expand.ListEnviron(buildEnv(req.Env)...)),
		interp.Params(append([]string{"--"}, req.Args...)...),
	}
	if req.Dir != "" {
		opts = append(opts, interp.Dir(req.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	result := &Result{}
	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			result.ExitCode = int(exitStatus)
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("script execution failed: %w", err)
		}
	}
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func parse(script, name string) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return prog, nil
}
