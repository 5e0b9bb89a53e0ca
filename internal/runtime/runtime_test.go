// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"strings"
	"testing"
)

func TestModeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode    Mode
		wantErr bool
	}{
		{"", false},
		{ModeVirtual, false},
		{ModeNative, false},
		{"container", true},
		{"VIRTUAL", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()
			err := tt.mode.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMode) {
				t.Errorf("errors.Is(err, ErrInvalidMode) = false for %v", err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	rt, err := New("", "")
	if err != nil {
		t.Fatalf("New(\"\") error = %v", err)
	}
	if rt.Name() != "virtual" {
		t.Errorf("New(\"\").Name() = %q, want virtual", rt.Name())
	}

	rt, err = New(ModeNative, "sh")
	if err != nil {
		t.Fatalf("New(native) error = %v", err)
	}
	if native, ok := rt.(*NativeRuntime); !ok || native.Shell != "sh" {
		t.Errorf("New(native) = %#v, want *NativeRuntime with Shell sh", rt)
	}

	if _, err := New("docker", ""); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("New(docker) error = %v, want ErrInvalidMode", err)
	}
}

func TestEnvToSlice(t *testing.T) {
	t.Parallel()

	got := EnvToSlice(map[string]string{"B": "2", "A": "1"})
	if strings.Join(got, ",") != "A=1,B=2" {
		t.Errorf("EnvToSlice() = %v, want [A=1 B=2]", got)
	}
	if got := EnvToSlice(nil); len(got) != 0 {
		t.Errorf("EnvToSlice(nil) = %v, want empty", got)
	}
}

func TestResultValue(t *testing.T) {
	t.Parallel()

	r := &Result{Output: "hello\n"}
	v, err := r.Value("greet")
	if err != nil || v != "hello" {
		t.Errorf("Value() = %q, %v; want hello, nil", v, err)
	}

	r = &Result{ExitCode: 3, ErrOutput: "boom\n"}
	_, err = r.Value("greet")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Value() error = %v, want *ExitError", err)
	}
	if exitErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", exitErr.ExitCode)
	}
	if want := `script "greet" exited with status 3: boom`; exitErr.Error() != want {
		t.Errorf("Error() = %q, want %q", exitErr.Error(), want)
	}

	cause := errors.New("no shell")
	r = &Result{ExitCode: 1, Error: cause}
	if _, err := r.Value("greet"); !errors.Is(err, cause) {
		t.Errorf("Value() error = %v, want %v", err, cause)
	}
}
