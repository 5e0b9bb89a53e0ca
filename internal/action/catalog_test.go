// SPDX-License-Identifier: MPL-2.0

package action

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestCatalogBuiltins(t *testing.T) {
	t.Setenv("ALIASCRAFT_TEST_VAR", "from-env")

	tests := []struct {
		builtin string
		args    []any
		want    any
	}{
		{"echo", []any{"hello", "world"}, "hello world"},
		{"echo", nil, ""},
		{"upper", []any{"abc", 1}, "ABC 1"},
		{"lower", []any{"ABC"}, "abc"},
		{"concat", []any{"a", "b", 3}, "ab3"},
		{"count", []any{"a", "b", "c"}, 3},
		{"env", []any{"ALIASCRAFT_TEST_VAR"}, "from-env"},
	}

	c := NewCatalog()
	for _, tt := range tests {
		t.Run(tt.builtin, func(t *testing.T) {
			action, ok := c.Lookup(tt.builtin)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.builtin)
			}
			got, err := action(context.Background(), tt.args)
			if err != nil {
				t.Fatalf("action error = %v", err)
			}
			if got != tt.want {
				t.Errorf("result = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCatalogEnvWithoutArgs(t *testing.T) {
	t.Parallel()

	action, _ := NewCatalog().Lookup("env")
	if _, err := action(context.Background(), nil); err == nil {
		t.Error("env with no args should fail")
	}
}

func TestCatalogProvide(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	if err := c.Provide("nil", nil); !errors.Is(err, ErrNilBuiltin) {
		t.Errorf("Provide(nil) error = %v, want ErrNilBuiltin", err)
	}

	if err := c.Provide("answer", func(context.Context, []any) (any, error) { return 42, nil }); err != nil {
		t.Fatalf("Provide() error = %v", err)
	}
	action, ok := c.Lookup("answer")
	if !ok {
		t.Fatal("Lookup(answer) not found after Provide")
	}
	if got, _ := action(context.Background(), nil); got != 42 {
		t.Errorf("answer = %v, want 42", got)
	}

	want := []string{"answer", "concat", "count", "echo", "env", "lower", "upper"}
	if got := c.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
