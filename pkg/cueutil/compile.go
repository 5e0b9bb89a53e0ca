// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds how much CUE source is compiled in one go (5 MiB).
const DefaultMaxFileSize int64 = 5 << 20

type (
	// Option configures Compile and Build.
	Option func(*options)

	options struct {
		filename    string
		maxFileSize int64
		ctx         *cue.Context
	}
)

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// WithContext compiles into an existing CUE context instead of a fresh one.
// Values from different contexts cannot be unified.
func WithContext(ctx *cue.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

func applyOptions(opts []Option) options {
	o := options{filename: "<input>", maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ctx == nil {
		o.ctx = cuecontext.New()
	}
	return o
}

// Compile size-checks and compiles CUE (or JSON) source into a value.
// Compilation errors are returned through FormatError.
func Compile(data []byte, opts ...Option) (cue.Value, error) {
	o := applyOptions(opts)

	if o.maxFileSize > 0 {
		if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
			return cue.Value{}, err
		}
	}

	v := o.ctx.CompileBytes(data, cue.Filename(o.filename))
	if v.Err() != nil {
		return cue.Value{}, FormatError(v.Err(), o.filename)
	}
	return v, nil
}

// Build turns an AST file produced by one of CUE's encoders (YAML, for example)
// into a value, with the same error formatting as Compile.
func Build(f *ast.File, opts ...Option) (cue.Value, error) {
	o := applyOptions(opts)

	v := o.ctx.BuildFile(f)
	if v.Err() != nil {
		return cue.Value{}, FormatError(v.Err(), o.filename)
	}
	return v, nil
}

// Encode converts an already-decoded Go value (from TOML, for example) into a CUE value.
func Encode(x any, opts ...Option) (cue.Value, error) {
	o := applyOptions(opts)

	v := o.ctx.Encode(x)
	if v.Err() != nil {
		return cue.Value{}, FormatError(v.Err(), o.filename)
	}
	return v, nil
}

// Validate checks a value and formats any error against filename.
func Validate(v cue.Value, filename string, concrete bool) error {
	var err error
	if concrete {
		err = v.Validate(cue.Concrete(true))
	} else {
		err = v.Validate()
	}
	if err != nil {
		return FormatError(err, filename)
	}
	return nil
}
