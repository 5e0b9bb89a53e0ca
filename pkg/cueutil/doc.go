// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE compilation utilities.
//
// Alias documents and the application config are both compiled through this
// package so that size limits and error messages look the same everywhere:
//
//	value, err := cueutil.Compile(data, cueutil.WithFilename("aliases.cue"))
//	if err != nil {
//	    return err // <file>: <json-path>: <message>
//	}
package cueutil
