// SPDX-License-Identifier: MPL-2.0

// Package action turns the declarative `action` values found in alias config
// documents into invocable alias.Action functions.
//
// An action is one of:
//
//	"upper"                              // builtin, by name
//	{ builtin: "upper" }                 // builtin, explicit
//	{ script: "echo $1", runtime: "native", dir: "/tmp", env: { K: "v" } }
//
// Builtins live in a Catalog; scripts run through internal/runtime.
package action
