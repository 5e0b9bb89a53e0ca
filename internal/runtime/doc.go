// SPDX-License-Identifier: MPL-2.0

// Package runtime executes shell scripts on behalf of script-backed aliases.
//
// Two runtimes are available:
//   - virtual: the embedded mvdan/sh interpreter, always available
//   - native: the host shell ($SHELL, bash, sh; PowerShell or cmd on Windows)
//
// Both capture stdout and stderr and expose positional arguments as $1, $2, ...
package runtime
