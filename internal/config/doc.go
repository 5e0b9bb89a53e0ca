// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/aliascraft/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/aliascraft/config.cue on macOS, %APPDATA%\aliascraft\config.cue
// on Windows), falling back to ./config.cue. Values can be overridden with ALIASCRAFT_*
// environment variables (ALIASCRAFT_UI_VERBOSE, ALIASCRAFT_DEFAULT_RUNTIME, ...).
//
// The file is validated against the embedded config_schema.cue. The `aliases` block is
// carried verbatim to the alias registry and never passes through Viper, which would
// lowercase alias names.
package config
