// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for aliascraft.
//
// This package implements the Cobra command hierarchy: listing, running,
// chaining and inspecting aliases, configuration inspection, and the SSH
// front end.
package cmd
