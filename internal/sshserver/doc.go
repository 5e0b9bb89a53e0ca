// SPDX-License-Identifier: MPL-2.0

// Package sshserver exposes an alias registry over SSH using the Wish library.
//
// Clients authenticate with the access token printed at startup as their
// password; public keys are rejected. Each session runs one command:
//
//	ssh -p <port> aliascraft@127.0.0.1 list
//	ssh -p <port> aliascraft@127.0.0.1 run greet World
//
// The exit status is 0 on success and 1 on any alias error.
package sshserver
