// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the user directory.
//
// Every invocation runs one subcommand against the server through an
// [adapter.DirectoryClient] and renders the result to the terminal.
package client
