// Package cmd implements the command-line interface of the rksok phonebook.
// It provides a hierarchical command structure with operations for running
// the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - book: Client commands (get, write, delete, interactive, perf)
//   - serve: Command for starting and configuring the phonebook server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See rksok --help for a list of all commands.
package cmd
