// Package cmd implements the command-line interface for asanasync.
//
// This package provides the following commands:
//   - sync: Run the Asana to Google Tasks sync daemon
//   - auth: Authorize access to Google Tasks and cache the token
//   - version: Display version information
//
// The sync command is the default command when no subcommand is specified.
package cmd
