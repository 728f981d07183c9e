// Package cli wires together the Cobra command tree for the scorecard binary.
//
// It defines the root command and all subcommands (init, add, list, delete,
// chart, export, serve, config, version), binds flags, reads configuration,
// opens the record store, and maps failures to exit codes: 1 for rejected
// input, 2 for usage errors, 3 for storage failures and 4 for anything else.
package cli
