// Package cmd provides CLI commands for the sqlformat tool.
//
// This package implements the command-line interface for sqlformat,
// currently a single fmt command with gofmt-like path handling. Each
// command is implemented as a function returning a *cli.Command,
// following the urfave/cli/v3 pattern.
//
// # Global Options
//
// All commands support global flags:
//   - --config, -c: Config file path (defaults to .sqlformat.yaml)
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
//	sqlformat fmt schema.sql          # Format a file to stdout
//	sqlformat fmt -w db/              # Rewrite all .sql files under db/
//	sqlformat fmt --check db/         # Verify formatting in CI
//	cat install.sql | sqlformat fmt   # Format stdin
package cmd
