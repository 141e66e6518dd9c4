package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pseudomuto/sqlformat/pkg/config"
	"github.com/pseudomuto/sqlformat/pkg/consts"
	"github.com/pseudomuto/sqlformat/pkg/format"
)

// currentOptions holds the formatting options resolved from the config
// file, for use by subcommands.
var currentOptions = format.Defaults

// Run creates and executes the main sqlformat CLI application with the
// given version and command-line arguments.
//
// The application looks for .sqlformat.yaml in the working directory (or
// the file named by --config) and resolves formatting options from it
// before dispatching to subcommands. A missing config file is not an
// error; defaults apply.
//
// Example usage:
//
//	# Format a file to stdout
//	err := Run(ctx, "v1.0.0", []string{"sqlformat", "fmt", "schema.sql"})
//
//	# Rewrite a directory tree in place
//	err := Run(ctx, "v1.0.0", []string{"sqlformat", "fmt", "-w", "db/"})
func Run(ctx context.Context, version string, args []string) error {
	app := &cli.Command{
		Name:  "sqlformat",
		Usage: "A structural formatter for SQL and PL/SQL files",
		Description: `sqlformat re-emits SQL and PL/SQL with consistent keyword casing,
clause-level line breaks, and block-aware indentation. It never alters
what a statement means: literals and comments are preserved byte for
byte, and malformed input degrades to imperfect formatting rather than
an error.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the sqlformat config file",
				Sources: cli.EnvVars("SQLFORMAT_CONFIG"),
				Value:   consts.DefaultConfigFile,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			path := cmd.String("config")

			_, err := os.Stat(path)
			if os.IsNotExist(err) {
				return ctx, nil
			}
			if err != nil {
				return ctx, err
			}

			cfg, err := config.LoadConfigFile(path)
			if err != nil {
				return ctx, err
			}

			currentOptions = cfg.Options()
			return ctx, nil
		},
		Commands: []*cli.Command{
			fmtCmd(),
		},
	}

	return app.Run(ctx, args)
}
