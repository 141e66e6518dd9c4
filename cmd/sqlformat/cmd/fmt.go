package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/pseudomuto/sqlformat/pkg/consts"
	"github.com/pseudomuto/sqlformat/pkg/format"
	"github.com/pseudomuto/sqlformat/pkg/script"
)

// fmtCmd creates the CLI command for formatting SQL files. It provides
// gofmt-like behavior: paths may be files or directories (walked
// recursively for .sql files), and with no path the input is read from
// stdin.
//
// Output modes:
//   - Stdout mode (default): formatted SQL is written to standard output
//   - Write mode (-w): files are rewritten in place
//   - Check mode (--check): no output is written; the command fails when
//     any input is not already formatted
//   - --out: write the result to the named file (single input only)
//
// Examples:
//
//	# Format single file to stdout
//	sqlformat fmt schema.sql
//
//	# Format a script from stdin
//	cat install.sql | sqlformat fmt
//
//	# Rewrite all SQL files under db/ in place
//	sqlformat fmt -w db/
//
//	# Fail CI when files are not formatted
//	sqlformat fmt --check db/
func fmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Exit non-zero if any file is not formatted; write nothing",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write result to this file instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			mode, err := outputMode(cmd)
			if err != nil {
				return err
			}

			if cmd.Args().Len() == 0 {
				return formatStdin(cmd.Reader, mode, cmd.Writer)
			}
			if cmd.Args().Len() > 1 {
				return errors.New("at most one path argument is allowed")
			}

			return formatPath(cmd.Args().First(), mode, cmd.Writer)
		},
	}
}

type outMode struct {
	write bool
	check bool
	out   string
}

func outputMode(cmd *cli.Command) (outMode, error) {
	mode := outMode{
		write: cmd.Bool("write"),
		check: cmd.Bool("check"),
		out:   cmd.String("out"),
	}
	set := 0
	for _, on := range []bool{mode.write, mode.check, mode.out != ""} {
		if on {
			set++
		}
	}
	if set > 1 {
		return mode, errors.New("only one of --write, --check, and --out may be given")
	}

	return mode, nil
}

func formatStdin(r io.Reader, mode outMode, writer io.Writer) error {
	if mode.write {
		return errors.New("--write requires a path argument")
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read stdin")
	}

	formatted := formatScript(string(content))
	if mode.check {
		if formatted != string(content) {
			return errors.New("input is not formatted")
		}
		return nil
	}

	return emit(formatted, mode, writer)
}

// formatPath handles formatting of either a single file or a directory
// tree, dispatching on the path type.
func formatPath(path string, mode outMode, writer io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return formatDirectory(path, mode, writer)
	}

	return formatFile(path, mode, writer)
}

// formatDirectory walks a directory and formats every .sql file, in
// lexicographical order for consistent behavior across platforms.
func formatDirectory(dir string, mode outMode, writer io.Writer) error {
	if mode.out != "" {
		return errors.New("--out cannot be used with a directory")
	}

	var sqlFiles []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			sqlFiles = append(sqlFiles, path)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	if len(sqlFiles) == 0 {
		return errors.Errorf("no SQL files found in directory: %s", dir)
	}

	var unformatted []string
	for _, sqlFile := range sqlFiles {
		err := formatFile(sqlFile, mode, writer)
		if mode.check && err != nil {
			unformatted = append(unformatted, sqlFile)
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "failed to format file: %s", sqlFile)
		}
	}
	if len(unformatted) > 0 {
		return errors.Errorf("files are not formatted: %s", strings.Join(unformatted, ", "))
	}

	return nil
}

// formatFile formats a single SQL file according to the output mode.
func formatFile(path string, mode outMode, writer io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	formatted := formatScript(string(content))

	switch {
	case mode.check:
		if formatted != string(content) {
			return errors.Errorf("file is not formatted: %s", path)
		}
		return nil
	case mode.write:
		if err := os.WriteFile(path, []byte(formatted), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", path)
		}
		return nil
	default:
		return emit(formatted, mode, writer)
	}
}

func formatScript(content string) string {
	items := script.Split(content)

	var buf strings.Builder
	// Writing to a strings.Builder cannot fail.
	_ = format.Script(&buf, currentOptions, items...)
	return buf.String()
}

func emit(formatted string, mode outMode, writer io.Writer) error {
	if mode.out != "" {
		if err := os.WriteFile(mode.out, []byte(formatted), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write file: %s", mode.out)
		}
		return nil
	}

	if _, err := fmt.Fprint(writer, formatted); err != nil {
		return errors.Wrap(err, "failed to write formatted content to output")
	}

	return nil
}
