package format

import (
	"io"

	"github.com/pkg/errors"

	"github.com/pseudomuto/sqlformat/pkg/script"
)

// Script writes formatted script items to w. Statements are formatted and
// separated by blank lines; slash-terminated blocks get their slash back
// on its own line; tool commands are rendered in canonical form, with
// consecutive commands kept together.
func Script(w io.Writer, options Options, items ...script.Item) error {
	f := New(options)
	prevCommand := false
	for i, item := range items {
		bare := item.Command == nil && item.Statement == "" && item.Terminator
		if i > 0 {
			sep := "\n\n"
			if bare || (prevCommand && item.Command != nil) {
				sep = "\n"
			}
			if err := write(w, sep); err != nil {
				return err
			}
		}
		if bare {
			// A slash with no statement of its own still comes back out.
			if err := write(w, "/"); err != nil {
				return err
			}
			prevCommand = false
			continue
		}
		if item.Command != nil {
			if err := write(w, item.Command.String()); err != nil {
				return err
			}
			prevCommand = true
			continue
		}
		if err := write(w, f.Statement(item.Statement)); err != nil {
			return err
		}
		if item.Terminator {
			if err := write(w, "\n/"); err != nil {
				return err
			}
		}
		prevCommand = false
	}
	if len(items) > 0 {
		return write(w, "\n")
	}
	return nil
}

func write(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return errors.Wrap(err, "failed to write formatted script")
}
