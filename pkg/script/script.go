// Package script splits SQL script files into their component parts:
// statements, procedural blocks, and the single-line tool commands
// (SET, SPOOL, PROMPT, ...) interleaved between them.
package script

// Item is one component of a script: either a tool command or a
// statement. Statements keep their raw text untouched.
type Item struct {
	// Statement holds the raw statement text when Command is nil.
	Statement string

	// Command holds the parsed tool command, or nil for statements.
	Command *Command

	// Terminator reports that the statement was closed by a slash on its
	// own line, as procedural blocks are. An Item with an empty Statement,
	// no Command, and Terminator set is a bare slash that had nothing to
	// attach to, such as the SQL*Plus re-run marker after a terminated
	// block.
	Terminator bool
}
