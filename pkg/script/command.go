package script

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// commandLexer tokenizes the single-line tool commands that scripts
	// interleave with SQL statements. Identifiers are permissive enough to
	// cover spool targets and substitution variable names.
	commandLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `'([^']|'')*'`},
		{Name: "Number", Pattern: `\d+(\.\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_$#][\w$#./\\-]*`},
		{Name: "Punct", Pattern: `[=&:,()]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	commandParser = participle.MustBuild[Command](
		participle.Lexer(commandLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(2),
	)
)

type (
	// Command is a parsed tool command such as SET SERVEROUTPUT ON or
	// SPOOL report.log. Exactly one branch is non-nil.
	Command struct {
		Set      *SetCommand      `parser:"@@"`
		Define   *DefineCommand   `parser:"| @@"`
		Undefine *UndefineCommand `parser:"| @@"`
		Spool    *SpoolCommand    `parser:"| @@"`
		Print    *PrintCommand    `parser:"| @@"`
		Prompt   *PromptCommand   `parser:"| @@"`
		Show     *ShowCommand     `parser:"| @@"`
		Execute  *ExecuteCommand  `parser:"| @@"`
		Whenever *WheneverCommand `parser:"| @@"`
	}

	// SetCommand adjusts a session option, e.g. SET LINESIZE 120.
	SetCommand struct {
		Option string `parser:"'SET' @Ident"`
		Value  string `parser:"@(Ident | Number | String)?"`
	}

	// DefineCommand declares a substitution variable.
	DefineCommand struct {
		Name  string `parser:"'DEFINE' @Ident"`
		Value string `parser:"('=' @(Ident | Number | String))?"`
	}

	// UndefineCommand removes one or more substitution variables.
	UndefineCommand struct {
		Names []string `parser:"'UNDEFINE' @Ident+"`
	}

	// SpoolCommand redirects output to a file, or SPOOL OFF to stop.
	SpoolCommand struct {
		Target string `parser:"'SPOOL' @(Ident | String)?"`
	}

	// PrintCommand prints bind variable values. A leading colon on a name
	// is accepted and dropped.
	PrintCommand struct {
		Names []string `parser:"'PRINT' (':'? @Ident)+"`
	}

	// PromptCommand echoes its text to the output.
	PromptCommand struct {
		Words []string `parser:"'PROMPT' @(Ident | Number | String | Punct)*"`
	}

	// ShowCommand displays a session setting or error state.
	ShowCommand struct {
		Topic string `parser:"'SHOW' @Ident"`
	}

	// ExecuteCommand runs a single procedural expression.
	ExecuteCommand struct {
		Body []string `parser:"('EXECUTE' | 'EXEC') @(Ident | Number | String | Punct)+"`
	}

	// WheneverCommand sets the error disposition for the script.
	WheneverCommand struct {
		Class  string   `parser:"'WHENEVER' @('SQLERROR' | 'OSERROR')"`
		Action []string `parser:"@Ident*"`
	}
)

// ParseCommand parses one tool command line. The verb decides the branch;
// anything that does not open with a known verb fails.
func ParseCommand(line string) (*Command, error) {
	cmd, err := commandParser.ParseString("", strings.TrimSpace(line))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse command")
	}

	return cmd, nil
}

// String renders the command in canonical form: uppercase verb, single
// spaces between arguments, values kept as written.
func (c *Command) String() string {
	switch {
	case c.Set != nil:
		return join("SET", strings.ToUpper(c.Set.Option), c.Set.Value)
	case c.Define != nil:
		if c.Define.Value == "" {
			return join("DEFINE", c.Define.Name)
		}
		return join("DEFINE", c.Define.Name, "=", c.Define.Value)
	case c.Undefine != nil:
		return join(append([]string{"UNDEFINE"}, c.Undefine.Names...)...)
	case c.Spool != nil:
		return join("SPOOL", c.Spool.Target)
	case c.Print != nil:
		return join(append([]string{"PRINT"}, c.Print.Names...)...)
	case c.Prompt != nil:
		return join(append([]string{"PROMPT"}, c.Prompt.Words...)...)
	case c.Show != nil:
		return join("SHOW", strings.ToUpper(c.Show.Topic))
	case c.Execute != nil:
		return join(append([]string{"EXECUTE"}, c.Execute.Body...)...)
	case c.Whenever != nil:
		parts := append([]string{"WHENEVER", strings.ToUpper(c.Whenever.Class)}, c.Whenever.Action...)
		for i := 2; i < len(parts); i++ {
			parts[i] = strings.ToUpper(parts[i])
		}
		return join(parts...)
	}

	return ""
}

func join(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}

	return strings.Join(out, " ")
}
