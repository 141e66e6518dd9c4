package format_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/pseudomuto/sqlformat/pkg/format"
	"github.com/pseudomuto/sqlformat/pkg/script"
)

func TestScript(t *testing.T) {
	cmd1, err := script.ParseCommand("set define off")
	require.NoError(t, err)
	cmd2, err := script.ParseCommand("spool out.log")
	require.NoError(t, err)

	items := []script.Item{
		{Command: cmd1},
		{Command: cmd2},
		{Statement: "select 1 from dual;"},
		{Statement: "begin null; end;", Terminator: true},
	}

	var buf bytes.Buffer
	require.NoError(t, Script(&buf, Defaults, items...))

	lines := []string{
		"SET DEFINE off",
		"SPOOL out.log",
		"",
		"SELECT 1",
		"FROM dual;",
		"",
		"BEGIN",
		"    NULL;",
		"END;",
		"/",
		"",
	}
	require.Equal(t, strings.Join(lines, "\n"), buf.String())
}

func TestScript_Terminators(t *testing.T) {
	src := "begin null; end;\n/\n/\n"

	var buf bytes.Buffer
	require.NoError(t, Script(&buf, Defaults, script.Split(src)...))
	require.Equal(t, "BEGIN\n    NULL;\nEND;\n/\n/\n", buf.String())

	count := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if line == "/" {
			count++
		}
	}
	require.Equal(t, strings.Count(src, "/"), count)
}

func TestScript_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Script(&buf, Defaults))
	require.Empty(t, buf.String())
}
