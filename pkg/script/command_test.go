package script_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/pseudomuto/sqlformat/pkg/script"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		canonical string
	}{
		{"set flag", "set serveroutput on", "SET SERVEROUTPUT on"},
		{"set number", "SET LINESIZE 120", "SET LINESIZE 120"},
		{"set bare option", "set feedback", "SET FEEDBACK"},
		{"define with value", "define env = 'prod'", "DEFINE env = 'prod'"},
		{"define bare", "define env", "DEFINE env"},
		{"undefine multiple", "undefine a b", "UNDEFINE a b"},
		{"spool to file", "spool report.log", "SPOOL report.log"},
		{"spool off", "spool off", "SPOOL off"},
		{"print bind variable", "print :total", "PRINT total"},
		{"prompt text", "prompt Loading data", "PROMPT Loading data"},
		{"show topic", "show errors", "SHOW ERRORS"},
		{"whenever sqlerror", "whenever sqlerror exit failure", "WHENEVER SQLERROR EXIT FAILURE"},
		{"whenever oserror", "whenever oserror continue", "WHENEVER OSERROR CONTINUE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.canonical, cmd.String())
		})
	}

	t.Run("branch selection", func(t *testing.T) {
		cmd, err := ParseCommand("set serveroutput on")
		require.NoError(t, err)
		require.NotNil(t, cmd.Set)
		require.Equal(t, "serveroutput", cmd.Set.Option)
		require.Equal(t, "on", cmd.Set.Value)

		cmd, err = ParseCommand("execute dbms_output.put_line('hi')")
		require.NoError(t, err)
		require.NotNil(t, cmd.Execute)
	})

	t.Run("unknown verb fails", func(t *testing.T) {
		_, err := ParseCommand("grant all to nobody")
		require.Error(t, err)
	})

	t.Run("truncated command fails", func(t *testing.T) {
		_, err := ParseCommand("set")
		require.Error(t, err)
	})
}
