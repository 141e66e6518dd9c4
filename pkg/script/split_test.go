package script_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/pseudomuto/sqlformat/pkg/script"
)

func TestSplit(t *testing.T) {
	t.Run("mixed script", func(t *testing.T) {
		src := `set define off
select 1 from dual;
begin
null;
end;
/
-- trailing note
select 2 from dual;
`
		items := Split(src)
		require.Len(t, items, 4)

		require.NotNil(t, items[0].Command)
		require.NotNil(t, items[0].Command.Set)

		require.Equal(t, "select 1 from dual;", items[1].Statement)
		require.False(t, items[1].Terminator)

		require.Equal(t, "begin\nnull;\nend;", items[2].Statement)
		require.True(t, items[2].Terminator)

		require.Equal(t, "-- trailing note\nselect 2 from dual;", items[3].Statement)
	})

	t.Run("procedural needs a slash", func(t *testing.T) {
		items := Split("begin null; end;")
		require.Len(t, items, 1)
		require.Equal(t, "begin null; end;", items[0].Statement)
		require.False(t, items[0].Terminator)
	})

	t.Run("create routine runs to slash", func(t *testing.T) {
		src := "create or replace function f return number is\nbegin\nreturn 1;\nend;\n/\n"
		items := Split(src)
		require.Len(t, items, 1)
		require.True(t, items[0].Terminator)
		require.Equal(t, "create or replace function f return number is\nbegin\nreturn 1;\nend;", items[0].Statement)
	})

	t.Run("create table is plain", func(t *testing.T) {
		items := Split("create table t (x number); select 1 from dual;")
		require.Len(t, items, 2)
		require.Equal(t, "create table t (x number);", items[0].Statement)
	})

	t.Run("slash after plain statement marks terminator", func(t *testing.T) {
		items := Split("select 1 from dual;\n/\n")
		require.Len(t, items, 1)
		require.True(t, items[0].Terminator)
	})

	t.Run("repeated slashes keep their count", func(t *testing.T) {
		items := Split("begin null; end;\n/\n/\n")
		require.Len(t, items, 2)
		require.Equal(t, "begin null; end;", items[0].Statement)
		require.True(t, items[0].Terminator)
		require.Empty(t, items[1].Statement)
		require.Nil(t, items[1].Command)
		require.True(t, items[1].Terminator)
	})

	t.Run("leading slash stands alone", func(t *testing.T) {
		items := Split("/\nselect 1 from dual;")
		require.Len(t, items, 2)
		require.Empty(t, items[0].Statement)
		require.True(t, items[0].Terminator)
		require.Equal(t, "select 1 from dual;", items[1].Statement)
	})

	t.Run("semicolon inside block does not split", func(t *testing.T) {
		src := "begin\nx := 1;\ny := 2;\nend;\n/\n"
		items := Split(src)
		require.Len(t, items, 1)
		require.Equal(t, "begin\nx := 1;\ny := 2;\nend;", items[0].Statement)
	})

	t.Run("unparseable command degrades to statement", func(t *testing.T) {
		items := Split("set\nselect 1 from dual;")
		require.Len(t, items, 2)
		require.Nil(t, items[0].Command)
		require.Equal(t, "set", items[0].Statement)
		require.Equal(t, "select 1 from dual;", items[1].Statement)
	})

	t.Run("unterminated trailing statement", func(t *testing.T) {
		items := Split("select 1 from dual")
		require.Len(t, items, 1)
		require.Equal(t, "select 1 from dual", items[0].Statement)
	})

	t.Run("empty input", func(t *testing.T) {
		require.Empty(t, Split(""))
		require.Empty(t, Split("  \n\t"))
	})
}
