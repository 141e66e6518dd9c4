package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/pseudomuto/sqlformat/pkg/format"
)

func requireFormat(t *testing.T, input string, lines ...string) {
	t.Helper()
	require.Equal(t, strings.Join(lines, "\n"), Statement(input))
}

func TestStatement_Queries(t *testing.T) {
	t.Run("clauses break with select list continuation", func(t *testing.T) {
		requireFormat(t, "select a,b from t where x=1",
			"SELECT a,",
			"    b",
			"FROM t",
			"WHERE x = 1;",
		)
	})

	t.Run("join with modifier breaks once", func(t *testing.T) {
		requireFormat(t, "select a from t left join u on t.id = u.id where a > 1",
			"SELECT a",
			"FROM t",
			"    LEFT JOIN u",
			"    ON t.id = u.id",
			"WHERE a > 1;",
		)
	})

	t.Run("between keeps its and inline", func(t *testing.T) {
		requireFormat(t, "select * from t where x between 1 and 2 and y = 3",
			"SELECT *",
			"FROM t",
			"WHERE x BETWEEN 1 AND 2",
			"    AND y = 3;",
		)
	})

	t.Run("subquery parens indent their body", func(t *testing.T) {
		requireFormat(t, "select * from (select id from u) v",
			"SELECT *",
			"FROM (",
			"    SELECT id",
			"    FROM u",
			") v;",
		)
	})

	t.Run("plain parens keep commas inline", func(t *testing.T) {
		requireFormat(t, "select * from t where x in (1, 2, 3)",
			"SELECT *",
			"FROM t",
			"WHERE x IN (1, 2, 3);",
		)
	})

	t.Run("case expression stays compact", func(t *testing.T) {
		requireFormat(t, "select case when x = 1 then 'a' else 'b' end c from t",
			"SELECT CASE",
			"    WHEN x = 1 THEN 'a'",
			"    ELSE 'b'",
			"END c",
			"FROM t;",
		)
	})

	t.Run("insert values", func(t *testing.T) {
		requireFormat(t, "insert into t(a, b) values (1, 2)",
			"INSERT INTO t(a, b)",
			"VALUES (1, 2);",
		)
	})

	t.Run("statements separate with a blank line", func(t *testing.T) {
		requireFormat(t, "select 1 from dual; select 2 from dual;",
			"SELECT 1",
			"FROM dual;",
			"",
			"SELECT 2",
			"FROM dual;",
		)
	})
}

func TestStatement_Blocks(t *testing.T) {
	t.Run("nested blocks indent per level", func(t *testing.T) {
		requireFormat(t, "begin if 1 = 1 then begin null; end; end if; end;",
			"BEGIN",
			"    IF 1 = 1 THEN",
			"        BEGIN",
			"            NULL;",
			"        END;",
			"    END IF;",
			"END;",
		)
	})

	t.Run("declare merges with its begin", func(t *testing.T) {
		requireFormat(t, "declare v number; begin v := 1; end;",
			"DECLARE",
			"    v number;",
			"BEGIN",
			"    v := 1;",
			"END;",
		)
	})

	t.Run("if elsif else alignment", func(t *testing.T) {
		requireFormat(t, "begin if a then x := 1; elsif b then x := 2; else x := 3; end if; end;",
			"BEGIN",
			"    IF a THEN",
			"        x := 1;",
			"    ELSIF b THEN",
			"        x := 2;",
			"    ELSE",
			"        x := 3;",
			"    END IF;",
			"END;",
		)
	})

	t.Run("if not condition opens a block", func(t *testing.T) {
		requireFormat(t, "begin if not found then null; end if; null; end;",
			"BEGIN",
			"    IF NOT found THEN",
			"        NULL;",
			"    END IF;",
			"    NULL;",
			"END;",
		)
	})

	t.Run("if exists stays inline", func(t *testing.T) {
		requireFormat(t, "drop table t if exists",
			"DROP TABLE t IF EXISTS;",
		)
		requireFormat(t, "create table if not exists t (a number)",
			"CREATE TABLE IF NOT EXISTS t (",
			"    a number",
			");",
		)
	})

	t.Run("for loop header stays on one line", func(t *testing.T) {
		requireFormat(t, "begin for i in 1..10 loop null; end loop; end;",
			"BEGIN",
			"    FOR i IN 1..10 LOOP",
			"        NULL;",
			"    END LOOP;",
			"END;",
		)
	})

	t.Run("case statement separates branches", func(t *testing.T) {
		requireFormat(t, "begin case v when 1 then x := 1; when 2 then x := 2; else x := 3; end case; end;",
			"BEGIN",
			"    CASE v",
			"        WHEN 1 THEN",
			"            x := 1;",
			"",
			"        WHEN 2 THEN",
			"            x := 2;",
			"",
			"        ELSE",
			"            x := 3;",
			"    END CASE;",
			"END;",
		)
	})

	t.Run("exception handlers", func(t *testing.T) {
		requireFormat(t, "begin null; exception when others then raise; end;",
			"BEGIN",
			"    NULL;",
			"EXCEPTION",
			"    WHEN OTHERS THEN",
			"        RAISE;",
			"END;",
		)
	})

	t.Run("open cursor for indents its query", func(t *testing.T) {
		requireFormat(t, "begin open c for select id from t order by id; end;",
			"BEGIN",
			"    OPEN c FOR",
			"        SELECT id",
			"        FROM t",
			"        ORDER BY id;",
			"END;",
		)
	})

	t.Run("block label stays on its own line", func(t *testing.T) {
		requireFormat(t, "<<retry>>\nbegin null; end;",
			"<<retry>>",
			"BEGIN",
			"    NULL;",
			"END;",
		)
	})
}

func TestStatement_DDL(t *testing.T) {
	t.Run("create table aligns columns", func(t *testing.T) {
		requireFormat(t, "create table employees (id number(10) not null, name varchar2(100), hire_date date default sysdate, constraint pk_emp primary key (id));",
			"CREATE TABLE employees (",
			"    id        number(10)    NOT NULL,",
			"    name      varchar2(100),",
			"    hire_date date          DEFAULT sysdate,",
			"    CONSTRAINT pk_emp PRIMARY KEY(id)",
			");",
		)
	})

	t.Run("table suffix clauses get their own lines", func(t *testing.T) {
		requireFormat(t, "create table t (id number) tablespace users pctfree 10;",
			"CREATE TABLE t (",
			"    id number",
			")",
			"TABLESPACE users",
			"PCTFREE 10;",
		)
	})

	t.Run("create table as select has no column list", func(t *testing.T) {
		requireFormat(t, "create table t2 as select * from t1",
			"CREATE TABLE t2 AS",
			"SELECT *",
			"FROM t1;",
		)
	})

	t.Run("create or replace procedure", func(t *testing.T) {
		requireFormat(t, "create or replace procedure p as begin null; end p;",
			"CREATE OR REPLACE PROCEDURE p AS",
			"BEGIN",
			"    NULL;",
			"END p;",
		)
	})

	t.Run("package body separates members", func(t *testing.T) {
		requireFormat(t, "create or replace package body pkg as procedure a is begin null; end a; procedure b is begin null; end b; end pkg;",
			"CREATE OR REPLACE PACKAGE BODY pkg AS",
			"    PROCEDURE a IS",
			"    BEGIN",
			"        NULL;",
			"    END a;",
			"",
			"    PROCEDURE b IS",
			"    BEGIN",
			"        NULL;",
			"    END b;",
			"END pkg;",
		)
	})
}

func TestStatement_Comments(t *testing.T) {
	t.Run("trailing comment stays on its line", func(t *testing.T) {
		requireFormat(t, "select a -- pick\nfrom t",
			"SELECT a -- pick",
			"FROM t;",
		)
	})

	t.Run("own line comment keeps its line", func(t *testing.T) {
		requireFormat(t, "select a\n-- note\nfrom t;",
			"SELECT a",
			"-- note",
			"FROM t;",
		)
	})
}

func TestStatement_Recovery(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		require.Equal(t, "", Statement(""))
		require.Equal(t, "", Statement("   \n\t"))
	})

	t.Run("lone slash", func(t *testing.T) {
		require.Equal(t, "/", Statement("/"))
	})

	t.Run("semicolon synthesized", func(t *testing.T) {
		require.Equal(t, "SELECT 1\nFROM dual;", Statement("select 1 from dual"))
	})

	t.Run("stray close paren", func(t *testing.T) {
		requireFormat(t, "select a) from t",
			"SELECT a)",
			"FROM t;",
		)
	})

	t.Run("extra end dedents to zero", func(t *testing.T) {
		requireFormat(t, "begin null; end; end;",
			"BEGIN",
			"    NULL;",
			"END;",
			"",
			"END;",
		)
	})

	t.Run("literals survive untouched", func(t *testing.T) {
		formatted := Statement("select q'[it's from where]' x from dual")
		require.Contains(t, formatted, "q'[it's from where]'")
	})
}
