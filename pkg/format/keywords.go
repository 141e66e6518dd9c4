package format

// Keyword classification tables. Membership decides both line-break
// behavior and case normalization; the tokenizer itself never labels a
// word as a keyword.

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// clauseWords start a new line at the current indent.
var clauseWords = wordSet(
	"SELECT", "FROM", "WHERE", "GROUP", "HAVING", "ORDER",
	"UNION", "INTERSECT", "MINUS",
	"INSERT", "UPDATE", "DELETE", "MERGE",
	"VALUES", "SET", "INTO", "WITH",
)

// conditionWords start a new line one level deeper.
var conditionWords = wordSet("ON", "AND", "OR", "WHEN")

// joinModifierWords precede JOIN and break once for the whole join phrase.
var joinModifierWords = wordSet("LEFT", "RIGHT", "FULL", "INNER", "CROSS", "OUTER")

// subqueryWords mark a parenthesis as opening a subquery when one of them
// is the first token inside.
var subqueryWords = wordSet("SELECT", "WITH", "INSERT", "UPDATE", "DELETE", "MERGE")

// routineWords after CREATE [OR REPLACE] make a following AS/IS open a
// procedural block.
var routineWords = wordSet("PACKAGE", "PROCEDURE", "FUNCTION", "TYPE", "TRIGGER")

// constraintIntroWords end the data-type span of a column definition.
var constraintIntroWords = wordSet(
	"CONSTRAINT", "NOT", "NULL", "DEFAULT", "PRIMARY", "UNIQUE", "CHECK",
	"REFERENCES", "ENABLE", "DISABLE", "USING", "COLLATE", "GENERATED", "IDENTITY",
)

// constraintOnlyWords begin a table-level constraint entry, emitted
// without column alignment.
var constraintOnlyWords = wordSet("CONSTRAINT", "PRIMARY", "UNIQUE", "FOREIGN", "CHECK")

// tableSuffixWords introduce physical-attribute clauses after a CREATE
// TABLE body; each goes on its own line.
var tableSuffixWords = wordSet(
	"PCTFREE", "PCTUSED", "INITRANS", "MAXTRANS", "STORAGE", "TABLESPACE",
	"LOGGING", "NOLOGGING", "COMPRESS", "NOCOMPRESS", "CACHE", "NOCACHE",
	"PARALLEL", "NOPARALLEL", "ORGANIZATION", "PARTITION", "SEGMENT",
	"MONITORING", "LOB",
)

// keywords is the full normalization set: any word found here is re-cased
// per Options.UppercaseKeywords. Everything else keeps its typed case.
var keywords = func() map[string]bool {
	m := wordSet(
		"END", "ELSE", "ELSIF", "THEN", "JOIN", "AS", "IS", "IN", "LIKE",
		"BETWEEN", "FOR", "WHILE", "EXCEPTION", "RAISE", "RETURN", "EXIT",
		"OPEN", "CLOSE", "FETCH", "CURSOR", "BULK", "COLLECT", "LIMIT",
		"CREATE", "REPLACE", "DROP", "ALTER", "TABLE", "VIEW", "INDEX",
		"SEQUENCE", "SYNONYM", "GRANT", "REVOKE", "TRUNCATE", "BODY",
		"DISTINCT", "ALL", "ANY", "EXISTS", "BY", "ASC", "DESC", "NULLS",
		"FIRST", "LAST", "TO", "OF", "KEY", "FOREIGN", "ROWTYPE", "COMMIT",
		"ROLLBACK", "SAVEPOINT", "CONNECT", "START", "NOT", "NULL",
		"DECLARE", "BEGIN", "LOOP", "CASE", "IF", "MATCHED", "CONTINUE",
		"REVERSE", "OTHERS", "GOTO", "PRAGMA", "SUBTYPE", "RECORD", "REF",
	)
	for _, set := range []map[string]bool{
		clauseWords, conditionWords, joinModifierWords, routineWords,
		constraintIntroWords, constraintOnlyWords, tableSuffixWords,
	} {
		for w := range set {
			m[w] = true
		}
	}
	return m
}()
