package format

import (
	"strings"

	"github.com/pseudomuto/sqlformat/pkg/token"
)

// blockKind tags one frame of the procedural block stack.
type blockKind int

const (
	blockDeclare blockKind = iota
	blockBegin
	blockIf
	blockLoop
	blockCase
	blockPackageBody
)

type blockFrame struct {
	kind     blockKind
	inClause bool // CASE expression opened inside a SQL clause
	branch   bool // CASE: a WHEN/ELSE branch has already been emitted
}

// parenFrame is one open parenthesis the formatter tracks. Plain parens
// (neither subquery nor column list) are counted in suppress instead.
type parenFrame struct {
	subquery bool
	clause   string // clause active at open time, restored on close
}

// statementFormatter holds the transient state for formatting one
// statement. It is created fresh per statement and discarded afterwards.
type statementFormatter struct {
	opts Options

	lines []string
	cur   string
	glue  bool // next emission attaches without a separating space

	indent   int
	blocks   []blockFrame
	parens   []parenFrame
	suppress int // open plain parens; commas stay inline while > 0

	clause       string
	cursorExtra  int  // extra clause indent inside an OPEN ... FOR body
	cursorFor    bool // OPEN ... FOR seen; the next SELECT enters cursor context
	openStmt     bool
	joinMod      bool
	between      bool
	forPending   bool
	exception    bool
	procedural   bool
	pendingBreak bool
	breakExtra   int // extra levels for the pending break (THEN/ELSE bodies)

	createSeen   bool
	createTable  bool
	tableSuffix  bool
	routineSeen  bool // a following AS/IS opens a routine or package body
	packageBody  bool
	pendingBlank bool // blank line before the next package member
	lastComment  bool
	lastWord     string
}

func newStatementFormatter(opts Options) *statementFormatter {
	return &statementFormatter{opts: opts}
}

func (f *statementFormatter) format(text string) string {
	toks := token.Tokenize(text)
	if len(toks) == 0 {
		return ""
	}
	if len(toks) == 1 && toks[0].IsSymbol("/") {
		return "/"
	}

	for i := 0; i < len(toks); i++ {
		i = f.emit(toks, i)
	}
	if last := lastCodeToken(toks); last != nil && !last.IsSymbol(";") && !last.IsSymbol("/") {
		f.semicolon()
	}
	if !f.atLineStart() {
		f.flush()
	}
	out := strings.Join(trimTrailingBlank(f.lines), "\n")
	if f.procedural {
		out = reconcileDepth(out, f.opts)
	}
	return out
}

func (f *statementFormatter) emit(toks []token.Token, i int) int {
	t := toks[i]
	if f.pendingBreak && t.Kind != token.Comment {
		f.breakLine(f.indent + f.breakExtra)
		f.pendingBreak = false
		f.breakExtra = 0
	}
	switch t.Kind {
	case token.Comment:
		f.comment(toks, i)
		return i
	case token.Literal:
		f.append(t.Text)
		f.lastWord = ""
		f.lastComment = false
		return i
	case token.Symbol:
		return f.symbol(toks, i)
	default:
		return f.wordToken(toks, i)
	}
}

// ---------------------------------------------------------------------------
// Output buffer
// ---------------------------------------------------------------------------

func (f *statementFormatter) flush() {
	f.lines = append(f.lines, strings.TrimRight(f.cur, " \t"))
	f.cur = ""
}

func (f *statementFormatter) atLineStart() bool {
	return strings.TrimSpace(f.cur) == ""
}

// breakLine starts a new output line at the given level. A line holding
// only whitespace is reused rather than left behind empty.
func (f *statementFormatter) breakLine(level int) {
	if !f.atLineStart() {
		f.flush()
	}
	f.cur = f.opts.pad(level)
	f.glue = false
}

// blankLine flushes the current line and guarantees one empty line before
// whatever comes next.
func (f *statementFormatter) blankLine() {
	if !f.atLineStart() {
		f.flush()
	} else {
		f.cur = ""
	}
	if len(f.lines) > 0 && f.lines[len(f.lines)-1] != "" {
		f.lines = append(f.lines, "")
	}
}

// append writes text separated from what precedes it by a single space,
// unless glued by position (line start, after an open paren or a glue
// symbol such as a dot).
func (f *statementFormatter) append(text string) {
	switch {
	case f.cur == "" || f.glue ||
		strings.HasSuffix(f.cur, " ") || strings.HasSuffix(f.cur, "("):
		f.cur += text
	default:
		f.cur += " " + text
	}
	f.glue = false
}

// appendTight writes text directly after the previous emission, removing
// any spacing in between. Used for , ; ) and the dot family.
func (f *statementFormatter) appendTight(text string) {
	f.cur = strings.TrimRight(f.cur, " ") + text
	f.glue = false
}

// word emits a Word token, normalizing case when it is a known keyword.
func (f *statementFormatter) word(text string) {
	if keywords[strings.ToUpper(text)] {
		text = f.opts.keyword(text)
	}
	f.append(text)
}

// ---------------------------------------------------------------------------
// Words
// ---------------------------------------------------------------------------

func (f *statementFormatter) wordToken(toks []token.Token, i int) int {
	t := toks[i]
	up := t.Upper()

	switch {
	case up == "END":
		i = f.end(toks, i)

	case up == "ELSE" || up == "ELSIF":
		f.elseBranch(t)

	case up == "DECLARE":
		f.breakLine(f.indent)
		f.word(t.Text)
		f.push(blockDeclare)
		f.procedural = true
		f.pendingBreak = true

	case up == "BEGIN":
		if top := f.topBlock(); top != nil && top.kind == blockDeclare {
			// DECLARE ... BEGIN is one merged unit, no extra nesting.
			top.kind = blockBegin
			f.breakLine(f.indent - 1)
			f.word(t.Text)
		} else {
			f.breakLine(f.indent)
			f.word(t.Text)
			f.push(blockBegin)
		}
		f.procedural = true
		f.pendingBreak = true

	case up == "LOOP":
		if f.forPending {
			f.word(t.Text)
			f.forPending = false
		} else {
			f.breakLine(f.indent)
			f.word(t.Text)
		}
		f.push(blockLoop)
		f.pendingBreak = true

	case up == "CASE":
		inClause := f.clause != "" || f.suppress > 0
		if !inClause {
			f.breakLine(f.indent)
		}
		f.word(t.Text)
		f.blocks = append(f.blocks, blockFrame{kind: blockCase, inClause: inClause})
		f.indent++

	case up == "IF":
		if ifExistsClause(toks, i) {
			f.word(t.Text) // DROP ... IF [NOT] EXISTS, not a block
		} else {
			f.breakLine(f.indent)
			f.word(t.Text)
			f.push(blockIf)
		}

	case up == "THEN":
		f.word(t.Text)
		switch {
		case f.topKind() == blockIf:
			f.pendingBreak = true
		case f.topKind() == blockCase && !f.topBlock().inClause:
			// WHEN sits one level inside CASE; its body goes one deeper.
			f.pendingBreak = true
			f.breakExtra = 1
		case f.exception:
			f.pendingBreak = true
			f.breakExtra = 1
		}

	case (up == "AS" || up == "IS") && f.routineSeen:
		f.word(t.Text)
		kind := blockDeclare
		if f.packageBody {
			kind = blockPackageBody
			f.packageBody = false
		}
		f.push(kind)
		f.routineSeen = false
		f.procedural = true
		f.pendingBreak = true

	case up == "AS" && f.createTable:
		// CREATE TABLE ... AS SELECT: no column list to columnize.
		f.createTable = false
		f.word(t.Text)

	case up == "EXCEPTION" && f.procedural:
		f.breakLine(f.indent - 1)
		f.word(t.Text)
		f.exception = true

	case up == "JOIN" && f.suppress == 0:
		if !f.joinMod {
			f.breakLine(f.indent + 1 + f.cursorExtra)
		}
		f.word(t.Text)
		f.joinMod = false

	case joinModifierWords[up] && f.suppress == 0 && f.clause == "FROM" && !nextSymbolIs(toks, i, "("):
		if !f.joinMod {
			f.breakLine(f.indent + 1 + f.cursorExtra)
			f.joinMod = true
		}
		f.word(t.Text)

	case up == "AND" && f.between:
		f.word(t.Text)
		f.between = false

	case up == "OR" && f.lastWord == "CREATE":
		f.word(t.Text)

	case conditionWords[up] && f.suppress == 0:
		f.conditionWord(t, up)

	case up == "UPDATE" && f.lastWord == "FOR":
		f.word(t.Text) // SELECT ... FOR UPDATE

	case clauseWords[up] && f.suppress == 0:
		f.clauseWord(t, up)

	case up == "FOR" || up == "WHILE":
		if up == "FOR" && f.openStmt {
			f.cursorFor = true
		} else {
			f.forPending = true
		}
		f.word(t.Text)

	case (up == "PROCEDURE" || up == "FUNCTION") && f.topKind() == blockPackageBody:
		if f.pendingBlank {
			f.blankLine()
			f.pendingBlank = false
		}
		f.breakLine(f.indent)
		f.word(t.Text)
		f.routineSeen = true

	case tableSuffixWords[up] && f.tableSuffix && f.suppress == 0:
		f.breakLine(f.indent)
		f.word(t.Text)

	default:
		f.word(t.Text)
	}

	f.noteWord(up)
	return i
}

func (f *statementFormatter) clauseWord(t token.Token, up string) {
	if up == "INTO" && f.clause == "INSERT" {
		f.word(t.Text) // INSERT INTO stays on one line
		return
	}
	if up == "SELECT" && f.cursorFor {
		f.cursorExtra = 1
		f.cursorFor = false
	}
	f.breakLine(f.indent + f.cursorExtra)
	f.word(t.Text)
	f.clause = up
}

func (f *statementFormatter) conditionWord(t token.Token, up string) {
	if up == "WHEN" {
		if top := f.topBlock(); top != nil && top.kind == blockCase {
			if top.branch && !top.inClause && !f.lastComment {
				f.blankLine()
			}
			top.branch = true
			f.breakLine(f.indent)
			f.word(t.Text)
			return
		}
		if f.exception {
			f.breakLine(f.indent)
			f.word(t.Text)
			return
		}
	}
	f.breakLine(f.indent + 1 + f.cursorExtra)
	f.word(t.Text)
}

func (f *statementFormatter) elseBranch(t token.Token) {
	top := f.topBlock()
	switch {
	case top != nil && top.kind == blockCase:
		if top.branch && !top.inClause && !f.lastComment {
			f.blankLine()
		}
		top.branch = true
		f.breakLine(f.indent)
		f.word(t.Text)
		if !top.inClause && t.Upper() == "ELSE" {
			f.pendingBreak = true
			f.breakExtra = 1
		}
	default:
		// Align with the enclosing IF, one level above its body.
		f.breakLine(f.indent - 1)
		f.word(t.Text)
		if t.Upper() == "ELSE" {
			f.pendingBreak = true
		}
	}
}

func (f *statementFormatter) end(toks []token.Token, i int) int {
	t := toks[i]
	if qi := nextCodeIndex(toks, i); qi >= 0 && toks[qi].Kind == token.Word {
		var kind blockKind
		switch toks[qi].Upper() {
		case "LOOP":
			kind = blockLoop
		case "IF":
			kind = blockIf
		case "CASE":
			kind = blockCase
		default:
			qi = -1
		}
		if qi >= 0 {
			f.popThrough(kind)
			f.breakLine(f.indent)
			f.word(t.Text)
			f.word(toks[qi].Text)
			return qi
		}
	}

	if top := f.topBlock(); top != nil && top.kind == blockCase {
		f.popOne()
		f.breakLine(f.indent)
		f.word(t.Text)
		return i
	}

	f.popThrough(blockBegin, blockDeclare, blockPackageBody)
	if f.topKind() == blockPackageBody {
		f.pendingBlank = true
	}
	f.exception = false
	f.breakLine(f.indent)
	f.word(t.Text)
	return i
}

// noteWord records lookbehind state after a word was emitted.
func (f *statementFormatter) noteWord(up string) {
	switch {
	case up == "CREATE":
		f.createSeen = true
	case up == "TABLE" && f.createSeen && f.lastWord != "BEFORE" && f.lastWord != "AFTER":
		f.createTable = true
	case routineWords[up] && f.createSeen:
		f.routineSeen = true
	case up == "BODY" && f.lastWord == "PACKAGE":
		f.packageBody = true
	case up == "OPEN" && f.procedural:
		f.openStmt = true
	case up == "BETWEEN":
		f.between = true
	}
	if !joinModifierWords[up] && up != "JOIN" {
		f.joinMod = false
	}
	f.lastWord = up
	f.lastComment = false
}

// ---------------------------------------------------------------------------
// Symbols
// ---------------------------------------------------------------------------

func (f *statementFormatter) symbol(toks []token.Token, i int) int {
	t := toks[i]
	switch t.Text {
	case "(":
		return f.openParen(toks, i)
	case ")":
		f.closeParen()
	case ",":
		f.comma()
	case ";":
		f.semicolon()
	case ".", "%", "@":
		f.appendTight(t.Text)
		f.glue = true
	case ":":
		f.append(t.Text)
		f.glue = true
	case "-", "+":
		f.append(t.Text)
		// Unary sign: glue to its operand after an operator or open paren.
		if pi := prevCodeIndex(toks, i); pi < 0 ||
			(toks[pi].Kind == token.Symbol && !toks[pi].IsSymbol(")")) {
			f.glue = true
		}
	default:
		f.append(t.Text)
	}
	f.lastWord = ""
	f.lastComment = false
	return i
}

func (f *statementFormatter) openParen(toks []token.Token, i int) int {
	if f.createTable && f.suppress == 0 && len(f.parens) == 0 {
		return f.columnList(toks, i)
	}

	if ni := nextCodeIndex(toks, i); ni >= 0 && toks[ni].Kind == token.Word && subqueryWords[toks[ni].Upper()] {
		f.appendOpenParen(toks, i)
		f.parens = append(f.parens, parenFrame{subquery: true, clause: f.clause})
		f.indent++
		f.clause = ""
		f.pendingBreak = true
		return i
	}

	f.appendOpenParen(toks, i)
	f.parens = append(f.parens, parenFrame{})
	f.suppress++
	return i
}

// appendOpenParen glues "(" to a function name and spaces it after a
// keyword (IN, VALUES, ...).
func (f *statementFormatter) appendOpenParen(toks []token.Token, i int) {
	if pi := prevCodeIndex(toks, i); pi >= 0 {
		p := toks[pi]
		if (p.Kind == token.Word && !keywords[p.Upper()]) || p.IsSymbol(")") || p.IsSymbol("%") {
			f.appendTight("(")
			return
		}
	}
	f.append("(")
}

func (f *statementFormatter) closeParen() {
	if len(f.parens) == 0 {
		// Stray closer: contain the damage so later clauses still format.
		f.suppress = 0
		f.appendTight(")")
		return
	}
	fr := f.parens[len(f.parens)-1]
	f.parens = f.parens[:len(f.parens)-1]
	if fr.subquery {
		f.dedent()
		f.breakLine(f.indent)
		f.append(")")
		f.clause = fr.clause
		return
	}
	if f.suppress > 0 {
		f.suppress--
	}
	f.appendTight(")")
}

func (f *statementFormatter) comma() {
	f.appendTight(",")
	if f.suppress > 0 {
		return
	}
	f.breakLine(f.indent + 1 + f.cursorExtra)
}

func (f *statementFormatter) semicolon() {
	f.appendTight(";")
	f.clause = ""
	f.cursorExtra = 0
	f.cursorFor = false
	f.openStmt = false
	f.between = false
	f.forPending = false
	f.joinMod = false
	if f.indent == 0 {
		// Statement boundary: reset paren bookkeeping so one malformed
		// construct cannot poison everything after it.
		f.suppress = 0
		f.parens = f.parens[:0]
		f.createSeen = false
		f.createTable = false
		f.tableSuffix = false
		f.routineSeen = false
		f.packageBody = false
		f.blankLine()
	}
	f.pendingBreak = true
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

func (f *statementFormatter) comment(toks []token.Token, i int) {
	t := toks[i]
	body := t.Body()
	if t.BlankBefore() || f.pendingBreak {
		f.breakLine(f.indent + f.breakExtra)
		f.pendingBreak = false
	}
	f.append(body)
	if strings.HasPrefix(body, "--") {
		f.pendingBreak = true
	} else if ni := nextCodeIndex(toks, i); ni >= 0 &&
		(toks[ni].Kind == token.Word || toks[ni].Kind == token.Literal) {
		// Code never continues on the same line after a block comment.
		f.pendingBreak = true
	}
	f.lastComment = true
}

// ---------------------------------------------------------------------------
// Stack helpers
// ---------------------------------------------------------------------------

func (f *statementFormatter) push(k blockKind) {
	f.blocks = append(f.blocks, blockFrame{kind: k})
	f.indent++
}

func (f *statementFormatter) popOne() {
	if len(f.blocks) > 0 {
		f.blocks = f.blocks[:len(f.blocks)-1]
	}
	f.dedent()
}

// popThrough pops frames until one of the wanted kinds has been closed.
// Each pop lowers the indent; an empty stack lowers it once.
func (f *statementFormatter) popThrough(kinds ...blockKind) {
	if len(f.blocks) == 0 {
		f.dedent()
		return
	}
	for len(f.blocks) > 0 {
		fr := f.blocks[len(f.blocks)-1]
		f.blocks = f.blocks[:len(f.blocks)-1]
		f.dedent()
		for _, k := range kinds {
			if fr.kind == k {
				return
			}
		}
	}
}

func (f *statementFormatter) topBlock() *blockFrame {
	if len(f.blocks) == 0 {
		return nil
	}
	return &f.blocks[len(f.blocks)-1]
}

func (f *statementFormatter) topKind() blockKind {
	if top := f.topBlock(); top != nil {
		return top.kind
	}
	return blockKind(-1)
}

func (f *statementFormatter) dedent() {
	if f.indent > 0 {
		f.indent--
	}
}

// ---------------------------------------------------------------------------
// Token lookahead / lookbehind
// ---------------------------------------------------------------------------

func nextCodeIndex(toks []token.Token, i int) int {
	for j := i + 1; j < len(toks); j++ {
		if toks[j].Kind != token.Comment {
			return j
		}
	}
	return -1
}

func prevCodeIndex(toks []token.Token, i int) int {
	for j := i - 1; j >= 0; j-- {
		if toks[j].Kind != token.Comment {
			return j
		}
	}
	return -1
}

func nextWordIs(toks []token.Token, i int, word string) bool {
	j := nextCodeIndex(toks, i)
	return j >= 0 && toks[j].Is(word)
}

// ifExistsClause reports whether the words after an IF spell [NOT]
// EXISTS, making it part of a DROP/CREATE existence clause rather than
// the opener of an IF block. IF NOT <condition> THEN must not match.
func ifExistsClause(toks []token.Token, i int) bool {
	j := nextCodeIndex(toks, i)
	if j >= 0 && toks[j].Is("NOT") {
		j = nextCodeIndex(toks, j)
	}
	return j >= 0 && toks[j].Is("EXISTS")
}

func nextSymbolIs(toks []token.Token, i int, sym string) bool {
	j := nextCodeIndex(toks, i)
	return j >= 0 && toks[j].IsSymbol(sym)
}

func lastCodeToken(toks []token.Token) *token.Token {
	for j := len(toks) - 1; j >= 0; j-- {
		if toks[j].Kind != token.Comment {
			return &toks[j]
		}
	}
	return nil
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
