package token

// Scanner tokenizes source text one token at a time. All positions are
// byte offsets into the original string.
type Scanner struct {
	src string
	pos int
}

// NewScanner returns a Scanner reading from src.
func NewScanner(src string) *Scanner { return &Scanner{src: src} }

// Pos returns the byte offset of the next character to be read.
func (s *Scanner) Pos() int { return s.pos }

// Tokenize scans the whole input and returns every token in order.
func Tokenize(src string) []Token {
	s := NewScanner(src)
	var toks []Token
	for {
		t, ok := s.Scan()
		if !ok {
			return toks
		}
		toks = append(toks, t)
	}
}

// Scan returns the next token. The second return value is false once the
// input is exhausted.
//
// The case ordering matters: an active quoted or commented region always
// wins over the operator rules, the custom-delimited string prefixes win
// over plain identifiers, block labels win over the < operator, and the
// fixed two-character operators are matched greedily before falling back
// to single-character symbols.
func (s *Scanner) Scan() (Token, bool) {
	lead := s.whitespace()
	if s.pos >= len(s.src) {
		return Token{}, false
	}
	start := s.pos
	ch := s.src[s.pos]

	var tok Token
	switch {
	case ch == '-' && s.peek(1) == '-':
		tok = s.lineComment(start)

	case ch == '/' && s.peek(1) == '*':
		tok = s.blockComment(start)

	// q'<delim>...<close>' custom-delimited string.
	case (ch == 'q' || ch == 'Q') && s.peek(1) == '\'':
		tok = s.customString(start, 2)

	// nq'<delim>...<close>' national custom-delimited string.
	case (ch == 'n' || ch == 'N') && (s.peek(1) == 'q' || s.peek(1) == 'Q') && s.peek(2) == '\'':
		tok = s.customString(start, 3)

	// n'...' national string literal; the prefix letter is part of the token.
	case (ch == 'n' || ch == 'N') && s.peek(1) == '\'':
		s.pos++
		tok = s.quoted(start, '\'')

	case ch == '\'':
		tok = s.quoted(start, '\'')

	case ch == '"':
		tok = s.quoted(start, '"')

	// <<label>> block label, emitted as a single word.
	case ch == '<' && s.peek(1) == '<':
		tok = s.label(start)

	case isWordChar(ch):
		tok = s.word(start)

	default:
		tok = s.symbol(start)
	}

	tok.Lead = lead
	return tok, true
}

func (s *Scanner) peek(offset int) byte {
	if i := s.pos + offset; i < len(s.src) {
		return s.src[i]
	}
	return 0
}

func (s *Scanner) whitespace() string {
	start := s.pos
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			s.pos++
		default:
			return s.src[start:s.pos]
		}
	}
	return s.src[start:s.pos]
}

// lineComment consumes "--" through the end of the line, trailing newline
// included when present.
func (s *Scanner) lineComment(start int) Token {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
	if s.pos < len(s.src) {
		s.pos++ // include the newline
	}
	return Token{Kind: Comment, Text: s.src[start:s.pos]}
}

// blockComment consumes /* ... */ with nesting. A newline directly after
// the closing */ is absorbed into the token. Unterminated comments run to
// end of input.
func (s *Scanner) blockComment(start int) Token {
	s.pos += 2
	for depth := 1; s.pos < len(s.src) && depth > 0; {
		switch {
		case s.src[s.pos] == '/' && s.peek(1) == '*':
			depth++
			s.pos += 2
		case s.src[s.pos] == '*' && s.peek(1) == '/':
			depth--
			s.pos += 2
		default:
			s.pos++
		}
	}
	if s.pos < len(s.src) && s.src[s.pos] == '\n' {
		s.pos++
	}
	return Token{Kind: Comment, Text: s.src[start:s.pos]}
}

// quoted consumes a literal delimited by quote, where a doubled quote is
// an escape rather than a terminator. start may precede the opening quote
// when the literal carries a prefix letter (n'...').
func (s *Scanner) quoted(start int, quote byte) Token {
	s.pos++ // opening quote
	for s.pos < len(s.src) {
		if s.src[s.pos] != quote {
			s.pos++
			continue
		}
		s.pos++
		if s.pos < len(s.src) && s.src[s.pos] == quote {
			s.pos++ // doubled quote: escaped, keep going
			continue
		}
		break
	}
	return Token{Kind: Literal, Text: s.src[start:s.pos]}
}

// customString consumes a q'...' or nq'...' literal. The character after
// the opening quote selects the closing delimiter: brackets pair up,
// anything else closes with itself. The literal ends at <closer><'>.
func (s *Scanner) customString(start, prefix int) Token {
	s.pos += prefix
	if s.pos >= len(s.src) {
		return Token{Kind: Literal, Text: s.src[start:s.pos]}
	}
	closer := closingDelimiter(s.src[s.pos])
	s.pos++
	for s.pos < len(s.src) {
		if s.src[s.pos] == closer && s.peek(1) == '\'' {
			s.pos += 2
			break
		}
		s.pos++
	}
	return Token{Kind: Literal, Text: s.src[start:s.pos]}
}

func closingDelimiter(open byte) byte {
	switch open {
	case '[':
		return ']'
	case '{':
		return '}'
	case '(':
		return ')'
	case '<':
		return '>'
	}
	return open
}

// label consumes <<name>> including both angle-bracket pairs.
func (s *Scanner) label(start int) Token {
	s.pos += 2
	for s.pos < len(s.src) {
		if s.src[s.pos] == '>' && s.peek(1) == '>' {
			s.pos += 2
			break
		}
		s.pos++
	}
	return Token{Kind: Word, Text: s.src[start:s.pos]}
}

func (s *Scanner) word(start int) Token {
	for s.pos < len(s.src) && isWordChar(s.src[s.pos]) {
		s.pos++
	}
	return Token{Kind: Word, Text: s.src[start:s.pos]}
}

// twoCharSymbols are the fixed operator pairs recognized greedily before
// single-character punctuation.
var twoCharSymbols = [...]string{"<=", ">=", "<>", "!=", "||", ":=", "=>"}

func (s *Scanner) symbol(start int) Token {
	if s.pos+1 < len(s.src) {
		pair := s.src[s.pos : s.pos+2]
		for _, op := range twoCharSymbols {
			if pair == op {
				s.pos += 2
				return Token{Kind: Symbol, Text: pair}
			}
		}
	}
	s.pos++
	return Token{Kind: Symbol, Text: s.src[start:s.pos]}
}

func isWordChar(ch byte) bool {
	return ch == '_' || ch == '$' || ch == '#' ||
		(ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z')
}
