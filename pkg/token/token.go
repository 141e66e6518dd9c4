// Package token turns raw SQL and PL/SQL text into an ordered sequence of
// typed tokens.
//
// The scanner is total: it never fails, no matter how malformed the input
// is. Unterminated strings, comments, and block labels are flushed as a
// best-effort final token at end of input instead of being rejected. This
// makes the package safe to run against text that is still being typed.
//
// Tokenization is lossless. Every token carries the whitespace that
// preceded it in Lead, so concatenating Lead+Text over the whole sequence
// reproduces the original input byte for byte (see Join). Whether a line
// break separated a comment from the code before it is answered from
// Lead (see BlankBefore), never by moving bytes around.
//
// Example usage:
//
//	for _, tok := range token.Tokenize("select * from dual") {
//		fmt.Println(tok.Kind, tok.Text)
//	}
package token

import "strings"

// Kind is the lexical category of a token.
type Kind int

const (
	// Word is an identifier or keyword, case preserved as typed. Whether a
	// Word is a keyword is decided by the consumer via set membership, not
	// by the scanner. PL/SQL block labels (<<name>>) are a single Word
	// including the angle brackets.
	Word Kind = iota

	// Literal is a string literal exactly as it appeared, delimiters
	// included: '...', "..." quoted identifiers, and the custom-delimited
	// q'...' / nq'...' forms. Doubled-quote escapes inside are untouched.
	Literal

	// Comment is a line comment (-- through end of line, newline included
	// when present) or a block comment (/* ... */, a directly following
	// newline absorbed).
	Comment

	// Symbol is punctuation: a single character or one of the fixed
	// two-character operators <= >= <> != || := =>.
	Symbol
)

// Token is one lexical token of a statement.
type Token struct {
	Kind Kind
	Text string
	// Lead is the whitespace that separated this token from the previous
	// one (or from the start of input). It exists so that the token
	// sequence remains a lossless representation of the source.
	Lead string
}

// Is reports whether the token is a Word matching s case-insensitively.
func (t Token) Is(s string) bool {
	return t.Kind == Word && strings.EqualFold(t.Text, s)
}

// IsSymbol reports whether the token is the symbol s.
func (t Token) IsSymbol(s string) bool {
	return t.Kind == Symbol && t.Text == s
}

// Upper returns the token text in upper case. Only meaningful for words.
func (t Token) Upper() string {
	return strings.ToUpper(t.Text)
}

// BlankBefore reports whether a comment token had a line break in front
// of it, i.e. it did not share its line with the preceding code.
func (t Token) BlankBefore() bool {
	return t.Kind == Comment && strings.ContainsRune(t.Lead, '\n')
}

// Body returns the comment text without its trailing newline. For
// non-comments it returns Text unchanged.
func (t Token) Body() string {
	if t.Kind != Comment {
		return t.Text
	}
	return strings.TrimSuffix(t.Text, "\n")
}

// Join concatenates Lead+Text over toks, reproducing the scanned text
// byte for byte.
func Join(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Lead)
		b.WriteString(t.Text)
	}
	return b.String()
}
