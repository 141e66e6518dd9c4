package format

import (
	"fmt"
	"strings"

	"github.com/pseudomuto/sqlformat/pkg/token"
)

// columnList renders the parenthesized body of a CREATE TABLE statement
// as an aligned block: one entry per line, with every data type starting
// at a common offset and every constraint tail at a second one.
// toks[i] is the opening parenthesis; the matching closer is consumed and
// its index returned.
func (f *statementFormatter) columnList(toks []token.Token, i int) int {
	end := matchingParen(toks, i)
	if end < 0 {
		// Unterminated list: give up on alignment, format as plain parens.
		f.appendOpenParen(toks, i)
		f.parens = append(f.parens, parenFrame{})
		f.suppress++
		return i
	}
	f.createTable = false
	f.tableSuffix = true

	f.append("(")
	entries := splitTopLevel(toks[i+1 : end])
	rendered := make([]columnEntry, 0, len(entries))
	for _, entry := range entries {
		rendered = append(rendered, f.renderColumnEntry(entry))
	}

	var nameWidth, typeWidth int
	if f.opts.AlignColumns {
		for _, e := range rendered {
			if !e.aligned {
				continue
			}
			nameWidth = max(nameWidth, len(e.name))
			typeWidth = max(typeWidth, len(e.dataType))
		}
	}

	for idx, e := range rendered {
		f.breakLine(f.indent + 1)
		text := e.raw
		if e.aligned {
			text = strings.TrimRight(
				fmt.Sprintf("%-*s %-*s %s", nameWidth, e.name, typeWidth, e.dataType, e.constraint), " ")
		}
		f.cur += text
		if idx < len(rendered)-1 {
			f.appendTight(",")
		}
	}
	f.breakLine(f.indent)
	f.append(")")
	return end
}

type columnEntry struct {
	aligned    bool
	name       string
	dataType   string
	constraint string
	raw        string // constraint-only entries, emitted verbatim
}

// renderColumnEntry decomposes one comma-separated entry into name, data
// type, and trailing constraint text. Entries that open with a table
// constraint keyword are passed through without decomposition.
func (f *statementFormatter) renderColumnEntry(entry []token.Token) columnEntry {
	code := withoutComments(entry)
	if len(code) == 0 {
		return columnEntry{raw: renderSpan(f.opts, entry)}
	}
	if code[0].Kind == token.Word && constraintOnlyWords[code[0].Upper()] {
		return columnEntry{raw: renderSpan(f.opts, code)}
	}

	typeEnd := len(code)
	for j := 1; j < len(code); j++ {
		if code[j].Kind == token.Word && constraintIntroWords[code[j].Upper()] {
			typeEnd = j
			break
		}
	}
	return columnEntry{
		aligned:    true,
		name:       code[0].Text,
		dataType:   renderSpan(f.opts, code[1:typeEnd]),
		constraint: renderSpan(f.opts, code[typeEnd:]),
	}
}

// renderSpan renders a token span compactly on one line: words separated
// by single spaces, parenthesized type arguments glued to their type.
func renderSpan(opts Options, toks []token.Token) string {
	var b strings.Builder
	glue := false
	for _, t := range toks {
		text := t.Text
		switch t.Kind {
		case token.Word:
			if keywords[t.Upper()] {
				text = opts.keyword(text)
			}
		case token.Comment:
			text = t.Body()
		}
		if b.Len() > 0 && !glue && !t.IsSymbol(")") && !t.IsSymbol(",") &&
			!t.IsSymbol(".") && !t.IsSymbol("%") && !t.IsSymbol("(") {
			b.WriteByte(' ')
		}
		b.WriteString(text)
		glue = t.IsSymbol(".") || t.IsSymbol("%") || t.IsSymbol("(")
	}
	return b.String()
}

func withoutComments(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind != token.Comment {
			out = append(out, t)
		}
	}
	return out
}

// matchingParen returns the index of the parenthesis closing toks[i], or
// -1 when the list never closes.
func matchingParen(toks []token.Token, i int) int {
	depth := 0
	for j := i; j < len(toks); j++ {
		switch {
		case toks[j].IsSymbol("("):
			depth++
		case toks[j].IsSymbol(")"):
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// splitTopLevel splits a span on commas that sit outside any nested
// parentheses.
func splitTopLevel(toks []token.Token) [][]token.Token {
	var entries [][]token.Token
	var cur []token.Token
	depth := 0
	for _, t := range toks {
		switch {
		case t.IsSymbol("("):
			depth++
		case t.IsSymbol(")"):
			depth--
		case t.IsSymbol(",") && depth == 0:
			entries = append(entries, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 || len(entries) > 0 {
		entries = append(entries, cur)
	}
	return entries
}
