package format

import (
	"strings"

	"github.com/pseudomuto/sqlformat/pkg/token"
)

// reconcileDepth runs a second pass over formatted procedural text,
// recomputing the block depth of every line from the block keywords alone
// and repairing lines the streaming pass under-indented. Lines opened by a
// block boundary keyword are forced to their structural depth; all other
// lines only ever gain indentation. When the token stream disagrees with
// the line count (which can happen on malformed input) the text is
// returned untouched.
func reconcileDepth(text string, opts Options) string {
	lines := strings.Split(text, "\n")
	depths, ok := structuralDepths(text, len(lines))
	if !ok {
		return text
	}
	for i, line := range lines {
		body := strings.TrimLeft(line, " \t")
		if body == "" || !depths[i].set {
			continue
		}
		pad := opts.pad(depths[i].depth)
		if depths[i].exact || len(pad) > len(line)-len(body) {
			lines[i] = pad + body
		}
	}
	return strings.Join(lines, "\n")
}

type lineDepth struct {
	depth int
	exact bool
	set   bool
}

// structuralDepths walks the token stream of formatted text and records,
// for the first token of each line, the depth that line should sit at.
func structuralDepths(text string, lineCount int) ([]lineDepth, bool) {
	toks := token.Tokenize(text)
	depths := make([]lineDepth, lineCount)

	var stack []blockKind
	depth := 0
	line := 0
	exception := false
	intoOpen := false
	lastWord := ""
	createSeen := false
	routineSeen := false
	packageBody := false

	top := func() blockKind {
		if len(stack) == 0 {
			return blockKind(-1)
		}
		return stack[len(stack)-1]
	}
	push := func(k blockKind) {
		stack = append(stack, k)
		depth++
	}
	pop := func() {
		if len(stack) > 0 {
			stack = stack[:len(stack)-1]
		}
		if depth > 0 {
			depth--
		}
	}
	popThrough := func(wanted ...blockKind) {
		for len(stack) > 0 {
			k := top()
			pop()
			for _, w := range wanted {
				if k == w {
					return
				}
			}
		}
		if depth > 0 {
			depth--
		}
	}
	record := func(d int, exact bool) {
		if line < lineCount && !depths[line].set {
			depths[line] = lineDepth{depth: d, exact: exact, set: true}
		}
	}

	for i, t := range toks {
		line += strings.Count(t.Lead, "\n")
		if line >= lineCount {
			return nil, false
		}

		switch {
		case t.Kind == token.Comment:
			d := depth
			if intoOpen {
				d++
			}
			record(d, false)
		case t.Kind != token.Word:
			record(depth, false)
		default:
			up := t.Upper()
			switch up {
			case "DECLARE":
				record(depth, true)
				push(blockDeclare)
			case "BEGIN":
				if top() == blockDeclare {
					record(depth-1, true)
					stack[len(stack)-1] = blockBegin
				} else {
					record(depth, true)
					push(blockBegin)
				}
			case "IF":
				record(depth, true)
				if lastWord != "END" && !ifExistsClause(toks, i) {
					push(blockIf)
				}
			case "LOOP":
				record(depth, true)
				if lastWord != "END" {
					push(blockLoop)
				}
			case "CASE":
				record(depth, true)
				if lastWord != "END" {
					push(blockCase)
				}
			case "FOR", "WHILE":
				record(depth, true)
			case "END":
				qualified := nextWordIs(toks, i, "LOOP") || nextWordIs(toks, i, "IF") ||
					nextWordIs(toks, i, "CASE")
				switch {
				case qualified && nextWordIs(toks, i, "LOOP"):
					popThrough(blockLoop)
				case qualified && nextWordIs(toks, i, "IF"):
					popThrough(blockIf)
				case qualified && nextWordIs(toks, i, "CASE"):
					popThrough(blockCase)
				case top() == blockCase:
					pop()
				default:
					popThrough(blockBegin, blockDeclare, blockPackageBody)
					exception = false
				}
				record(depth, true)
			case "EXCEPTION":
				record(depth-1, true)
				exception = true
			case "WHEN":
				switch {
				case top() == blockCase:
					record(depth, true)
				case exception:
					record(depth, true)
				default:
					record(depth+1, false)
				}
			case "ELSE", "ELSIF":
				if top() == blockCase {
					record(depth, true)
				} else {
					record(depth-1, true)
				}
			case "AS", "IS":
				record(depth, false)
				if routineSeen {
					if packageBody {
						push(blockPackageBody)
						packageBody = false
					} else {
						push(blockDeclare)
					}
					routineSeen = false
				}
			case "INTO":
				record(depth, false)
				intoOpen = true
			default:
				record(depth, false)
				if clauseWords[up] {
					intoOpen = false
				}
			}

			switch {
			case up == "CREATE":
				createSeen = true
			case routineWords[up] && createSeen:
				routineSeen = true
			case up == "BODY" && lastWord == "PACKAGE":
				packageBody = true
			}
			lastWord = up
		}

		if t.IsSymbol(";") {
			intoOpen = false
		}
		line += strings.Count(t.Text, "\n")
	}
	if line != lineCount-1 {
		return nil, false
	}
	return depths, true
}
