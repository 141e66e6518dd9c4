package script

import (
	"strings"

	"github.com/pseudomuto/sqlformat/pkg/token"
)

var (
	commandVerbs = map[string]bool{
		"SET": true, "DEFINE": true, "UNDEFINE": true, "SPOOL": true,
		"PRINT": true, "PROMPT": true, "SHOW": true, "EXECUTE": true,
		"EXEC": true, "WHENEVER": true,
	}

	routineVerbs = map[string]bool{
		"PACKAGE": true, "PROCEDURE": true, "FUNCTION": true,
		"TYPE": true, "TRIGGER": true,
	}

	createModifiers = map[string]bool{
		"OR": true, "REPLACE": true, "EDITIONABLE": true, "NONEDITIONABLE": true,
	}
)

// Split breaks script source into items. Tool command lines become
// Command items; everything else is grouped into statements. Plain SQL
// ends at the first semicolon, procedural blocks (DECLARE, BEGIN, CREATE
// routine) only at a slash alone on its line. Splitting never fails:
// unterminated trailing content becomes a final statement item.
func Split(src string) []Item {
	toks := token.Tokenize(src)
	start := make([]int, len(toks))
	end := make([]int, len(toks))
	off := 0
	for i, t := range toks {
		start[i] = off + len(t.Lead)
		off += len(t.Lead) + len(t.Text)
		end[i] = off
	}

	var items []Item
	segStart := 0
	i := 0
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Kind == token.Comment:
			i++

		case t.IsSymbol("/") && standalone(toks, i):
			// Slash terminating the statement above it. When there is no
			// statement to attach to (a leading or repeated slash), the
			// slash becomes its own item so none are ever dropped.
			if n := len(items); n > 0 && items[n-1].Command == nil && !items[n-1].Terminator {
				items[n-1].Terminator = true
			} else {
				items = append(items, Item{Terminator: true})
			}
			segStart = end[i]
			i++

		case t.Kind == token.Word && commandVerbs[t.Upper()]:
			if lead := strings.TrimSpace(src[segStart:start[i]]); lead != "" {
				items = append(items, Item{Statement: lead})
			}
			j := i
			for j+1 < len(toks) && !startsLine(toks, j+1) {
				j++
			}
			line := src[start[i]:end[j]]
			if cmd, err := ParseCommand(line); err == nil {
				items = append(items, Item{Command: cmd})
			} else {
				items = append(items, Item{Statement: strings.TrimSpace(line)})
			}
			segStart = end[j]
			i = j + 1

		case procedural(toks, i):
			j, found := nextSlash(toks, i)
			if found {
				items = append(items, Item{
					Statement:  strings.TrimSpace(src[segStart:start[j]]),
					Terminator: true,
				})
				segStart = end[j]
				i = j + 1
			} else {
				items = append(items, Item{Statement: strings.TrimSpace(src[segStart:])})
				segStart = len(src)
				i = len(toks)
			}

		default:
			j := i
			for j < len(toks) && !toks[j].IsSymbol(";") {
				j++
			}
			if j < len(toks) {
				items = append(items, Item{Statement: strings.TrimSpace(src[segStart:end[j]])})
				segStart = end[j]
				i = j + 1
			} else {
				items = append(items, Item{Statement: strings.TrimSpace(src[segStart:])})
				segStart = len(src)
				i = len(toks)
			}
		}
	}
	if rest := strings.TrimSpace(src[min(segStart, len(src)):]); rest != "" {
		items = append(items, Item{Statement: rest})
	}

	return items
}

// procedural reports whether the statement opening at toks[i] is a PL/SQL
// block, which must run to a slash terminator rather than a semicolon.
func procedural(toks []token.Token, i int) bool {
	switch toks[i].Upper() {
	case "DECLARE", "BEGIN":
		return true
	case "CREATE":
		for j := i + 1; j < len(toks); j++ {
			if toks[j].Kind != token.Word {
				continue
			}
			up := toks[j].Upper()
			if createModifiers[up] {
				continue
			}
			return routineVerbs[up]
		}
	}

	return false
}

func nextSlash(toks []token.Token, i int) (int, bool) {
	for j := i + 1; j < len(toks); j++ {
		if toks[j].IsSymbol("/") && standalone(toks, j) {
			return j, true
		}
	}

	return 0, false
}

func standalone(toks []token.Token, i int) bool {
	if !startsLine(toks, i) {
		return false
	}

	return i+1 >= len(toks) || startsLine(toks, i+1)
}

// startsLine reports whether toks[i] is the first thing on its line. A
// line comment swallows its trailing newline, so the token after one
// starts a line even with an empty gap.
func startsLine(toks []token.Token, i int) bool {
	if i == 0 {
		return true
	}
	if strings.ContainsRune(toks[i].Lead, '\n') {
		return true
	}

	return strings.HasSuffix(toks[i-1].Text, "\n")
}
