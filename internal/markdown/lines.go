package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const fence = "```"

func trimLeft(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

func isFence(line string) bool {
	return strings.HasPrefix(trimLeft(line), fence)
}

func fenceLang(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "`"))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isRule matches three or more hyphens and nothing else.
func isRule(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= 3 && strings.Trim(t, "-") == ""
}

// skipSpace returns the number of bytes of the leading whitespace run.
func skipSpace(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	return n
}

// parseHeading matches 1-4 '#' at column 0, whitespace, then text.
func parseHeading(line string) (level int, text string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level < 1 || level > 4 {
		return 0, "", false
	}
	rest := line[level:]
	ws := skipSpace(rest)
	if ws == 0 || ws == len(rest) {
		return 0, "", false
	}
	return level, rest[ws:], true
}

// isTableSeparator matches an optional leading pipe followed by a run of
// hyphens, colons, whitespace and pipes that reaches at least one pipe.
func isTableSeparator(line string) bool {
	for i, r := range line {
		switch {
		case r == '|':
			if i > 0 {
				return true
			}
		case r == '-' || r == ':' || unicode.IsSpace(r):
		default:
			return false
		}
	}
	return false
}

// splitRow splits a table row on pipes and drops the empty cells produced
// by optional outer pipes.
func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// bulletItem matches optional whitespace, '-' or '*', then whitespace.
func bulletItem(line string) (string, bool) {
	rest := line[skipSpace(line):]
	if rest == "" || (rest[0] != '-' && rest[0] != '*') {
		return "", false
	}
	rest = rest[1:]
	ws := skipSpace(rest)
	if ws == 0 {
		return "", false
	}
	return rest[ws:], true
}

// orderedItem matches digits, a period, then whitespace.
func orderedItem(line string) (string, bool) {
	n := 0
	for n < len(line) && '0' <= line[n] && line[n] <= '9' {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != '.' {
		return "", false
	}
	rest := line[n+1:]
	ws := skipSpace(rest)
	if ws == 0 {
		return "", false
	}
	return rest[ws:], true
}

// quoteText strips the leading '>' and at most one whitespace character.
func quoteText(line string) string {
	rest := line[1:]
	if r, size := utf8.DecodeRuneInString(rest); size > 0 && unicode.IsSpace(r) {
		rest = rest[size:]
	}
	return rest
}
