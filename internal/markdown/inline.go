package markdown

import "strings"

// Inline formats a single block's text into fragments, left to right.
// Code spans and links are found first; bold is only applied to the text
// between them. When a link and a code span overlap the code span wins.
// Unterminated syntax stays as plain text.
func Inline(text string) []Fragment {
	var out []Fragment
	rest := text
	for rest != "" {
		cs, ce, codeOK := findCodeSpan(rest)
		ls, le, label, url, linkOK := findLink(rest)

		switch {
		case linkOK && (!codeOK || le <= cs):
			out = appendBold(out, rest[:ls])
			out = append(out, Fragment{Kind: Link, Text: label, URL: url})
			rest = rest[le:]
		case codeOK:
			out = appendBold(out, rest[:cs])
			out = append(out, Fragment{Kind: Code, Text: rest[cs+1 : ce-1]})
			rest = rest[ce:]
		default:
			out = appendBold(out, rest)
			rest = ""
		}
	}
	return out
}

// findCodeSpan locates the first `...` with non-empty content. end is the
// offset just past the closing backtick.
func findCodeSpan(s string) (start, end int, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '`' {
			continue
		}
		j := strings.IndexByte(s[i+1:], '`')
		if j < 0 {
			return 0, 0, false
		}
		if j > 0 {
			return i, i + 1 + j + 1, true
		}
	}
	return 0, 0, false
}

// findLink locates the first [label](url) with non-empty label and url.
func findLink(s string) (start, end int, label, url string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '[' {
			continue
		}
		rb := strings.IndexByte(s[i+1:], ']')
		if rb <= 0 {
			continue
		}
		lb := i + 1 + rb
		if lb+1 >= len(s) || s[lb+1] != '(' {
			continue
		}
		paren := strings.IndexByte(s[lb+2:], ')')
		if paren <= 0 {
			continue
		}
		rp := lb + 2 + paren
		return i, rp + 1, s[i+1 : lb], s[lb+2 : rp], true
	}
	return 0, 0, "", "", false
}

// appendBold splits s on **bold** spans and appends the pieces in order.
func appendBold(out []Fragment, s string) []Fragment {
	last := 0
	for i := 0; i+1 < len(s); {
		if s[i] == '*' && s[i+1] == '*' {
			j := i + 2
			for j < len(s) && s[j] != '*' {
				j++
			}
			if j > i+2 && j+1 < len(s) && s[j+1] == '*' {
				if i > last {
					out = append(out, Fragment{Kind: Plain, Text: s[last:i]})
				}
				out = append(out, Fragment{Kind: Bold, Text: s[i+2 : j]})
				i = j + 2
				last = i
				continue
			}
		}
		i++
	}
	if last < len(s) {
		out = append(out, Fragment{Kind: Plain, Text: s[last:]})
	}
	return out
}
