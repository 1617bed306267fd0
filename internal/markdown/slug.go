package markdown

import "strings"

// Slug derives the anchor id of a heading. Headings and the ToC both go
// through here; if they ever disagree, in-page links stop resolving.
//
//	"Part 1: MCP"     -> "part-1-mcp"
//	"Use MCP When..." -> "use-mcp-when"
func Slug(text string) string {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lower))
	dash := false
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
