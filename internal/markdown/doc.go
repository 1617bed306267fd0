// Package markdown implements the small markdown dialect used for club
// blog posts: ATX headings (1-4), backtick fences, pipe tables, flat
// lists, flattened blockquotes, horizontal rules, and inline code, links
// and bold. It is a single line-oriented pass with no nesting and no
// error paths; it is not CommonMark.
package markdown
