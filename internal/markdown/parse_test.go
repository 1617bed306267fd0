package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlainLinesBecomeParagraphs(t *testing.T) {
	src := "first line\nsecond line\n\n   \nthird line"
	blocks := Parse(src)
	require.Len(t, blocks, 3)
	assert.Equal(t, &Paragraph{Text: "first line"}, blocks[0])
	assert.Equal(t, &Paragraph{Text: "second line"}, blocks[1])
	assert.Equal(t, &Paragraph{Text: "third line"}, blocks[2])
}

func TestParseEmpty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n  \n"))
}

func TestParseHeadings(t *testing.T) {
	tests := []struct {
		line string
		want Block
	}{
		{"# Title", &Heading{Level: 1, Text: "Title", ID: "title"}},
		{"## Part 1: MCP", &Heading{Level: 2, Text: "Part 1: MCP", ID: "part-1-mcp"}},
		{"###\tTabbed", &Heading{Level: 3, Text: "Tabbed", ID: "tabbed"}},
		{"#### Deep", &Heading{Level: 4, Text: "Deep", ID: "deep"}},
		{"##### Too deep", &Paragraph{Text: "##### Too deep"}},
		{"#NoSpace", &Paragraph{Text: "#NoSpace"}},
		{" # indented", &Paragraph{Text: " # indented"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			blocks := Parse(tt.line)
			require.Len(t, blocks, 1)
			assert.Equal(t, tt.want, blocks[0])
		})
	}
}

func TestParseFencedCode(t *testing.T) {
	src := strings.Join([]string{
		"before",
		"  ```go ",
		"x := **not bold**",
		"",
		"# not a heading",
		"```",
		"after",
	}, "\n")
	blocks := Parse(src)
	require.Len(t, blocks, 3)

	cb, ok := blocks[1].(*CodeBlock)
	require.True(t, ok)
	assert.Equal(t, "go", cb.Lang)
	assert.Equal(t, []string{"x := **not bold**", "", "# not a heading"}, cb.Lines)
	assert.False(t, cb.Unterminated)
	assert.Equal(t, &Paragraph{Text: "after"}, blocks[2])
}

func TestParseFenceWithoutLang(t *testing.T) {
	blocks := Parse("```\ncode\n```")
	require.Len(t, blocks, 1)
	assert.Equal(t, &CodeBlock{Lines: []string{"code"}}, blocks[0])
}

func TestParseUnterminatedFenceAbsorbsRest(t *testing.T) {
	src := "intro\n```python\nprint(1)\n## heading\n- item"
	blocks := Parse(src)
	require.Len(t, blocks, 2)

	cb := blocks[1].(*CodeBlock)
	assert.True(t, cb.Unterminated)
	assert.Equal(t, "python", cb.Lang)
	assert.Equal(t, []string{"print(1)", "## heading", "- item"}, cb.Lines)
}

func TestParseHorizontalRule(t *testing.T) {
	blocks := Parse("---\n  -----  \n--\n- - -")
	require.Len(t, blocks, 4)
	assert.Equal(t, &HorizontalRule{}, blocks[0])
	assert.Equal(t, &HorizontalRule{}, blocks[1])
	assert.Equal(t, &Paragraph{Text: "--"}, blocks[2])
	assert.Equal(t, &UnorderedList{Items: []string{"- -"}}, blocks[3])
}

func TestParseTable(t *testing.T) {
	src := "| A | B |\n| - | - |\n| 1 | 2 |"
	blocks := Parse(src)
	require.Len(t, blocks, 1)
	assert.Equal(t, &Table{
		Header: []string{"A", "B"},
		Rows:   [][]string{{"1", "2"}},
	}, blocks[0])
}

func TestParseTableRaggedRows(t *testing.T) {
	src := strings.Join([]string{
		"Name | Role",
		"---|:---:",
		"Ada | Lead | Extra",
		"| Bob |",
		"| Cy | | Ops |",
		"not a row",
	}, "\n")
	blocks := Parse(src)
	require.Len(t, blocks, 2)

	tbl := blocks[0].(*Table)
	assert.Equal(t, []string{"Name", "Role"}, tbl.Header)
	assert.Equal(t, [][]string{
		{"Ada", "Lead", "Extra"},
		{"Bob"},
		{"Cy", "", "Ops"},
	}, tbl.Rows)
	assert.True(t, tbl.Ragged())
	assert.Equal(t, &Paragraph{Text: "not a row"}, blocks[1])
}

func TestParsePipeWithoutSeparator(t *testing.T) {
	blocks := Parse("a | b\nc | d")
	require.Len(t, blocks, 2)
	assert.Equal(t, &Paragraph{Text: "a | b"}, blocks[0])
}

func TestParseLists(t *testing.T) {
	src := strings.Join([]string{
		"- one",
		"* two",
		"  -   three",
		"1. first",
		"22.  second",
		"3.no space",
	}, "\n")
	blocks := Parse(src)
	require.Len(t, blocks, 3)
	assert.Equal(t, &UnorderedList{Items: []string{"one", "two", "three"}}, blocks[0])
	assert.Equal(t, &OrderedList{Items: []string{"first", "second"}}, blocks[1])
	assert.Equal(t, &Paragraph{Text: "3.no space"}, blocks[2])
}

func TestParseListStopsAtFirstNonItem(t *testing.T) {
	blocks := Parse("- a\n\n- b")
	require.Len(t, blocks, 2)
	assert.Equal(t, &UnorderedList{Items: []string{"a"}}, blocks[0])
	assert.Equal(t, &UnorderedList{Items: []string{"b"}}, blocks[1])
}

func TestParseBlockquoteJoinsLines(t *testing.T) {
	blocks := Parse("> first\n>second\n>  third\nafter")
	require.Len(t, blocks, 2)
	assert.Equal(t, &Blockquote{Text: "first second  third"}, blocks[0])
	assert.Equal(t, &Paragraph{Text: "after"}, blocks[1])
}

func TestParseIsDeterministic(t *testing.T) {
	src := "# T\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n```\nx\n```\n- i\n> q\ntext"
	assert.Equal(t, Parse(src), Parse(src))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "heading", (&Heading{}).Kind().String())
	assert.Equal(t, "table", (&Table{}).Kind().String())
	assert.Equal(t, "unknown", Kind(99).String())
}
