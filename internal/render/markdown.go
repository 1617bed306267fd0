package render

import (
	"bytes"
	"clubsite/internal/domain/config"
	"clubsite/internal/domain/content"
	"clubsite/internal/markdown"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// MarkdownRenderer turns a post body into HTML and its table of contents.
type MarkdownRenderer interface {
	Name() string
	Render(src []byte) (MarkdownResult, error)
}

type MarkdownResult struct {
	HTML []byte
	TOC  []content.Heading
	// Issues are authoring problems that did not stop rendering.
	Issues []string
	Words  int
}

func NewMarkdownRenderer(mode config.MarkdownMode) (MarkdownRenderer, error) {
	switch mode {
	case "", config.MarkdownDialect:
		return DialectRenderer{}, nil
	case config.MarkdownGFM:
		return NewGFMRenderer(), nil
	default:
		return nil, fmt.Errorf("render: unknown markdown mode %q", mode)
	}
}

// DialectRenderer renders the club's markdown dialect.
type DialectRenderer struct{}

func (DialectRenderer) Name() string { return "dialect/1" }

func (DialectRenderer) Render(src []byte) (MarkdownResult, error) {
	s := string(src)
	blocks := markdown.Parse(s)
	out := markdown.HTML(blocks)

	var toc []content.Heading
	for _, e := range markdown.ExtractTOC(s) {
		toc = append(toc, content.Heading{Level: e.Level, ID: e.ID, Text: e.Text})
	}
	var issues []string
	for _, is := range markdown.Lint(blocks) {
		issues = append(issues, is.String())
	}
	words, err := CountWords(out)
	if err != nil {
		return MarkdownResult{}, err
	}
	return MarkdownResult{HTML: out, TOC: toc, Issues: issues, Words: words}, nil
}

// GFMRenderer renders GitHub flavoured markdown with goldmark.
type GFMRenderer struct {
	md goldmark.Markdown
}

func NewGFMRenderer() *GFMRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.Strikethrough,
			extension.Table,
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &GFMRenderer{md: md}
}

func (r *GFMRenderer) Name() string { return "gfm/1" }

// Render keeps level 2 and 3 headings in the TOC, matching the dialect.
func (r *GFMRenderer) Render(src []byte) (MarkdownResult, error) {
	var buf bytes.Buffer

	ctx := parser.NewContext()
	reader := text.NewReader(src)
	doc := r.md.Parser().Parse(reader, parser.WithContext(ctx))

	var heads []content.Heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level < 2 || h.Level > 3 {
			return ast.WalkSkipChildren, nil
		}
		var idStr string
		if id, ok := h.AttributeString("id"); ok {
			switch v := id.(type) {
			case string:
				idStr = v
			case []byte:
				idStr = string(v)
			}
		}
		var textBuf bytes.Buffer
		collectText(&textBuf, h, src)
		heads = append(heads, content.Heading{
			Level: h.Level,
			ID:    idStr,
			Text:  textBuf.String(),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return MarkdownResult{}, err
	}

	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return MarkdownResult{}, err
	}
	words, err := CountWords(buf.Bytes())
	if err != nil {
		return MarkdownResult{}, err
	}
	return MarkdownResult{
		HTML:  buf.Bytes(),
		TOC:   heads,
		Words: words,
	}, nil
}

// collectText gathers the text segments under n, including those nested
// in emphasis or code spans.
func collectText(buf *bytes.Buffer, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if seg, ok := c.(*ast.Text); ok {
			buf.Write(seg.Segment.Value(src))
			continue
		}
		collectText(buf, c, src)
	}
}
