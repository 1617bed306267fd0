package markdown

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark/util"
)

// WriteHTML renders blocks in order using the theme's bp-* classes.
func WriteHTML(w io.Writer, blocks []Block) error {
	_, err := w.Write(HTML(blocks))
	return err
}

func HTML(blocks []Block) []byte {
	var buf bytes.Buffer
	for _, b := range blocks {
		writeBlock(&buf, b)
	}
	return buf.Bytes()
}

func writeBlock(buf *bytes.Buffer, b Block) {
	switch n := b.(type) {
	case *Heading:
		fmt.Fprintf(buf, `<h%d id="%s" class="bp-h%d">`, n.Level, escape(n.ID), n.Level)
		writeInline(buf, n.Text)
		fmt.Fprintf(buf, "</h%d>\n", n.Level)
	case *CodeBlock:
		buf.WriteString(`<div class="bp-code-block">`)
		if n.Lang != "" {
			buf.WriteString(`<span class="bp-code-lang">`)
			buf.WriteString(escape(n.Lang))
			buf.WriteString(`</span>`)
		}
		buf.WriteString(`<pre><code>`)
		for i, l := range n.Lines {
			if i > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(escape(l))
		}
		buf.WriteString("</code></pre></div>\n")
	case *HorizontalRule:
		buf.WriteString("<hr class=\"bp-hr\">\n")
	case *Table:
		buf.WriteString(`<div class="bp-table-wrap"><table class="bp-table"><thead><tr>`)
		for _, c := range n.Header {
			buf.WriteString("<th>")
			writeInline(buf, c)
			buf.WriteString("</th>")
		}
		buf.WriteString("</tr></thead><tbody>")
		for _, row := range n.Rows {
			buf.WriteString("<tr>")
			for _, c := range row {
				buf.WriteString("<td>")
				writeInline(buf, c)
				buf.WriteString("</td>")
			}
			buf.WriteString("</tr>")
		}
		buf.WriteString("</tbody></table></div>\n")
	case *UnorderedList:
		writeList(buf, "ul", n.Items)
	case *OrderedList:
		writeList(buf, "ol", n.Items)
	case *Blockquote:
		buf.WriteString(`<blockquote class="bp-blockquote">`)
		writeInline(buf, n.Text)
		buf.WriteString("</blockquote>\n")
	case *Paragraph:
		buf.WriteString(`<p class="bp-p">`)
		writeInline(buf, n.Text)
		buf.WriteString("</p>\n")
	}
}

func writeList(buf *bytes.Buffer, tag string, items []string) {
	fmt.Fprintf(buf, `<%s class="bp-%s">`, tag, tag)
	for _, it := range items {
		buf.WriteString("<li>")
		writeInline(buf, it)
		buf.WriteString("</li>")
	}
	fmt.Fprintf(buf, "</%s>\n", tag)
}

func writeInline(buf *bytes.Buffer, text string) {
	for _, f := range Inline(text) {
		switch f.Kind {
		case Bold:
			buf.WriteString("<strong>")
			buf.WriteString(escape(f.Text))
			buf.WriteString("</strong>")
		case Code:
			buf.WriteString(`<code class="bp-inline-code">`)
			buf.WriteString(escape(f.Text))
			buf.WriteString("</code>")
		case Link:
			buf.WriteString(`<a href="`)
			buf.Write(util.EscapeHTML(util.URLEscape([]byte(f.URL), true)))
			buf.WriteString(`" target="_blank" rel="noopener noreferrer" class="bp-link">`)
			buf.WriteString(escape(f.Text))
			buf.WriteString("</a>")
		default:
			buf.WriteString(escape(f.Text))
		}
	}
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
