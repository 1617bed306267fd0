package render

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CountWords counts the words a reader sees in rendered HTML. Code
// blocks and their language labels are left out.
func CountWords(html []byte) (int, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return 0, err
	}
	doc.Find("pre, .bp-code-lang").Remove()
	// adjacent cells and items have no whitespace between them
	doc.Find("li, th, td").AppendHtml(" ")
	return len(strings.Fields(doc.Text())), nil
}
