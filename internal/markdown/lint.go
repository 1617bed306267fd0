package markdown

import "fmt"

// Issue describes input that renders, but probably not the way the
// author meant.
type Issue struct {
	Block int
	Msg   string
}

func (i Issue) String() string {
	return fmt.Sprintf("block %d: %s", i.Block, i.Msg)
}

// Lint reports unterminated code fences and tables whose rows do not
// match the header width. Neither changes how the document renders.
func Lint(blocks []Block) []Issue {
	var out []Issue
	for i, b := range blocks {
		switch n := b.(type) {
		case *CodeBlock:
			if n.Unterminated {
				out = append(out, Issue{Block: i, Msg: fmt.Sprintf("code fence never closed, %d trailing lines absorbed", len(n.Lines))})
			}
		case *Table:
			if n.Ragged() {
				out = append(out, Issue{Block: i, Msg: fmt.Sprintf("table rows do not match %d header cells", len(n.Header))})
			}
		}
	}
	return out
}
