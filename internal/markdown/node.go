package markdown

type Kind int

const (
	KindHeading Kind = iota + 1
	KindCode
	KindRule
	KindTable
	KindUnorderedList
	KindOrderedList
	KindBlockquote
	KindParagraph
)

var kindNames = map[Kind]string{
	KindHeading:       "heading",
	KindCode:          "code",
	KindRule:          "rule",
	KindTable:         "table",
	KindUnorderedList: "ul",
	KindOrderedList:   "ol",
	KindBlockquote:    "blockquote",
	KindParagraph:     "paragraph",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Block is one structural unit of a document. Consumers dispatch on the
// concrete type (or Kind) rather than probing fields.
type Block interface {
	Kind() Kind
}

type Heading struct {
	Level int
	Text  string
	ID    string
}

type CodeBlock struct {
	Lang  string
	Lines []string
	// Unterminated is set when input ended before a closing fence.
	Unterminated bool
}

type HorizontalRule struct{}

type Table struct {
	Header []string
	Rows   [][]string
}

type UnorderedList struct {
	Items []string
}

type OrderedList struct {
	Items []string
}

type Blockquote struct {
	Text string
}

type Paragraph struct {
	Text string
}

func (*Heading) Kind() Kind        { return KindHeading }
func (*CodeBlock) Kind() Kind      { return KindCode }
func (*HorizontalRule) Kind() Kind { return KindRule }
func (*Table) Kind() Kind          { return KindTable }
func (*UnorderedList) Kind() Kind  { return KindUnorderedList }
func (*OrderedList) Kind() Kind    { return KindOrderedList }
func (*Blockquote) Kind() Kind     { return KindBlockquote }
func (*Paragraph) Kind() Kind      { return KindParagraph }

// Ragged reports whether any data row width differs from the header width.
func (t *Table) Ragged() bool {
	for _, r := range t.Rows {
		if len(r) != len(t.Header) {
			return true
		}
	}
	return false
}

type FragmentKind int

const (
	Plain FragmentKind = iota
	Bold
	Code
	Link
)

func (k FragmentKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Code:
		return "code"
	case Link:
		return "link"
	}
	return "unknown"
}

// Fragment is one styled run of inline text. URL is only set for links.
type Fragment struct {
	Kind FragmentKind
	Text string
	URL  string
}

type TOCEntry struct {
	Level int
	Text  string
	ID    string
}
