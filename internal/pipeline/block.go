package pipeline

// Block is one structural unit of a parsed document. The set of
// implementations is closed: Heading, Paragraph, Code, Image, Table, List.
type Block interface {
	block()
}

// Heading is an ATX heading. Level is in 1..6.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a run of text lines joined with single spaces.
// Runs holds the inline-formatted view of Text.
type Paragraph struct {
	Text string
	Runs []Run
}

// Code is the body of a fenced code block. Language is the info string
// after the opening fence and may be empty.
type Code struct {
	Text     string
	Language string
}

// Image references a picture by URL, which may be remote, relative or a
// local path.
type Image struct {
	URL string
	Alt string
}

// Table is a pipe table. Rows are not padded or truncated to the header
// width; the renderer handles the mismatch.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ListType distinguishes bullet lists from numbered lists.
type ListType int

const (
	Unordered ListType = iota
	Ordered
)

// String returns "unordered" or "ordered".
func (t ListType) String() string {
	if t == Ordered {
		return "ordered"
	}
	return "unordered"
}

// ListItem holds the raw text of one item. Inline formatting is applied at
// render time.
type ListItem struct {
	Text string
}

// List is a flat list whose items all share Type. Items is never empty.
type List struct {
	Type  ListType
	Items []ListItem
}

// Run is a span of text with uniform emphasis.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
}

func (Heading) block()   {}
func (Paragraph) block() {}
func (Code) block()      {}
func (Image) block()     {}
func (Table) block()     {}
func (List) block()      {}
