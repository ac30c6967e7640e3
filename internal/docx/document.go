package docx

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for document building.
var (
	ErrEmptyImage       = errors.New("image data is empty")
	ErrUnsupportedMedia = errors.New("unsupported media extension")
	ErrInvalidTableSize = errors.New("table must have at least one row and one column")
)

// Page sizes in portrait orientation.
var (
	PageLetter = PageSize{Width: Inches(8.5), Height: Inches(11)}
	PageA4     = PageSize{Width: Length(11906 * emuPerTwip), Height: Length(16838 * emuPerTwip)}
	PageLegal  = PageSize{Width: Inches(8.5), Height: Inches(14)}
)

// PageSize is the physical size of a page in portrait orientation.
type PageSize struct {
	Width  Length
	Height Length
}

// PageSetup describes the single section of the document.
type PageSetup struct {
	Size      PageSize
	Landscape bool
	Margin    Length // applied to all four sides
}

// Options configures a new Document.
type Options struct {
	// Styles is the word/styles.xml part. Nil selects a minimal built-in sheet.
	Styles []byte
	Page   PageSetup

	// Core properties.
	Title      string
	Author     string
	Identifier string
	Created    time.Time
}

// Document is an in-memory WordprocessingML document under construction.
type Document struct {
	opts      Options
	body      []bodyElement
	media     []mediaPart
	numbering numbering
	drawingID int
}

// bodyElement is a block-level child of w:body.
type bodyElement interface {
	writeXML(w *xmlWriter)
}

// New creates an empty Document. Zero-valued page settings default to
// Letter with one-inch margins.
func New(opts Options) *Document {
	if opts.Page.Size.Width == 0 || opts.Page.Size.Height == 0 {
		opts.Page.Size = PageLetter
	}
	if opts.Page.Margin == 0 {
		opts.Page.Margin = Inches(1)
	}
	if opts.Created.IsZero() {
		opts.Created = time.Now()
	}
	return &Document{
		opts:      opts,
		numbering: newNumbering(),
	}
}

// AddParagraph appends an empty paragraph to the body and returns it.
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{}
	d.body = append(d.body, p)
	return p
}

// AddTable appends a rows x cols table whose cells each hold one empty
// paragraph, mirroring what Word creates for a fresh table.
func (d *Document) AddTable(rows, cols int) (*Table, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTableSize, rows, cols)
	}
	t := &Table{rows: make([][]*Cell, rows), cols: cols}
	for r := range t.rows {
		t.rows[r] = make([]*Cell, cols)
		for c := range t.rows[r] {
			t.rows[r][c] = &Cell{Paragraphs: []*Paragraph{{}}}
		}
	}
	d.body = append(d.body, t)
	return t, nil
}

// NewPicture registers image bytes as a media part and returns a picture
// that can be placed in a run. ext is the file extension without dot
// (png, jpeg, gif, bmp, tiff).
func (d *Document) NewPicture(data []byte, ext string, width, height Length) (*Picture, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "jpg" {
		ext = "jpeg"
	}
	if _, ok := mediaContentTypes[ext]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMedia, ext)
	}

	n := len(d.media) + 1
	part := mediaPart{
		name: fmt.Sprintf("image%d.%s", n, ext),
		ext:  ext,
		data: data,
		rID:  fmt.Sprintf("rId%d", firstMediaRel+n-1),
	}
	d.media = append(d.media, part)
	d.drawingID++

	return &Picture{
		rID:    part.rID,
		name:   part.name,
		id:     d.drawingID,
		Width:  width,
		Height: height,
	}, nil
}

// NewList allocates a numbering instance for one list. Ordered lists
// restart at 1 for every instance.
func (d *Document) NewList(kind ListKind) int {
	return d.numbering.add(kind)
}

// Len returns the number of block-level elements in the body.
func (d *Document) Len() int {
	return len(d.body)
}

// Bytes serializes the package into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Paragraph is a w:p element.
type Paragraph struct {
	Style           string
	Align           Alignment
	LineSpacing     LineSpacing
	FirstLineIndent Length
	LeftIndent      Length
	RightIndent     Length
	// OutlineLevel is 1-based; zero means body text.
	OutlineLevel int
	// NumID attaches the paragraph to a numbering instance from NewList.
	NumID int
	// Shading is a hex fill colour such as "F2F2F2".
	Shading string
	Runs    []*Run
}

// AddRun appends a text run.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.Runs = append(p.Runs, r)
	return r
}

// AddPicture appends a run holding an inline picture.
func (p *Paragraph) AddPicture(pic *Picture) *Run {
	r := &Run{Picture: pic}
	p.Runs = append(p.Runs, r)
	return r
}

// ClearRuns empties the text of every run already in the paragraph.
func (p *Paragraph) ClearRuns() {
	for _, r := range p.Runs {
		r.Text = ""
	}
}

// Text concatenates the text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Font names a typeface for Latin and East Asian scripts.
type Font struct {
	ASCII    string
	EastAsia string
}

// Run is a w:r element with uniform character formatting.
type Run struct {
	Text    string
	Bold    bool
	Italic  bool
	Size    Length
	Font    Font
	Color   string // hex RGB without '#'
	Picture *Picture
}

// Picture is an inline DrawingML image bound to a media part.
type Picture struct {
	rID    string
	name   string
	id     int
	Width  Length
	Height Length
}

// Table is a w:tbl element with a fixed grid.
type Table struct {
	Style string
	// ColumnWidths, when set, must have one entry per column.
	ColumnWidths []Length
	rows         [][]*Cell
	cols         int
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return len(t.rows) }

// Cols returns the number of columns.
func (t *Table) Cols() int { return t.cols }

// Cell returns the cell at row r, column c, or nil when out of range.
func (t *Table) Cell(r, c int) *Cell {
	if r < 0 || r >= len(t.rows) || c < 0 || c >= t.cols {
		return nil
	}
	return t.rows[r][c]
}

// Cell is a w:tc element. It always holds at least one paragraph.
type Cell struct {
	Paragraphs []*Paragraph
}

// Paragraph returns the first paragraph of the cell.
func (c *Cell) Paragraph() *Paragraph {
	return c.Paragraphs[0]
}

type mediaPart struct {
	name string
	ext  string
	data []byte
	rID  string
}
