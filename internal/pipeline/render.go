package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-runewidth"

	"github.com/Qiuzg/go-md2docx/internal/docx"
)

// ErrRender indicates a block could not be written to the document.
var ErrRender = errors.New("render failed")

// Default typography.
var (
	HeadingOneSize = docx.Pt(16)
	HeadingSize    = docx.Pt(14)
	BodySize       = docx.Pt(14)
	CodeSize       = docx.Pt(10)
	CaptionSize    = docx.Pt(10)

	// BodyIndent is the first-line indent of paragraphs, two CJK characters at BodySize.
	BodyIndent = docx.Pt(28)
	CodeIndent = docx.Pt(14)
)

// Default fonts and layout values.
const (
	DefaultBodyFont     = "SimSun"
	DefaultCodeFont     = "Consolas"
	DefaultImageWidth   = 5.0 // inches
	DefaultContentWidth = 6.5 // inches, Letter with one-inch margins

	// minColumnCells keeps narrow table columns readable.
	minColumnCells = 3

	tableStyle = "TableGrid"
)

// Paragraph style ids of the list styles in styles.xml.
const (
	ListBulletStyle = "ListBullet"
	ListNumberStyle = "ListNumber"
)

// Fonts selects typefaces for rendered text.
type Fonts struct {
	Body     string // Latin text
	EastAsia string // CJK text
	Code     string
}

// RenderOptions configures a Renderer.
type RenderOptions struct {
	Fonts Fonts
	// ImageWidth is the display width of embedded images in inches.
	ImageWidth float64
	// ContentWidth is the usable page width shared by table columns.
	ContentWidth docx.Length
	Loader       ImageLoader
	// Highlighter colours code blocks. Nil renders code in a single run.
	Highlighter CodeHighlighter
	Logger      *slog.Logger
}

// RenderStats summarizes one Render call.
type RenderStats struct {
	Blocks         int
	ImagesEmbedded int
	ImagesFailed   int
}

// DocumentRenderer abstracts block rendering into a document.
type DocumentRenderer interface {
	Render(ctx context.Context, doc *docx.Document, blocks []Block) (RenderStats, error)
}

// Renderer writes blocks into a docx.Document. It holds no per-call state
// and is safe for concurrent use with distinct documents.
type Renderer struct {
	opts RenderOptions
}

// NewRenderer creates a Renderer, filling zero options with defaults.
func NewRenderer(opts RenderOptions) *Renderer {
	if opts.Fonts.Body == "" {
		opts.Fonts.Body = DefaultBodyFont
	}
	if opts.Fonts.EastAsia == "" {
		opts.Fonts.EastAsia = DefaultBodyFont
	}
	if opts.Fonts.Code == "" {
		opts.Fonts.Code = DefaultCodeFont
	}
	if opts.ImageWidth <= 0 {
		opts.ImageWidth = DefaultImageWidth
	}
	if opts.ContentWidth <= 0 {
		opts.ContentWidth = docx.Inches(DefaultContentWidth)
	}
	if opts.Loader == nil {
		opts.Loader = NewImageFetcher("", 0, nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{opts: opts}
}

// Render appends blocks to doc in order. Image failures become placeholder
// paragraphs and are counted in the stats; they are not returned as errors.
func (r *Renderer) Render(ctx context.Context, doc *docx.Document, blocks []Block) (RenderStats, error) {
	var stats RenderStats
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		switch b := b.(type) {
		case Heading:
			r.renderHeading(doc, b)
		case Paragraph:
			r.renderParagraph(doc, b)
		case Code:
			r.renderCode(doc, b)
		case Image:
			if r.renderImage(ctx, doc, b) {
				stats.ImagesEmbedded++
			} else {
				stats.ImagesFailed++
			}
		case Table:
			if err := r.renderTable(doc, b); err != nil {
				return stats, err
			}
		case List:
			r.renderList(doc, b)
		default:
			return stats, fmt.Errorf("%w: unknown block %T", ErrRender, b)
		}
		stats.Blocks++
	}
	return stats, nil
}

// bodyRun applies the body font and size to a new run.
func (r *Renderer) bodyRun(p *docx.Paragraph, text string, size docx.Length) *docx.Run {
	run := p.AddRun(text)
	run.Size = size
	run.Font = docx.Font{ASCII: r.opts.Fonts.Body, EastAsia: r.opts.Fonts.EastAsia}
	return run
}

func (r *Renderer) renderHeading(doc *docx.Document, h Heading) {
	p := doc.AddParagraph()
	p.LineSpacing = docx.OnePointFive
	p.OutlineLevel = h.Level

	size := HeadingSize
	if h.Level == 1 {
		size = HeadingOneSize
	}
	r.bodyRun(p, h.Text, size).Bold = true
}

func (r *Renderer) renderParagraph(doc *docx.Document, para Paragraph) {
	p := doc.AddParagraph()
	p.FirstLineIndent = BodyIndent
	p.LineSpacing = docx.OnePointFive

	if len(para.Runs) == 0 {
		r.bodyRun(p, para.Text, BodySize)
		return
	}
	for _, run := range para.Runs {
		out := r.bodyRun(p, run.Text, BodySize)
		out.Bold = run.Bold
		out.Italic = run.Italic
	}
}

// renderCode writes the block as one paragraph; newlines become line breaks.
func (r *Renderer) renderCode(doc *docx.Document, c Code) {
	p := doc.AddParagraph()
	p.LeftIndent = CodeIndent
	p.RightIndent = CodeIndent

	font := docx.Font{ASCII: r.opts.Fonts.Code}
	if r.opts.Highlighter == nil {
		run := p.AddRun(c.Text)
		run.Font = font
		run.Size = CodeSize
		return
	}
	for _, cr := range r.opts.Highlighter.Highlight(c.Text, c.Language) {
		run := p.AddRun(cr.Text)
		run.Font = font
		run.Size = CodeSize
		run.Color = cr.Color
		run.Bold = cr.Bold
		run.Italic = cr.Italic
	}
}

// renderImage embeds the picture centered with an optional caption, or a
// placeholder paragraph when it cannot be loaded. It reports whether the
// picture was embedded.
func (r *Renderer) renderImage(ctx context.Context, doc *docx.Document, img Image) bool {
	loaded, err := r.opts.Loader.Load(ctx, img.URL)
	if err == nil {
		err = r.embedImage(doc, img, loaded)
	}
	if err != nil {
		r.opts.Logger.Warn("image replaced by placeholder", "url", img.URL, "error", err)
		r.renderParagraph(doc, Paragraph{Text: Placeholder(img)})
		return false
	}
	return true
}

func (r *Renderer) embedImage(doc *docx.Document, img Image, loaded *LoadedImage) error {
	width := docx.Inches(r.opts.ImageWidth)
	height := docx.Length(float64(width) * float64(loaded.Height) / float64(loaded.Width))

	pic, err := doc.NewPicture(loaded.Data, loaded.Ext, width, height)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	p := doc.AddParagraph()
	p.Align = docx.AlignCenter
	p.AddPicture(pic)

	if img.Alt != "" {
		caption := doc.AddParagraph()
		caption.Align = docx.AlignCenter
		r.bodyRun(caption, Caption(img.Alt), CaptionSize)
	}
	return nil
}

// Placeholder is the text that stands in for an image that failed to load.
func Placeholder(img Image) string {
	label := img.Alt
	if label == "" {
		label = img.URL
	}
	return "[image: " + label + "]"
}

// Caption is the text under an embedded image with alt text.
func Caption(alt string) string {
	return "figure: " + alt
}

// renderTable sizes the grid to the header row. Short data rows leave
// trailing cells empty; extra cells are dropped.
func (r *Renderer) renderTable(doc *docx.Document, t Table) error {
	cols := len(t.Headers)
	tbl, err := doc.AddTable(1+len(t.Rows), cols)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	tbl.Style = tableStyle
	tbl.ColumnWidths = columnWidths(t, r.opts.ContentWidth)

	for c, text := range t.Headers {
		p := tbl.Cell(0, c).Paragraph()
		p.Align = docx.AlignCenter
		r.bodyRun(p, text, BodySize).Bold = true
	}
	for i, row := range t.Rows {
		for c, text := range row {
			if c >= cols {
				break
			}
			r.bodyRun(tbl.Cell(i+1, c).Paragraph(), text, BodySize)
		}
	}

	doc.AddParagraph()
	return nil
}

// columnWidths shares total across columns in proportion to the widest
// cell of each, measured in terminal cells so CJK text counts double.
func columnWidths(t Table, total docx.Length) []docx.Length {
	cols := len(t.Headers)
	cells := make([]int, cols)
	measure := func(c int, s string) {
		if w := runewidth.StringWidth(s); w > cells[c] {
			cells[c] = w
		}
	}
	for c, h := range t.Headers {
		measure(c, h)
	}
	for _, row := range t.Rows {
		for c, s := range row {
			if c < cols {
				measure(c, s)
			}
		}
	}

	sum := 0
	for c := range cells {
		cells[c] = max(cells[c], minColumnCells)
		sum += cells[c]
	}
	widths := make([]docx.Length, cols)
	for c, w := range cells {
		widths[c] = docx.Length(int64(total) * int64(w) / int64(sum))
	}
	return widths
}

// renderList writes one paragraph per item. Ordered lists get their own
// numbering instance so each starts at 1.
func (r *Renderer) renderList(doc *docx.Document, l List) {
	style, numID := ListBulletStyle, 0
	if l.Type == Ordered {
		style, numID = ListNumberStyle, doc.NewList(docx.DecimalList)
	}

	for _, item := range l.Items {
		p := doc.AddParagraph()
		p.Style = style
		p.NumID = numID
		p.LineSpacing = docx.OnePointFive
		p.ClearRuns()
		for _, run := range FormatInline(item.Text) {
			if run.Text == "" {
				continue
			}
			out := r.bodyRun(p, run.Text, BodySize)
			out.Bold = run.Bold
			out.Italic = run.Italic
		}
	}

	doc.AddParagraph()
}
