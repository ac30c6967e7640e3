package md2docx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Qiuzg/go-md2docx/internal/assets"
	"github.com/Qiuzg/go-md2docx/internal/docx"
	"github.com/Qiuzg/go-md2docx/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.TextPreprocessor)(nil)
	_ pipeline.BlockParser          = pipeline.LineParser{}
	_ pipeline.ImageLoader          = (*pipeline.ImageFetcher)(nil)
	_ pipeline.CodeHighlighter      = (*pipeline.ChromaHighlighter)(nil)
	_ pipeline.DocumentRenderer     = (*pipeline.Renderer)(nil)
)

// Converter orchestrates the markdown-to-DOCX pipeline: preprocess, parse,
// render, serialize. It holds no per-conversion state and is safe for
// concurrent use.
type Converter struct {
	cfg          converterConfig
	logger       *slog.Logger
	styles       []byte
	preprocessor pipeline.MarkdownPreprocessor
	parser       pipeline.BlockParser
	highlighter  pipeline.CodeHighlighter
	newRenderer  func(pipeline.RenderOptions) pipeline.DocumentRenderer
}

// NewConverter creates a Converter. Options are validated here so that
// Convert only fails on per-input problems.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			now:     time.Now,
		},
		logger:       slog.New(slog.DiscardHandler),
		preprocessor: &pipeline.TextPreprocessor{},
		parser:       pipeline.LineParser{},
		newRenderer: func(o pipeline.RenderOptions) pipeline.DocumentRenderer {
			return pipeline.NewRenderer(o)
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.page == nil {
		c.cfg.page = DefaultPageSettings()
	}
	if err := c.cfg.page.Validate(); err != nil {
		return nil, err
	}
	if err := c.cfg.images.Validate(); err != nil {
		return nil, err
	}

	if err := c.loadStyles(); err != nil {
		return nil, err
	}

	if c.cfg.highlight {
		h, err := pipeline.NewChromaHighlighter(c.cfg.highlightStyle)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHighlightStyle, err)
		}
		c.highlighter = h
	}

	return c, nil
}

// loadStyles resolves and renders the style sheet once per converter.
func (c *Converter) loadStyles() error {
	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	fonts := c.fonts()
	styles, err := resolver.Stylesheet(c.cfg.styleName, assets.StyleData{
		BodyFont:     fonts.Body,
		EastAsiaFont: fonts.EastAsia,
		CodeFont:     fonts.Code,
		BodySize:     int(pipeline.BodySize.HalfPoints()),
	})
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %v", ErrStyleNotFound, err)
		}
		return fmt.Errorf("loading style %q: %w", c.cfg.styleName, err)
	}
	c.styles = styles
	return nil
}

func (c *Converter) fonts() pipeline.Fonts {
	f := c.cfg.fonts
	if f.Body == "" {
		f.Body = pipeline.DefaultBodyFont
	}
	if f.EastAsia == "" {
		f.EastAsia = pipeline.DefaultBodyFont
	}
	if f.Code == "" {
		f.Code = pipeline.DefaultCodeFont
	}
	return f
}

// Convert runs the full pipeline and returns the serialized document.
// Image failures do not fail the conversion; they are counted in the result.
// Panics anywhere in the pipeline are recovered and returned as ErrInternal.
func (c *Converter) Convert(ctx context.Context, input Input) (*ConvertResult, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	return c.convert(ctx, input)
}

// convert is Convert without the empty-content check.
func (c *Converter) convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	content := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blocks := c.parser.Parse(content)

	page := c.cfg.page
	if input.Page != nil {
		page = input.Page
	}

	doc := docx.New(docx.Options{
		Styles:     c.styles,
		Page:       page.setup(),
		Title:      c.title(input, blocks),
		Author:     firstNonEmpty(input.Author, c.cfg.author),
		Identifier: "urn:uuid:" + uuid.NewString(),
		Created:    c.cfg.now(),
	})

	renderer := c.newRenderer(c.renderOptions(input, page))
	stats, err := renderer.Render(ctx, doc, blocks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if stats.ImagesFailed > 0 {
		c.logger.Warn("images replaced by placeholders", "failed", stats.ImagesFailed, "embedded", stats.ImagesEmbedded)
	}

	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	return &ConvertResult{
		DOCX:           data,
		Filename:       Filename(input.Name),
		Blocks:         stats.Blocks,
		ImagesEmbedded: stats.ImagesEmbedded,
		ImagesFailed:   stats.ImagesFailed,
	}, nil
}

// ConvertMarkdown is the boolean form of Convert: it returns (true, bytes)
// on success and (false, nil) on any failure. The failure cause is logged.
// An imageWidth of 0 selects the converter's image width. Empty markdown
// yields an empty document rather than a failure.
func (c *Converter) ConvertMarkdown(ctx context.Context, markdown string, imageWidth float64) (bool, []byte) {
	result, err := c.convert(ctx, Input{Markdown: markdown, ImageWidth: imageWidth})
	if err != nil {
		c.logger.Error("markdown conversion failed", "error", err)
		return false, nil
	}
	return true, result.DOCX
}

// Close releases idle connections of the configured HTTP client.
func (c *Converter) Close() error {
	if c.cfg.httpClient != nil {
		c.cfg.httpClient.CloseIdleConnections()
	}
	return nil
}

func (c *Converter) renderOptions(input Input, page *PageSettings) pipeline.RenderOptions {
	width := c.cfg.images.Width
	if input.ImageWidth > 0 {
		width = input.ImageWidth
	}
	if width == 0 {
		width = DefaultImageWidth
	}
	timeout := c.cfg.images.Timeout
	if timeout == 0 {
		timeout = DefaultImageTimeout
	}

	return pipeline.RenderOptions{
		Fonts:        c.fonts(),
		ImageWidth:   width,
		ContentWidth: page.contentWidth(),
		Loader: pipeline.NewImageFetcher(
			firstNonEmpty(input.BaseURL, c.cfg.images.BaseURL), timeout, c.cfg.httpClient),
		Highlighter: c.highlighter,
		Logger:      c.logger,
	}
}

// title picks the explicit title, then the converter default, then the text
// of the first level-1 heading.
func (c *Converter) title(input Input, blocks []pipeline.Block) string {
	if t := firstNonEmpty(input.Title, c.cfg.title); t != "" {
		return t
	}
	for _, b := range blocks {
		if h, ok := b.(pipeline.Heading); ok && h.Level == 1 {
			return pipeline.PlainText(pipeline.FormatInline(h.Text))
		}
	}
	return ""
}

// validateInput is the trust boundary for library callers that build Input
// by hand. CLI input has already passed config validation.
func (c *Converter) validateInput(input Input) error {
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if input.ImageWidth < 0 || input.ImageWidth > MaxImageWidth {
		return fmt.Errorf("%w: %.2f (must be between 0 and %.0f)", ErrInvalidImageWidth, input.ImageWidth, MaxImageWidth)
	}
	return validateBaseURL(input.BaseURL)
}

// Filename returns name with ".docx" appended, or the default name.
// The suffix is appended unconditionally, so "a.docx" becomes "a.docx.docx".
func Filename(name string) string {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	return name + ".docx"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var defaultConverter = sync.OnceValues(func() (*Converter, error) {
	return NewConverter()
})

// ConvertMarkdown converts markdown with default settings and reports the
// outcome as a boolean. It never panics and never returns partial output.
func ConvertMarkdown(markdown string, imageWidth float64) (bool, []byte) {
	c, err := defaultConverter()
	if err != nil {
		return false, nil
	}
	return c.ConvertMarkdown(context.Background(), markdown, imageWidth)
}
