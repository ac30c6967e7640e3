package md2docx

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Qiuzg/go-md2docx/internal/docx"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 1.0
)

// Image defaults and bounds.
const (
	DefaultImageWidth   = 5.0 // inches
	MaxImageWidth       = 20.0
	DefaultImageTimeout = 10 * time.Second
)

// DefaultName is the file stem used when Input.Name is empty.
const DefaultName = "document"

// PageSettings configures page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Comparison is case-insensitive and p is not modified.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := pageSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

var pageSizes = map[string]docx.PageSize{
	PageSizeLetter: docx.PageLetter,
	PageSizeA4:     docx.PageA4,
	PageSizeLegal:  docx.PageLegal,
}

// setup converts validated settings to the document section layout.
func (p *PageSettings) setup() docx.PageSetup {
	return docx.PageSetup{
		Size:      pageSizes[strings.ToLower(p.Size)],
		Landscape: strings.EqualFold(p.Orientation, OrientationLandscape),
		Margin:    docx.Inches(p.Margin),
	}
}

// contentWidth is the text width between the side margins.
func (p *PageSettings) contentWidth() docx.Length {
	s := p.setup()
	width := s.Size.Width
	if s.Landscape {
		width = s.Size.Height
	}
	return width - 2*s.Margin
}

// ImageSettings controls how images are located and sized.
type ImageSettings struct {
	Width   float64       // display width in inches, 0 = DefaultImageWidth
	Timeout time.Duration // per fetch, 0 = DefaultImageTimeout
	BaseURL string        // resolves relative references, empty = none
}

// Validate checks that image settings are valid.
func (s ImageSettings) Validate() error {
	if s.Width < 0 || s.Width > MaxImageWidth {
		return fmt.Errorf("%w: %.2f (must be between 0 and %.0f)", ErrInvalidImageWidth, s.Width, MaxImageWidth)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidImageTimeout, s.Timeout)
	}
	return validateBaseURL(s.BaseURL)
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "file":
		return nil
	default:
		return fmt.Errorf("%w: %q (scheme must be http, https or file)", ErrInvalidBaseURL, raw)
	}
}

// Input contains conversion parameters. Zero-valued optional fields fall
// back to the converter's settings.
type Input struct {
	Markdown   string        // Markdown content (required)
	Name       string        // output file stem, ".docx" is always appended
	BaseURL    string        // overrides the converter base URL
	ImageWidth float64       // overrides the converter image width (inches)
	Title      string        // document title, defaults to the first level-1 heading
	Author     string        // document author
	Page       *PageSettings // nil = converter page settings
}

// ConvertResult holds the serialized document and conversion statistics.
type ConvertResult struct {
	DOCX           []byte
	Filename       string
	Blocks         int
	ImagesEmbedded int
	ImagesFailed   int
}
