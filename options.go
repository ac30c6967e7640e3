package md2docx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Qiuzg/go-md2docx/internal/pipeline"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the settings collected from options.
type converterConfig struct {
	timeout        time.Duration
	images         ImageSettings
	page           *PageSettings
	fonts          pipeline.Fonts
	styleName      string
	assetPath      string
	highlight      bool
	highlightStyle string
	title          string
	author         string
	httpClient     *http.Client
	now            func() time.Time
}

// defaultTimeout bounds a whole conversion, image fetches included.
const defaultTimeout = 2 * time.Minute

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2docx: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the logger for warnings (failed images) and swallowed
// errors of ConvertMarkdown. Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithImageSettings sets the image width, fetch timeout and base URL.
// Settings are validated by NewConverter.
func WithImageSettings(s ImageSettings) Option {
	return func(c *Converter) {
		c.cfg.images = s
	}
}

// WithHTTPClient sets the client used for remote images.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Converter) {
		c.cfg.httpClient = client
	}
}

// WithPage sets the default page settings. Validated by NewConverter.
func WithPage(p *PageSettings) Option {
	return func(c *Converter) {
		c.cfg.page = p
	}
}

// WithFonts overrides the body, east-Asian and code fonts. Empty values
// keep the defaults.
func WithFonts(body, eastAsia, code string) Option {
	return func(c *Converter) {
		c.cfg.fonts = pipeline.Fonts{Body: body, EastAsia: eastAsia, Code: code}
	}
}

// WithStyle selects the style sheet by name (see internal/assets).
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.styleName = name
	}
}

// WithAssetPath sets a directory whose styles/ override the embedded sheets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithHighlight enables syntax colouring of fenced code blocks using the
// named chroma style. An empty name selects the default style.
func WithHighlight(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}

// WithMetadata sets the default title and author of generated documents.
func WithMetadata(title, author string) Option {
	return func(c *Converter) {
		c.cfg.title = title
		c.cfg.author = author
	}
}
