package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ErrUnknownHighlightStyle indicates the style name is not registered with chroma.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// CodeRun is a token span of a highlighted code block.
type CodeRun struct {
	Text   string
	Color  string // hex RGB without '#', empty for the default colour
	Bold   bool
	Italic bool
}

// CodeHighlighter abstracts syntax colouring of code blocks.
type CodeHighlighter interface {
	Highlight(code, language string) []CodeRun
}

// ChromaHighlighter colours code with chroma lexers and styles.
type ChromaHighlighter struct {
	style *chroma.Style
}

// NewChromaHighlighter creates a highlighter for the named style.
// An empty name selects DefaultHighlightStyle.
func NewChromaHighlighter(styleName string) (*ChromaHighlighter, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, styleName)
	}
	return &ChromaHighlighter{style: style}, nil
}

// Highlight tokenises code with the lexer registered for language, falling
// back to plain text. Adjacent tokens with identical styling are merged.
// Concatenating the returned Text reproduces code.
func (h *ChromaHighlighter) Highlight(code, language string) []CodeRun {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []CodeRun{{Text: code}}
	}

	var runs []CodeRun
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		entry := h.style.Get(tok.Type)
		run := CodeRun{
			Text:   tok.Value,
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			run.Color = strings.ToUpper(strings.TrimPrefix(entry.Colour.String(), "#"))
		}
		if n := len(runs); n > 0 && sameStyle(runs[n-1], run) {
			runs[n-1].Text += run.Text
			continue
		}
		runs = append(runs, run)
	}

	// Lexers configured with EnsureNL append a newline the source lacks.
	if n := len(runs); n > 0 && !strings.HasSuffix(code, "\n") {
		runs[n-1].Text = strings.TrimSuffix(runs[n-1].Text, "\n")
		if runs[n-1].Text == "" {
			runs = runs[:n-1]
		}
	}
	if len(runs) == 0 {
		return []CodeRun{{Text: code}}
	}
	return runs
}

func sameStyle(a, b CodeRun) bool {
	return a.Color == b.Color && a.Bold == b.Bold && a.Italic == b.Italic
}
