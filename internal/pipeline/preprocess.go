package pipeline

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// byteOrderMark is stripped from the start of the input.
const byteOrderMark = "\uFEFF"

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// TextPreprocessor normalizes raw input before block parsing.
type TextPreprocessor struct{}

// PreprocessMarkdown repairs invalid UTF-8, drops a leading byte order mark,
// converts line endings to "\n" and composes the text to Unicode NFC so that
// visually identical input parses and measures identically.
func (p *TextPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.ToValidUTF8(content, "\uFFFD")
	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)
	return norm.NFC.String(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
