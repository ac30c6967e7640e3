package tools

import (
	"context"
	"errors"

	"github.com/Qiuzg/go-md2docx/internal/docx"
)

// DocumentExtractor returns the text of a .docx file passed as "document".
type DocumentExtractor struct{}

var _ Tool = DocumentExtractor{}

// Invoke yields {"result": text, "paragraphs": n, "media": n}. A missing or
// unreadable document yields a text message.
func (DocumentExtractor) Invoke(_ context.Context, params map[string]any) ([]Message, error) {
	data, err := blobParam(params, "document")
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []Message{TextMessage("No document provided.")}, nil
	}

	ex, err := docx.Extract(data)
	if err != nil {
		if errors.Is(err, docx.ErrNotDocx) {
			return []Message{TextMessage("The document is not a .docx file.")}, nil
		}
		return []Message{TextMessage("Error reading document: " + err.Error())}, nil
	}

	paragraphs := 0
	for _, p := range ex.Paragraphs {
		if p != "" {
			paragraphs++
		}
	}
	return []Message{JSONMessage(map[string]any{
		"result":     ex.Text(),
		"paragraphs": paragraphs,
		"media":      len(ex.Media),
	})}, nil
}
