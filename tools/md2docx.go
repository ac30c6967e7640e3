package tools

import (
	"context"
	"fmt"

	md2docx "github.com/Qiuzg/go-md2docx"
	"github.com/Qiuzg/go-md2docx/internal/docx"
)

// Md2Docx messages.
const (
	MsgNoContent      = "No markdown content provided."
	MsgConvertFailure = "Error converting markdown to DOCX"
)

// Md2Docx converts markdown to a .docx blob.
//
// Parameters: "content" (markdown, required), "name" (file stem, default
// "document"), "image_width" (inches, optional).
type Md2Docx struct {
	conv *md2docx.Converter
}

var _ Tool = (*Md2Docx)(nil)

// NewMd2Docx returns the tool backed by conv. Conversion failures are
// logged through the converter's logger.
func NewMd2Docx(conv *md2docx.Converter) *Md2Docx {
	return &Md2Docx{conv: conv}
}

// Invoke yields an acknowledgment and the document on success, or a single
// text message on failure.
func (t *Md2Docx) Invoke(ctx context.Context, params map[string]any) ([]Message, error) {
	content, err := stringParam(params, "content")
	if err != nil {
		return nil, err
	}
	name, err := stringParam(params, "name")
	if err != nil {
		return nil, err
	}
	width, err := floatParam(params, "image_width")
	if err != nil {
		return nil, err
	}

	if content == "" {
		return []Message{TextMessage(MsgNoContent)}, nil
	}

	ok, data := t.conv.ConvertMarkdown(ctx, content, width)
	if !ok {
		return []Message{TextMessage(MsgConvertFailure)}, nil
	}

	filename := md2docx.Filename(name)
	return []Message{
		TextMessage(fmt.Sprintf("Document '%s' generated successfully", filename)),
		BlobMessage(data, docx.MIMEType, filename),
	}, nil
}
