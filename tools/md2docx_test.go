package tools

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	md2docx "github.com/Qiuzg/go-md2docx"
	"github.com/Qiuzg/go-md2docx/internal/docx"
)

func newMd2Docx(t *testing.T, opts ...md2docx.Option) *Md2Docx {
	t.Helper()
	conv, err := md2docx.NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return NewMd2Docx(conv)
}

func TestMd2Docx_Invoke(t *testing.T) {
	t.Parallel()

	tool := newMd2Docx(t)

	tests := []struct {
		name         string
		params       map[string]any
		wantFilename string
	}{
		{
			name:         "named document",
			params:       map[string]any{"content": "# Title\n\nBody", "name": "report"},
			wantFilename: "report.docx",
		},
		{
			name:         "default name",
			params:       map[string]any{"content": "text"},
			wantFilename: "document.docx",
		},
		{
			name:         "suffix appended unconditionally",
			params:       map[string]any{"content": "text", "name": "a.docx"},
			wantFilename: "a.docx.docx",
		},
		{
			name:         "image width accepted",
			params:       map[string]any{"content": "text", "name": "w", "image_width": 3},
			wantFilename: "w.docx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msgs, err := tool.Invoke(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
			if len(msgs) != 2 {
				t.Fatalf("Invoke() returned %d messages, want 2", len(msgs))
			}

			ack := msgs[0]
			wantAck := "Document '" + tt.wantFilename + "' generated successfully"
			if ack.Kind != KindText || ack.Text != wantAck {
				t.Errorf("ack = %+v, want text %q", ack, wantAck)
			}

			blob := msgs[1]
			if blob.Kind != KindBlob {
				t.Fatalf("second message kind = %q, want blob", blob.Kind)
			}
			if blob.Meta[MetaMIMEType] != docx.MIMEType {
				t.Errorf("mime_type = %q", blob.Meta[MetaMIMEType])
			}
			if blob.Meta[MetaFilename] != tt.wantFilename {
				t.Errorf("filename = %q, want %q", blob.Meta[MetaFilename], tt.wantFilename)
			}
			if _, err := docx.Extract(blob.Blob); err != nil {
				t.Errorf("blob is not a docx package: %v", err)
			}
		})
	}
}

func TestMd2Docx_NoContent(t *testing.T) {
	t.Parallel()

	tool := newMd2Docx(t)

	for _, params := range []map[string]any{
		{},
		{"content": ""},
		{"content": nil, "name": "x"},
	} {
		msgs, err := tool.Invoke(context.Background(), params)
		if err != nil {
			t.Fatalf("Invoke(%v) error = %v", params, err)
		}
		if len(msgs) != 1 || msgs[0].Kind != KindText || msgs[0].Text != MsgNoContent {
			t.Errorf("Invoke(%v) = %+v, want single %q", params, msgs, MsgNoContent)
		}
	}
}

func TestMd2Docx_ConversionFailure(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	tool := newMd2Docx(t, md2docx.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	// A negative width passes the host boundary but fails input validation.
	msgs, err := tool.Invoke(context.Background(), map[string]any{"content": "text", "image_width": -1.0})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0].Text != MsgConvertFailure {
		t.Errorf("Invoke() = %+v, want single %q", msgs, MsgConvertFailure)
	}
	if !strings.Contains(logs.String(), "invalid image width") {
		t.Errorf("logs = %q, want logged cause", logs.String())
	}
}

func TestMd2Docx_InvalidParamType(t *testing.T) {
	t.Parallel()

	tool := newMd2Docx(t)

	tests := []struct {
		name   string
		params map[string]any
	}{
		{"content not a string", map[string]any{"content": 42}},
		{"name not a string", map[string]any{"content": "x", "name": []int{1}}},
		{"width not a number", map[string]any{"content": "x", "image_width": "wide"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tool.Invoke(context.Background(), tt.params)
			if !errors.Is(err, ErrInvalidParam) {
				t.Errorf("Invoke() error = %v, want ErrInvalidParam", err)
			}
		})
	}
}
