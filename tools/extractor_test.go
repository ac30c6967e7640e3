package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Qiuzg/go-md2docx/internal/docx"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	doc := docx.New(docx.Options{Created: time.Unix(0, 0)})
	for _, text := range paragraphs {
		doc.AddParagraph().AddRun(text)
	}
	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	return data
}

func TestDocumentExtractor_Invoke(t *testing.T) {
	t.Parallel()

	data := buildDocx(t, "First paragraph", "", "第二段")

	tests := []struct {
		name  string
		value any
	}{
		{"raw bytes", data},
		{"file value", File{Filename: "a.docx", Blob: data}},
		{"file pointer", &File{Filename: "a.docx", Blob: data}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msgs, err := DocumentExtractor{}.Invoke(context.Background(), map[string]any{"document": tt.value})
			if err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
			if len(msgs) != 1 || msgs[0].Kind != KindJSON {
				t.Fatalf("Invoke() = %+v, want one json message", msgs)
			}
			got := msgs[0].JSON
			if got["result"] != "First paragraph\n第二段" {
				t.Errorf("result = %q", got["result"])
			}
			if got["paragraphs"] != 2 {
				t.Errorf("paragraphs = %v, want 2", got["paragraphs"])
			}
			if got["media"] != 0 {
				t.Errorf("media = %v, want 0", got["media"])
			}
		})
	}
}

func TestDocumentExtractor_BadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params map[string]any
		want   string
	}{
		{"missing", map[string]any{}, "No document provided."},
		{"nil file pointer", map[string]any{"document": (*File)(nil)}, "No document provided."},
		{"not a zip", map[string]any{"document": []byte("plain text")}, "The document is not a .docx file."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msgs, err := DocumentExtractor{}.Invoke(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
			if len(msgs) != 1 || msgs[0].Kind != KindText || msgs[0].Text != tt.want {
				t.Errorf("Invoke() = %+v, want text %q", msgs, tt.want)
			}
		})
	}
}

func TestDocumentExtractor_InvalidParamType(t *testing.T) {
	t.Parallel()

	_, err := DocumentExtractor{}.Invoke(context.Background(), map[string]any{"document": 3.14})
	if !errors.Is(err, ErrInvalidParam) {
		t.Errorf("Invoke() error = %v, want ErrInvalidParam", err)
	}
}
