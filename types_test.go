package md2docx

import (
	"errors"
	"testing"
	"time"

	"github.com/Qiuzg/go-md2docx/internal/docx"
)

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{"nil is valid", nil, nil},
		{"defaults", DefaultPageSettings(), nil},
		{"a4 landscape", &PageSettings{Size: "a4", Orientation: "landscape", Margin: 0.5}, nil},
		{"case insensitive", &PageSettings{Size: "LEGAL", Orientation: "Portrait", Margin: 1}, nil},
		{"minimum margin", &PageSettings{Size: "letter", Orientation: "portrait", Margin: MinMargin}, nil},
		{"maximum margin", &PageSettings{Size: "letter", Orientation: "portrait", Margin: MaxMargin}, nil},
		{"unknown size", &PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 1}, ErrInvalidPageSize},
		{"empty size", &PageSettings{Orientation: "portrait", Margin: 1}, ErrInvalidPageSize},
		{"unknown orientation", &PageSettings{Size: "a4", Orientation: "upside-down", Margin: 1}, ErrInvalidOrientation},
		{"margin too small", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.1}, ErrInvalidMargin},
		{"margin too large", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 3.5}, ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageSettings_ContentWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page *PageSettings
		want docx.Length
	}{
		{"letter portrait", DefaultPageSettings(), docx.Inches(6.5)},
		{"letter landscape", &PageSettings{Size: "letter", Orientation: "landscape", Margin: 1}, docx.Inches(9)},
		{"uppercase size", &PageSettings{Size: "LETTER", Orientation: "portrait", Margin: 0.5}, docx.Inches(7.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.page.contentWidth(); got != tt.want {
				t.Errorf("contentWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestImageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings ImageSettings
		wantErr  error
	}{
		{"zero value", ImageSettings{}, nil},
		{"full settings", ImageSettings{Width: 4, Timeout: time.Second, BaseURL: "https://example.com/docs/"}, nil},
		{"file base url", ImageSettings{BaseURL: "file:///srv/docs/"}, nil},
		{"maximum width", ImageSettings{Width: MaxImageWidth}, nil},
		{"negative width", ImageSettings{Width: -0.5}, ErrInvalidImageWidth},
		{"width too large", ImageSettings{Width: MaxImageWidth + 1}, ErrInvalidImageWidth},
		{"negative timeout", ImageSettings{Timeout: -time.Second}, ErrInvalidImageTimeout},
		{"unsupported scheme", ImageSettings{BaseURL: "ftp://example.com/"}, ErrInvalidBaseURL},
		{"relative base url", ImageSettings{BaseURL: "docs/images"}, ErrInvalidBaseURL},
		{"unparseable base url", ImageSettings{BaseURL: "http://[::1"}, ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.settings.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
