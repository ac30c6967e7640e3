package assets

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedStyles - Every built-in sheet renders and defines required styles
// ---------------------------------------------------------------------------

func TestEmbeddedStyles(t *testing.T) {
	t.Parallel()

	names := AvailableStyles()
	if len(names) < 2 {
		t.Fatalf("AvailableStyles() = %v, want at least default and light-grid", names)
	}

	data := StyleData{BodyFont: "SimSun", EastAsiaFont: "SimSun", CodeFont: "Consolas", BodySize: 28}
	required := []string{
		`w:styleId="Normal"`,
		`w:styleId="ListBullet"`,
		`w:styleId="ListNumber"`,
		`w:styleId="TableGrid"`,
		`<w:numId w:val="1"/>`,
		`<w:numId w:val="2"/>`,
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", name, err)
			}
			out, err := RenderStyle(name, tmpl, data)
			if err != nil {
				t.Fatalf("RenderStyle(%q) error = %v", name, err)
			}
			for _, want := range required {
				if !strings.Contains(string(out), want) {
					t.Errorf("%s missing %s", name, want)
				}
			}
		})
	}
}

func TestLoadStyle_Embedded(t *testing.T) {
	t.Parallel()

	if _, err := LoadStyle("nonexistent"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(nonexistent) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := LoadStyle("../default"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle(../default) error = %v, want ErrInvalidAssetName", err)
	}
}

// ---------------------------------------------------------------------------
// TestRenderStyle - Template execution and XML checks
// ---------------------------------------------------------------------------

func TestRenderStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tmpl    string
		data    StyleData
		want    string
		wantErr error
	}{
		{
			name: "fonts substituted",
			tmpl: `<w:styles><w:rFonts w:ascii="{{attr .BodyFont}}"/></w:styles>`,
			data: StyleData{BodyFont: "Calibri"},
			want: `w:ascii="Calibri"`,
		},
		{
			name: "attribute escaped",
			tmpl: `<w:styles><w:rFonts w:ascii="{{attr .BodyFont}}"/></w:styles>`,
			data: StyleData{BodyFont: `A&"B"`},
			want: `w:ascii="A&amp;&#34;B&#34;"`,
		},
		{
			name:    "template syntax error",
			tmpl:    `<w:styles>{{.BodyFont</w:styles>`,
			wantErr: ErrStyleRender,
		},
		{
			name:    "unknown field",
			tmpl:    `<w:styles>{{.Missing}}</w:styles>`,
			wantErr: ErrStyleRender,
		},
		{
			name:    "malformed xml",
			tmpl:    `<w:styles><w:style></w:styles>`,
			wantErr: ErrStyleRender,
		},
		{
			name:    "wrong root element",
			tmpl:    `<w:document/>`,
			wantErr: ErrStyleRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RenderStyle("test", tt.tmpl, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RenderStyle() error = %v, want %v", err, tt.wantErr)
			}
			if tt.want != "" && !strings.Contains(string(got), tt.want) {
				t.Errorf("RenderStyle() = %s, want substring %s", got, tt.want)
			}
		})
	}
}
