package assets

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"
)

// StyleData parameterizes a style sheet template.
type StyleData struct {
	BodyFont     string
	EastAsiaFont string
	CodeFont     string
	// BodySize is the default run size in half-points.
	BodySize int
}

var styleFuncs = template.FuncMap{
	"attr": escapeAttr,
}

func escapeAttr(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// RenderStyle executes a style sheet template and checks that the result is
// well-formed XML. name is used in error messages only.
func RenderStyle(name, tmpl string, data StyleData) ([]byte, error) {
	t, err := template.New(name).Funcs(styleFuncs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrStyleRender, name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrStyleRender, name, err)
	}

	if err := checkWellFormed(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrStyleRender, name, err)
	}

	return buf.Bytes(), nil
}

func checkWellFormed(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if !sawRoot {
				return errors.New("missing w:styles root element")
			}
			return nil
		}
		if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "styles" {
			sawRoot = true
		}
	}
}
