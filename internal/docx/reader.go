package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Reader errors.
var (
	// ErrNotDocx indicates the data is not a WordprocessingML package.
	ErrNotDocx = errors.New("not a docx package")

	// ErrPartTooLarge indicates word/document.xml inflates past MaxPartBytes.
	ErrPartTooLarge = errors.New("document part too large")
)

// MaxPartBytes caps the decompressed size of word/document.xml read by
// Extract.
const MaxPartBytes = 64 << 20

// Extracted is the plain-text view of a package.
type Extracted struct {
	// Paragraphs holds the text of every w:p in document order, including
	// paragraphs inside table cells.
	Paragraphs []string
	// Media lists the part names under word/media/.
	Media []string
}

// Text joins non-empty paragraphs with newlines.
func (e *Extracted) Text() string {
	var parts []string
	for _, p := range e.Paragraphs {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n")
}

// Extract reads paragraph text from a serialized package.
func Extract(data []byte) (*Extracted, error) {
	return extract(data, MaxPartBytes)
}

func extract(data []byte, limit int64) (*Extracted, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	var doc *zip.File
	out := &Extracted{}
	for _, f := range zr.File {
		switch {
		case f.Name == "word/document.xml":
			doc = f
		case strings.HasPrefix(f.Name, "word/media/"):
			out.Media = append(out.Media, f.Name)
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: missing word/document.xml", ErrNotDocx)
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("opening word/document.xml: %w", err)
	}
	defer rc.Close()

	lr := &io.LimitedReader{R: rc, N: limit + 1}
	out.Paragraphs, err = extractParagraphs(lr)
	if lr.N <= 0 {
		return nil, fmt.Errorf("%w: word/document.xml exceeds %d bytes", ErrPartTooLarge, limit)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func extractParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return paragraphs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decoding word/document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != nsW {
				continue
			}
			switch t.Name.Local {
			case "p":
				current.Reset()
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != nsW {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
}
