// Package textenc decodes text files of unknown charset to UTF-8.
//
// UTF-8 input (with or without BOM) and UTF-16 input with a BOM are decoded
// directly. Anything else goes through charset detection; every candidate
// the detector reports is decoded and scored, since detectors often
// mistake CJK double-byte encodings for single-byte Latin ones.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// UTF8 is the charset name reported for input that needed no conversion.
const UTF8 = "UTF-8"

var (
	// ErrBinaryInput indicates the data contains NUL bytes outside UTF-16/32.
	ErrBinaryInput = errors.New("input looks like binary data")

	// ErrUnknownCharset indicates no detected charset could decode the data.
	ErrUnknownCharset = errors.New("cannot determine text encoding")
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decoded is the UTF-8 text and the charset it was decoded from.
type Decoded struct {
	Text       string
	Charset    string
	Confidence int // detector confidence, 100 for BOM or valid UTF-8
}

// Decode converts data to UTF-8. The UTF-8 BOM is stripped.
func Decode(data []byte) (Decoded, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return Decoded{Text: string(data[len(bomUTF8):]), Charset: UTF8, Confidence: 100}, nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		enc := xunicode.UTF16(xunicode.BigEndian, xunicode.ExpectBOM)
		text, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return Decoded{}, fmt.Errorf("%w: %v", ErrUnknownCharset, err)
		}
		charset := "UTF-16BE"
		if bytes.HasPrefix(data, bomUTF16LE) {
			charset = "UTF-16LE"
		}
		return Decoded{Text: string(text), Charset: charset, Confidence: 100}, nil
	}

	if utf8.Valid(data) {
		if bytes.IndexByte(data, 0) >= 0 {
			return Decoded{}, ErrBinaryInput
		}
		return Decoded{Text: string(data), Charset: UTF8, Confidence: 100}, nil
	}

	return detect(data)
}

func detect(data []byte) (Decoded, error) {
	results, err := chardet.NewTextDetector().DetectAll(data)
	if err != nil || len(results) == 0 {
		return Decoded{}, ErrUnknownCharset
	}

	var best Decoded
	bestScore := 0
	found := false
	for _, r := range results {
		enc := lookup(r.Charset)
		if enc == nil {
			continue
		}
		text, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		if !isUTF16or32(r.Charset) && bytes.IndexByte(text, 0) >= 0 {
			continue
		}
		score := scoreText(string(text), r.Confidence)
		if !found || score > bestScore {
			best = Decoded{Text: string(text), Charset: r.Charset, Confidence: r.Confidence}
			bestScore = score
			found = true
		}
	}

	if !found {
		if bytes.IndexByte(data, 0) >= 0 {
			return Decoded{}, ErrBinaryInput
		}
		return Decoded{}, ErrUnknownCharset
	}
	return best, nil
}

// lookup maps detector charset names to decoders.
func lookup(charset string) encoding.Encoding {
	switch strings.ToUpper(charset) {
	case "UTF-32LE":
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	case "UTF-32BE":
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	case "GB-18030":
		charset = "gb18030"
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil
	}
	return enc
}

func isUTF16or32(charset string) bool {
	upper := strings.ToUpper(charset)
	return strings.HasPrefix(upper, "UTF-16") || strings.HasPrefix(upper, "UTF-32")
}

// scoreText ranks a decoding: ideographs and kana count double, while
// replacement characters, control characters and the Latin-1 symbol block
// that mis-decoded double-byte text tends to land in are penalized.
func scoreText(text string, confidence int) int {
	score := confidence
	for _, r := range text {
		switch {
		case r == utf8.RuneError:
			score -= 10
		case r < 0x20 && r != '\n' && r != '\r' && r != '\t':
			score -= 5
		case r >= 0x80 && r <= 0xBF:
			score--
		case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul):
			score += 2
		case r < 0x80 && unicode.IsLetter(r):
			score++
		}
	}
	return score
}
