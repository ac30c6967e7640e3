package docx

// Length is a distance in English Metric Units (EMU), the base unit of
// DrawingML. 914400 EMU make one inch, 12700 make one point.
type Length int64

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	emuPerTwip  = 635
)

// Inches returns a Length of n inches.
func Inches(n float64) Length {
	return Length(n * emuPerInch)
}

// Pt returns a Length of n points.
func Pt(n float64) Length {
	return Length(n * emuPerPoint)
}

// Twips converts to twentieths of a point, used by paragraph indents,
// table widths and page geometry.
func (l Length) Twips() int64 {
	return int64(l) / emuPerTwip
}

// HalfPoints converts to half points, the unit of w:sz font sizes.
func (l Length) HalfPoints() int64 {
	return int64(l) * 2 / emuPerPoint
}

// EMU returns the raw value.
func (l Length) EMU() int64 {
	return int64(l)
}

// Points returns the length in points.
func (l Length) Points() float64 {
	return float64(l) / emuPerPoint
}

// LineSpacing is a proportional line spacing in 240ths of a line.
type LineSpacing int

// Common proportional spacings.
const (
	SingleSpacing LineSpacing = 240
	OnePointFive  LineSpacing = 360
	DoubleSpacing LineSpacing = 480
)

// Alignment is the horizontal justification of a paragraph.
type Alignment string

// Paragraph alignments (w:jc values).
const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignBoth    Alignment = "both"
)
