package docx

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
)

// WordprocessingML and DrawingML namespaces.
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// xmlWriter accumulates markup. Text and attribute values go through
// escape; everything passed to raw must already be well formed.
type xmlWriter struct {
	buf bytes.Buffer
}

func (w *xmlWriter) header() { w.buf.WriteString(xmlHeader) }

func (w *xmlWriter) raw(s string) { w.buf.WriteString(s) }

func (w *xmlWriter) escape(s string) {
	// EscapeText replaces characters that are invalid in XML with U+FFFD.
	_ = xml.EscapeText(&w.buf, []byte(s))
}

// attr writes ` name="value"` with the value escaped.
func (w *xmlWriter) attr(name, value string) {
	w.buf.WriteByte(' ')
	w.buf.WriteString(name)
	w.buf.WriteString(`="`)
	w.escape(value)
	w.buf.WriteByte('"')
}

func (w *xmlWriter) valElem(name, value string) {
	w.raw("<" + name)
	w.attr("w:val", value)
	w.raw("/>")
}

func (w *xmlWriter) bytes() []byte { return w.buf.Bytes() }

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func (d *Document) writeDocumentXML(w *xmlWriter) {
	w.header()
	w.raw(`<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR + `" xmlns:wp="` + nsWP +
		`" xmlns:a="` + nsA + `" xmlns:pic="` + nsPic + `"><w:body>`)
	for _, el := range d.body {
		el.writeXML(w)
	}
	d.writeSectionXML(w)
	w.raw(`</w:body></w:document>`)
}

func (d *Document) writeSectionXML(w *xmlWriter) {
	page := d.opts.Page
	width, height := page.Size.Width, page.Size.Height
	w.raw(`<w:sectPr><w:pgSz`)
	if page.Landscape {
		width, height = height, width
	}
	w.attr("w:w", itoa(width.Twips()))
	w.attr("w:h", itoa(height.Twips()))
	if page.Landscape {
		w.attr("w:orient", "landscape")
	}
	margin := itoa(page.Margin.Twips())
	w.raw(`/><w:pgMar`)
	w.attr("w:top", margin)
	w.attr("w:right", margin)
	w.attr("w:bottom", margin)
	w.attr("w:left", margin)
	w.raw(` w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`)
}

func (p *Paragraph) writeXML(w *xmlWriter) {
	w.raw("<w:p>")
	p.writeProperties(w)
	for _, r := range p.Runs {
		r.writeXML(w)
	}
	w.raw("</w:p>")
}

// writeProperties emits w:pPr children in schema order.
func (p *Paragraph) writeProperties(w *xmlWriter) {
	if p.Style == "" && p.NumID == 0 && p.Shading == "" && p.LineSpacing == 0 &&
		p.FirstLineIndent == 0 && p.LeftIndent == 0 && p.RightIndent == 0 &&
		p.Align == AlignDefault && p.OutlineLevel == 0 {
		return
	}
	w.raw("<w:pPr>")
	if p.Style != "" {
		w.valElem("w:pStyle", p.Style)
	}
	if p.NumID != 0 {
		w.raw(`<w:numPr><w:ilvl w:val="0"/>`)
		w.valElem("w:numId", strconv.Itoa(p.NumID))
		w.raw(`</w:numPr>`)
	}
	if p.Shading != "" {
		w.raw(`<w:shd w:val="clear" w:color="auto"`)
		w.attr("w:fill", p.Shading)
		w.raw("/>")
	}
	if p.LineSpacing != 0 {
		w.raw("<w:spacing")
		w.attr("w:line", strconv.Itoa(int(p.LineSpacing)))
		w.raw(` w:lineRule="auto"/>`)
	}
	if p.FirstLineIndent != 0 || p.LeftIndent != 0 || p.RightIndent != 0 {
		w.raw("<w:ind")
		if p.LeftIndent != 0 {
			w.attr("w:left", itoa(p.LeftIndent.Twips()))
		}
		if p.RightIndent != 0 {
			w.attr("w:right", itoa(p.RightIndent.Twips()))
		}
		if p.FirstLineIndent != 0 {
			w.attr("w:firstLine", itoa(p.FirstLineIndent.Twips()))
		}
		w.raw("/>")
	}
	if p.Align != AlignDefault {
		w.valElem("w:jc", string(p.Align))
	}
	if p.OutlineLevel > 0 {
		w.valElem("w:outlineLvl", strconv.Itoa(p.OutlineLevel-1))
	}
	w.raw("</w:pPr>")
}

func (r *Run) writeXML(w *xmlWriter) {
	w.raw("<w:r>")
	r.writeProperties(w)
	if r.Picture != nil {
		r.Picture.writeXML(w)
	}
	r.writeText(w)
	w.raw("</w:r>")
}

// writeProperties emits w:rPr children in schema order.
func (r *Run) writeProperties(w *xmlWriter) {
	if r.Font == (Font{}) && !r.Bold && !r.Italic && r.Color == "" && r.Size == 0 {
		return
	}
	w.raw("<w:rPr>")
	if r.Font != (Font{}) {
		w.raw("<w:rFonts")
		if r.Font.ASCII != "" {
			w.attr("w:ascii", r.Font.ASCII)
			w.attr("w:hAnsi", r.Font.ASCII)
		}
		if r.Font.EastAsia != "" {
			w.attr("w:eastAsia", r.Font.EastAsia)
		}
		w.raw("/>")
	}
	if r.Bold {
		w.raw("<w:b/><w:bCs/>")
	}
	if r.Italic {
		w.raw("<w:i/><w:iCs/>")
	}
	if r.Color != "" {
		w.valElem("w:color", r.Color)
	}
	if r.Size != 0 {
		size := itoa(r.Size.HalfPoints())
		w.valElem("w:sz", size)
		w.valElem("w:szCs", size)
	}
	w.raw("</w:rPr>")
}

// writeText maps newlines to w:br and tabs to w:tab.
func (r *Run) writeText(w *xmlWriter) {
	if r.Text == "" {
		return
	}
	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			w.raw("<w:br/>")
		}
		for j, seg := range strings.Split(line, "\t") {
			if j > 0 {
				w.raw("<w:tab/>")
			}
			if seg == "" {
				continue
			}
			w.raw(`<w:t xml:space="preserve">`)
			w.escape(seg)
			w.raw("</w:t>")
		}
	}
}

func (pic *Picture) writeXML(w *xmlWriter) {
	cx, cy := itoa(pic.Width.EMU()), itoa(pic.Height.EMU())
	id := strconv.Itoa(pic.id)
	w.raw(`<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`)
	w.raw(`<wp:extent cx="` + cx + `" cy="` + cy + `"/>`)
	w.raw(`<wp:docPr id="` + id + `"`)
	w.attr("name", "Picture "+id)
	w.raw(`/><wp:cNvGraphicFramePr><a:graphicFrameLocks noChangeAspect="1"/></wp:cNvGraphicFramePr>`)
	w.raw(`<a:graphic><a:graphicData uri="` + nsPic + `"><pic:pic>`)
	w.raw(`<pic:nvPicPr><pic:cNvPr id="0"`)
	w.attr("name", pic.name)
	w.raw(`/><pic:cNvPicPr/></pic:nvPicPr>`)
	w.raw(`<pic:blipFill><a:blip`)
	w.attr("r:embed", pic.rID)
	w.raw(`/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`)
	w.raw(`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="` + cx + `" cy="` + cy + `"/></a:xfrm>`)
	w.raw(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`)
	w.raw(`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing>`)
}

func (t *Table) writeXML(w *xmlWriter) {
	w.raw("<w:tbl><w:tblPr>")
	if t.Style != "" {
		w.valElem("w:tblStyle", t.Style)
	}
	w.raw(`<w:tblW w:w="0" w:type="auto"/>`)
	w.raw(`<w:tblLook w:val="04A0" w:firstRow="1" w:lastRow="0" w:firstColumn="1" w:lastColumn="0" w:noHBand="0" w:noVBand="1"/>`)
	w.raw("</w:tblPr><w:tblGrid>")
	widths := t.gridWidths()
	for _, cw := range widths {
		w.raw("<w:gridCol")
		w.attr("w:w", itoa(cw))
		w.raw("/>")
	}
	w.raw("</w:tblGrid>")
	for _, row := range t.rows {
		w.raw("<w:tr>")
		for c, cell := range row {
			w.raw("<w:tc><w:tcPr><w:tcW")
			w.attr("w:w", itoa(widths[c]))
			w.raw(` w:type="dxa"/></w:tcPr>`)
			for _, p := range cell.Paragraphs {
				p.writeXML(w)
			}
			w.raw("</w:tc>")
		}
		w.raw("</w:tr>")
	}
	w.raw("</w:tbl>")
}

// gridWidths returns column widths in twips. Without explicit widths the
// columns share 6.5 inches evenly.
func (t *Table) gridWidths() []int64 {
	widths := make([]int64, t.cols)
	if len(t.ColumnWidths) == t.cols {
		for i, cw := range t.ColumnWidths {
			widths[i] = cw.Twips()
		}
		return widths
	}
	each := Inches(6.5).Twips() / int64(t.cols)
	for i := range widths {
		widths[i] = each
	}
	return widths
}
