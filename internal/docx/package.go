package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"time"
)

// MIMEType is the media type of a serialized package.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Relationship IDs inside word/_rels/document.xml.rels. Media parts are
// numbered from firstMediaRel.
const (
	relStyles     = "rId1"
	relNumbering  = "rId2"
	relSettings   = "rId3"
	firstMediaRel = 10
)

var mediaContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// countingWriter tracks bytes written for io.WriterTo.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo serializes the package as a zip archive.
func (d *Document) WriteTo(out io.Writer) (int64, error) {
	cw := &countingWriter{w: out}
	zw := zip.NewWriter(cw)

	parts := []struct {
		name string
		data func() []byte
	}{
		{"[Content_Types].xml", d.contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"docProps/core.xml", d.corePropsXML},
		{"docProps/app.xml", appPropsXML},
		{"word/document.xml", func() []byte {
			var w xmlWriter
			d.writeDocumentXML(&w)
			return w.bytes()
		}},
		{"word/_rels/document.xml.rels", d.documentRelsXML},
		{"word/styles.xml", d.stylesXML},
		{"word/numbering.xml", func() []byte {
			var w xmlWriter
			d.numbering.writeXML(&w)
			return w.bytes()
		}},
		{"word/settings.xml", settingsXML},
	}

	for _, part := range parts {
		if err := writeZipPart(zw, part.name, part.data()); err != nil {
			return cw.n, err
		}
	}
	for _, m := range d.media {
		if err := writeZipPart(zw, "word/media/"+m.name, m.data); err != nil {
			return cw.n, err
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("closing package: %w", err)
	}
	return cw.n, nil
}

func writeZipPart(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return fmt.Errorf("creating part %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing part %s: %w", name, err)
	}
	return nil
}

func (d *Document) contentTypesXML() []byte {
	var w xmlWriter
	w.header()
	w.raw(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	w.raw(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	w.raw(`<Default Extension="xml" ContentType="application/xml"/>`)
	seen := make(map[string]bool)
	for _, m := range d.media {
		if seen[m.ext] {
			continue
		}
		seen[m.ext] = true
		w.raw(`<Default`)
		w.attr("Extension", m.ext)
		w.attr("ContentType", mediaContentTypes[m.ext])
		w.raw(`/>`)
	}
	w.raw(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	w.raw(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	w.raw(`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>`)
	w.raw(`<Override PartName="/word/settings.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"/>`)
	w.raw(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	w.raw(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	w.raw(`</Types>`)
	return w.bytes()
}

func packageRelsXML() []byte {
	var w xmlWriter
	w.header()
	w.raw(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	w.raw(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>`)
	w.raw(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>`)
	w.raw(`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>`)
	w.raw(`</Relationships>`)
	return w.bytes()
}

func (d *Document) documentRelsXML() []byte {
	var w xmlWriter
	w.header()
	w.raw(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	w.raw(`<Relationship Id="` + relStyles + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	w.raw(`<Relationship Id="` + relNumbering + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>`)
	w.raw(`<Relationship Id="` + relSettings + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings" Target="settings.xml"/>`)
	for _, m := range d.media {
		w.raw(`<Relationship`)
		w.attr("Id", m.rID)
		w.raw(` Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"`)
		w.attr("Target", "media/"+m.name)
		w.raw(`/>`)
	}
	w.raw(`</Relationships>`)
	return w.bytes()
}

func (d *Document) corePropsXML() []byte {
	var w xmlWriter
	created := d.opts.Created.UTC().Format(time.RFC3339)
	w.header()
	w.raw(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	if d.opts.Title != "" {
		w.raw("<dc:title>")
		w.escape(d.opts.Title)
		w.raw("</dc:title>")
	}
	if d.opts.Author != "" {
		w.raw("<dc:creator>")
		w.escape(d.opts.Author)
		w.raw("</dc:creator>")
	}
	if d.opts.Identifier != "" {
		w.raw("<dc:identifier>")
		w.escape(d.opts.Identifier)
		w.raw("</dc:identifier>")
	}
	w.raw(`<dcterms:created xsi:type="dcterms:W3CDTF">` + created + `</dcterms:created>`)
	w.raw(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + created + `</dcterms:modified>`)
	w.raw(`</cp:coreProperties>`)
	return w.bytes()
}

func appPropsXML() []byte {
	return []byte(xmlHeader + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
		`<Application>go-md2docx</Application></Properties>`)
}

func settingsXML() []byte {
	return []byte(xmlHeader + `<w:settings xmlns:w="` + nsW + `">` +
		`<w:defaultTabStop w:val="720"/><w:compat><w:compatSetting w:name="compatibilityMode"` +
		` w:uri="http://schemas.microsoft.com/office/word" w:val="15"/></w:compat></w:settings>`)
}

func (d *Document) stylesXML() []byte {
	if len(d.opts.Styles) > 0 {
		return d.opts.Styles
	}
	return []byte(xmlHeader + `<w:styles xmlns:w="` + nsW + `">` +
		`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
		`<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/>` +
		`<w:pPr><w:numPr><w:numId w:val="1"/></w:numPr></w:pPr></w:style>` +
		`<w:style w:type="paragraph" w:styleId="ListNumber"><w:name w:val="List Number"/><w:basedOn w:val="Normal"/>` +
		`<w:pPr><w:numPr><w:numId w:val="2"/></w:numPr></w:pPr></w:style>` +
		`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:tblPr><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`</w:tblBorders></w:tblPr></w:style></w:styles>`)
}
