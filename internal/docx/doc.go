// Package docx builds WordprocessingML (.docx) packages.
//
// A Document accumulates body content in order: paragraphs made of styled
// runs, tables, and inline pictures. Nothing is written until WriteTo or
// Bytes serializes the package, so a Document is a builder owned by a single
// conversion and is not safe for concurrent use.
//
//	doc := docx.New(docx.Options{})
//	p := doc.AddParagraph()
//	p.LineSpacing = docx.OnePointFive
//	r := p.AddRun("Hello")
//	r.Bold = true
//	data, err := doc.Bytes()
//
// The package writes the minimum set of parts Word and LibreOffice need:
// content types, package relationships, the main document, styles,
// numbering, core and app properties, and one media part per picture.
package docx
