// Package pipeline implements the Markdown-to-DOCX conversion pipeline.
//
// The stages run strictly in sequence:
//   - Preprocessing (UTF-8 repair, line endings, Unicode NFC)
//   - Block parsing into Heading, Paragraph, Code, Image, Table and List
//   - Inline formatting of emphasis into styled runs
//   - Rendering of blocks into an internal/docx Document
//
// Rendering fetches images through an ImageLoader and optionally colours
// code blocks through a CodeHighlighter. Image failures never abort a
// conversion; they are replaced by placeholder text.
//
// Serialization of the finished document is left to the caller, which owns
// the docx.Document for the duration of one conversion.
package pipeline
