// Package tools adapts the converter and the document helpers to a plugin
// host. A host passes named parameters and receives a sequence of typed
// messages:
//
//	params map[string]any  ->  Tool.Invoke  ->  []Message{text | json | blob}
//
// Three tools are provided:
//
//   - Md2Docx converts the "content" parameter to a .docx blob.
//   - DocumentExtractor returns the paragraph text of a .docx "document".
//   - FileInspector decodes and tabulates a CSV "query" file.
//
// User-facing failures (missing content, undecodable files) are reported as
// messages. Invoke returns an error only when the host passes a parameter of
// the wrong type.
package tools
