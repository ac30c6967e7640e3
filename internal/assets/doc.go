// Package assets provides the word/styles.xml sheets used for DOCX output.
//
// A style sheet is a text/template over StyleData. Sheets are loaded by
// name from embedded files or from a custom directory:
//
//	AssetResolver
//	  ├── FilesystemLoader  {base}/styles/{name}.xml  (optional, tried first)
//	  └── EmbeddedLoader    styles/{name}.xml         (fallback)
//
// The resolver only falls back when the custom loader reports
// ErrStyleNotFound. Validation and I/O errors are returned as-is.
//
// Every sheet must define the paragraph styles ListBullet and ListNumber
// bound to numbering instances 1 and 2, and the table style TableGrid.
package assets
