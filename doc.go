// Package md2docx converts Markdown documents to Office Open XML word
// processing documents (.docx).
//
// # Quick Start
//
//	conv, err := md2docx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown: "# Hello\n\nWorld",
//	    Name:     "hello",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.DOCX, 0644)
//
// Callers that only need success or failure can use the boolean form:
//
//	ok, data := md2docx.ConvertMarkdown(markdown, 5.0)
//
// # Conversion Pipeline
//
//  1. Preprocessing: line endings, invalid UTF-8, Unicode NFC
//  2. Block parsing: headings, fenced code, tables, lists, images, paragraphs
//  3. Inline formatting: bold and italic runs
//  4. Rendering: blocks are laid out with fixed typography; images are
//     fetched, decoded and embedded, or replaced by "[image: alt]"
//  5. Serialization: the document is written as a zip package
//
// The parser accepts a practical subset of Markdown. Lines that fit no rule
// become paragraphs, so parsing never fails.
//
// # Configuration
//
//	conv, err := md2docx.NewConverter(
//	    md2docx.WithImageSettings(md2docx.ImageSettings{
//	        Width:   4,
//	        BaseURL: "https://example.com/docs/",
//	    }),
//	    md2docx.WithPage(&md2docx.PageSettings{Size: "a4", Orientation: "portrait", Margin: 1}),
//	    md2docx.WithHighlight("github"),
//	    md2docx.WithLogger(slog.Default()),
//	)
//
// # Parallel Processing
//
// Converters are safe for concurrent use. ConverterPool bounds the number of
// conversions in flight:
//
//	pool, err := md2docx.NewConverterPool(md2docx.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	defer pool.Release(conv)
//
// # Custom Styles
//
// Style sheets are word/styles.xml templates. A directory passed to
// WithAssetPath overrides the embedded sheets by name:
//
//	assets/
//	└── styles/
//	    └── corporate.xml
package md2docx
