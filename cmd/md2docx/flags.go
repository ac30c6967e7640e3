package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// imageFlags holds image loading flags.
type imageFlags struct {
	baseURL string
	width   float64
	timeout string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// fontFlags holds font override flags.
type fontFlags struct {
	body     string
	eastAsia string
	code     string
}

// codeFlags holds code-block highlighting flags.
type codeFlags struct {
	highlight bool
	style     string
}

// assetFlags holds style sheet flags.
type assetFlags struct {
	style     string
	assetPath string
}

// documentFlags holds document property flags.
type documentFlags struct {
	title  string
	author string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      string
	workers     int
	timeout     string
	images      imageFlags
	page        pageFlags
	fonts       fontFlags
	code        codeFlags
	assets      assetFlags
	document    documentFlags
	printConfig bool
	version     bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.StringVar(&f.baseURL, "base-url", "", "base URL for relative image paths (default: the input file directory)")
	fs.Float64Var(&f.width, "image-width", 0, "image display width in inches (default 5)")
	fs.StringVar(&f.timeout, "image-timeout", "", "per-image fetch timeout (e.g. 10s)")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

func addFontFlags(fs *flag.FlagSet, f *fontFlags) {
	fs.StringVar(&f.body, "font", "", "body font (default SimSun)")
	fs.StringVar(&f.eastAsia, "east-asia-font", "", "east-Asian body font (default SimSun)")
	fs.StringVar(&f.code, "code-font", "", "code block font (default Consolas)")
}

func addCodeFlags(fs *flag.FlagSet, f *codeFlags) {
	fs.BoolVar(&f.highlight, "highlight", false, "colour fenced code blocks")
	fs.StringVar(&f.style, "highlight-style", "", "chroma style for --highlight (implies --highlight)")
}

func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "style sheet name (default, light-grid)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory whose styles/ override the embedded sheets")
}

func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (default: first level-1 heading)")
	fs.StringVar(&f.author, "author", "", "document author")
}

// newConvertFlagSet registers every convert flag on a new FlagSet.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g. 30s, 2m)")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration as YAML and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")

	addCommonFlags(fs, &f.common)
	addImageFlags(fs, &f.images)
	addPageFlags(fs, &f.page)
	addFontFlags(fs, &f.fonts)
	addCodeFlags(fs, &f.code)
	addAssetFlags(fs, &f.assets)
	addDocumentFlags(fs, &f.document)

	fs.SortFlags = false
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage is written to stderr on parse errors.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
