package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	md2docx "github.com/Qiuzg/go-md2docx"
	"github.com/Qiuzg/go-md2docx/internal/config"
)

// Exit codes for the md2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrDecodeMarkdown) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteDocx) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, md2docx.ErrEmptyMarkdown) ||
		errors.Is(err, md2docx.ErrInvalidPageSize) ||
		errors.Is(err, md2docx.ErrInvalidOrientation) ||
		errors.Is(err, md2docx.ErrInvalidMargin) ||
		errors.Is(err, md2docx.ErrInvalidImageWidth) ||
		errors.Is(err, md2docx.ErrInvalidImageTimeout) ||
		errors.Is(err, md2docx.ErrInvalidBaseURL) ||
		errors.Is(err, md2docx.ErrStyleNotFound) ||
		errors.Is(err, md2docx.ErrInvalidAssetPath) ||
		errors.Is(err, md2docx.ErrInvalidHighlightStyle) {
		return ExitUsage
	}

	return ExitGeneral
}
