package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	flag "github.com/spf13/pflag"

	md2docx "github.com/Qiuzg/go-md2docx"
	"github.com/Qiuzg/go-md2docx/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"render failure", md2docx.ErrRender, ExitGeneral},

		{"not exist", os.ErrNotExist, ExitIO},
		{"permission", fmt.Errorf("open: %w", os.ErrPermission), ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no markdown files", fmt.Errorf("%w in dir", ErrNoMarkdownFiles), ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"decode markdown", ErrDecodeMarkdown, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write docx", ErrWriteDocx, ExitIO},

		{"usage", fmt.Errorf("%w: bad flag", ErrUsage), ExitUsage},
		{"help", flag.ErrHelp, ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"workers", ErrInvalidWorkerCount, ExitUsage},
		{"timeout", ErrInvalidTimeout, ExitUsage},
		{"config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config invalid", config.ErrConfigInvalid, ExitUsage},
		{"empty markdown", md2docx.ErrEmptyMarkdown, ExitUsage},
		{"page size", md2docx.ErrInvalidPageSize, ExitUsage},
		{"orientation", md2docx.ErrInvalidOrientation, ExitUsage},
		{"margin", md2docx.ErrInvalidMargin, ExitUsage},
		{"image width", md2docx.ErrInvalidImageWidth, ExitUsage},
		{"image timeout", md2docx.ErrInvalidImageTimeout, ExitUsage},
		{"base url", md2docx.ErrInvalidBaseURL, ExitUsage},
		{"style", md2docx.ErrStyleNotFound, ExitUsage},
		{"asset path", md2docx.ErrInvalidAssetPath, ExitUsage},
		{"highlight style", md2docx.ErrInvalidHighlightStyle, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
