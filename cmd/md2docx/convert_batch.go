package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	md2docx "github.com/Qiuzg/go-md2docx"
	"github.com/Qiuzg/go-md2docx/internal/fileutil"
	"github.com/Qiuzg/go-md2docx/internal/hints"
	"github.com/Qiuzg/go-md2docx/internal/textenc"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrDecodeMarkdown = errors.New("failed to decode markdown file")
	ErrWriteDocx      = errors.New("failed to write DOCX file")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2docx.Input) (*md2docx.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2docx.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (CLIConverter, error)
	Release(CLIConverter)
	Size() int
}

// converterPool adapts md2docx.ConverterPool to Pool.
type converterPool struct {
	pool *md2docx.ConverterPool
}

var _ Pool = (*converterPool)(nil)

func (p *converterPool) Acquire(ctx context.Context) (CLIConverter, error) {
	c, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*md2docx.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) Size() int {
	return p.pool.Size()
}

// conversionParams groups values shared by every file of a batch.
type conversionParams struct {
	baseURL string // empty = directory of each input file
	logger  *slog.Logger
	now     func() time.Time
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath    string
	OutputPath   string
	Charset      string
	ImagesFailed int
	Err          error
	Duration     time.Duration
}

// convertBatch processes files concurrently using the converter pool.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire(ctx)
			if err != nil {
				// Drain so that other workers are not left with our share.
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile reads, decodes, converts and writes a single file.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := params.now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}

	raw, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	decoded, err := textenc.Decode(raw)
	if err != nil {
		return fail(fmt.Errorf("%w: %v%s", ErrDecodeMarkdown, err, hints.ForEncoding()))
	}
	result.Charset = decoded.Charset
	if decoded.Charset != textenc.UTF8 {
		params.logger.Debug("decoded input", "file", f.InputPath, "charset", decoded.Charset, "confidence", decoded.Confidence)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	baseURL := params.baseURL
	if baseURL == "" {
		baseURL = fileBaseURL(filepath.Dir(f.InputPath))
	}

	res, err := conv.Convert(ctx, md2docx.Input{
		Markdown: decoded.Text,
		Name:     strings.TrimSuffix(filepath.Base(f.OutputPath), ".docx"),
		BaseURL:  baseURL,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fail(fmt.Errorf("%w%s", err, hints.ForTimeout()))
		}
		return fail(err)
	}
	result.ImagesFailed = res.ImagesFailed

	if err := fileutil.WriteFileAtomic(f.OutputPath, res.DOCX, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteDocx, err))
	}

	result.Duration = params.now().Sub(start)
	return result
}

// fileBaseURL returns a file URL for dir with a trailing slash, so that
// relative image references resolve inside it. Empty if dir cannot be
// made absolute.
func fileBaseURL(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, f commonFlags, env *Environment) int {
	summary := countResults(results)
	imageWarnings := 0

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if r.ImagesFailed > 0 && !f.quiet {
			imageWarnings++
			fmt.Fprintf(env.Stderr, "warning: %s: %d image(s) replaced by placeholders\n", r.InputPath, r.ImagesFailed)
		}

		if f.quiet {
			continue
		}

		if f.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n", r.InputPath, r.OutputPath, r.Charset, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if imageWarnings > 0 {
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForImageFetch(), "\n"))
	}

	if !f.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
