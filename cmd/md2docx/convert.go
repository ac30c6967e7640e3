package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	md2docx "github.com/Qiuzg/go-md2docx"
	"github.com/Qiuzg/go-md2docx/internal/assets"
	"github.com/Qiuzg/go-md2docx/internal/config"
	"github.com/Qiuzg/go-md2docx/internal/fileutil"
	"github.com/Qiuzg/go-md2docx/internal/hints"
	"github.com/Qiuzg/go-md2docx/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrNoInput         = errors.New("no input specified")
	ErrNoMarkdownFiles = errors.New("no markdown files found")
	ErrInvalidTimeout  = errors.New("invalid timeout")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "md2docx %s\n", Version)
		return nil
	}

	envCfg := loadEnvConfig(env.Getenv)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	workers := cmp.Or(flags.workers, envCfg.Workers)
	if err := validateWorkers(workers); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmp.Or(flags.common.config, envCfg.ConfigPath))
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", config.ErrConfigInvalid, err)
	}

	if flags.printConfig {
		return printConfig(env.Stdout, cfg)
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	logger := newLogger(env.Stderr, flags.common)
	size := min(md2docx.ResolvePoolSize(workers), len(files))
	logger.Debug("starting conversion", "files", len(files), "workers", size)

	pool, err := md2docx.NewConverterPool(size, buildOptions(cfg, timeout, logger)...)
	if err != nil {
		return withHint(err)
	}
	defer pool.Close()

	params := &conversionParams{
		baseURL: cfg.Images.BaseURL,
		logger:  logger,
		now:     env.Now,
	}
	results := convertBatch(ctx, &converterPool{pool: pool}, files, params)

	failed := printResults(results, flags.common, env)
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

// loadConfig loads the named config, or returns defaults for an empty name.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			searched := []string{name}
			if !fileutil.IsFilePath(name) {
				searched = config.SearchPaths(name)
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(searched))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) error {
	setIfNotEmpty(&cfg.Images.BaseURL, flags.images.baseURL)
	if flags.images.width > 0 {
		cfg.Images.Width = flags.images.width
	}
	if flags.images.timeout != "" {
		d, err := time.ParseDuration(flags.images.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: --image-timeout %q", ErrInvalidTimeout, flags.images.timeout)
		}
		cfg.Images.Timeout = d
	}

	setIfNotEmpty(&cfg.Page.Size, strings.ToLower(flags.page.size))
	setIfNotEmpty(&cfg.Page.Orientation, strings.ToLower(flags.page.orientation))
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}

	setIfNotEmpty(&cfg.Fonts.Body, flags.fonts.body)
	setIfNotEmpty(&cfg.Fonts.EastAsia, flags.fonts.eastAsia)
	setIfNotEmpty(&cfg.Fonts.Code, flags.fonts.code)

	if flags.code.highlight {
		cfg.Code.Highlight = true
	}
	if flags.code.style != "" {
		cfg.Code.Highlight = true
		cfg.Code.Style = flags.code.style
	}

	setIfNotEmpty(&cfg.Assets.Style, flags.assets.style)
	setIfNotEmpty(&cfg.Assets.BasePath, flags.assets.assetPath)

	setIfNotEmpty(&cfg.Document.Title, flags.document.title)
	setIfNotEmpty(&cfg.Document.Author, flags.document.author)
	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// resolveTimeout parses the --timeout flag, falling back to the
// environment. Zero selects the library default.
func resolveTimeout(flagValue string, envTimeout time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envTimeout, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use a duration like 30s or 2m)", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// buildOptions translates the merged config into converter options.
func buildOptions(cfg *config.Config, timeout time.Duration, logger *slog.Logger) []md2docx.Option {
	opts := []md2docx.Option{
		md2docx.WithLogger(logger),
		md2docx.WithImageSettings(md2docx.ImageSettings{
			Width:   cfg.Images.Width,
			Timeout: cfg.Images.Timeout,
			BaseURL: cfg.Images.BaseURL,
		}),
		md2docx.WithFonts(cfg.Fonts.Body, cfg.Fonts.EastAsia, cfg.Fonts.Code),
		md2docx.WithStyle(cfg.Assets.Style),
		md2docx.WithMetadata(cfg.Document.Title, cfg.Document.Author),
	}
	if timeout > 0 {
		opts = append(opts, md2docx.WithTimeout(timeout))
	}
	if page := buildPageSettings(cfg.Page); page != nil {
		opts = append(opts, md2docx.WithPage(page))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2docx.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Code.Highlight {
		opts = append(opts, md2docx.WithHighlight(cfg.Code.Style))
	}
	return opts
}

// buildPageSettings fills unset page fields with defaults. It returns nil
// when nothing is set, leaving the converter default in place.
func buildPageSettings(p config.PageConfig) *md2docx.PageSettings {
	if p.Size == "" && p.Orientation == "" && p.Margin == 0 {
		return nil
	}
	ps := md2docx.DefaultPageSettings()
	setIfNotEmpty(&ps.Size, p.Size)
	setIfNotEmpty(&ps.Orientation, p.Orientation)
	if p.Margin > 0 {
		ps.Margin = p.Margin
	}
	return ps
}

// withHint appends an actionable hint to converter construction errors.
func withHint(err error) error {
	switch {
	case errors.Is(err, md2docx.ErrStyleNotFound):
		return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.AvailableStyles()))
	default:
		return err
	}
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	return cmp.Or(flagOutput, cfg.Output.DefaultDir)
}

// newLogger builds the CLI logger: warnings by default, debug with
// --verbose, errors only with --quiet.
func newLogger(w io.Writer, f commonFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case f.quiet:
		level = slog.LevelError
	case f.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printConfig writes the effective configuration as YAML.
func printConfig(w io.Writer, cfg *config.Config) error {
	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
