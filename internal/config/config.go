// Package config loads and validates the YAML configuration of the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Qiuzg/go-md2docx/internal/fileutil"
	"github.com/Qiuzg/go-md2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Field limits.
const (
	MaxPathLength   = 4096
	MaxURLLength    = 2048
	MaxFontLength   = 64
	MaxStyleLength  = 50
	MaxTitleLength  = 200
	MaxAuthorLength = 100
	MaxImageWidth   = 20.0 // inches
	MinMargin       = 0.25 // inches, matches the library
	MaxMargin       = 3.0
	MaxImageTimeout = 10 * time.Minute
)

// AppName is the directory name used under the user config directory.
const AppName = "go-md2docx"

var (
	// Font names end up in XML attributes.
	fontNamePattern  = regexp.MustCompile(`^[^<>&"]*$`)
	assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)
)

// Config holds all configuration for document generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Images   ImagesConfig   `yaml:"images"`
	Page     PageConfig     `yaml:"page"`
	Fonts    FontsConfig    `yaml:"fonts"`
	Code     CodeConfig     `yaml:"code"`
	Assets   AssetsConfig   `yaml:"assets"`
	Document DocumentConfig `yaml:"document"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// ImagesConfig controls image loading.
type ImagesConfig struct {
	Width   float64       `yaml:"width"`   // inches, 0 = library default
	BaseURL string        `yaml:"baseURL"` // resolves relative image references
	Timeout time.Duration `yaml:"timeout"` // per fetch, 0 = library default
}

// PageConfig defines page geometry.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// FontsConfig overrides the document fonts.
type FontsConfig struct {
	Body     string `yaml:"body"`
	EastAsia string `yaml:"eastAsia"`
	Code     string `yaml:"code"`
}

// CodeConfig controls code-block highlighting.
type CodeConfig struct {
	Highlight bool   `yaml:"highlight"`
	Style     string `yaml:"style"` // chroma style name
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded only
	Style    string `yaml:"style"`    // style sheet name, empty = default
}

// DocumentConfig sets document properties.
type DocumentConfig struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
}

// Validate checks every section. Called by LoadConfig, and available to
// callers that build a Config by hand.
func (c *Config) Validate() error {
	return validation.Errors{
		"input":    validation.Validate(c.Input.DefaultDir, validation.Length(0, MaxPathLength)),
		"output":   validation.Validate(c.Output.DefaultDir, validation.Length(0, MaxPathLength)),
		"images":   c.Images.Validate(),
		"page":     c.Page.Validate(),
		"fonts":    c.Fonts.Validate(),
		"code":     c.Code.Validate(),
		"assets":   c.Assets.Validate(),
		"document": c.Document.Validate(),
	}.Filter()
}

// Validate checks image settings.
func (c ImagesConfig) Validate() error {
	return validation.Errors{
		"width":   validation.Validate(c.Width, validation.Min(0.0), validation.Max(MaxImageWidth)),
		"baseURL": validation.Validate(c.BaseURL, validation.Length(0, MaxURLLength), validation.By(checkBaseURL)),
		"timeout": validation.Validate(c.Timeout, validation.Min(time.Duration(0)), validation.Max(MaxImageTimeout)),
	}.Filter()
}

// Validate checks page settings. Zero values mean "use the default".
func (c PageConfig) Validate() error {
	return validation.Errors{
		"size":        validation.Validate(c.Size, validation.In("letter", "a4", "legal")),
		"orientation": validation.Validate(c.Orientation, validation.In("portrait", "landscape")),
		"margin": validation.Validate(c.Margin, validation.When(c.Margin != 0,
			validation.Min(MinMargin), validation.Max(MaxMargin))),
	}.Filter()
}

// Validate checks font names.
func (c FontsConfig) Validate() error {
	rules := []validation.Rule{validation.Length(0, MaxFontLength), validation.Match(fontNamePattern)}
	return validation.Errors{
		"body":     validation.Validate(c.Body, rules...),
		"eastAsia": validation.Validate(c.EastAsia, rules...),
		"code":     validation.Validate(c.Code, rules...),
	}.Filter()
}

// Validate checks highlighting settings.
func (c CodeConfig) Validate() error {
	return validation.Errors{
		"style": validation.Validate(c.Style, validation.Length(0, MaxStyleLength)),
	}.Filter()
}

// Validate checks asset settings.
func (c AssetsConfig) Validate() error {
	return validation.Errors{
		"basePath": validation.Validate(c.BasePath, validation.Length(0, MaxPathLength)),
		"style": validation.Validate(c.Style, validation.Length(0, MaxStyleLength),
			validation.Match(assetNamePattern)),
	}.Filter()
}

// Validate checks document properties.
func (c DocumentConfig) Validate() error {
	return validation.Errors{
		"title":  validation.Validate(c.Title, validation.Length(0, MaxTitleLength)),
		"author": validation.Validate(c.Author, validation.Length(0, MaxAuthorLength)),
	}.Filter()
}

func checkBaseURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return validation.NewError("validation_base_url_invalid", "must be a valid URL")
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "file":
		return nil
	default:
		return validation.NewError("validation_base_url_scheme", "must use http, https or file")
	}
}

// DefaultConfig returns a neutral configuration where every field selects
// the library default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name searched by SearchPaths. A missing file is an error, never a silent
// fallback to defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yamlutil.ReadStrict(f, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigInvalid, configPath, err)
	}

	return &cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// the current directory, then the user config directory, each with .yaml
// before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
