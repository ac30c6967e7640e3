package config

// Notes:
// - TestLoadConfig subtests are sequential: several call t.Chdir or
//   t.Setenv, which the testing package forbids in parallel tests.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("DefaultConfig() = %+v, want zero value", *cfg)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Field rules per section
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string // empty = valid
	}{
		{
			name: "full valid config",
			mutate: func(c *Config) {
				c.Images = ImagesConfig{Width: 4, BaseURL: "https://example.com/docs/", Timeout: 30 * time.Second}
				c.Page = PageConfig{Size: "a4", Orientation: "landscape", Margin: 1}
				c.Fonts = FontsConfig{Body: "Times New Roman", EastAsia: "SimSun", Code: "Consolas"}
				c.Code = CodeConfig{Highlight: true, Style: "monokai"}
				c.Assets = AssetsConfig{Style: "light-grid"}
				c.Document = DocumentConfig{Title: "Report", Author: "Team"}
			},
		},
		{
			name:      "negative image width",
			mutate:    func(c *Config) { c.Images.Width = -1 },
			wantField: "width",
		},
		{
			name:      "image width too large",
			mutate:    func(c *Config) { c.Images.Width = MaxImageWidth + 1 },
			wantField: "width",
		},
		{
			name:      "base url with unsupported scheme",
			mutate:    func(c *Config) { c.Images.BaseURL = "ftp://example.com/" },
			wantField: "baseURL",
		},
		{
			name:   "file base url",
			mutate: func(c *Config) { c.Images.BaseURL = "file:///srv/docs/" },
		},
		{
			name:      "negative timeout",
			mutate:    func(c *Config) { c.Images.Timeout = -time.Second },
			wantField: "timeout",
		},
		{
			name:      "unknown page size",
			mutate:    func(c *Config) { c.Page.Size = "tabloid" },
			wantField: "size",
		},
		{
			name:      "unknown orientation",
			mutate:    func(c *Config) { c.Page.Orientation = "sideways" },
			wantField: "orientation",
		},
		{
			name:      "margin below minimum",
			mutate:    func(c *Config) { c.Page.Margin = 0.1 },
			wantField: "margin",
		},
		{
			name:      "margin above maximum",
			mutate:    func(c *Config) { c.Page.Margin = 4 },
			wantField: "margin",
		},
		{
			name:      "font with markup",
			mutate:    func(c *Config) { c.Fonts.Body = `Evil"/><w:b/>` },
			wantField: "body",
		},
		{
			name:      "font too long",
			mutate:    func(c *Config) { c.Fonts.Code = strings.Repeat("x", MaxFontLength+1) },
			wantField: "code",
		},
		{
			name:      "style name with path",
			mutate:    func(c *Config) { c.Assets.Style = "../evil" },
			wantField: "style",
		},
		{
			name:      "title too long",
			mutate:    func(c *Config) { c.Document.Title = strings.Repeat("t", MaxTitleLength+1) },
			wantField: "title",
		},
		{
			name:      "author too long",
			mutate:    func(c *Config) { c.Document.Author = strings.Repeat("a", MaxAuthorLength+1) },
			wantField: "author",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error on %s", tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.wantField)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File resolution and decoding
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file path loads every section", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "full.yaml", `input:
  defaultDir: ./docs
output:
  defaultDir: ./out
images:
  width: 4.5
  baseURL: https://example.com/
  timeout: 30s
page:
  size: a4
  orientation: landscape
  margin: 1
fonts:
  body: Times New Roman
  eastAsia: SimSun
  code: Consolas
code:
  highlight: true
  style: monokai
assets:
  style: light-grid
document:
  title: Quarterly Report
  author: Docs Team
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		want := Config{
			Input:    InputConfig{DefaultDir: "./docs"},
			Output:   OutputConfig{DefaultDir: "./out"},
			Images:   ImagesConfig{Width: 4.5, BaseURL: "https://example.com/", Timeout: 30 * time.Second},
			Page:     PageConfig{Size: "a4", Orientation: "landscape", Margin: 1},
			Fonts:    FontsConfig{Body: "Times New Roman", EastAsia: "SimSun", Code: "Consolas"},
			Code:     CodeConfig{Highlight: true, Style: "monokai"},
			Assets:   AssetsConfig{Style: "light-grid"},
			Document: DocumentConfig{Title: "Quarterly Report", Author: "Docs Team"},
		}
		if *cfg != want {
			t.Errorf("LoadConfig() =\n %+v\nwant\n %+v", *cfg, want)
		}
	})

	t.Run("nonexistent file path", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "page: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "watermark:\n  enabled: true\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "page:\n  size: tabloid\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigInvalid) {
			t.Errorf("error = %v, want ErrConfigInvalid", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "empty.yaml", "")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unreadable file is not reported as missing", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores file permissions")
		}
		path := writeConfig(t, t.TempDir(), "locked.yaml", "page:\n  size: a4\n")
		if err := os.Chmod(path, 0o000); err != nil {
			t.Fatalf("chmod: %v", err)
		}
		t.Cleanup(func() { _ = os.Chmod(path, 0o600) })

		_, err := LoadConfig(path)
		if err == nil || errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want read error", err)
		}
	})

	t.Run("name resolves in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "local.yml", "document:\n  title: From Name\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("local")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Document.Title != "From Name" {
			t.Errorf("Document.Title = %q, want %q", cfg.Document.Title, "From Name")
		}
	})

	t.Run("name resolves in user config directory", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("XDG_CONFIG_HOME drives os.UserConfigDir on linux only")
		}
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		appDir := filepath.Join(home, AppName)
		if err := os.MkdirAll(appDir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		writeConfig(t, appDir, "shared.yaml", "fonts:\n  body: Georgia\n")
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig("shared")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Fonts.Body != "Georgia" {
			t.Errorf("Fonts.Body = %q, want Georgia", cfg.Fonts.Body)
		}
	})

	t.Run("unknown name lists searched paths", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, err := LoadConfig("nowhere")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nowhere.yaml") {
			t.Errorf("error = %q, want searched paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("team")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "team.yaml" || paths[1] != "team.yml" {
		t.Errorf("SearchPaths() local candidates = %v", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppName) {
			t.Errorf("user candidate %q outside %s", p, AppName)
		}
	}
}
