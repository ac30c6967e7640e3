// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/Qiuzg/go-md2docx/internal/fileutil"
)

// IsInContainer reports whether the process runs inside a Docker container.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForImageFetch returns hints for images that could not be loaded.
// Inside CI or a container without a proxy configured, remote hosts are
// often unreachable, so a proxy hint is added.
func ForImageFetch() string {
	hints := []string{"use --base-url to resolve relative image paths"}

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
	noProxy := os.Getenv("HTTPS_PROXY") == "" && os.Getenv("https_proxy") == ""

	if (inCI || IsInContainer()) && noProxy {
		hints = append(hints, "set HTTPS_PROXY if remote images sit behind a proxy")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the timeout.
func ForTimeout() string {
	return format("for documents with many remote images, raise --timeout")
}

// ForConfigNotFound suggests --config and the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2docx") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the style sheets that do exist.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForEncoding returns a hint for input that could not be decoded.
func ForEncoding() string {
	return format("save the file as UTF-8 or check that it is a text file")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
