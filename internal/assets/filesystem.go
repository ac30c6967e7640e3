package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads style sheets from <basePath>/styles/<name>.xml.
// It lets users restyle documents without rebuilding the binary.
type FilesystemLoader struct {
	basePath string // absolute, symlinks resolved
}

// NewFilesystemLoader checks that basePath is a readable directory.
// Every failure wraps ErrInvalidBasePath.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	dir, err := realDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{basePath: dir}, nil
}

// realDir returns the absolute, symlink-free form of path after checking
// that it names a directory the process can list.
func realDir(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("directory does not exist: %s", abs)
	case err != nil:
		return "", err
	case !info.IsDir():
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return "", fmt.Errorf("cannot read directory: %v", err)
	}
	return abs, nil
}

// LoadStyle returns the template text of the named sheet.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	path, err := f.stylePath(name)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(path) // #nosec G304 -- contained in basePath
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q in %s", ErrStyleNotFound, name, f.basePath)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// BasePath returns the resolved directory the loader reads from.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// stylePath maps a sheet name to its file and rejects names or symlinks
// that would leave basePath. A missing file passes; the read reports it.
func (f *FilesystemLoader) stylePath(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	path := filepath.Join(f.basePath, "styles", name+".xml")
	target := path
	if real, err := filepath.EvalSymlinks(path); err == nil {
		target = real
	}

	// Compare with a trailing separator so /base/stylesX is outside /base/styles.
	if !strings.HasPrefix(target, f.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s resolves outside %s", ErrPathTraversal, name, f.basePath)
	}
	return path, nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
