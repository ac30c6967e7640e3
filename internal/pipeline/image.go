package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Decoders registered with the image package.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Qiuzg/go-md2docx/internal/fileutil"
)

// Sentinel errors for image loading.
var (
	ErrImageFetch  = errors.New("image fetch failed")
	ErrImageDecode = errors.New("image decode failed")
)

// Image loading limits.
const (
	DefaultImageTimeout = 10 * time.Second
	MaxImageBytes       = 32 << 20
)

// embeddable maps sniffed MIME types to the media extension stored in the
// package. Types mapped to "" are decoded and re-encoded as PNG.
var embeddable = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
	"image/tiff": "tiff",
	"image/webp": "",
}

// LoadedImage is a decoded picture ready to embed.
type LoadedImage struct {
	Data   []byte
	Ext    string // media extension: png, jpeg, gif, bmp or tiff
	MIME   string // sniffed type of the source bytes
	Width  int    // pixels
	Height int    // pixels
}

// ImageLoader abstracts image retrieval for the renderer.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (*LoadedImage, error)
}

// ImageFetcher loads images over HTTP(S) or from the local filesystem.
type ImageFetcher struct {
	// BaseURL resolves references that have no scheme. Empty leaves them as
	// paths relative to the working directory.
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// NewImageFetcher creates an ImageFetcher. A zero timeout selects
// DefaultImageTimeout and a nil client selects http.DefaultClient.
func NewImageFetcher(baseURL string, timeout time.Duration, client *http.Client) *ImageFetcher {
	if timeout <= 0 {
		timeout = DefaultImageTimeout
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &ImageFetcher{BaseURL: baseURL, Timeout: timeout, Client: client}
}

// Load resolves ref, reads its bytes and validates them as an image.
// Errors wrap ErrImageFetch or ErrImageDecode.
func (f *ImageFetcher) Load(ctx context.Context, ref string) (*LoadedImage, error) {
	target := f.Resolve(ref)

	var (
		data []byte
		err  error
	)
	if fileutil.IsURL(target) {
		data, err = f.fetch(ctx, target)
	} else {
		data, err = readLocal(localPath(target))
	}
	if err != nil {
		return nil, err
	}
	return DecodeImage(data)
}

// Resolve joins a scheme-less reference onto BaseURL. References with a
// scheme or a drive letter, and all references when BaseURL is empty or
// invalid, are returned unchanged.
//
// Against a file base the reference is a literal path, so '%', '#' and '?'
// are part of the file name. Against a network base it is parsed as a URL
// reference, falling back to a literal path when it does not parse.
func (f *ImageFetcher) Resolve(ref string) string {
	if f.BaseURL == "" || fileutil.HasScheme(ref) || fileutil.IsDrivePath(ref) {
		return ref
	}
	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return ref
	}

	rel := &url.URL{Path: filepath.ToSlash(ref)}
	if !strings.EqualFold(base.Scheme, "file") {
		if parsed, err := url.Parse(ref); err == nil {
			rel = parsed
		}
	}
	return base.ResolveReference(rel).String()
}

func (f *ImageFetcher) fetch(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFetch, err)
	}
	req.Header.Set("User-Agent", "go-md2docx")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: status %d", ErrImageFetch, target, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrImageFetch, err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrImageFetch, target, MaxImageBytes)
	}
	return data, nil
}

// localPath maps a reference to a filesystem path. File URLs produced by
// Resolve are percent-escaped, so they are parsed rather than trimmed.
func localPath(target string) string {
	if !strings.HasPrefix(strings.ToLower(target), "file://") {
		return target
	}
	u, err := url.Parse(target)
	if err != nil || u.Path == "" || (u.Host != "" && u.Host != "localhost") {
		return fileutil.LocalPath(target)
	}
	path := u.Path
	if fileutil.IsDrivePath(strings.TrimPrefix(path, "/")) {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}

func readLocal(path string) ([]byte, error) {
	if !fileutil.FileExists(path) {
		return nil, fmt.Errorf("%w: local image not found: %s", ErrImageFetch, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFetch, err)
	}
	return data, nil
}

// DecodeImage sniffs and fully decodes data. Formats Word cannot embed are
// re-encoded as PNG.
func DecodeImage(data []byte) (*LoadedImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrImageDecode)
	}

	mtype := mimetype.Detect(data)
	mime := baseMIME(mtype.String())
	ext, ok := embeddable[mime]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported type %s", ErrImageDecode, mime)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: zero-size image", ErrImageDecode)
	}

	out := &LoadedImage{
		Data:   data,
		Ext:    ext,
		MIME:   mime,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	if ext == "" {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("%w: transcoding %s: %v", ErrImageDecode, mime, err)
		}
		out.Data = buf.Bytes()
		out.Ext = "png"
	}
	return out, nil
}

// baseMIME drops parameters such as "; charset=binary".
func baseMIME(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
