package http

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webclip"

	// Registered decoders back the image validity gate.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Default per-asset fetch timeouts. Files get longer than images since
// they tend to be larger.
const (
	DefaultImageTimeout = 10 * time.Second
	DefaultFileTimeout  = 20 * time.Second
)

// maxFilenameLen caps sanitized filenames.
const maxFilenameLen = 120

// imageContentTypes maps image content types to file extensions.
var imageContentTypes = map[string]string{
	"image/jpg":     ".jpg",
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// fileContentTypes maps common document content types to file extensions.
var fileContentTypes = map[string]string{
	"application/pdf":              ".pdf",
	"application/zip":              ".zip",
	"application/x-zip-compressed": ".zip",
	"application/x-rar-compressed": ".rar",
	"application/vnd.ms-powerpoint": ".ppt",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
	"text/plain":       ".txt",
	"text/markdown":    ".md",
	"text/csv":         ".csv",
	"application/json": ".json",
}

var (
	// RFC 5987 extended syntax is preferred over the plain parameter.
	cdExtendedRe = regexp.MustCompile(`(?i)filename\*=UTF-8''([^;]+)`)
	cdPlainRe    = regexp.MustCompile(`(?i)filename="?([^";]+)"?`)

	unsafeFilenameRe = regexp.MustCompile(`[\\/:*?"<>|]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// Ensure Downloader implements webclip.Downloader at compile time.
var _ webclip.Downloader = (*Downloader)(nil)

// Downloader fetches article assets over HTTP. Every per-asset failure
// (bad status, wrong content type, decode failure) is skipped silently;
// only context cancellation and directory setup errors surface.
type Downloader struct {
	client        *http.Client
	imageTimeout  time.Duration
	fileTimeout   time.Duration
	userAgent     string
	validateImage func(data []byte) error
}

// DownloaderOption configures a Downloader.
type DownloaderOption func(*Downloader)

// WithImageTimeout sets the per-image fetch timeout.
func WithImageTimeout(d time.Duration) DownloaderOption {
	return func(dl *Downloader) {
		dl.imageTimeout = d
	}
}

// WithFileTimeout sets the per-file fetch timeout.
func WithFileTimeout(d time.Duration) DownloaderOption {
	return func(dl *Downloader) {
		dl.fileTimeout = d
	}
}

// WithImageValidator overrides the image validity gate. The default
// attempts to decode the payload's header with the registered decoders.
func WithImageValidator(validate func(data []byte) error) DownloaderOption {
	return func(dl *Downloader) {
		dl.validateImage = validate
	}
}

// NewDownloader creates a new asset downloader.
func NewDownloader(opts ...DownloaderOption) *Downloader {
	dl := &Downloader{
		client:        &http.Client{},
		imageTimeout:  DefaultImageTimeout,
		fileTimeout:   DefaultFileTimeout,
		userAgent:     defaultUserAgent,
		validateImage: decodeImageHeader,
	}
	for _, opt := range opts {
		opt(dl)
	}
	return dl
}

// decodeImageHeader checks that data starts with a decodable image header.
func decodeImageHeader(data []byte) error {
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err
}

// DownloadImages fetches each image URL into dir. Filenames are
// image_<n><ext> where n is the 1-based position among attempted URLs;
// skipped URLs leave gaps rather than renumbering.
func (dl *Downloader) DownloadImages(ctx context.Context, urls []string, pageURL, dir string) ([]webclip.Asset, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var downloaded []webclip.Asset
	seen := make(map[string]bool)
	dirName := filepath.Base(filepath.Clean(dir))

	for i, assetURL := range urls {
		if err := ctx.Err(); err != nil {
			return downloaded, err
		}

		if assetURL == "" || strings.HasPrefix(assetURL, "data:") {
			continue
		}
		if webclip.IsPlaceholderImageURL(assetURL) || seen[assetURL] {
			continue
		}
		seen[assetURL] = true

		data, contentType, err := dl.get(ctx, assetURL, pageURL, dl.imageTimeout)
		if err != nil {
			continue
		}

		if !strings.HasPrefix(contentType, "image/") && webclip.ImageExtensionFromURL(assetURL) == "" {
			continue
		}

		// SVG is text; everything else must decode.
		if contentType != "image/svg+xml" {
			if err := dl.validateImage(data); err != nil {
				continue
			}
		}

		ext := imageContentTypes[contentType]
		if ext == "" {
			ext = webclip.ImageExtensionFromURL(assetURL)
		}
		if ext == "" {
			ext = ".jpg"
		}

		filename := fmt.Sprintf("image_%d%s", i+1, ext)
		if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
			continue
		}

		downloaded = append(downloaded, webclip.Asset{
			OriginalURL: assetURL,
			LocalPath:   path.Join(dirName, filename),
			Filename:    filename,
		})
	}

	return downloaded, nil
}

// DownloadFiles fetches each document/archive URL into dir. Filenames come
// from Content-Disposition, then the URL path, then file_<n>; collisions
// within one run get numeric suffixes.
func (dl *Downloader) DownloadFiles(ctx context.Context, urls []string, pageURL, dir string) ([]webclip.Asset, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var downloaded []webclip.Asset
	seen := make(map[string]bool)
	used := make(map[string]bool)
	dirName := filepath.Base(filepath.Clean(dir))

	for i, assetURL := range urls {
		if err := ctx.Err(); err != nil {
			return downloaded, err
		}

		if assetURL == "" || strings.HasPrefix(assetURL, "data:") || seen[assetURL] {
			continue
		}
		seen[assetURL] = true

		data, contentType, header, err := dl.getWithHeader(ctx, assetURL, pageURL, dl.fileTimeout)
		if err != nil {
			continue
		}

		// A text/html payload for a URL without a recognizable extension
		// is almost always a mislinked web page, not a document.
		if strings.HasPrefix(contentType, "text/html") &&
			!webclip.IsFileURL(assetURL) && !webclip.IsImageURL(assetURL) {
			continue
		}

		filename := filenameFromDisposition(header.Get("Content-Disposition"))
		if filename == "" {
			filename = filenameFromURL(assetURL)
		}
		if filename == "" {
			filename = fmt.Sprintf("file_%d", i+1)
		}
		filename = sanitizeFilename(filename)

		if filepath.Ext(filename) == "" {
			ext := fileContentTypes[contentType]
			if ext == "" {
				ext = urlPathExtension(assetURL)
			}
			filename += ext
		}

		filename = dedupeFilename(filename, used)

		if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
			continue
		}

		downloaded = append(downloaded, webclip.Asset{
			OriginalURL: assetURL,
			LocalPath:   path.Join(dirName, filename),
			Filename:    filename,
		})
	}

	return downloaded, nil
}

// get fetches an asset and returns its payload and normalized content type.
func (dl *Downloader) get(ctx context.Context, assetURL, pageURL string, timeout time.Duration) ([]byte, string, error) {
	data, contentType, _, err := dl.getWithHeader(ctx, assetURL, pageURL, timeout)
	return data, contentType, err
}

func (dl *Downloader) getWithHeader(ctx context.Context, assetURL, pageURL string, timeout time.Duration) ([]byte, string, http.Header, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, "", nil, err
	}
	req.Header.Set("User-Agent", dl.userAgent)
	req.Header.Set("Referer", pageURL)

	resp, err := dl.client.Do(req)
	if err != nil {
		return nil, "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, assetURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", nil, err
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.Split(resp.Header.Get("Content-Type"), ";")[0]))
	return data, contentType, resp.Header, nil
}

// filenameFromDisposition extracts a filename from a Content-Disposition
// header, preferring the RFC 5987 extended syntax over the plain form.
func filenameFromDisposition(cd string) string {
	if cd == "" {
		return ""
	}

	if m := cdExtendedRe.FindStringSubmatch(cd); m != nil {
		name := strings.Trim(strings.TrimSpace(m[1]), `"'`)
		if decoded, err := url.PathUnescape(name); err == nil {
			return decoded
		}
		return name
	}

	if m := cdPlainRe.FindStringSubmatch(cd); m != nil {
		return strings.TrimSpace(m[1])
	}

	return ""
}

// filenameFromURL derives a filename from the URL's path basename.
func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

// urlPathExtension returns the lowercased extension of the URL's path.
func urlPathExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(path.Ext(u.Path))
}

// sanitizeFilename strips null bytes, replaces path-unsafe characters with
// underscores, collapses whitespace, and caps the length.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "file"
	}
	name = strings.ReplaceAll(name, "\x00", "")
	name = unsafeFilenameRe.ReplaceAllString(name, "_")
	name = strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))

	if runes := []rune(name); len(runes) > maxFilenameLen {
		name = string(runes[:maxFilenameLen])
	}
	if name == "" {
		return "file"
	}
	return name
}

// dedupeFilename resolves collisions within one download run by appending
// _2, _3, ... and, as a last resort, a content-hash suffix.
func dedupeFilename(filename string, used map[string]bool) string {
	if !used[filename] {
		used[filename] = true
		return filename
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	for i := 2; i < 1000; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}

	sum := xxhash.Sum64String(filename)
	suffix := hex.EncodeToString([]byte{byte(sum >> 56), byte(sum >> 48), byte(sum >> 40)})
	fallback := fmt.Sprintf("%s_%s%s", base, suffix, ext)
	used[fallback] = true
	return fallback
}
