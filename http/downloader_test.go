package http_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	webcliphttp "github.com/fwojciec/webclip/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes returns a minimal valid PNG payload.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownloader_DownloadImages(t *testing.T) {
	t.Parallel()

	t.Run("SavesValidImage", func(t *testing.T) {
		t.Parallel()

		payload := pngBytes(t)
		var gotReferer string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotReferer = r.Header.Get("Referer")
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(payload)
		}))
		defer srv.Close()

		dir := filepath.Join(t.TempDir(), "images_abc123")
		dl := webcliphttp.NewDownloader()

		assets, err := dl.DownloadImages(context.Background(), []string{srv.URL + "/pic"}, "https://example.com/post", dir)
		require.NoError(t, err)
		require.Len(t, assets, 1)

		assert.Equal(t, srv.URL+"/pic", assets[0].OriginalURL)
		assert.Equal(t, "image_1.png", assets[0].Filename)
		assert.Equal(t, "images_abc123/image_1.png", assets[0].LocalPath)
		assert.Equal(t, "https://example.com/post", gotReferer)

		data, err := os.ReadFile(filepath.Join(dir, "image_1.png"))
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("SkipsNonImageContentType", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>not an image</html>"))
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		assets, err := dl.DownloadImages(context.Background(), []string{srv.URL + "/page"}, "https://example.com", t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, assets)
	})

	t.Run("SkipsUndecodablePayload", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("corrupted bytes"))
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		assets, err := dl.DownloadImages(context.Background(), []string{srv.URL + "/broken.png"}, "https://example.com", t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, assets)
	})

	t.Run("SVGSkipsDecodeGate", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/svg+xml")
			_, _ = w.Write([]byte("<svg xmlns='http://www.w3.org/2000/svg'/>"))
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		assets, err := dl.DownloadImages(context.Background(), []string{srv.URL + "/logo"}, "https://example.com", t.TempDir())
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "image_1.svg", assets[0].Filename)
	})

	t.Run("IndexKeepsGapsAfterSkips", func(t *testing.T) {
		t.Parallel()

		payload := pngBytes(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/missing.png" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(payload)
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		urls := []string{srv.URL + "/missing.png", srv.URL + "/ok.png"}

		assets, err := dl.DownloadImages(context.Background(), urls, "https://example.com", t.TempDir())
		require.NoError(t, err)
		require.Len(t, assets, 1)

		// The second attempted URL keeps index 2 even though the first
		// was skipped.
		assert.Equal(t, "image_2.png", assets[0].Filename)
	})

	t.Run("DeduplicatesURLs", func(t *testing.T) {
		t.Parallel()

		payload := pngBytes(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(payload)
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		urls := []string{srv.URL + "/a.png", srv.URL + "/a.png"}

		assets, err := dl.DownloadImages(context.Background(), urls, "https://example.com", t.TempDir())
		require.NoError(t, err)
		assert.Len(t, assets, 1)
	})

	t.Run("SkipsPlaceholdersAndDataURLs", func(t *testing.T) {
		t.Parallel()

		dl := webcliphttp.NewDownloader()
		urls := []string{"data:image/png;base64,xyz", "https://cdn.example.com/pixel.gif"}

		assets, err := dl.DownloadImages(context.Background(), urls, "https://example.com", t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, assets)
	})
}

func TestDownloader_DownloadFiles(t *testing.T) {
	t.Parallel()

	t.Run("FilenameFromContentDisposition", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="quarterly report.pdf"`)
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		assets, err := dl.DownloadFiles(context.Background(), []string{srv.URL + "/dl"}, "https://example.com", t.TempDir())
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "quarterly report.pdf", assets[0].Filename)
	})

	t.Run("PrefersRFC5987Filename", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="fallback.pdf"; filename*=UTF-8''r%C3%A9sum%C3%A9.pdf`)
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		assets, err := dl.DownloadFiles(context.Background(), []string{srv.URL + "/dl"}, "https://example.com", t.TempDir())
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "résumé.pdf", assets[0].Filename)
	})

	t.Run("FilenameFromURLPath", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		assets, err := dl.DownloadFiles(context.Background(), []string{srv.URL + "/docs/report.pdf"}, "https://example.com", t.TempDir())
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "report.pdf", assets[0].Filename)
	})

	t.Run("AppendsExtensionFromContentType", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/zip")
			w.Header().Set("Content-Disposition", `attachment; filename="bundle"`)
			_, _ = w.Write([]byte("PK"))
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		assets, err := dl.DownloadFiles(context.Background(), []string{srv.URL + "/dl"}, "https://example.com", t.TempDir())
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "bundle.zip", assets[0].Filename)
	})

	t.Run("RejectsHTMLPageWithoutExtension", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html>a page</html>"))
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		assets, err := dl.DownloadFiles(context.Background(), []string{srv.URL + "/download"}, "https://example.com", t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, assets)
	})

	t.Run("DeduplicatesFilenames", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="paper.pdf"`)
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		urls := []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/c"}

		assets, err := dl.DownloadFiles(context.Background(), urls, "https://example.com", t.TempDir())
		require.NoError(t, err)
		require.Len(t, assets, 3)
		assert.Equal(t, "paper.pdf", assets[0].Filename)
		assert.Equal(t, "paper_2.pdf", assets[1].Filename)
		assert.Equal(t, "paper_3.pdf", assets[2].Filename)
	})

	t.Run("SanitizesUnsafeFilenames", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="a/b:c*d.pdf"`)
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer srv.Close()

		dl := webcliphttp.NewDownloader()
		assets, err := dl.DownloadFiles(context.Background(), []string{srv.URL + "/dl"}, "https://example.com", t.TempDir())
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "a_b_c_d.pdf", assets[0].Filename)
	})
}
