package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/webclip"
	main "github.com/fwojciec/webclip/cmd/webclip"
	"github.com/fwojciec/webclip/fs"
	"github.com/fwojciec/webclip/mock"
	"github.com/fwojciec/webclip/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// articlePage is long enough to pass the extraction quality gate.
const articlePage = `<html><head><title>Test Article</title></head><body><article><h1>Test Article</h1><p>Go is a statically typed, compiled programming language designed at Google. It is syntactically similar to C, but with memory safety, garbage collection, structural typing, and CSP-style concurrency. Its tooling has shaped a decade of cloud infrastructure software.</p></article></body></html>`

func testDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Extractor: &pipeline.Extractor{
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				return articlePage, nil
			}},
			Markdown: &mock.Converter{ConvertFn: func(html string) (string, error) { return html, nil }},
		},
		Writer: fs.NewWriter(),
	}
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints content to stdout by default", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)

		cmd := &main.ExtractCmd{URL: "https://example.com/post", Format: "markdown", Images: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "statically typed")
		assert.Empty(t, stderr.String())
	})

	t.Run("saves to the output directory with -o", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)

		cmd := &main.ExtractCmd{
			URL:    "https://example.com/post",
			Format: "markdown",
			Images: true,
			Output: t.TempDir(),
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved")
		assert.Contains(t, stdout.String(), "Test Article")
	})

	t.Run("rejects downloads without an output directory", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)

		cmd := &main.ExtractCmd{URL: "https://example.com/post", DownloadImages: true}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, webclip.EINVALID, webclip.ErrorCode(err))
	})

	t.Run("reports extraction failures on stderr", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Extractor.Fetcher = &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html><body><p>nothing</p></body></html>", nil
		}}

		cmd := &main.ExtractCmd{URL: "https://example.com/post", Images: true}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "failed to extract article content")
	})
}
