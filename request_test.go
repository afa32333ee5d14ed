package webclip_test

import (
	"testing"

	"github.com/fwojciec/webclip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		t.Parallel()
		req := webclip.Request{URL: "https://example.com/post", Format: webclip.FormatMarkdown}
		require.NoError(t, req.Validate())
	})

	t.Run("MissingURL", func(t *testing.T) {
		t.Parallel()
		req := webclip.Request{Format: webclip.FormatMarkdown}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, webclip.EINVALID, webclip.ErrorCode(err))
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		t.Parallel()
		req := webclip.Request{URL: "https://example.com", Format: "pdf"}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, webclip.EINVALID, webclip.ErrorCode(err))
	})

	t.Run("EmptyFormatAllowed", func(t *testing.T) {
		t.Parallel()
		req := webclip.Request{URL: "https://example.com"}
		require.NoError(t, req.Validate())
	})

	t.Run("DownloadImagesRequiresDir", func(t *testing.T) {
		t.Parallel()
		req := webclip.Request{URL: "https://example.com", DownloadImages: true}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, webclip.EINVALID, webclip.ErrorCode(err))
	})

	t.Run("DownloadFilesRequiresDir", func(t *testing.T) {
		t.Parallel()
		req := webclip.Request{URL: "https://example.com", DownloadFiles: true}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, webclip.EINVALID, webclip.ErrorCode(err))
	})
}

func TestFormat_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, webclip.FormatMarkdown.Valid())
	assert.True(t, webclip.FormatHTML.Valid())
	assert.True(t, webclip.FormatText.Valid())
	assert.False(t, webclip.Format("pdf").Valid())
	assert.False(t, webclip.Format("").Valid())
}
