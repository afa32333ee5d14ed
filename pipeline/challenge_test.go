package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeChallenge(t *testing.T) {
	t.Parallel()

	t.Run("detects javascript walls", func(t *testing.T) {
		t.Parallel()

		assert.True(t, looksLikeChallenge(`<html><body><p>Please enable JavaScript to view this page.</p></body></html>`))
		assert.True(t, looksLikeChallenge(`<html><body><h1>Just a moment...</h1><p>Checking your browser.</p></body></html>`))
		assert.True(t, looksLikeChallenge(`<html><body>Verify you are a human to continue.</body></html>`))
	})

	t.Run("ignores regular pages", func(t *testing.T) {
		t.Parallel()

		assert.False(t, looksLikeChallenge(`<html><body><p>An ordinary article about gardening.</p></body></html>`))
		assert.False(t, looksLikeChallenge(``))
	})

	t.Run("ignores long articles that mention the phrases", func(t *testing.T) {
		t.Parallel()

		body := `<p>How Cloudflare handles a captcha challenge internally.</p>` +
			strings.Repeat(`<p>A long paragraph of real article text that keeps going.</p>`, 100)
		assert.False(t, looksLikeChallenge("<html><body>"+body+"</body></html>"))
	})
}
