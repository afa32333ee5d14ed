package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/webclip"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Renderer implements webclip.Renderer at compile time.
var _ webclip.Renderer = (*Renderer)(nil)

// DefaultRenderTimeout bounds a single page render.
const DefaultRenderTimeout = 30 * time.Second

// Renderer retrieves rendered HTML from URLs using Chrome browser automation.
// Sites that assemble their content with JavaScript, or that serve a
// challenge page to plain HTTP clients, need this instead of a raw fetch.
// Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout sets the per-render timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// NewRenderer creates a new Renderer that launches a headless Chrome browser.
// Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	// Launch browser using rod's launcher (finds or downloads Chrome)
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	r := &Renderer{
		browser: browser,
		timeout: DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render navigates to the URL and returns the fully rendered HTML.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.browser.Close()
}
