package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/fs"
	"github.com/fwojciec/webclip/goquery"
	"github.com/fwojciec/webclip/htmltomarkdown"
	webcliphttp "github.com/fwojciec/webclip/http"
	"github.com/fwojciec/webclip/pipeline"
	"github.com/fwojciec/webclip/readability"
	"github.com/fwojciec/webclip/rod"
	webclipslog "github.com/fwojciec/webclip/slog"
	"github.com/fwojciec/webclip/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webclip"),
		kong.Description("Extract web articles to Markdown, HTML, or plain text"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webclip --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	var fetcher webclip.Fetcher = webcliphttp.NewFetcher(webcliphttp.WithTimeout(cli.Timeout))
	if cli.Verbose {
		fetcher = webclipslog.NewLoggingFetcher(fetcher, logger)
	}
	defer fetcher.Close()

	// The browser is optional: extraction degrades to the textual
	// strategies when it cannot start.
	var renderer webclip.Renderer
	if !cli.NoBrowser {
		r, rerr := rod.NewRenderer(rod.WithTimeout(cli.Timeout * 3))
		if rerr != nil {
			fmt.Fprintf(stderr, "browser unavailable, continuing without it: %v\n", rerr)
		} else {
			renderer = r
			if cli.Verbose {
				renderer = webclipslog.NewLoggingRenderer(renderer, logger)
			}
			defer renderer.Close()
		}
	}

	var summarizer webclip.Summarizer
	switch cli.Engine {
	case "trafilatura":
		summarizer = trafilatura.NewSummarizer()
	default:
		summarizer = readability.NewSummarizer()
	}

	deps.Extractor = &pipeline.Extractor{
		Fetcher:    fetcher,
		Renderer:   renderer,
		Summarizer: summarizer,
		Markdown:   htmltomarkdown.NewConverter(),
		Text:       goquery.NewTextConverter(),
		Downloader: webcliphttp.NewDownloader(),
	}
	deps.Writer = fs.NewWriter()

	var source webclip.URLSource = webcliphttp.NewSitemapSource(nil)
	if cli.Verbose {
		source = webclipslog.NewLoggingURLSource(source, logger)
	}
	deps.Source = source

	return kongCtx.Run(deps)
}
