package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Extractor *pipeline.Extractor
	Writer    webclip.ArticleWriter
	Source    webclip.URLSource
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool          `short:"v" help:"Log pipeline operations to stderr"`
	Engine    string        `default:"readability" enum:"readability,trafilatura" help:"Boilerplate-removal engine"`
	NoBrowser bool          `help:"Disable the headless browser fallback"`
	Timeout   time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`

	Extract ExtractCmd `cmd:"" help:"Extract a single page"`
	Multi   MultiCmd   `cmd:"" help:"Extract several pages given as arguments"`
	Batch   BatchCmd   `cmd:"" help:"Extract pages listed in a file or discovered from a sitemap"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL             string `arg:"" help:"Page URL"`
	Format          string `short:"f" default:"markdown" enum:"markdown,html,text" help:"Output format"`
	IncludeComments bool   `help:"Keep comment sections"`
	Images          bool   `default:"true" negatable:"" help:"Keep inline images"`
	DownloadImages  bool   `help:"Download images next to the output file"`
	DownloadFiles   bool   `help:"Download linked documents next to the output file"`
	Output          string `short:"o" help:"Save to this directory instead of printing to stdout"`
}

// BatchOptions are the flags shared by the multi and batch subcommands.
type BatchOptions struct {
	OutputDir       string  `short:"o" default:"." help:"Output directory"`
	Format          string  `short:"f" default:"markdown" enum:"markdown,html,text" help:"Output format"`
	IncludeComments bool    `help:"Keep comment sections"`
	Images          bool    `default:"true" negatable:"" help:"Keep inline images"`
	DownloadImages  bool    `help:"Download images into per-article directories"`
	DownloadFiles   bool    `help:"Download linked documents into per-article directories"`
	Concurrency     int     `short:"c" default:"5" help:"Concurrent extraction limit"`
	RPS             float64 `name:"rps" default:"0" help:"Per-domain requests per second (0 = unlimited)"`
	Index           string  `help:"Record extractions in this SQLite database"`
	SkipIndexed     bool    `help:"Skip URLs already recorded in the index"`
}

// MultiCmd is the "multi" subcommand.
type MultiCmd struct {
	URLs         []string `arg:"" help:"Page URLs"`
	BatchOptions `embed:""`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File         string `arg:"" optional:"" help:"File with one URL per line (# comments and blanks skipped)"`
	Sitemap      string `help:"Discover article URLs from this site's sitemap"`
	BatchOptions `embed:""`
}
