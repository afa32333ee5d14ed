package main

import (
	"fmt"

	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if (c.DownloadImages || c.DownloadFiles) && c.Output == "" {
		return webclip.Errorf(webclip.EINVALID, "downloads require an output directory (-o)")
	}

	req := webclip.Request{
		URL:             c.URL,
		Format:          webclip.Format(c.Format),
		IncludeComments: c.IncludeComments,
		IncludeImages:   c.Images,
		DownloadImages:  c.DownloadImages,
		DownloadFiles:   c.DownloadFiles,
	}
	if c.DownloadImages {
		req.ImagesDir = fs.AssetDir(c.Output, "images", c.URL)
	}
	if c.DownloadFiles {
		req.FilesDir = fs.AssetDir(c.Output, "files", c.URL)
	}

	article, err := deps.Extractor.Extract(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webclip.ErrorMessage(err))
		return err
	}

	if c.Output == "" {
		fmt.Fprintln(deps.Stdout, article.Content)
		return nil
	}

	path, err := deps.Writer.WriteArticle(article, c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webclip.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %q to %s\n", article.Title, path)
	if n := len(article.Images); n > 0 {
		fmt.Fprintf(deps.Stdout, "  %d images downloaded\n", n)
	}
	if n := len(article.Files); n > 0 {
		fmt.Fprintf(deps.Stdout, "  %d files downloaded\n", n)
	}
	return nil
}
