package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/webclip"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	if (c.File == "") == (c.Sitemap == "") {
		return webclip.Errorf(webclip.EINVALID, "provide either a URL file or --sitemap")
	}

	var urls []string
	if c.File != "" {
		var err error
		urls, err = readURLFile(c.File)
		if err != nil {
			return err
		}
	} else {
		var err error
		urls, err = deps.Source.Discover(deps.Ctx, c.Sitemap)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webclip.ErrorMessage(err))
			return err
		}
		if len(urls) == 0 {
			return webclip.Errorf(webclip.ENOTFOUND, "no URLs found in sitemap for %s", c.Sitemap)
		}
		fmt.Fprintf(deps.Stdout, "Found %d URLs\n", len(urls))
	}

	return c.BatchOptions.run(deps, urls)
}

// readURLFile reads one URL per line, skipping blank lines and # comments.
func readURLFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
