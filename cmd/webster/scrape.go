package main

import (
	"fmt"
	"net/url"

	"github.com/hexbenjamin/webster"
	"github.com/hexbenjamin/webster/crawl"
	"github.com/hexbenjamin/webster/fs"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	urlFilter, err := webster.NewURLFilter(c.Filter...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
		return err
	}

	// Preview mode: show URLs without creating a site
	if c.Preview {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
			return err
		}
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	name := c.Name
	if name == "" {
		parsed, err := url.Parse(c.URL)
		if err != nil || parsed.Host == "" {
			fmt.Fprintf(deps.Stderr, "error: invalid URL %q\n", c.URL)
			return webster.Errorf(webster.EINVALID, "invalid URL %q", c.URL)
		}
		name = parsed.Host
	}

	// Force mode: delete an existing site with the same name first
	if c.Force {
		existing, err := deps.Sites.FindSites(deps.Ctx, webster.SiteFilter{Name: &name})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			if err := deps.Sites.DeleteSite(deps.Ctx, existing[0].ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
				return err
			}
		}
	}

	site := &webster.Site{
		Name:    name,
		RootURL: c.URL,
		Depth:   c.Depth,
	}
	if len(c.Include) > 0 {
		site.IncludePaths = crawl.NormalizeIncludePaths(c.Include)
	}

	if err := deps.Sites.CreateSite(deps.Ctx, site); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
		if webster.ErrorCode(err) == webster.ECONFLICT {
			fmt.Fprintf(deps.Stderr, "Use --force to replace the existing site\n")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added site %q (%s)\n", name, site.ID)

	if deps.Crawler == nil {
		return nil
	}

	if c.Concurrency > 0 {
		deps.Crawler.Concurrency = c.Concurrency
	}

	exporter := fs.NewExporter(c.Out, fsFormat(c.OutFormat, deps.Stderr))
	deps.Crawler.Export = exporter

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			// Summary printed after crawl completes
		}
	}

	result, err := deps.Crawler.CrawlSite(deps.Ctx, site, urlFilter, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	if err := exporter.SaveSitemap(); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: failed to save sitemap.json: %v\n", err)
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d pages (%s, %s)\n",
		result.Saved, crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens))
	fmt.Fprintf(deps.Stdout, "Next: run 'webster embed %s' to make the site searchable\n", name)

	return nil
}
