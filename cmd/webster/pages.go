package main

import (
	"fmt"

	"github.com/hexbenjamin/webster"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	site, err := findSite(deps, c.Site)
	if err != nil {
		return err
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, webster.DocumentFilter{
		SiteID: &site.ID,
		SortBy: webster.SortByPosition,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: site %q has no pages. Run 'webster scrape %s' to scrape it.\n", c.Site, site.RootURL)
		return webster.Errorf(webster.ENOTFOUND, "site %q has no pages", c.Site)
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, webster.FormatDocuments(docs))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Pages for %s (%d total):\n\n", c.Site, len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", i+1, title, doc.SourceURL)
	}

	return nil
}
