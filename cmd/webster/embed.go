package main

import (
	"fmt"

	"github.com/hexbenjamin/webster"
)

// Run executes the embed command.
func (c *EmbedCmd) Run(deps *Dependencies) error {
	site, err := findSite(deps, c.Site)
	if err != nil {
		return err
	}

	progress := func(embedded, total int) {
		fmt.Fprintf(deps.Stdout, "\r  Embedded %d/%d chunks", embedded, total)
	}

	result, err := deps.Indexer.IndexSite(deps.Ctx, site.ID, progress)
	if err != nil {
		fmt.Fprintln(deps.Stdout)
		if webster.ErrorCode(err) == webster.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: site %q has no pages. Run 'webster scrape %s' first.\n", c.Site, site.RootURL)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nIndexed %d pages into %d chunks\n", result.Documents, result.Chunks)
	fmt.Fprintf(deps.Stdout, "Next: run 'webster ask %s \"...\"' or 'webster chat %s'\n", c.Site, c.Site)

	return nil
}
