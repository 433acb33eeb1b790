package main

import (
	"fmt"

	"github.com/hexbenjamin/webster"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sites, err := deps.Sites.FindSites(deps.Ctx, webster.SiteFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites found. Use 'webster scrape' to add one.")
		return nil
	}

	for _, s := range sites {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.ID, s.Name, s.RootURL)
	}

	return nil
}
