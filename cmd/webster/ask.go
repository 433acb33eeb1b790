package main

import (
	"fmt"

	"github.com/hexbenjamin/webster"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	site, err := findSite(deps, c.Site)
	if err != nil {
		return err
	}

	answer, err := deps.Engine.Ask(deps.Ctx, site.ID, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)
	printSources(deps, answer.Sources)
	return nil
}

// printSources lists the source URLs that backed an answer.
func printSources(deps *Dependencies, sources []string) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(deps.Stdout, "\nSources:")
	for _, src := range sources {
		fmt.Fprintf(deps.Stdout, "  %s\n", src)
	}
}
