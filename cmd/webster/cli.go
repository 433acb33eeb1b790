package main

import (
	"context"
	"fmt"
	"io"

	"github.com/hexbenjamin/webster"
	"github.com/hexbenjamin/webster/chat"
	"github.com/hexbenjamin/webster/crawl"
	"github.com/hexbenjamin/webster/index"
	"github.com/hexbenjamin/webster/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdin         io.Reader
	Stdout        io.Writer
	Stderr        io.Writer
	DB            *sqlite.DB
	Sites         webster.SiteService
	Documents     webster.DocumentService
	Chunks        webster.ChunkService
	Conversations webster.ConversationService
	Sitemaps      webster.SitemapService
	Crawler       *crawl.Crawler
	Indexer       *index.Indexer
	Engine        *chat.Engine
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Scrape a website into the local database"`
	Embed  EmbedCmd  `cmd:"" help:"Split and embed a site's pages for semantic search"`
	Ask    AskCmd    `cmd:"" help:"Ask a one-off question about a site"`
	Chat   ChatCmd   `cmd:"" help:"Chat interactively about a site"`
	List   ListCmd   `cmd:"" help:"List scraped sites"`
	Pages  PagesCmd  `cmd:"" help:"List a site's scraped pages"`
	Delete DeleteCmd `cmd:"" help:"Delete a site and its data"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL         string   `arg:"" help:"Root URL to scrape"`
	Name        string   `short:"n" help:"Site name (defaults to the URL host)"`
	Depth       int      `short:"d" default:"3" help:"Maximum link depth to follow"`
	Include     []string `short:"i" help:"Limit the crawl to these path prefixes (repeatable)"`
	TagName     string   `help:"CSS selector for the content element (e.g. 'main', '.docs')"`
	Out         string   `short:"o" default:"." help:"Directory for exported pages and sitemap.json"`
	OutFormat   string   `name:"out-format" default:"html" help:"Export format: html or md"`
	Render      bool     `help:"Render pages in a headless browser when the site needs JavaScript"`
	Preview     bool     `short:"p" help:"Show discovered URLs without scraping"`
	Force       bool     `short:"f" help:"Delete an existing site with the same name first"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent fetch limit"`
	Filter      []string `short:"F" name:"filter" help:"Filter URLs by regex, '!'-prefixed to exclude (repeatable)"`
}

// EmbedCmd is the "embed" subcommand.
type EmbedCmd struct {
	Site string `arg:"" help:"Site name"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Site     string `arg:"" help:"Site name"`
	Question string `arg:"" help:"Question to ask about the site"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	Site   string `arg:"" help:"Site name"`
	Resume string `short:"r" help:"Conversation ID to resume"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	Site string `arg:"" help:"Site name"`
	Full bool   `help:"Show full page content"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Site  string `arg:"" help:"Site name"`
	Force bool   `help:"Confirm deletion"`
}

// findSite resolves a site by name, reporting failures to stderr.
func findSite(deps *Dependencies, name string) (*webster.Site, error) {
	sites, err := deps.Sites.FindSites(deps.Ctx, webster.SiteFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webster.ErrorMessage(err))
		return nil, err
	}
	if len(sites) == 0 {
		fmt.Fprintf(deps.Stderr, "error: site %q not found. Use 'webster list' to see scraped sites.\n", name)
		return nil, webster.Errorf(webster.ENOTFOUND, "site %q not found", name)
	}
	return sites[0], nil
}
