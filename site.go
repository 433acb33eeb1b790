package webster

import (
	"context"
	"time"
)

// DefaultDepth is the default number of link-outs to follow from the root URL.
const DefaultDepth = 3

// Site represents a website registered for scraping and chat.
type Site struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	RootURL string `json:"rootUrl"`

	// IncludePaths limits the crawl to URLs whose path starts with one of
	// these prefixes. Empty means the whole origin ("/").
	IncludePaths []string `json:"includePaths,omitempty"`

	// Depth is the maximum number of link-outs to follow from the root URL.
	Depth int `json:"depth"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the site contains invalid fields.
func (s *Site) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "site name required")
	}
	if s.RootURL == "" {
		return Errorf(EINVALID, "site root URL required")
	}
	if s.Depth < 0 {
		return Errorf(EINVALID, "site depth must not be negative")
	}
	return nil
}

// SiteService represents a service for managing sites.
type SiteService interface {
	// CreateSite creates a new site.
	CreateSite(ctx context.Context, site *Site) error

	// FindSiteByID retrieves a site by ID.
	// Returns ENOTFOUND if site does not exist.
	FindSiteByID(ctx context.Context, id string) (*Site, error)

	// FindSites retrieves sites matching the filter.
	FindSites(ctx context.Context, filter SiteFilter) ([]*Site, error)

	// UpdateSite updates an existing site.
	// Returns ENOTFOUND if site does not exist.
	UpdateSite(ctx context.Context, id string, upd SiteUpdate) (*Site, error)

	// DeleteSite permanently removes a site and all associated documents,
	// chunks, and conversations.
	// Returns ENOTFOUND if site does not exist.
	DeleteSite(ctx context.Context, id string) error
}

// SiteFilter represents a filter for FindSites.
type SiteFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SiteUpdate represents fields that can be updated on a site.
type SiteUpdate struct {
	Name         *string   `json:"name"`
	RootURL      *string   `json:"rootUrl"`
	IncludePaths *[]string `json:"includePaths"`
	Depth        *int      `json:"depth"`
}
