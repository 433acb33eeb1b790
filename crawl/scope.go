package crawl

import (
	"net/url"
	"strings"
)

// NormalizeIncludePaths ensures every include path starts with "/".
// An empty list defaults to ["/"], which matches the whole origin.
func NormalizeIncludePaths(paths []string) []string {
	if len(paths) == 0 {
		return []string{"/"}
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		out[i] = p
	}
	return out
}

// Scope restricts a crawl to the origin of the root URL and a set of
// include-path prefixes.
type Scope struct {
	host     string
	scheme   string
	includes []string
}

// NewScope builds a Scope from the root URL and include paths.
func NewScope(rootURL string, includePaths []string) (*Scope, error) {
	root, err := url.Parse(rootURL)
	if err != nil {
		return nil, err
	}
	return &Scope{
		host:     root.Host,
		scheme:   root.Scheme,
		includes: NormalizeIncludePaths(includePaths),
	}, nil
}

// Allows returns true if the URL is same-origin, uses https or the
// root's own scheme, and its path starts with one of the include
// prefixes. Relative links inherit the root scheme when resolved, so
// an http link on an https site is an explicit downgrade and is
// rejected.
func (s *Scope) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host != s.host {
		return false
	}
	if u.Scheme != "https" && u.Scheme != s.scheme {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	for _, prefix := range s.includes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
