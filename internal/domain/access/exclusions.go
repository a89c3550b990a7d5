package access

import "strings"

// Exclusions lists paths the request gate never inspects.
type Exclusions struct {
	Prefixes []string // API, static assets, image optimisation
	Suffixes []string // static file extensions
}

// DefaultExclusions returns the API, static-asset and image paths skipped by the gate.
func DefaultExclusions() Exclusions {
	return Exclusions{
		Prefixes: []string{"/api", "/static/", "/_next/static", "/_next/image"},
		Suffixes: []string{".png"},
	}
}

// Matches reports whether path is excluded from authorization.
func (e Exclusions) Matches(path string) bool {
	for _, p := range e.Prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, s := range e.Suffixes {
		if s != "" && strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
