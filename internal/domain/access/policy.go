package access

import (
	"errors"
	"strings"
)

// Decision is the outcome of authorizing one request.
type Decision int

const (
	// Allow lets the request reach its handler.
	Allow Decision = iota
	// RedirectLogin denies an anonymous request for a protected path.
	RedirectLogin
	// RedirectHome sends a signed-in user away from the public pages.
	RedirectHome
)

// String returns the decision name used in logs.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	}
	return "unknown"
}

// Domain errors
var (
	ErrEmptyProtectedPrefix = errors.New("protected prefix cannot be empty")
	ErrRelativePath         = errors.New("policy paths must start with '/'")
)

// Policy describes which paths require a session and where to send users.
type Policy struct {
	ProtectedPrefix string // e.g. /dashboard
	LoginPath       string // e.g. /login
	HomePath        string // protected-area root, e.g. /dashboard
}

// DefaultPolicy returns the dashboard routing policy.
func DefaultPolicy() Policy {
	return Policy{
		ProtectedPrefix: "/dashboard",
		LoginPath:       "/login",
		HomePath:        "/dashboard",
	}
}

// Validate checks the policy is usable.
// PRE: Policy struct is populated
// POST: Returns nil if valid, error otherwise
func (p Policy) Validate() error {
	if p.ProtectedPrefix == "" || p.ProtectedPrefix == "/" {
		return ErrEmptyProtectedPrefix
	}
	for _, path := range []string{p.ProtectedPrefix, p.LoginPath, p.HomePath} {
		if !strings.HasPrefix(path, "/") {
			return ErrRelativePath
		}
	}
	return nil
}

// IsProtected reports whether path lies under the protected prefix.
// Matching is by whole path segment, so /dashboardx is not protected.
func (p Policy) IsProtected(path string) bool {
	prefix := strings.TrimSuffix(p.ProtectedPrefix, "/")
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// Decide authorizes a request from session presence and the requested path.
// INVARIANT: pure; no I/O and no dependence on anything but its inputs
func (p Policy) Decide(sessionPresent bool, path string) Decision {
	protected := p.IsProtected(path)
	switch {
	case protected && sessionPresent:
		return Allow
	case protected:
		return RedirectLogin
	case sessionPresent:
		return RedirectHome
	default:
		return Allow
	}
}

// Target returns the redirect location for a decision, or "" for Allow.
func (p Policy) Target(d Decision) string {
	switch d {
	case RedirectLogin:
		return p.LoginPath
	case RedirectHome:
		return p.HomePath
	}
	return ""
}
