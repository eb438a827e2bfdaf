package auth

import "strings"

// RouteClass is the access-policy tier a request path falls into. The
// classification is total: every path lands in exactly one class, with the
// more specific tiers checked before the authenticated default.
type RouteClass int

const (
	// RoutePublic paths pass through regardless of token state.
	RoutePublic RouteClass = iota
	// RouteAuthPage paths are login/registration pages: reachable without a
	// token, bounced to home once authenticated.
	RouteAuthPage
	// RouteAuthority paths require an authority-role session (prefix match).
	RouteAuthority
	// RouteAuthenticated is the default: any verified session may pass.
	RouteAuthenticated
)

var publicPaths = []string{
	"/",
	"/search",
	"/api/auth/login",
	"/api/auth/register",
}

var publicPrefixes = []string{
	"/static",
	"/images",
	"/public",
	"/favicon.ico",
	"/health",
}

var authPages = []string{
	"/login",
	"/register",
	"/authority-register",
	"/authority-verification",
	"/verification-pending",
}

// Authority restriction is a prefix match so nested sub-paths inherit it.
var authorityPrefixes = []string{
	"/manage-prisoners",
	"/add-released",
	"/authority-verification",
	"/api/prisoners/manage",
}

// Classify returns the route class for a request path. Auth pages and
// authority prefixes are checked before the public set so overlapping
// entries (e.g. /authority-verification, which is both an auth page and
// authority-restricted) resolve deterministically.
func Classify(path string) RouteClass {
	if IsAuthPage(path) {
		return RouteAuthPage
	}
	if IsAuthorityPath(path) {
		return RouteAuthority
	}
	if IsPublic(path) {
		return RoutePublic
	}
	return RouteAuthenticated
}

// IsPublic reports whether the path passes without authentication.
func IsPublic(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// IsAuthPage reports whether the path is a login/registration page that
// authenticated users get bounced away from.
func IsAuthPage(path string) bool {
	for _, p := range authPages {
		if path == p {
			return true
		}
	}
	return false
}

// IsAuthorityPath reports whether the path is restricted to authority
// sessions.
func IsAuthorityPath(path string) bool {
	for _, prefix := range authorityPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
