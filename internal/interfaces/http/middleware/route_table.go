package middleware

import (
	"strings"

	"github.com/stockdash/backend/internal/infrastructure/config"
)

// RouteClass is the gateway's classification of a request path
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RoutePublicAPI
	RouteProtectedAPI
	RouteProtectedUI
	RouteAdminUI
)

// String returns the class name used in logs
func (c RouteClass) String() string {
	switch c {
	case RoutePublic:
		return "public"
	case RoutePublicAPI:
		return "public_api"
	case RouteProtectedAPI:
		return "protected_api"
	case RouteProtectedUI:
		return "protected_ui"
	case RouteAdminUI:
		return "admin_ui"
	default:
		return "unknown"
	}
}

// IsAPI reports whether the class answers with JSON rather than redirects
func (c RouteClass) IsAPI() bool {
	return c == RoutePublicAPI || c == RouteProtectedAPI
}

// RouteTable holds the path prefixes the gateway classifies against.
// Matching is plain prefix matching: "/users" also covers "/users/42".
type RouteTable struct {
	PublicPaths    []string
	PublicAPIPaths []string
	AdminPaths     []string
	APIPrefix      string
	LoginPath      string
	HomePath       string
}

// NewRouteTable builds a route table from gateway configuration
func NewRouteTable(cfg config.GatewayConfig) RouteTable {
	return RouteTable{
		PublicPaths:    append([]string(nil), cfg.PublicPaths...),
		PublicAPIPaths: append([]string(nil), cfg.PublicAPIPaths...),
		AdminPaths:     append([]string(nil), cfg.AdminPaths...),
		APIPrefix:      cfg.APIPrefix,
		LoginPath:      cfg.LoginPath,
		HomePath:       cfg.HomePath,
	}
}

// DefaultRouteTable returns the dashboard's built-in route table
func DefaultRouteTable() RouteTable {
	return RouteTable{
		PublicPaths:    []string{"/login", "/register", "/forgot-password"},
		PublicAPIPaths: []string{"/api/auth/login", "/api/auth/register"},
		AdminPaths:     []string{"/users", "/settings"},
		APIPrefix:      "/api/",
		LoginPath:      "/login",
		HomePath:       "/dashboard",
	}
}

// Classify maps a request path to its route class. Public UI paths are
// checked first, then the API prefix, then the admin allowlist.
func (t RouteTable) Classify(path string) RouteClass {
	switch {
	case hasAnyPrefix(path, t.PublicPaths):
		return RoutePublic
	case strings.HasPrefix(path, t.APIPrefix):
		if hasAnyPrefix(path, t.PublicAPIPaths) {
			return RoutePublicAPI
		}
		return RouteProtectedAPI
	case hasAnyPrefix(path, t.AdminPaths):
		return RouteAdminUI
	default:
		return RouteProtectedUI
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
