package helpers

import (
	"net/http"
	"net/url"
	"strings"
)

// OriginChecker matches websocket Origin headers against an allow list.
// A "*" entry allows every origin.
type OriginChecker struct {
	allowAll bool
	allowed  map[string]struct{}
}

func NewOriginChecker(origins []string) *OriginChecker {
	checker := &OriginChecker{allowed: make(map[string]struct{}, len(origins))}
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			checker.allowAll = true
			continue
		}
		if normalized, ok := normalizeOrigin(origin); ok {
			checker.allowed[normalized] = struct{}{}
		}
	}
	return checker
}

func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host), true
}

// Allow reports whether r may be upgraded. Requests without an Origin header
// come from non-browser clients and are allowed.
func (o *OriginChecker) Allow(r *http.Request) bool {
	header := r.Header.Get("Origin")
	if header == "" || o.allowAll {
		return true
	}
	normalized, ok := normalizeOrigin(header)
	if !ok {
		return false
	}
	_, exists := o.allowed[normalized]
	return exists
}
