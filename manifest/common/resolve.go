package common

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/abrtools/manifestkit/logging"
)

// Matches absolute ("https://...") and protocol-relative ("//host/...") references
var absoluteRefPattern = regexp.MustCompile(`(?i)^([a-z][a-z0-9+.-]*:)?//`)

// IsRelativeURL reports whether ref is path-relative ("variant.m3u8") or
// domain-relative ("/path/variant.m3u8"). Absolute and protocol-relative
// references return false.
func IsRelativeURL(ref string) bool {
	return !absoluteRefPattern.MatchString(ref)
}

// ResolveURL resolves a URI reference against the manifest's base URL.
//
// Absolute references are returned unchanged. Protocol-relative references
// ("//host/path") are also returned as-is rather than qualified with the
// base's scheme. Domain-relative references are joined to the base origin,
// and path-relative references are merged against the base's directory per
// RFC 3986 § 5.3.
//
// A base URL that cannot be parsed never aborts a manifest parse: the
// reference is returned unchanged and a diagnostic is logged.
func ResolveURL(reference, baseURL string) string {
	if !IsRelativeURL(reference) {
		return reference
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		logging.Debug("cannot resolve reference against malformed base URL", logging.Fields{
			"reference": reference,
			"base_url":  baseURL,
		})
		return reference
	}

	origin := base.Scheme + "://" + base.Host

	// Domain-relative: origin + reference
	if strings.HasPrefix(reference, "/") {
		return origin + reference
	}

	// Path-relative: strip the base's last path segment and query, then append
	dir := base.Path
	if idx := strings.LastIndex(dir, "/"); idx >= 0 {
		dir = dir[:idx+1]
	} else {
		dir = "/"
	}

	return origin + dir + reference
}
