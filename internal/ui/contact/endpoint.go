package contact

import (
	"net/url"
	"strings"
)

// EndpointConfigured reports whether endpoint points somewhere other than the
// page the form lives on. A relative endpoint is resolved against pageURL
// first, so "/", "./" or "?x=1" on the page itself count as unconfigured.
func EndpointConfigured(endpoint, pageURL string) bool {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" || endpoint == "#" {
		return false
	}
	target, ok := resolve(endpoint, pageURL)
	if !ok {
		return false
	}
	page, ok := resolve(pageURL, "")
	if !ok {
		return true
	}
	return !samePage(target, page)
}

// ResolveEndpoint returns endpoint as an absolute URL relative to pageURL.
// It returns endpoint unchanged when either cannot be parsed.
func ResolveEndpoint(endpoint, pageURL string) string {
	u, ok := resolve(strings.TrimSpace(endpoint), pageURL)
	if !ok {
		return endpoint
	}
	return u.String()
}

func resolve(raw, base string) (*url.URL, bool) {
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, false
	}
	if base = strings.TrimSpace(base); base != "" {
		b, err := url.Parse(base)
		if err != nil {
			return nil, false
		}
		ref = b.ResolveReference(ref)
	}
	return ref, true
}

// samePage compares scheme, host and path, ignoring query, fragment and a
// trailing slash.
func samePage(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) &&
		strings.EqualFold(a.Host, b.Host) &&
		strings.TrimSuffix(a.Path, "/") == strings.TrimSuffix(b.Path, "/")
}
