package api

import (
	"net/url"
	"strings"
)

// ResolveImageURL maps a stored material reference to a fetchable address.
// The service returns service-relative paths like /files/... which are
// resolved against the configured base URL; absolute URLs pass through.
func (c *Client) ResolveImageURL(ref string) string {
	if ref == "" {
		return ""
	}

	if parsed, err := url.Parse(ref); err == nil && parsed.Scheme != "" {
		return ref
	}

	resolved := *c.baseURL
	resolved.Path = strings.TrimRight(resolved.Path, "/") + "/" + strings.TrimLeft(ref, "/")
	resolved.RawQuery = ""
	return resolved.String()
}
