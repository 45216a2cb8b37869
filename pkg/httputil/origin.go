package httputil

import (
	"net/url"
	"strings"
)

// SameOrigin reports whether an Origin header names the host the request was
// sent to, i.e. the page was served by this server.
func SameOrigin(origin, host string) bool {
	if origin == "" || host == "" {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, host)
}
