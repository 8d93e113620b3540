package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP identifies the caller for rate limiting. With trustForwarded set, the first
// X-Forwarded-For entry wins; that header is client-controlled, so deployments that are not
// behind a rewriting proxy should turn it off.
func ClientIP(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
