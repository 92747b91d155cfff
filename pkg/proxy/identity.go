package proxy

import (
	"net"
	"net/http"
	"strings"
)

// ForwardedForHeader carries the client chain set by a reverse proxy.
const ForwardedForHeader = "X-Forwarded-For"

// ClientIdentity returns the key used for rate limiting. With trustProxy
// the first X-Forwarded-For entry wins; otherwise, or when the header is
// absent, it is the peer address without its port.
func ClientIdentity(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get(ForwardedForHeader); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
