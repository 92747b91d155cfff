package site

import (
	"net/http"
	"path"
	"strings"

	"farmgenius/gateway/pkg/telemetry/metrics"
)

// HasDotDot reports whether any segment of p is "..". Both separators are
// checked since the path may end up on a Windows file system.
func HasDotDot(p string) bool {
	if !strings.Contains(p, "..") {
		return false
	}
	for _, seg := range strings.FieldsFunc(p, isSlash) {
		if seg == ".." {
			return true
		}
	}
	return false
}

func isSlash(r rune) bool { return r == '/' || r == '\\' }

// CleanPath returns the canonical form of a request path: rooted, with
// duplicate slashes and "." segments removed. A trailing slash survives.
func CleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	if p[len(p)-1] == '/' && np != "/" {
		np += "/"
	}
	return np
}

// TraversalGuard rejects request paths with ".." segments with 403 before
// they reach next, and rewrites other unclean paths ("//a", "/./a") to
// their canonical form. http.ServeMux would otherwise answer both with a
// redirect.
func TraversalGuard(m *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if HasDotDot(r.URL.Path) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(forbiddenBody))
				m.RecordStatic(KindForbidden)
				return
			}
			if clean := CleanPath(r.URL.Path); clean != r.URL.Path {
				r = r.Clone(r.Context())
				r.URL.Path = clean
				r.URL.RawPath = ""
			}
			next.ServeHTTP(w, r)
		})
	}
}
