package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// CORSConfig contains configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins returns the current allow-list. It is called per
	// request so a config reload takes effect immediately. Wildcards are
	// not supported: an origin is echoed only on an exact match.
	AllowedOrigins func() []string

	// AllowedMethods is a list of allowed HTTP methods.
	AllowedMethods []string

	// AllowedHeaders is a list of allowed HTTP headers.
	AllowedHeaders []string

	// AllowCredentials adds Access-Control-Allow-Credentials to echoed
	// origins.
	AllowCredentials bool
}

// DefaultCORSConfig returns the gateway's CORS policy for the given
// allow-list source.
func DefaultCORSConfig(origins func() []string) *CORSConfig {
	return &CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}
}

// CORSMiddleware adds CORS headers to every response. A request Origin is
// echoed back only when it is on the allow-list; otherwise no
// Access-Control-Allow-Origin is sent and browsers fall back to same-origin.
// OPTIONS requests on any path are answered 200 with the headers only.
//
//	handler = CORSMiddleware(DefaultCORSConfig(origins))(handler)
func CORSMiddleware(config *CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && isOriginAllowed(origin, config.AllowedOrigins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				if config.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				w.Header().Add("Vary", "Origin")
			}

			if methods != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
			}
			if headers != "" {
				w.Header().Set("Access-Control-Allow-Headers", headers)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isOriginAllowed checks if an origin is in the allowed list.
func isOriginAllowed(origin string, allowed func() []string) bool {
	if allowed == nil {
		return false
	}
	return slices.Contains(allowed(), origin)
}
