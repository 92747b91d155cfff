// Package middleware provides the HTTP middleware wrapped around every
// route of the gateway.
//
// The server chains them outermost first:
//
//	RecoveryMiddleware       panics become 500
//	RequestIDMiddleware      X-Request-ID in context and headers
//	LoggingMiddleware        structured request log
//	NoCacheMiddleware        Cache-Control, Pragma, Expires
//	CORSMiddleware           allow-list echo; OPTIONS answered here
//
// Each has the func(http.Handler) http.Handler shape, or is one.
package middleware
