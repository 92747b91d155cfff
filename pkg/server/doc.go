// Package server ties the gateway together: Routes builds the HTTP surface
// and Server runs it.
//
// # Routes
//
//   - POST /api/chat, /api/chat/: chat proxy
//   - POST /api/translate, /api/translate/: translation proxy
//   - /api/*: structured 404 listing the endpoints above
//   - GET /healthz, /readyz, /version: health
//   - GET /metrics: Prometheus exposition when enabled
//   - everything else: static site with SPA fallback
//
// # Middleware Chain
//
// Requests pass through, outermost first:
//  1. Recovery: turns panics into 500
//  2. RequestID: assigns X-Request-ID and puts it in the log context
//  3. Logging: one record per request
//  4. NoCache: cache-busting headers on every response
//  5. CORS: allow-list origins, answers preflight
//  6. TraversalGuard: 403 for ".." segments
//
// # Graceful Shutdown
//
// Cancelling the context passed to Start stops the listener and waits for
// in-flight requests up to server.shutdown_timeout.
package server
