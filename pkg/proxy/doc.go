// Package proxy implements the request gating shared by the two proxied
// endpoints, POST /api/chat and POST /api/translate.
//
// Pipeline wires one route through the Gate: method check, size guard,
// rate limiter, JSON decoding and route-specific validation, in that order.
// Only then is the backend called. The limiter is the only shared mutable
// state and no lock is held across the backend call.
//
//	gate := &proxy.Gate{
//	    Limiter:      limiter,
//	    MaxBodyBytes: cfg.Limits.MaxBodyBytes,
//	    TrustProxy:   func() bool { return config.GetConfig().Server.TrustProxy },
//	}
//	mux.Handle("/api/chat", proxy.Pipeline(gate, "chat", parseChat, serveChat))
//
// Client identity is the peer address, or the first X-Forwarded-For entry
// when trust_proxy is enabled.
package proxy
