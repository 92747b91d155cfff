// Package ratelimit implements the per-client fixed-window limiter shared by
// the proxy endpoints.
//
// # Algorithm
//
// For each client identity the store keeps the timestamps (Unix
// milliseconds) of admitted requests in the trailing window. A check prunes
// timestamps that have left the window, rejects when the remaining count has
// reached the limit, and otherwise records the current time:
//
//	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), ratelimit.Config{
//	    Limit:  10,
//	    Window: time.Minute,
//	})
//	if !limiter.Allow(ctx, identity) {
//	    // 429
//	}
//
// Rejected attempts are never recorded, so a sequence holds at most Limit
// entries.
//
// # Stores
//
// MemoryStore keeps state in a mutex-guarded map and is reset on restart.
// RedisStore keeps one sorted set per identity and runs the
// prune-count-append sequence as a Lua script, so several gateway processes
// share one budget per client.
//
// # Sweeping
//
// Identities that stop sending requests leave stale entries behind. Sweeper
// runs Limiter.Sweep on a cron schedule to reclaim them. Sweeping affects
// memory only, never admission.
package ratelimit
