package providers

import "time"

// unhealthyAfter is the number of consecutive failed calls after which a
// backend reports unhealthy.
const unhealthyAfter = 3

// ClientHealth tracks call outcomes for one backend.
type ClientHealth struct {
	IsHealthy             bool
	ConsecutiveFailures   int
	TotalRequests         int64
	FailedRequests        int64
	LastError             error
	LastSuccessfulRequest time.Time
}

// Health returns a snapshot of the call counters.
func (c *HTTPClient) Health() ClientHealth {
	c.healthMu.RLock()
	defer c.healthMu.RUnlock()
	return c.health
}

// IsHealthy reports whether fewer than three consecutive calls failed.
func (c *HTTPClient) IsHealthy() bool {
	return c.Health().IsHealthy
}

func (c *HTTPClient) recordRequest(success bool, err error) {
	c.healthMu.Lock()
	defer c.healthMu.Unlock()

	c.health.TotalRequests++
	if success {
		c.health.IsHealthy = true
		c.health.ConsecutiveFailures = 0
		c.health.LastError = nil
		c.health.LastSuccessfulRequest = time.Now()
		return
	}

	c.health.FailedRequests++
	c.health.ConsecutiveFailures++
	c.health.LastError = err
	if c.health.ConsecutiveFailures >= unhealthyAfter && c.health.IsHealthy {
		c.health.IsHealthy = false
		c.logger.Warn("provider marked unhealthy",
			"consecutive_failures", c.health.ConsecutiveFailures,
			"error", err,
		)
	}
}
