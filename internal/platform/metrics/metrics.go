package metrics

import (
	"sync/atomic"
	"time"
)

// Collector is an in-process request counter exposed on /metricz. Scrape
// and reset semantics are out of scope; it resets with the process.
type Collector struct {
	total      uint64
	errors     uint64
	rejected   uint64
	durationMs uint64
}

func New() *Collector {
	return &Collector{}
}

// Record tallies one completed request. 4xx responses count as rejections
// (rule violations, bad payloads), 5xx as errors.
func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.total, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errors, 1)
	} else if status >= 400 {
		atomic.AddUint64(&c.rejected, 1)
	}
	atomic.AddUint64(&c.durationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.total)
	avg := float64(0)
	if total > 0 {
		avg = float64(atomic.LoadUint64(&c.durationMs)) / float64(total)
	}
	return map[string]any{
		"requestsTotal":    total,
		"requestsRejected": atomic.LoadUint64(&c.rejected),
		"requestsErrored":  atomic.LoadUint64(&c.errors),
		"avgLatencyMillis": avg,
	}
}
