package metrics

import (
	"testing"
	"time"
)

func TestCollectorBucketsByStatus(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(201, 10*time.Millisecond)
	c.Record(400, 10*time.Millisecond)
	c.Record(409, 10*time.Millisecond)
	c.Record(500, 10*time.Millisecond)

	snap := c.Snapshot()
	if snap["requestsTotal"] != uint64(5) {
		t.Errorf("total = %v", snap["requestsTotal"])
	}
	if snap["requestsRejected"] != uint64(2) {
		t.Errorf("rejected = %v", snap["requestsRejected"])
	}
	if snap["requestsErrored"] != uint64(1) {
		t.Errorf("errored = %v", snap["requestsErrored"])
	}
	if snap["avgLatencyMillis"] != 10.0 {
		t.Errorf("avg latency = %v", snap["avgLatencyMillis"])
	}
}
