package rtm

import (
	"sync"
	"time"
)

// heartbeat tracks the single in-flight liveness probe. Only one probe
// is outstanding at a time; a reconnect abandons it via reset rather
// than cancelling it.
type heartbeat struct {
	mu      sync.Mutex
	probeID int64
	probeAt time.Time
	replyAt time.Time
}

func (h *heartbeat) recordProbe(id int64, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probeID = id
	h.probeAt = at
}

// recordReply notes the reply time for the matching probe; replies to
// abandoned probes are ignored.
func (h *heartbeat) recordReply(id int64, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if id != h.probeID {
		return
	}
	h.replyAt = at
}

// alive evaluates liveness. Checking is opt-in: with no configured
// timeout, or before both a probe time and a reply time are known, the
// connection is treated as alive unconditionally. Otherwise the last
// reply must have landed within the timeout of its probe.
func (h *heartbeat) alive(timeout time.Duration) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if timeout <= 0 || h.probeAt.IsZero() || h.replyAt.IsZero() {
		return true
	}
	return h.replyAt.Sub(h.probeAt) < timeout
}

func (h *heartbeat) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probeID = 0
	h.probeAt = time.Time{}
	h.replyAt = time.Time{}
}
