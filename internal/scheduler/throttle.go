package scheduler

import "sync"

// graceSeconds absorbs tick jitter: a post due in slightly under a
// full interval still goes out rather than waiting a whole extra tick.
const graceSeconds = 5

type throttleKey struct {
	chatID  int64
	matchID string
}

// Throttle remembers when each tenant last got a score post for each
// match, so live tracking emits at most one update per poll interval
// per tenant and match. Scoping by tenant matters: two tenants
// following the same match each get their own updates. The map lives
// only as long as the process; after a restart the first tick may
// carry one extra post per match, which is accepted.
type Throttle struct {
	mu     sync.Mutex
	posted map[throttleKey]int64
}

// NewThrottle returns an empty throttle.
func NewThrottle() *Throttle {
	return &Throttle{posted: make(map[throttleKey]int64)}
}

// ShouldPost reports whether at least interval-5 seconds have passed
// since the tenant's last recorded post for the match. Unknown pairs
// always pass.
func (t *Throttle) ShouldPost(chatID int64, matchID string, now, interval int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	last, ok := t.posted[throttleKey{chatID, matchID}]
	if !ok {
		return true
	}
	return now-last >= interval-graceSeconds
}

// MarkPosted records a post time for the tenant and match.
func (t *Throttle) MarkPosted(chatID int64, matchID string, now int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.posted[throttleKey{chatID, matchID}] = now
}
