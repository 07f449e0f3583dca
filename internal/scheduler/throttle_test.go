package scheduler

import "testing"

func TestThrottleShouldPost(t *testing.T) {
	const interval = 600

	tr := NewThrottle()

	if !tr.ShouldPost(1, "m1", 1000, interval) {
		t.Fatal("first post for a match must always pass")
	}
	tr.MarkPosted(1, "m1", 1000)

	tests := []struct {
		name string
		now  int64
		want bool
	}{
		{"immediately after", 1001, false},
		{"just inside the interval", 1000 + interval - 6, false},
		{"within the grace window", 1000 + interval - 5, true},
		{"full interval later", 1000 + interval, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.ShouldPost(1, "m1", tt.now, interval); got != tt.want {
				t.Errorf("ShouldPost(1, m1, %d) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestThrottleScopesByTenantAndMatch(t *testing.T) {
	tr := NewThrottle()
	tr.MarkPosted(1, "m1", 1000)

	if tr.ShouldPost(1, "m1", 1001, 600) {
		t.Error("same tenant and match should be throttled right after posting")
	}
	if !tr.ShouldPost(1, "m2", 1001, 600) {
		t.Error("another match for the same tenant must pass")
	}
	if !tr.ShouldPost(2, "m1", 1001, 600) {
		t.Error("the same match for another tenant must pass")
	}
}

func TestThrottleRepostMovesTheWindow(t *testing.T) {
	tr := NewThrottle()
	tr.MarkPosted(1, "m1", 1000)
	tr.MarkPosted(1, "m1", 1600)

	if tr.ShouldPost(1, "m1", 1700, 600) {
		t.Error("window must be measured from the latest post")
	}
	if !tr.ShouldPost(1, "m1", 2195, 600) {
		t.Error("full interval since the latest post must pass")
	}
}
