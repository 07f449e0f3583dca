package scheduler

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"cricbot/internal/cricket"
)

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		dailyTime string
		want      time.Time
	}{
		{
			name:      "later today",
			dailyTime: "1830",
			want:      time.Date(2026, 8, 24, 18, 30, 0, 0, time.UTC),
		},
		{
			name:      "already passed rolls to tomorrow",
			dailyTime: "0900",
			want:      time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "exactly now rolls to tomorrow",
			dailyTime: "1000",
			want:      time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		},
		{
			name:      "malformed value falls back to 0900",
			dailyTime: "25xx",
			want:      time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextOccurrence(now, tt.dailyTime)
			if diff := cmp.Diff(tt.want.Unix(), got); diff != "" {
				t.Errorf("nextOccurrence(%q) (-want +got):\n%s", tt.dailyTime, diff)
			}
		})
	}
}

func TestDailyClock(t *testing.T) {
	tests := []struct {
		in         string
		wantHour   int
		wantMinute int
	}{
		{"0900", 9, 0},
		{"1830", 18, 30},
		{"0000", 0, 0},
		{"2359", 23, 59},
		{"2460", 9, 0},
		{"9:00", 9, 0},
		{"abc", 9, 0},
		{"", 9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			hour, minute := dailyClock(tt.in)
			if hour != tt.wantHour || minute != tt.wantMinute {
				t.Errorf("dailyClock(%q) = %d:%d, want %d:%d", tt.in, hour, minute, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestAdvanceDaily(t *testing.T) {
	slot := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		prev time.Time
		now  time.Time
		want time.Time
	}{
		{
			name: "on-time fire moves one day",
			prev: slot,
			now:  slot.Add(5 * time.Second),
			want: slot.AddDate(0, 0, 1),
		},
		{
			name: "late tick keeps the wall-clock slot",
			prev: slot,
			now:  slot.Add(5*time.Hour + 37*time.Minute),
			want: slot.AddDate(0, 0, 1),
		},
		{
			name: "multi-day outage collapses to one future slot",
			prev: slot.AddDate(0, 0, -3),
			now:  slot.Add(time.Hour),
			want: slot.AddDate(0, 0, 1),
		},
		{
			name: "future gate is left alone",
			prev: slot.AddDate(0, 0, 2),
			now:  slot,
			want: slot.AddDate(0, 0, 2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := advanceDaily(tt.prev.Unix(), tt.now)
			if diff := cmp.Diff(tt.want.Unix(), got); diff != "" {
				t.Errorf("advanceDaily (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSummaryEligible(t *testing.T) {
	tests := []struct {
		name  string
		match cricket.Match
		want  bool
	}{
		{
			name:  "international passes",
			match: t20iLive("2026-08-24"),
			want:  true,
		},
		{
			name:  "franchise never passes",
			match: iplLive("2026-08-24"),
			want:  false,
		},
		{
			name:  "regional first-class passes",
			match: ranjiLive("2026-08-24"),
			want:  true,
		},
		{
			name: "regional limited-overs passes",
			match: cricket.Match{
				Name:      "Punjab vs Baroda",
				Series:    "Syed Mushtaq Ali Trophy 2026",
				MatchType: "t20",
				Teams:     []string{"Punjab", "Baroda"},
			},
			want: true,
		},
		{
			name: "overseas first-class does not pass",
			match: cricket.Match{
				Name:      "Surrey vs Kent",
				Series:    "County Championship Division One",
				MatchType: "first-class",
				Teams:     []string{"Surrey", "Kent"},
			},
			want: false,
		},
		{
			name: "overseas domestic t20 does not pass",
			match: cricket.Match{
				Name:      "Somerset vs Essex",
				Series:    "Vitality Blast 2026",
				MatchType: "t20",
				Teams:     []string{"Somerset", "Essex"},
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := summaryEligible(&tt.match); got != tt.want {
				t.Errorf("summaryEligible(%s) = %v, want %v", tt.match.Name, got, tt.want)
			}
		})
	}
}
