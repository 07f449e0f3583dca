package cricket

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name  string
		match Match
		want  string
	}{
		{"id field", Match{ID: "a"}, "a"},
		{"match_id fallback", Match{MatchID: "b"}, "b"},
		{"unique_id fallback", Match{UniqueID: "c"}, "c"},
		{"first populated wins", Match{ID: "a", MatchID: "b"}, "a"},
		{"whitespace does not count", Match{ID: "  ", MatchID: "b"}, "b"},
		{"nothing populated", Match{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.match.Identity()); diff != "" {
				t.Errorf("Identity (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStartTime(t *testing.T) {
	tests := []struct {
		name   string
		match  Match
		want   time.Time
		wantOK bool
	}{
		{
			name:   "plain gmt timestamp",
			match:  Match{DateTimeGMT: "2026-08-24T09:00:00"},
			want:   time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "rfc3339 timestamp",
			match:  Match{DateTimeGMT: "2026-08-24T09:00:00Z"},
			want:   time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "date field fallback",
			match:  Match{Date: "2026-08-24"},
			want:   time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "broken timestamp falls through to date",
			match:  Match{DateTimeGMT: "soon", Date: "2026-08-24"},
			want:   time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "nothing parseable",
			match:  Match{DateTimeGMT: "soon"},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.match.StartTime()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("StartTime = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartDate(t *testing.T) {
	m := Match{DateTimeGMT: "2026-08-24T23:30:00"}
	got, ok := m.StartDate()
	if !ok {
		t.Fatal("expected a start date")
	}
	if diff := cmp.Diff("2026-08-24", got); diff != "" {
		t.Errorf("StartDate (-want +got):\n%s", diff)
	}
}

func TestParticipantText(t *testing.T) {
	m := Match{
		Teams: []string{"India", "Australia"},
		TeamInfo: []Team{
			{Name: "India", ShortName: "IND"},
			{Name: "Australia", ShortName: "AUS"},
		},
	}
	got := m.ParticipantText()
	for _, want := range []string{"india", "australia", "ind", "aus"} {
		if !strings.Contains(got, want) {
			t.Errorf("participant text missing %q:\n%s", want, got)
		}
	}
}

func TestParticipantNames(t *testing.T) {
	tests := []struct {
		name  string
		match Match
		want  []string
	}{
		{
			name: "team info preferred",
			match: Match{
				Teams:    []string{"IND", "AUS"},
				TeamInfo: []Team{{Name: "India"}, {Name: "Australia"}},
			},
			want: []string{"India", "Australia"},
		},
		{
			name:  "teams fallback",
			match: Match{Teams: []string{"India", "Australia"}},
			want:  []string{"India", "Australia"},
		},
		{
			name: "empty team info names fall back",
			match: Match{
				Teams:    []string{"India", "Australia"},
				TeamInfo: []Team{{ShortName: "IND"}},
			},
			want: []string{"India", "Australia"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.match.ParticipantNames()); diff != "" {
				t.Errorf("ParticipantNames (-want +got):\n%s", diff)
			}
		})
	}
}
