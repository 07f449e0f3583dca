package cricket

import (
	"strings"
	"time"
)

// Upstream timestamps arrive without a zone suffix but are documented
// as GMT.
const (
	startTimeLayout = "2006-01-02T15:04:05"
	dateLayout      = "2006-01-02"
)

// Match is one upstream match record. The feed is semi-structured:
// any field may be absent, id fields vary by endpoint, and status is
// free text that changes from poll to poll, so nothing derived from it
// is ever cached on the record.
type Match struct {
	ID       string `json:"id"`
	MatchID  string `json:"match_id"`
	UniqueID string `json:"unique_id"`

	Name      string `json:"name"`
	Series    string `json:"series"`
	MatchType string `json:"matchType"`
	Status    string `json:"status"`
	Venue     string `json:"venue"`

	Date        string `json:"date"`
	DateTimeGMT string `json:"dateTimeGMT"`

	Teams    []string `json:"teams"`
	TeamInfo []Team   `json:"teamInfo"`
	Score    []Score  `json:"score"`

	SeriesID     string `json:"series_id"`
	MatchStarted bool   `json:"matchStarted"`
	MatchEnded   bool   `json:"matchEnded"`
}

// Team describes one participant.
type Team struct {
	Name      string `json:"name"`
	ShortName string `json:"shortname"`
}

// Score is one innings line.
type Score struct {
	Runs    int     `json:"r"`
	Wickets int     `json:"w"`
	Overs   float64 `json:"o"`
	Inning  string  `json:"inning"`
}

// Identity returns the stable key for the match: the first id field
// the upstream populated. Empty only for records too broken to use.
func (m *Match) Identity() string {
	for _, id := range []string{m.ID, m.MatchID, m.UniqueID} {
		if s := strings.TrimSpace(id); s != "" {
			return s
		}
	}
	return ""
}

// StartTime parses the match's UTC start timestamp. ok is false when
// neither timestamp field parses; such matches are excluded from
// date-scoped queries but stay eligible through liveness detection.
func (m *Match) StartTime() (time.Time, bool) {
	if m.DateTimeGMT != "" {
		if t, err := time.ParseInLocation(startTimeLayout, m.DateTimeGMT, time.UTC); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, m.DateTimeGMT); err == nil {
			return t.UTC(), true
		}
	}
	if m.Date != "" {
		if t, err := time.ParseInLocation(dateLayout, m.Date, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartDate returns the UTC calendar date ("2006-01-02") of the start
// timestamp.
func (m *Match) StartDate() (string, bool) {
	t, ok := m.StartTime()
	if !ok {
		return "", false
	}
	return t.Format(dateLayout), true
}

// ParticipantText concatenates every participant name and short name,
// lowercased. Classification and team filtering both run substring
// checks against it.
func (m *Match) ParticipantText() string {
	var b strings.Builder
	for _, t := range m.Teams {
		b.WriteString(strings.ToLower(t))
		b.WriteString(" ")
	}
	for _, t := range m.TeamInfo {
		b.WriteString(strings.ToLower(t.Name))
		b.WriteString(" ")
		b.WriteString(strings.ToLower(t.ShortName))
		b.WriteString(" ")
	}
	return b.String()
}

// ParticipantNames returns the best display name per participant,
// preferring teamInfo over the bare teams list.
func (m *Match) ParticipantNames() []string {
	if len(m.TeamInfo) > 0 {
		names := make([]string, 0, len(m.TeamInfo))
		for _, t := range m.TeamInfo {
			if t.Name != "" {
				names = append(names, t.Name)
			}
		}
		if len(names) > 0 {
			return names
		}
	}
	return m.Teams
}

// MatchDetail is the scorecard endpoint's payload: the match record
// plus per-innings batting and bowling.
type MatchDetail struct {
	Match
	Innings []InningsDetail `json:"scorecard"`
}

// InningsDetail is one innings of a scorecard.
type InningsDetail struct {
	Inning  string         `json:"inning"`
	Batting []BattingEntry `json:"batting"`
	Bowling []BowlingEntry `json:"bowling"`
}

// BattingEntry is one batter's line in an innings.
type BattingEntry struct {
	Batsman   NamedRef `json:"batsman"`
	Dismissal string   `json:"dismissal-text"`
	Runs      int      `json:"r"`
	Balls     int      `json:"b"`
	Fours     int      `json:"4s"`
	Sixes     int      `json:"6s"`
}

// BowlingEntry is one bowler's line in an innings.
type BowlingEntry struct {
	Bowler  NamedRef `json:"bowler"`
	Overs   float64  `json:"o"`
	Maidens int      `json:"m"`
	Runs    int      `json:"r"`
	Wickets int      `json:"w"`
	Economy float64  `json:"eco"`
}

// NamedRef is an upstream entity reference.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
