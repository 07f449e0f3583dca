package bot

import (
	"fmt"
	"strings"

	"cricbot/internal/cricket"
	"cricbot/internal/model"
	"cricbot/internal/news"
)

// FormatScoreUpdate formats a live score post for one match.
func FormatScoreUpdate(m *cricket.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.Name)
	if m.Series != "" {
		fmt.Fprintf(&b, "%s\n", m.Series)
	}
	if m.Status != "" {
		fmt.Fprintf(&b, "%s\n", m.Status)
	}
	writeScoreLines(&b, m.Score)
	return strings.TrimRight(b.String(), "\n")
}

// FormatFinal formats the closing post for a finished match. detail is
// best-effort and may be nil; the post then carries only the match
// record's own fields.
func FormatFinal(m *cricket.Match, detail *cricket.MatchDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Finished: %s\n", m.Name)
	if m.Status != "" {
		fmt.Fprintf(&b, "%s\n", m.Status)
	}
	writeScoreLines(&b, m.Score)
	if detail != nil {
		for _, inn := range detail.Innings {
			top := topBatter(inn.Batting)
			if top != "" {
				fmt.Fprintf(&b, "%s — %s\n", inn.Inning, top)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTrackingStopped formats the notice sent after a followed match
// has been closed out.
func FormatTrackingStopped(m *cricket.Match) string {
	return fmt.Sprintf("Stopped tracking: %s\nUse /matches and /follow <id> to track another match.", m.Name)
}

// FormatSummary formats one batch of the daily summary.
func FormatSummary(matches []cricket.Match) string {
	var b strings.Builder
	b.WriteString("Today's cricket:\n")
	for i := range matches {
		writeMatchLine(&b, &matches[i])
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatFixtures formats tomorrow's international fixtures, with an
// explicit line when there are none.
func FormatFixtures(day string, matches []cricket.Match) string {
	if len(matches) == 0 {
		return fmt.Sprintf("Internationals on %s: none found.", day)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Internationals on %s:\n", day)
	for i := range matches {
		m := &matches[i]
		fmt.Fprintf(&b, "- %s", m.Name)
		if t, ok := m.StartTime(); ok {
			fmt.Fprintf(&b, " (%s UTC)", t.Format("15:04"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatMatchList formats the /matches reply, ids included so they can
// be fed to /follow.
func FormatMatchList(matches []cricket.Match) string {
	if len(matches) == 0 {
		return "No current matches pass your filters. Widen them with /categories, /genders, or /teams."
	}
	var b strings.Builder
	b.WriteString("Current matches:\n")
	for i := range matches {
		m := &matches[i]
		writeMatchLine(&b, m)
		fmt.Fprintf(&b, "  id: %s\n", m.Identity())
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatScorecard formats the /score reply.
func FormatScorecard(detail *cricket.MatchDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", detail.Name)
	if detail.Status != "" {
		fmt.Fprintf(&b, "%s\n", detail.Status)
	}
	writeScoreLines(&b, detail.Score)
	for _, inn := range detail.Innings {
		fmt.Fprintf(&b, "\n%s\n", inn.Inning)
		if top := topBatter(inn.Batting); top != "" {
			fmt.Fprintf(&b, "  Batting: %s\n", top)
		}
		if top := topBowler(inn.Bowling); top != "" {
			fmt.Fprintf(&b, "  Bowling: %s\n", top)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTenantStatus formats the /status reply.
func FormatTenantStatus(t *model.Tenant) string {
	var b strings.Builder
	b.WriteString("Your settings:\n")

	switch {
	case t.ChannelID == 0:
		b.WriteString("Destination: not configured (use /channel)\n")
	case t.ChannelID == t.ChatID:
		b.WriteString("Destination: this chat\n")
	default:
		fmt.Fprintf(&b, "Destination: channel %d\n", t.ChannelID)
	}

	fmt.Fprintf(&b, "Mode: %s\n", t.Mode)
	fmt.Fprintf(&b, "Categories: %s\n", joinCategories(t.Categories))
	fmt.Fprintf(&b, "Genders: %s\n", joinGenders(t.Genders))

	if len(t.Teams) == 0 {
		b.WriteString("Teams: any\n")
	} else {
		fmt.Fprintf(&b, "Teams: %s\n", strings.Join(t.Teams, ", "))
	}

	if len(t.Followed) == 0 {
		b.WriteString("Following: none\n")
	} else {
		fmt.Fprintf(&b, "Following: %s\n", strings.Join(t.Followed, ", "))
	}

	fmt.Fprintf(&b, "Daily post time: %s UTC\n", formatClock(t.DailyTime))

	if t.PingEnabled && len(t.PingRoles) > 0 {
		fmt.Fprintf(&b, "Pings: on (%s)\n", strings.Join(t.PingRoles, " "))
	} else {
		b.WriteString("Pings: off\n")
	}

	if t.Paused {
		b.WriteString("Paused: yes\n")
	} else {
		b.WriteString("Paused: no\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatNews formats the /news reply.
func FormatNews(items []news.Item) string {
	if len(items) == 0 {
		return "No headlines right now."
	}
	var b strings.Builder
	b.WriteString("Cricket news:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s", it.Title)
		if it.Published != "" {
			fmt.Fprintf(&b, " (%s)", it.Published)
		}
		b.WriteString("\n")
		if it.Link != "" {
			fmt.Fprintf(&b, "  %s\n", it.Link)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeMatchLine(b *strings.Builder, m *cricket.Match) {
	fmt.Fprintf(b, "- %s", m.Name)
	if m.Status != "" {
		fmt.Fprintf(b, " [%s]", m.Status)
	}
	b.WriteString("\n")
}

func writeScoreLines(b *strings.Builder, scores []cricket.Score) {
	for _, s := range scores {
		fmt.Fprintf(b, "%s: %d/%d (%.1f ov)\n", s.Inning, s.Runs, s.Wickets, s.Overs)
	}
}

// topBatter returns the innings' highest scorer as "Name 87 (54)".
func topBatter(batting []cricket.BattingEntry) string {
	best := -1
	var line string
	for _, e := range batting {
		if e.Runs > best {
			best = e.Runs
			line = fmt.Sprintf("%s %d (%d)", e.Batsman.Name, e.Runs, e.Balls)
		}
	}
	if best < 0 {
		return ""
	}
	return line
}

// topBowler returns the innings' best bowler as "Name 3/24".
func topBowler(bowling []cricket.BowlingEntry) string {
	bestW, bestR := -1, 0
	var line string
	for _, e := range bowling {
		if e.Wickets > bestW || (e.Wickets == bestW && e.Runs < bestR) {
			bestW, bestR = e.Wickets, e.Runs
			line = fmt.Sprintf("%s %d/%d", e.Bowler.Name, e.Wickets, e.Runs)
		}
	}
	if bestW < 0 {
		return ""
	}
	return line
}

// formatClock renders a stored HHMM value as HH:MM for display.
func formatClock(hhmm string) string {
	if len(hhmm) != 4 {
		return hhmm
	}
	return hhmm[:2] + ":" + hhmm[2:]
}

func joinCategories(categories []model.Category) string {
	if len(categories) == 0 {
		return "all"
	}
	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

func joinGenders(genders []model.Gender) string {
	if len(genders) == 0 {
		return "all"
	}
	parts := make([]string, len(genders))
	for i, g := range genders {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}
