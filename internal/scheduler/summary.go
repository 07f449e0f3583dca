package scheduler

import (
	"context"
	"strconv"
	"time"

	"cricbot/internal/bot"
	"cricbot/internal/classify"
	"cricbot/internal/cricket"
	"cricbot/internal/filter"
	"cricbot/internal/metrics"
	"cricbot/internal/model"
)

const (
	dayLayout  = "2006-01-02"
	daySeconds = 86400
)

// runFallback is the custom-mode branch for tenants with nothing
// followed: one summary per day at the configured time. Its category
// gate is fixed, not the tenant's own filters: internationals plus the
// regional domestic circuit. That is narrower than the daily branch on
// purpose and must not be unified with it.
func (s *Scheduler) runFallback(ctx context.Context, tenant *model.Tenant, now time.Time) {
	s.runSummary(ctx, tenant, now, tenant.NextDueFallback, s.store.SetNextDueFallback,
		func(m *cricket.Match) bool {
			return summaryEligible(m) && filter.RelevantGenderTeam(m, tenant)
		})
}

// runDaily is the daily-mode branch: one summary per day using the
// tenant's full filter set.
func (s *Scheduler) runDaily(ctx context.Context, tenant *model.Tenant, now time.Time) {
	s.runSummary(ctx, tenant, now, tenant.NextDueDaily, s.store.SetNextDueDaily,
		func(m *cricket.Match) bool {
			return filter.Relevant(m, tenant)
		})
}

// runSummary holds the mechanics shared by the two day-post branches:
// gate initialization, the merged fetch, filtering, batched posting,
// the tomorrow listing, and the drift-free gate advance.
func (s *Scheduler) runSummary(ctx context.Context, tenant *model.Tenant, now time.Time,
	gate int64, setGate func(context.Context, int64, int64) error, keep func(*cricket.Match) bool) {

	// An unset gate anchors to the next occurrence of the tenant's
	// post time without firing, so fresh tenants do not get a summary
	// at whatever moment they happened to register.
	if gate == 0 {
		if err := setGate(ctx, tenant.ChatID, nextOccurrence(now, tenant.DailyTime)); err != nil {
			s.log.Error("persist day-post gate", "chat_id", tenant.ChatID, "error", err)
		}
		return
	}
	if now.Unix() < gate {
		return
	}

	day := now.Format(dayLayout)
	matches, ok := s.todaysMatches(ctx, tenant, day)
	if !ok {
		// Fetch failed; leave the gate untouched so the next tick
		// retries instead of silently skipping a day.
		return
	}

	var relevant []cricket.Match
	for i := range matches {
		m := &matches[i]
		if !keep(m) || !classify.ScheduledOnOrLive(m, day) {
			continue
		}
		relevant = append(relevant, *m)
	}

	s.postSummary(tenant, relevant)
	s.postTomorrow(ctx, tenant, now)

	if err := setGate(ctx, tenant.ChatID, advanceDaily(gate, now)); err != nil {
		s.log.Error("persist day-post gate", "chat_id", tenant.ChatID, "error", err)
	}
	s.log.Info("posted day summary", "chat_id", tenant.ChatID, "matches", len(relevant))
}

// summaryEligible is the fallback branch's fixed category gate.
func summaryEligible(m *cricket.Match) bool {
	switch classify.Category(m) {
	case model.CategoryInternational:
		return true
	case model.CategoryDomestic, model.CategoryFirstClass:
		return classify.RegionalDomestic(m)
	default:
		return false
	}
}

// todaysMatches merges the day's scheduled fixtures with the current
// feed, de-duplicated by identity with current records winning: they
// carry fresher status and score fields.
func (s *Scheduler) todaysMatches(ctx context.Context, tenant *model.Tenant, day string) ([]cricket.Match, bool) {
	scheduled, errScheduled := s.matches.MatchesOnDate(ctx, day)
	current, errCurrent := s.matches.CurrentMatches(ctx)
	if errScheduled != nil || errCurrent != nil {
		if errScheduled != nil {
			s.log.Error("fetch day matches", "chat_id", tenant.ChatID, "day", day, "error", errScheduled)
		}
		if errCurrent != nil {
			s.log.Error("fetch current matches", "chat_id", tenant.ChatID, "error", errCurrent)
		}
		metrics.UpstreamErrors.Inc()
		return nil, false
	}

	merged := make([]cricket.Match, 0, len(scheduled)+len(current))
	index := make(map[string]int)
	for _, m := range scheduled {
		if id := m.Identity(); id != "" {
			index[id] = len(merged)
		}
		merged = append(merged, m)
	}
	for _, m := range current {
		if id := m.Identity(); id != "" {
			if at, ok := index[id]; ok {
				merged[at] = m
				continue
			}
		}
		merged = append(merged, m)
	}
	return merged, true
}

// postSummary emits the day's matches in batches. Mentions ride on the
// first batch only.
func (s *Scheduler) postSummary(tenant *model.Tenant, matches []cricket.Match) {
	mentions := pingMentions(tenant)
	for start := 0; start < len(matches); start += s.batchSize {
		end := min(start+s.batchSize, len(matches))
		s.publisher.Post(tenant.ChannelID, bot.FormatSummary(matches[start:end]), mentions)
		metrics.Posts.WithLabelValues("summary").Inc()
		mentions = nil
	}
}

// postTomorrow emits tomorrow's international fixtures, or an explicit
// "none found" line. Runs at the tail of both day-post branches and is
// best-effort: the summary is already out, so a failed fixtures fetch
// only costs the listing.
func (s *Scheduler) postTomorrow(ctx context.Context, tenant *model.Tenant, now time.Time) {
	day := now.AddDate(0, 0, 1).Format(dayLayout)
	fixtures, err := s.matches.MatchesOnDate(ctx, day)
	if err != nil {
		s.log.Error("fetch tomorrow fixtures", "chat_id", tenant.ChatID, "error", err)
		metrics.UpstreamErrors.Inc()
		return
	}

	var relevant []cricket.Match
	for i := range fixtures {
		m := &fixtures[i]
		if classify.Category(m) != model.CategoryInternational {
			continue
		}
		if !filter.RelevantGenderTeam(m, tenant) {
			continue
		}
		relevant = append(relevant, *m)
	}

	s.publisher.Post(tenant.ChannelID, bot.FormatFixtures(day, relevant), nil)
	metrics.Posts.WithLabelValues("fixtures").Inc()
}

// nextOccurrence returns the epoch of the next HHMM wall-clock time in
// UTC strictly after now.
func nextOccurrence(now time.Time, dailyTime string) int64 {
	hour, minute := dailyClock(dailyTime)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Unix()
}

// dailyClock parses an HHMM string, falling back to 09:00 when the
// stored value is malformed.
func dailyClock(s string) (hour, minute int) {
	if len(s) != 4 {
		return 9, 0
	}
	h, errH := strconv.Atoi(s[:2])
	m, errM := strconv.Atoi(s[2:])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 9, 0
	}
	return h, m
}

// advanceDaily moves a fired day-post gate forward in whole days from
// its previous value, not from now. A late tick keeps the original
// wall-clock slot, and an outage of several days yields one summary,
// not one per missed day.
func advanceDaily(prev int64, now time.Time) int64 {
	next := prev
	for next <= now.Unix() {
		next += daySeconds
	}
	return next
}
