package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cricbot/internal/bot"
	"cricbot/internal/classify"
	"cricbot/internal/cricket"
	"cricbot/internal/filter"
	"cricbot/internal/metrics"
	"cricbot/internal/model"
	"cricbot/internal/storage"
)

// Publisher is the interface for posting to a tenant's channel.
// Posting is fire-and-forget: implementations log failures instead of
// returning them, and the scheduler never rolls state back because a
// post was lost.
type Publisher interface {
	Post(channelID int64, text string, mentions []string)
}

// Options carries the scheduling knobs from configuration. Zero values
// fall back to the defaults.
type Options struct {
	PollInterval time.Duration
	IdleBackoff  time.Duration
	BatchSize    int
}

// Scheduler drives the per-tenant posting state machines off a single
// recurring tick.
type Scheduler struct {
	store     storage.Storage
	matches   *cricket.Client
	publisher Publisher
	log       *slog.Logger
	throttle  *Throttle

	tick         time.Duration
	pollInterval time.Duration
	idleBackoff  time.Duration
	batchSize    int

	// running guarantees at most one tick pass in flight.
	running sync.Mutex
}

// New creates a Scheduler.
func New(store storage.Storage, matches *cricket.Client, publisher Publisher, log *slog.Logger, opts Options) *Scheduler {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 600 * time.Second
	}
	if opts.IdleBackoff <= 0 {
		opts.IdleBackoff = 1800 * time.Second
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 8
	}
	return &Scheduler{
		store:        store,
		matches:      matches,
		publisher:    publisher,
		log:          log,
		throttle:     NewThrottle(),
		tick:         1 * time.Minute,
		pollInterval: opts.PollInterval,
		idleBackoff:  opts.IdleBackoff,
		batchSize:    opts.BatchSize,
	}
}

// SetTickInterval overrides the default 1-minute tick (useful for testing).
func (s *Scheduler) SetTickInterval(d time.Duration) {
	s.tick = d
}

// Run starts the scheduler loop, blocking until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.Tick(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one pass over all tenants. If the previous pass is still
// going the new one is skipped rather than overlapped.
func (s *Scheduler) Tick(ctx context.Context) {
	if !s.running.TryLock() {
		s.log.Warn("previous tick still running, skipping")
		metrics.TickSkips.Inc()
		return
	}
	defer s.running.Unlock()
	metrics.Ticks.Inc()

	tenants, err := s.store.ListTenants(ctx)
	if err != nil {
		s.log.Error("list tenants", "error", err)
		return
	}
	metrics.Tenants.Set(float64(len(tenants)))

	for i := range tenants {
		if ctx.Err() != nil {
			return
		}
		s.processTenant(ctx, &tenants[i])
	}
}

func (s *Scheduler) processTenant(ctx context.Context, tenant *model.Tenant) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("tenant processing panicked", "chat_id", tenant.ChatID, "panic", r)
		}
	}()

	if tenant.Paused || tenant.ChannelID == 0 {
		return
	}

	now := time.Now().UTC()
	switch {
	case tenant.Mode == model.ModeDaily:
		s.runDaily(ctx, tenant, now)
	case len(tenant.Followed) > 0:
		s.runLive(ctx, tenant, now)
	default:
		s.runFallback(ctx, tenant, now)
	}
}

// runLive is the custom-mode live branch: poll current matches, post
// throttled score updates for followed live matches, close out
// finished ones, then reschedule with the poll interval while anything
// is live and the idle backoff otherwise.
func (s *Scheduler) runLive(ctx context.Context, tenant *model.Tenant, now time.Time) {
	if now.Unix() < tenant.NextDueCustom {
		return
	}

	current, err := s.matches.CurrentMatches(ctx)
	if err != nil {
		s.log.Error("fetch current matches", "chat_id", tenant.ChatID, "error", err)
		metrics.UpstreamErrors.Inc()
		return
	}

	mentions := pingMentions(tenant)
	anyLive := false
	for i := range current {
		m := &current[i]
		id := m.Identity()
		if id == "" || !tenant.Follows(id) || !filter.Relevant(m, tenant) {
			continue
		}

		switch {
		case classify.IsFinished(m):
			s.finishMatch(ctx, tenant, m, mentions)
		case classify.IsLive(m):
			anyLive = true
			if s.throttle.ShouldPost(tenant.ChatID, id, now.Unix(), int64(s.pollInterval/time.Second)) {
				s.publisher.Post(tenant.ChannelID, bot.FormatScoreUpdate(m), mentions)
				metrics.Posts.WithLabelValues("score").Inc()
				s.throttle.MarkPosted(tenant.ChatID, id, now.Unix())
			}
		}
	}

	due := now.Add(s.idleBackoff)
	if anyLive {
		due = now.Add(s.pollInterval)
	}
	if err := s.store.SetNextDueCustom(ctx, tenant.ChatID, due.Unix()); err != nil {
		s.log.Error("persist custom due time", "chat_id", tenant.ChatID, "error", err)
	}
}

// finishMatch closes out a followed match that has ended: a final
// scorecard post, removal from the followed set, then a tracking
// notice. The scorecard fetch is best-effort; the final post goes out
// with whatever data we have.
func (s *Scheduler) finishMatch(ctx context.Context, tenant *model.Tenant, m *cricket.Match, mentions []string) {
	id := m.Identity()

	detail, err := s.matches.Scorecard(ctx, id)
	if err != nil {
		s.log.Warn("fetch final scorecard", "match_id", id, "error", err)
		metrics.UpstreamErrors.Inc()
	}
	s.publisher.Post(tenant.ChannelID, bot.FormatFinal(m, detail), mentions)
	metrics.Posts.WithLabelValues("final").Inc()

	remaining := tenant.WithoutFollowed(id)
	if err := s.store.SetFollowed(ctx, tenant.ChatID, remaining); err != nil {
		s.log.Error("persist followed set", "chat_id", tenant.ChatID, "error", err)
	}
	tenant.Followed = remaining

	s.publisher.Post(tenant.ChannelID, bot.FormatTrackingStopped(m), nil)
	metrics.Posts.WithLabelValues("notice").Inc()

	s.log.Info("stopped tracking finished match", "chat_id", tenant.ChatID, "match_id", id)
}

// pingMentions returns the tenant's mention list when pings are on.
func pingMentions(tenant *model.Tenant) []string {
	if !tenant.PingEnabled || len(tenant.PingRoles) == 0 {
		return nil
	}
	return tenant.PingRoles
}
