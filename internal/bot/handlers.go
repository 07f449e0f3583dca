package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cricbot/internal/cricket"
	"cricbot/internal/filter"
	"cricbot/internal/model"
	"cricbot/internal/storage"
)

// tenant loads the chat's record, creating one with the default filters
// on first contact.
func (b *Bot) tenant(ctx context.Context, chatID int64) (*model.Tenant, error) {
	t, err := b.store.GetTenant(ctx, chatID)
	if errors.Is(err, storage.ErrNotFound) {
		t = model.NewTenant(chatID, b.cfg.DailyPostTime)
		if err := b.store.CreateTenant(ctx, t); err != nil {
			return nil, err
		}
		return t, nil
	}
	return t, err
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	if _, err := b.tenant(ctx, chatID); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	b.reply(chatID, `Welcome to the cricket notify bot!

Get live score updates for followed matches and daily summaries
filtered to the cricket you care about.

Quick start:
1. /channel — post notifications to this chat (or /channel <id>)
2. /matches — see current matches with their ids
3. /follow <id> — live-track a match

Use /help for the full command reference.`)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Setup:
/channel [id] — set the destination channel (no id: this chat)
/mode custom|daily — custom follows matches, daily posts one summary
/time <HHMM> — daily summary time, 24h UTC
/status — show your current settings

Filters:
/categories <list>|all — international, domestic, first-class, franchise
/genders men|women|both — gender filter
/teams <a,b,...>|clear — only matches involving these teams

Live tracking (custom mode):
/matches — current matches passing your filters, with ids
/follow <id> — start live-tracking a match
/unfollow <id> — stop tracking
/score <id> — scorecard on demand

Other:
/ping on [@name ...] | off — mention people on posts
/pause — stop all scheduled posts
/resume — resume scheduled posts
/news — latest cricket headlines`)
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.reply(chatID, FormatTenantStatus(t))
}

func (b *Bot) handleChannel(ctx context.Context, chatID int64, args string) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	channelID := chatID
	if args != "" {
		channelID, err = ParseChannelArg(args)
		if err != nil {
			b.reply(chatID, err.Error())
			return
		}
	}

	if err := b.store.SetChannel(ctx, t.ChatID, channelID); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if channelID == chatID {
		b.reply(chatID, "Notifications will be posted to this chat.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Notifications will be posted to channel %d. Make sure the bot is an admin there.", channelID))
}

func (b *Bot) handleMode(ctx context.Context, chatID int64, args string) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	mode, ok := model.ParseMode(args)
	if !ok {
		b.reply(chatID, "Usage: /mode custom|daily")
		return
	}

	if err := b.store.SetMode(ctx, t.ChatID, mode); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if mode == model.ModeDaily {
		b.reply(chatID, fmt.Sprintf("Mode set to daily. One summary per day at %s UTC; change it with /time.", formatClock(t.DailyTime)))
		return
	}
	b.reply(chatID, "Mode set to custom. Use /follow <id> for live updates; with nothing followed you get a daily summary instead.")
}

func (b *Bot) handleTime(ctx context.Context, chatID int64, args string) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	hhmm, err := ParseDailyTime(args)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	if err := b.store.SetDailyTime(ctx, t.ChatID, hhmm); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.reply(chatID, fmt.Sprintf("Daily post time set to %s UTC, starting from its next occurrence.", formatClock(hhmm)))
}

func (b *Bot) handleCategories(ctx context.Context, chatID int64, args string) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if args == "" {
		b.reply(chatID, fmt.Sprintf("Current categories: %s.\nUsage: /categories <list>|all, e.g. /categories international,franchise", joinCategories(t.Categories)))
		return
	}

	categories, err := ParseCategories(args)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	if err := b.store.SetCategories(ctx, t.ChatID, categories); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.reply(chatID, fmt.Sprintf("Categories set to: %s.", joinCategories(categories)))
}

func (b *Bot) handleGenders(ctx context.Context, chatID int64, args string) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if args == "" {
		b.reply(chatID, fmt.Sprintf("Current genders: %s.\nUsage: /genders men|women|both", joinGenders(t.Genders)))
		return
	}

	genders, err := ParseGenders(args)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	if err := b.store.SetGenders(ctx, t.ChatID, genders); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.reply(chatID, fmt.Sprintf("Genders set to: %s.", joinGenders(genders)))
}

func (b *Bot) handleTeams(ctx context.Context, chatID int64, args string) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if args == "" {
		b.reply(chatID, "Usage: /teams <a,b,...> to restrict posts to those teams, or /teams clear")
		return
	}

	teams := ParseTeams(args)
	if err := b.store.SetTeams(ctx, t.ChatID, teams); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if len(teams) == 0 {
		b.reply(chatID, "Team filter cleared; matches from all teams pass.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Team filter set to: %s.", strings.Join(teams, ", ")))
}

func (b *Bot) handleFollow(ctx context.Context, chatID int64, args string) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	id, err := ParseMatchID(args)
	if err != nil {
		b.reply(chatID, "Usage: /follow <match_id> (ids come from /matches)")
		return
	}

	if t.Follows(id) {
		b.reply(chatID, fmt.Sprintf("Already tracking match %s.", id))
		return
	}

	current, err := b.matches.CurrentMatches(ctx)
	if err != nil {
		b.log.Error("fetch current matches", "chat_id", chatID, "error", err)
		b.reply(chatID, "Couldn't reach the matches service, try again later.")
		return
	}

	var found *cricket.Match
	for i := range current {
		if current[i].Identity() == id {
			found = &current[i]
			break
		}
	}
	if found == nil {
		b.reply(chatID, fmt.Sprintf("Match %s not found among current matches. Use /matches for valid ids.", id))
		return
	}

	followed := append(append([]string{}, t.Followed...), id)
	if err := b.store.SetFollowed(ctx, t.ChatID, followed); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	reply := fmt.Sprintf("Now tracking: %s", found.Name)
	if t.Mode == model.ModeDaily {
		reply += "\nNote: you are in daily mode; switch with /mode custom to get live updates."
	}
	b.reply(chatID, reply)
}

func (b *Bot) handleUnfollow(ctx context.Context, chatID int64, args string) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	id, err := ParseMatchID(args)
	if err != nil {
		b.reply(chatID, "Usage: /unfollow <match_id>")
		return
	}

	if !t.Follows(id) {
		b.reply(chatID, fmt.Sprintf("Not tracking match %s.", id))
		return
	}

	if err := b.store.SetFollowed(ctx, t.ChatID, t.WithoutFollowed(id)); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.reply(chatID, fmt.Sprintf("Stopped tracking match %s.", id))
}

func (b *Bot) handleMatches(ctx context.Context, chatID int64) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	current, err := b.matches.CurrentMatches(ctx)
	if err != nil {
		b.log.Error("fetch current matches", "chat_id", chatID, "error", err)
		b.reply(chatID, "Couldn't reach the matches service, try again later.")
		return
	}

	var relevant []cricket.Match
	for i := range current {
		m := &current[i]
		if m.Identity() == "" || !filter.Relevant(m, t) {
			continue
		}
		relevant = append(relevant, *m)
	}

	b.reply(chatID, FormatMatchList(relevant))
}

func (b *Bot) handleScore(ctx context.Context, chatID int64, args string) {
	id, err := ParseMatchID(args)
	if err != nil {
		b.reply(chatID, "Usage: /score <match_id>")
		return
	}

	detail, err := b.matches.Scorecard(ctx, id)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Failed to fetch scorecard: %v", err))
		return
	}
	b.reply(chatID, FormatScorecard(detail))
}

func (b *Bot) handlePing(ctx context.Context, chatID int64, args string) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	enabled, roles, err := ParsePingArgs(args)
	if err != nil {
		b.reply(chatID, err.Error())
		return
	}

	// Keep the stored handles unless new ones were given.
	if len(roles) == 0 {
		roles = t.PingRoles
	}

	if err := b.store.SetPing(ctx, t.ChatID, enabled, roles); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if !enabled {
		b.reply(chatID, "Pings disabled.")
		return
	}
	if len(roles) == 0 {
		b.reply(chatID, "Pings enabled, but no handles are set. Use /ping on @name to add some.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Pings enabled for: %s.", strings.Join(roles, " ")))
}

func (b *Bot) handlePause(ctx context.Context, chatID int64) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if err := b.store.SetPaused(ctx, t.ChatID, true); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.reply(chatID, "Scheduled posts paused. Use /resume to pick them back up.")
}

func (b *Bot) handleResume(ctx context.Context, chatID int64) {
	t, err := b.tenant(ctx, chatID)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}

	if err := b.store.SetPaused(ctx, t.ChatID, false); err != nil {
		b.reply(chatID, fmt.Sprintf("Error: %v", err))
		return
	}
	b.reply(chatID, "Scheduled posts resumed.")
}

func (b *Bot) handleNews(ctx context.Context, chatID int64) {
	if b.news == nil {
		b.reply(chatID, "News feed is not configured.")
		return
	}

	items, err := b.news.Headlines(ctx)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Failed to fetch news: %v", err))
		return
	}
	b.reply(chatID, FormatNews(items))
}
