package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cricbot/internal/config"
	"cricbot/internal/cricket"
	"cricbot/internal/metrics"
	"cricbot/internal/news"
	"cricbot/internal/storage"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot is the Telegram bot that handles user commands and posts match
// notifications.
type Bot struct {
	api     telegramAPI
	store   storage.Storage
	matches *cricket.Client
	news    *news.Fetcher
	cfg     *config.Config
	log     *slog.Logger
}

// New creates a Bot with the given Telegram token, storage, and match
// client. newsFetcher may be nil when no feed is configured.
func New(token string, store storage.Storage, matches *cricket.Client, newsFetcher *news.Fetcher, cfg *config.Config, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	return &Bot{
		api:     api,
		store:   store,
		matches: matches,
		news:    newsFetcher,
		cfg:     cfg,
		log:     log,
	}, nil
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

// Post sends a scheduler-generated message to a channel, prefixing the
// mention handles when present. Failures are logged, not returned: a
// lost post is never worth stalling the tick over.
func (b *Bot) Post(channelID int64, text string, mentions []string) {
	if len(mentions) > 0 {
		text = strings.Join(mentions, " ") + "\n" + text
	}
	b.SendMessage(channelID, text)
}

// SendMessage sends a text message to the given chat.
func (b *Bot) SendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.SendMessage(chatID, text)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())
	chatID := msg.Chat.ID

	b.log.Debug("command", "cmd", cmd, "args", args, "chat_id", chatID)

	label := cmd
	switch cmd {
	case "start":
		b.handleStart(ctx, chatID)
	case "help":
		b.handleHelp(chatID)
	case "status":
		b.handleStatus(ctx, chatID)
	case "channel":
		b.handleChannel(ctx, chatID, args)
	case "mode":
		b.handleMode(ctx, chatID, args)
	case "time":
		b.handleTime(ctx, chatID, args)
	case "categories":
		b.handleCategories(ctx, chatID, args)
	case "genders":
		b.handleGenders(ctx, chatID, args)
	case "teams":
		b.handleTeams(ctx, chatID, args)
	case "follow":
		b.handleFollow(ctx, chatID, args)
	case "unfollow":
		b.handleUnfollow(ctx, chatID, args)
	case "matches":
		b.handleMatches(ctx, chatID)
	case "score":
		b.handleScore(ctx, chatID, args)
	case "ping":
		b.handlePing(ctx, chatID, args)
	case "pause":
		b.handlePause(ctx, chatID)
	case "resume":
		b.handleResume(ctx, chatID)
	case "news":
		b.handleNews(ctx, chatID)
	default:
		label = "unknown"
		b.reply(chatID, "Unknown command. Use /help for a list of commands.")
	}
	metrics.Commands.WithLabelValues(label).Inc()
}
