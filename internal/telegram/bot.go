package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/assapir/jobflow/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// sender is the part of *tgbotapi.BotAPI the bot uses
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot alerts an operator chat when searches start failing (sign-in wall, markup change).
// Alerts are throttled so a blocked streak does not flood the chat.
type Bot struct {
	api     sender
	chatID  int64
	limiter *rate.Limiter
}

func NewBot(token string, chatID int64, alertEvery time.Duration) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return newBot(api, chatID, alertEvery), nil
}

func newBot(api sender, chatID int64, alertEvery time.Duration) *Bot {
	return &Bot{
		api:     api,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Every(alertEvery), 1),
	}
}

func (b *Bot) escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// RecordRun sends an alert for failed runs. Successful runs and throttled alerts are dropped.
func (b *Bot) RecordRun(_ context.Context, run models.SearchRun) error {
	if !run.Outcome.Failed() {
		return nil
	}
	if !b.limiter.Allow() {
		return nil
	}

	msg := tgbotapi.NewMessage(b.chatID, b.formatAlert(run))
	msg.ParseMode = "MarkdownV2"
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	return nil
}

func (b *Bot) formatAlert(run models.SearchRun) string {
	var headline string
	switch run.Outcome {
	case models.OutcomeBlocked:
		headline = "🚫 *Blocked by sign\\-in wall*"
	case models.OutcomeNotFound:
		headline = "🧩 *Results list missing \\(markup changed\\?\\)*"
	default:
		headline = "⚠️ *Navigation failed*"
	}

	msgText := headline + "\n"
	msgText += fmt.Sprintf("🔖 Source: %s\n", b.escapeMarkdown(run.Source))
	msgText += fmt.Sprintf("🔍 Query: %s\n", b.escapeMarkdown(run.Query))
	if run.Location != "" {
		msgText += fmt.Sprintf("📍 %s\n", b.escapeMarkdown(run.Location))
	}
	if run.Error != "" {
		msgText += fmt.Sprintf("📄 %s\n", b.escapeMarkdown(run.Error))
	}
	return msgText
}
