package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/assapir/jobflow/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func blockedRun() models.SearchRun {
	return models.SearchRun{
		Source:   "LinkedIn",
		Query:    "golang developer",
		Location: "Tel Aviv",
		Outcome:  models.OutcomeBlocked,
		Error:    "blocked by upstream sign-in wall",
	}
}

func TestBot_RecordRun_AlertsOnFailure(t *testing.T) {
	fs := &fakeSender{}
	bot := newBot(fs, 42, time.Hour)

	require.NoError(t, bot.RecordRun(context.Background(), blockedRun()))

	require.Len(t, fs.sent, 1)
	assert.Equal(t, int64(42), fs.sent[0].ChatID)
	assert.Equal(t, "MarkdownV2", fs.sent[0].ParseMode)
	assert.Contains(t, fs.sent[0].Text, "Blocked by sign\\-in wall")
}

func TestBot_RecordRun_IgnoresSuccess(t *testing.T) {
	fs := &fakeSender{}
	bot := newBot(fs, 42, time.Hour)

	for _, outcome := range []models.Outcome{models.OutcomeOK, models.OutcomeEmpty, models.OutcomeCached} {
		require.NoError(t, bot.RecordRun(context.Background(), models.SearchRun{Outcome: outcome}))
	}
	assert.Empty(t, fs.sent)
}

func TestBot_RecordRun_Throttled(t *testing.T) {
	fs := &fakeSender{}
	bot := newBot(fs, 42, time.Hour)

	for i := 0; i < 5; i++ {
		require.NoError(t, bot.RecordRun(context.Background(), blockedRun()))
	}
	assert.Len(t, fs.sent, 1)
}

func TestBot_RecordRun_SendError(t *testing.T) {
	fs := &fakeSender{err: errors.New("Bad Request: chat not found")}
	bot := newBot(fs, 42, time.Hour)

	err := bot.RecordRun(context.Background(), blockedRun())
	assert.ErrorContains(t, err, "chat not found")
}

func TestBot_FormatAlert(t *testing.T) {
	bot := newBot(&fakeSender{}, 42, time.Hour)

	text := bot.formatAlert(blockedRun())
	assert.Contains(t, text, "Source: LinkedIn")
	assert.Contains(t, text, "Query: golang developer")
	assert.Contains(t, text, "📍 Tel Aviv")
	assert.Contains(t, text, "blocked by upstream sign\\-in wall")

	notFound := bot.formatAlert(models.SearchRun{Source: "LinkedIn", Query: "c++", Outcome: models.OutcomeNotFound})
	assert.Contains(t, notFound, "Results list missing")
	assert.Contains(t, notFound, "Query: c\\+\\+")
	assert.NotContains(t, notFound, "📍")

	nav := bot.formatAlert(models.SearchRun{Source: "LinkedIn", Query: "go", Outcome: models.OutcomeNavigationError})
	assert.Contains(t, nav, "Navigation failed")
}
