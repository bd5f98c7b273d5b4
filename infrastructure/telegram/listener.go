package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// updatesSource is the polling half of *tgbotapi.BotAPI.
type updatesSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type commandHandler interface {
	Handle(ctx context.Context, chatID int64, messageID int, text string) bool
}

// Listener long-polls Telegram and hands every text message to the handler
// in its own goroutine. Run returns only once in-flight handlers are done.
type Listener struct {
	log         *slog.Logger
	bot         updatesSource
	handler     commandHandler
	pollTimeout int
	inFlight    sync.WaitGroup
}

func NewListener(log *slog.Logger, bot updatesSource, handler commandHandler, pollTimeout int) *Listener {
	return &Listener{log: log, bot: bot, handler: handler, pollTimeout: pollTimeout}
}

func (l *Listener) Run(ctx context.Context) error {
	config := tgbotapi.NewUpdate(0)
	config.Timeout = l.pollTimeout
	updates := l.bot.GetUpdatesChan(config)
	defer l.inFlight.Wait()

	for {
		select {
		case <-ctx.Done():
			l.bot.StopReceivingUpdates()
			l.log.Debug("Stopping telegram listener")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("telegram updates channel closed")
			}
			l.dispatch(ctx, update)
		}
	}
}

func (l *Listener) dispatch(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}

	// A submitted mint is always awaited, even while shutting down.
	handlerCtx := context.WithoutCancel(ctx)
	chatID, messageID, text := msg.Chat.ID, msg.MessageID, msg.Text

	l.inFlight.Add(1)
	go func() {
		defer l.inFlight.Done()
		defer func() {
			if r := recover(); r != nil {
				l.log.Error("Command handler panicked", "chat_id", chatID, "panic", r)
			}
		}()
		if !l.handler.Handle(handlerCtx, chatID, messageID, text) {
			l.log.Debug("Ignored message", "chat_id", chatID)
		}
	}()
}
